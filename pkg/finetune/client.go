// Package finetune is a client for the OpenAI fine-tuning HTTP API.
//
// The client is stateless: every operation builds one request, performs
// one synchronous call, and decodes the response. There are no retries,
// no caching, and no pagination beyond what the API itself returns.
// Configuration (API key, base URL, organization) is passed in at
// construction time; the package never reads the environment.
package finetune

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL   = "https://api.openai.com"
	defaultUserAgent = "finetune-go/1.0"
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL. Useful for proxies and for
// pointing the client at a local mock server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithOrganization sets the organization ID sent in the
// OpenAI-Organization header. When unset the header is omitted.
func WithOrganization(org string) Option {
	return func(c *Client) {
		c.organization = org
	}
}

// WithHTTPClient sets a custom HTTP client. Timeout policy belongs to
// the transport; the client itself imposes none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTracing wraps the transport with OpenTelemetry HTTP
// instrumentation. Apply after WithHTTPClient if both are used.
func WithTracing() Option {
	return func(c *Client) {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		// Copy to avoid mutating a shared *http.Client.
		instrumented := *c.httpClient
		instrumented.Transport = otelhttp.NewTransport(base)
		c.httpClient = &instrumented
	}
}

// Client is an authenticated client for the fine-tuning API.
type Client struct {
	apiKey       string
	baseURL      string
	organization string
	userAgent    string
	httpClient   *http.Client
}

// New creates a client. The API key is required for every call; an
// empty key fails validation at call time, before any network I/O.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRequest validates the configured credentials, marshals the body
// if present, and builds a request with the standard header set.
// Validation failures are returned before any I/O occurs.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, &ValidationError{Param: "api_key", Reason: "must be a non-empty string"}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)
	return req, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}
}

// do executes the request and decodes the JSON response into out.
// The response content type is verified before any parsing; a non-2xx
// status becomes an *APIError carrying the upstream error message.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := verifyJSONContentType(resp); err != nil {
		return err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// doRaw executes the request and returns the response body verbatim.
// Used for file content downloads, where the body is not JSON.
func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func verifyJSONContentType(resp *http.Response) error {
	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "application/json" {
		return &MIMEError{ContentType: ct}
	}
	return nil
}

// requireID validates a path parameter. IDs are embedded in the URL as
// given, so an empty value or one containing a separator would change
// the request target.
func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Param: name, Reason: "must be a non-empty string"}
	}
	if strings.ContainsAny(value, "/?#") {
		return &ValidationError{Param: name, Reason: "must not contain URL separators"}
	}
	return nil
}
