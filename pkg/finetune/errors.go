package finetune

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrStreamingUnsupported is returned when a caller requests streaming
// fine-tune events. The API supports it; this client deliberately does
// not, and declines the capability by name instead of ignoring the
// flag.
var ErrStreamingUnsupported = errors.New("streaming fine-tune events are not supported by this client")

// ValidationError reports an argument failure detected before any
// network I/O.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

// MIMEError reports a response whose declared content type is not the
// JSON the client expects. Raised after receiving a response but
// before any parsing.
type MIMEError struct {
	ContentType string
}

func (e *MIMEError) Error() string {
	return fmt.Sprintf("unexpected response content type %q, expected application/json", e.ContentType)
}

// APIError is a failure reported by the upstream API via a non-2xx
// status. The message embeds the numeric status and the upstream
// error.message field.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	Code       string `json:"code,omitempty"`
	Param      string `json:"param,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API request failed [%d]: %s", e.StatusCode, e.Message)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// parseAPIError builds an *APIError from an error response body. When
// the body does not carry the expected envelope the raw text stands in
// for the message so the failure is still descriptive.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		envelope.Error.StatusCode = statusCode
		return envelope.Error
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
