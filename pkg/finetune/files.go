package finetune

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// UploadFile uploads a file for use by the API. Fine-tune training
// data uses purpose "fine-tune". The filename is informational; the
// content is read from r in full before the request is sent.
func (c *Client) UploadFile(ctx context.Context, purpose, filename string, r io.Reader) (*File, error) {
	if strings.TrimSpace(purpose) == "" {
		return nil, &ValidationError{Param: "purpose", Reason: "must be a non-empty string"}
	}
	if strings.TrimSpace(filename) == "" {
		return nil, &ValidationError{Param: "filename", Reason: "must be a non-empty string"}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", purpose); err != nil {
		return nil, fmt.Errorf("write purpose field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create file field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	// Multipart requests bypass newRequest: the content type carries
	// the boundary and the body is not JSON.
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, &ValidationError{Param: "api_key", Reason: "must be a non-empty string"}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(httpReq)

	var out File
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFiles returns the files the organization has uploaded.
func (c *Client) ListFiles(ctx context.Context) (*FileList, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/files", nil)
	if err != nil {
		return nil, err
	}

	var out FileList
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveFile returns metadata for a single uploaded file.
func (c *Client) RetrieveFile(ctx context.Context, fileID string) (*File, error) {
	if err := requireID("file_id", fileID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/files/"+fileID, nil)
	if err != nil {
		return nil, err
	}

	var out File
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FileContent downloads the raw content of an uploaded file. The body
// is returned verbatim; no content-type or JSON handling applies.
func (c *Client) FileContent(ctx context.Context, fileID string) ([]byte, error) {
	if err := requireID("file_id", fileID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/files/"+fileID+"/content", nil)
	if err != nil {
		return nil, err
	}
	return c.doRaw(httpReq)
}

// DeleteFile deletes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*DeleteResponse, error) {
	if err := requireID("file_id", fileID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodDelete, "/v1/files/"+fileID, nil)
	if err != nil {
		return nil, err
	}

	var out DeleteResponse
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
