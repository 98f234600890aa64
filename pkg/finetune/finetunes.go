package finetune

import (
	"context"
	"net/http"
)

// CreateFineTune submits a new fine-tuning job. The training file must
// already be uploaded (see UploadFile) with purpose "fine-tune".
func (c *Client) CreateFineTune(ctx context.Context, req CreateFineTuneRequest) (*FineTune, error) {
	if err := requireID("training_file", req.TrainingFile); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/v1/fine-tunes", req)
	if err != nil {
		return nil, err
	}

	var out FineTune
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFineTunes returns the organization's fine-tuning jobs.
func (c *Client) ListFineTunes(ctx context.Context) (*FineTuneList, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/fine-tunes", nil)
	if err != nil {
		return nil, err
	}

	var out FineTuneList
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveFineTune returns a single fine-tuning job by ID.
func (c *Client) RetrieveFineTune(ctx context.Context, fineTuneID string) (*FineTune, error) {
	if err := requireID("fine_tune_id", fineTuneID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/fine-tunes/"+fineTuneID, nil)
	if err != nil {
		return nil, err
	}

	var out FineTune
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelFineTune cancels a running fine-tuning job.
func (c *Client) CancelFineTune(ctx context.Context, fineTuneID string) (*FineTune, error) {
	if err := requireID("fine_tune_id", fineTuneID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/v1/fine-tunes/"+fineTuneID+"/cancel", nil)
	if err != nil {
		return nil, err
	}

	var out FineTune
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type eventsRequest struct {
	Stream bool `json:"stream"`
}

// ListFineTuneEvents returns the status events for a fine-tuning job.
//
// The stream parameter is part of the API contract but the capability
// is declined: passing true returns ErrStreamingUnsupported without
// issuing a request. Callers wanting fresh events re-invoke; the call
// itself has no pagination or polling behavior.
func (c *Client) ListFineTuneEvents(ctx context.Context, fineTuneID string, stream bool) (*FineTuneEventList, error) {
	if stream {
		return nil, ErrStreamingUnsupported
	}
	if err := requireID("fine_tune_id", fineTuneID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/fine-tunes/"+fineTuneID+"/events", eventsRequest{Stream: false})
	if err != nil {
		return nil, err
	}

	var out FineTuneEventList
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteModel deletes a fine-tuned model the organization owns.
func (c *Client) DeleteModel(ctx context.Context, model string) (*DeleteResponse, error) {
	if err := requireID("model", model); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodDelete, "/v1/models/"+model, nil)
	if err != nil {
		return nil, err
	}

	var out DeleteResponse
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
