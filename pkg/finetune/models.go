package finetune

import (
	"context"
	"net/http"
)

// ListModels returns the models available to the caller, including
// fine-tuned models the organization owns.
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/models", nil)
	if err != nil {
		return nil, err
	}

	var out ModelList
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveModel returns a single model by ID.
func (c *Client) RetrieveModel(ctx context.Context, modelID string) (*Model, error) {
	if err := requireID("model_id", modelID); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/v1/models/"+modelID, nil)
	if err != nil {
		return nil, err
	}

	var out Model
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
