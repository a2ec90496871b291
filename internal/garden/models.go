package garden

import (
	"context"
	"strings"
	"time"
)

// CreateModelRequest registers a classification model with the backend.
// Description may be empty.
type CreateModelRequest struct {
	ModelID     string
	Name        string
	Version     string
	Description string
	Timestamp   string
}

func buildModelPayload(req CreateModelRequest) (map[string]any, error) {
	if strings.TrimSpace(req.ModelID) == "" {
		return nil, invalidArgf("model_id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidArgf("name is required")
	}
	if strings.TrimSpace(req.Version) == "" {
		return nil, invalidArgf("version is required")
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	payload := map[string]any{
		"model_id":  req.ModelID,
		"name":      req.Name,
		"version":   req.Version,
		"timestamp": timestamp,
	}
	if req.Description != "" {
		payload["description"] = req.Description
	}
	return payload, nil
}

// CreateModel registers a model.
func (c *Client) CreateModel(ctx context.Context, req CreateModelRequest) (WriteResponse, error) {
	payload, err := buildModelPayload(req)
	if err != nil {
		return WriteResponse{}, err
	}
	var resp WriteResponse
	if err := c.post(ctx, "/models", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchModels retrieves registered models matching the query.
func (c *Client) FetchModels(ctx context.Context, query ListQuery) (Page[Model], error) {
	var page Page[Model]
	if err := c.get(ctx, "/models", query.values(), &page); err != nil {
		return Page[Model]{}, err
	}
	return page, nil
}

// CountModels returns the number of models matching the query.
func (c *Client) CountModels(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/models/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
