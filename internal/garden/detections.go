package garden

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
)

// AddDetectionRequest carries one detection submission.
type AddDetectionRequest struct {
	DeviceID    string
	ModelID     string
	Image       []byte
	Timestamp   string
	BoundingBox []float64
}

func buildDetectionPayload(req AddDetectionRequest) (map[string]any, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, invalidArgf("device_id is required")
	}
	if strings.TrimSpace(req.ModelID) == "" {
		return nil, invalidArgf("model_id is required")
	}
	if len(req.Image) == 0 {
		return nil, invalidArgf("image is required")
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	payload := map[string]any{
		"device_id": req.DeviceID,
		"model_id":  req.ModelID,
		"image":     base64.StdEncoding.EncodeToString(req.Image),
		"timestamp": timestamp,
	}
	if req.BoundingBox != nil {
		box, err := boundingBoxPayload(req.BoundingBox)
		if err != nil {
			return nil, err
		}
		payload["bounding_box"] = box
	}
	return payload, nil
}

// AddDetection submits a detection record.
func (c *Client) AddDetection(ctx context.Context, req AddDetectionRequest) (WriteResponse, error) {
	payload, err := buildDetectionPayload(req)
	if err != nil {
		return WriteResponse{}, err
	}
	var resp WriteResponse
	if err := c.post(ctx, "/detections", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchDetections retrieves stored detections matching the query.
func (c *Client) FetchDetections(ctx context.Context, query ListQuery) (Page[Detection], error) {
	var page Page[Detection]
	if err := c.get(ctx, "/detections", query.values(), &page); err != nil {
		return Page[Detection]{}, err
	}
	return page, nil
}

// CountDetections returns the number of detections matching the query.
func (c *Client) CountDetections(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/detections/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
