package garden

import (
	"context"
	"strings"
	"time"
)

// AddEnvironmentRequest carries one standalone environment reading.
type AddEnvironmentRequest struct {
	DeviceID  string
	Timestamp string
	Readings  EnvironmentData
	Location  *Location
}

func buildEnvironmentPayload(req AddEnvironmentRequest) (map[string]any, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, invalidArgf("device_id is required")
	}
	if len(req.Readings) == 0 {
		return nil, invalidArgf("at least one environment reading is required")
	}

	env, err := req.Readings.payload()
	if err != nil {
		return nil, err
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	payload := map[string]any{
		"device_id":   req.DeviceID,
		"timestamp":   timestamp,
		"environment": env,
	}
	if req.Location != nil {
		loc, err := req.Location.payload()
		if err != nil {
			return nil, err
		}
		payload["location"] = loc
	}
	return payload, nil
}

// AddEnvironmentReading submits a standalone environment reading.
func (c *Client) AddEnvironmentReading(ctx context.Context, req AddEnvironmentRequest) (WriteResponse, error) {
	payload, err := buildEnvironmentPayload(req)
	if err != nil {
		return WriteResponse{}, err
	}
	var resp WriteResponse
	if err := c.post(ctx, "/environment", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchEnvironmentReadings retrieves stored environment readings matching the query.
func (c *Client) FetchEnvironmentReadings(ctx context.Context, query ListQuery) (Page[EnvironmentReading], error) {
	var page Page[EnvironmentReading]
	if err := c.get(ctx, "/environment", query.values(), &page); err != nil {
		return Page[EnvironmentReading]{}, err
	}
	return page, nil
}

// CountEnvironmentReadings returns the number of readings matching the query.
func (c *Client) CountEnvironmentReadings(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/environment/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
