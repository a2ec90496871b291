package garden

import (
	"context"
	"strings"
	"time"
)

// AddDevice registers a hardware unit.
func (c *Client) AddDevice(ctx context.Context, deviceID string) (WriteResponse, error) {
	if strings.TrimSpace(deviceID) == "" {
		return WriteResponse{}, invalidArgf("device_id is required")
	}
	payload := map[string]any{
		"device_id": deviceID,
		"created":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	var resp WriteResponse
	if err := c.post(ctx, "/devices", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// DeleteDevice removes a registered device.
func (c *Client) DeleteDevice(ctx context.Context, deviceID string) (WriteResponse, error) {
	if strings.TrimSpace(deviceID) == "" {
		return WriteResponse{}, invalidArgf("device_id is required")
	}
	payload := map[string]any{"device_id": deviceID}
	var resp WriteResponse
	if err := c.del(ctx, "/devices", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchDevices retrieves registered devices matching the query.
func (c *Client) FetchDevices(ctx context.Context, query ListQuery) (Page[Device], error) {
	var page Page[Device]
	if err := c.get(ctx, "/devices", query.values(), &page); err != nil {
		return Page[Device]{}, err
	}
	return page, nil
}

// CountDevices returns the number of registered devices matching the query.
func (c *Client) CountDevices(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/devices/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
