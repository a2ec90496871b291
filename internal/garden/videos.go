package garden

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
)

// UploadVideoRequest carries one video upload. The video body is sent to the
// backend endpoint base64-encoded; the backend owns object storage.
type UploadVideoRequest struct {
	DeviceID    string
	Timestamp   string
	Video       []byte
	ContentType string
	Metadata    map[string]any
}

const defaultVideoContentType = "video/mp4"

func buildVideoPayload(req UploadVideoRequest) (map[string]any, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, invalidArgf("device_id is required")
	}
	if len(req.Video) == 0 {
		return nil, invalidArgf("video data is required")
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = defaultVideoContentType
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	payload := map[string]any{
		"device_id":    req.DeviceID,
		"timestamp":    timestamp,
		"video":        base64.StdEncoding.EncodeToString(req.Video),
		"content_type": contentType,
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}
	return payload, nil
}

// UploadVideo submits a video record.
func (c *Client) UploadVideo(ctx context.Context, req UploadVideoRequest) (WriteResponse, error) {
	payload, err := buildVideoPayload(req)
	if err != nil {
		return WriteResponse{}, err
	}
	var resp WriteResponse
	if err := c.post(ctx, "/videos", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchVideos retrieves stored video records matching the query.
func (c *Client) FetchVideos(ctx context.Context, query ListQuery) (Page[Video], error) {
	var page Page[Video]
	if err := c.get(ctx, "/videos", query.values(), &page); err != nil {
		return Page[Video]{}, err
	}
	return page, nil
}

// CountVideos returns the number of video records matching the query.
func (c *Client) CountVideos(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/videos/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
