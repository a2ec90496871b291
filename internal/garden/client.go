package garden

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultUserAgent = "trellis/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to the Sensing Garden HTTP API. All write operations build
// their payloads locally and fail with ErrInvalidArgument before touching the
// network when the input is malformed. The client performs no retries and
// keeps no local copy of submitted records.
type Client struct {
	rest *resty.Client
}

// NewClient builds a Client for the given API base URL and key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, invalidArgf("api key is required")
	}

	rest := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("x-api-key", apiKey)

	return &Client{rest: rest}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	req := c.rest.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return c.finish(resp, err, http.MethodGet, path, dest)
}

func (c *Client) post(ctx context.Context, path string, body any, dest any) error {
	resp, err := c.rest.R().SetContext(ctx).SetBody(body).Post(path)
	return c.finish(resp, err, http.MethodPost, path, dest)
}

func (c *Client) del(ctx context.Context, path string, body any, dest any) error {
	resp, err := c.rest.R().SetContext(ctx).SetBody(body).Delete(path)
	return c.finish(resp, err, http.MethodDelete, path, dest)
}

func (c *Client) finish(resp *resty.Response, err error, method, path string, dest any) error {
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       path,
			Message:    apiMessage(resp.Body()),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// parseBaseURL normalizes the configured base URL. A bare host gets an https
// scheme; query and fragment are stripped but any path prefix (API gateway
// stages and the like) is preserved.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, invalidArgf("base URL is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, invalidArgf("base URL %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
