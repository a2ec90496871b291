package garden

import (
	"net/url"
	"strconv"
	"strings"
)

// ListQuery configures fetch requests across the list endpoints. Zero-value
// fields are omitted from the query string. The backend sorts by timestamp
// descending when no sort is requested.
type ListQuery struct {
	DeviceID  string
	ModelID   string
	StartTime string
	EndTime   string
	Limit     int
	NextToken string
	SortBy    string
	SortDesc  bool
}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	if v := strings.TrimSpace(q.DeviceID); v != "" {
		values.Set("device_id", v)
	}
	if v := strings.TrimSpace(q.ModelID); v != "" {
		values.Set("model_id", v)
	}
	if v := strings.TrimSpace(q.StartTime); v != "" {
		values.Set("start_time", v)
	}
	if v := strings.TrimSpace(q.EndTime); v != "" {
		values.Set("end_time", v)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if v := strings.TrimSpace(q.NextToken); v != "" {
		values.Set("next_token", v)
	}
	if v := strings.TrimSpace(q.SortBy); v != "" {
		values.Set("sort_by", v)
	}
	if q.SortDesc {
		values.Set("sort_desc", "true")
	}
	return values
}
