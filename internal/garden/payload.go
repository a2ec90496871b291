package garden

import (
	"encoding/json"
	"math"
	"strings"
)

// numericValue reports whether v is a numeric value the backend accepts.
// Integers and floats are treated interchangeably; no coercion happens here,
// callers forward the original value so no precision is lost.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// payload validates the location and renders it as its own payload block.
// Alt is included only when set. Values are passed through unmodified; no
// clamping of extreme coordinates.
func (l Location) payload() (map[string]any, error) {
	if !finite(l.Lat) || !finite(l.Long) {
		return nil, invalidArgf("location lat and long must be numeric")
	}
	out := map[string]any{
		"lat":  l.Lat,
		"long": l.Long,
	}
	if l.Alt != nil {
		if !finite(*l.Alt) {
			return nil, invalidArgf("location alt must be numeric")
		}
		out["alt"] = *l.Alt
	}
	return out, nil
}

// payload validates the readings and renders them as their own payload block.
// Recognized fields must be numeric; unrecognized fields pass through as-is.
// Absent fields stay absent, never null placeholders.
func (e EnvironmentData) payload() (map[string]any, error) {
	out := make(map[string]any, len(e))
	for key, value := range e {
		if strings.TrimSpace(key) == "" {
			return nil, invalidArgf("environment field name is empty")
		}
		if recognizedEnvironmentField(key) {
			n, ok := numericValue(value)
			if !ok || !finite(n) {
				return nil, invalidArgf("environment field %q must be numeric", key)
			}
		}
		out[key] = value
	}
	return out, nil
}

func boundingBoxPayload(box []float64) ([]float64, error) {
	if len(box) != 4 {
		return nil, invalidArgf("bounding_box must contain exactly four values, got %d", len(box))
	}
	for _, v := range box {
		if !finite(v) {
			return nil, invalidArgf("bounding_box values must be numeric")
		}
	}
	return box, nil
}
