package garden

import (
	"encoding/base64"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"
)

var testImage = []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02, 0x03}

func baseRequest() AddClassificationRequest {
	return AddClassificationRequest{
		DeviceID:          "device-123",
		ModelID:           "model-abc",
		Image:             testImage,
		Family:            "Rosaceae",
		Genus:             "Rosa",
		Species:           "Rosa canina",
		FamilyConfidence:  0.95,
		GenusConfidence:   0.92,
		SpeciesConfidence: 0.88,
		Timestamp:         "2026-08-01T12:00:00Z",
	}
}

func payloadKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var requiredKeys = []string{
	"device_id", "family", "family_confidence", "genus", "genus_confidence",
	"image", "model_id", "species", "species_confidence", "timestamp",
}

func TestBuildClassificationPayload_RequiredOnly(t *testing.T) {
	payload, err := buildClassificationPayload(baseRequest())
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}

	if got := payloadKeys(payload); !reflect.DeepEqual(got, requiredKeys) {
		t.Fatalf("payload keys = %v, want exactly %v", got, requiredKeys)
	}
	if payload["device_id"] != "device-123" || payload["model_id"] != "model-abc" {
		t.Fatalf("identifiers wrong: %v / %v", payload["device_id"], payload["model_id"])
	}
	if payload["image"] != base64.StdEncoding.EncodeToString(testImage) {
		t.Fatalf("image = %v, want base64 of source bytes", payload["image"])
	}
	if payload["timestamp"] != "2026-08-01T12:00:00Z" {
		t.Fatalf("timestamp = %v, want caller value preserved", payload["timestamp"])
	}
}

func TestBuildClassificationPayload_RequiredFieldValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddClassificationRequest)
	}{
		{"missing device_id", func(r *AddClassificationRequest) { r.DeviceID = " " }},
		{"missing model_id", func(r *AddClassificationRequest) { r.ModelID = "" }},
		{"missing image", func(r *AddClassificationRequest) { r.Image = nil }},
		{"missing family", func(r *AddClassificationRequest) { r.Family = "" }},
		{"missing genus", func(r *AddClassificationRequest) { r.Genus = "" }},
		{"missing species", func(r *AddClassificationRequest) { r.Species = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, err := buildClassificationPayload(req)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestBuildClassificationPayload_DefaultsTimestamp(t *testing.T) {
	req := baseRequest()
	req.Timestamp = ""
	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	ts, ok := payload["timestamp"].(string)
	if !ok || ts == "" {
		t.Fatalf("timestamp = %v, want generated non-empty string", payload["timestamp"])
	}
}

func TestBuildClassificationPayload_LocationWithAndWithoutAlt(t *testing.T) {
	alt := 120.5
	req := baseRequest()
	req.Location = &Location{Lat: 37.77, Long: -122.42, Alt: &alt}

	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	loc, ok := payload["location"].(map[string]any)
	if !ok {
		t.Fatalf("location = %T, want map", payload["location"])
	}
	if len(loc) != 3 || loc["lat"] != 37.77 || loc["long"] != -122.42 || loc["alt"] != 120.5 {
		t.Fatalf("location = %v, want lat/long/alt", loc)
	}

	req.Location = &Location{Lat: 37.77, Long: -122.42}
	payload, err = buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	loc = payload["location"].(map[string]any)
	if len(loc) != 2 {
		t.Fatalf("location without alt = %v, want exactly lat and long", loc)
	}
	if _, present := loc["alt"]; present {
		t.Fatalf("alt present in %v, want omitted", loc)
	}
}

func TestBuildClassificationPayload_LocationRejectsNonFinite(t *testing.T) {
	nan := math.NaN()

	req := baseRequest()
	req.Location = &Location{Lat: nan, Long: -122.42}
	if _, err := buildClassificationPayload(req); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument for NaN lat", err)
	}

	req.Location = &Location{Lat: 37.77, Long: -122.42, Alt: &nan}
	if _, err := buildClassificationPayload(req); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument for NaN alt", err)
	}
}

func TestBuildClassificationPayload_EnvironmentSubsets(t *testing.T) {
	full := EnvironmentData{
		FieldPM1p0:              12.3,
		FieldPM2p5:              18.7,
		FieldPM4p0:              25.1,
		FieldPM10p0:             31.9,
		FieldAmbientTemperature: 21.4,
		FieldAmbientHumidity:    55.2,
		FieldVOCIndex:           150,
		FieldNOxIndex:           80,
	}
	single := EnvironmentData{FieldPM2p5: 18.7}

	for name, env := range map[string]EnvironmentData{"full": full, "single": single} {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			req.Environment = env
			payload, err := buildClassificationPayload(req)
			if err != nil {
				t.Fatalf("buildClassificationPayload returned error: %v", err)
			}
			got, ok := payload["environment"].(map[string]any)
			if !ok {
				t.Fatalf("environment = %T, want map", payload["environment"])
			}
			if !reflect.DeepEqual(got, map[string]any(env)) {
				t.Fatalf("environment = %v, want exact input %v", got, env)
			}
		})
	}
}

func TestBuildClassificationPayload_EnvironmentValidation(t *testing.T) {
	req := baseRequest()
	req.Environment = EnvironmentData{FieldPM2p5: "smoky"}
	if _, err := buildClassificationPayload(req); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument for non-numeric reading", err)
	}

	// Unrecognized fields pass through unvalidated.
	req.Environment = EnvironmentData{"co2_ppm": 412.5, "sensor_note": "calibrated"}
	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	env := payload["environment"].(map[string]any)
	if env["co2_ppm"] != 412.5 || env["sensor_note"] != "calibrated" {
		t.Fatalf("environment = %v, want unrecognized fields passed through", env)
	}
}

func TestBuildClassificationPayload_IntAndFloatReadings(t *testing.T) {
	req := baseRequest()
	req.Environment = EnvironmentData{FieldVOCIndex: 150, FieldPM2p5: 18.7}
	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	env := payload["environment"].(map[string]any)
	// The original values pass through untouched; ints are not coerced to floats.
	if v, ok := env[FieldVOCIndex].(int); !ok || v != 150 {
		t.Fatalf("voc_index = %#v, want int 150 preserved", env[FieldVOCIndex])
	}
	if v, ok := env[FieldPM2p5].(float64); !ok || v != 18.7 {
		t.Fatalf("pm2p5 = %#v, want float 18.7 preserved", env[FieldPM2p5])
	}
}

func TestBuildClassificationPayload_LocationAndEnvironmentIndependent(t *testing.T) {
	req := baseRequest()
	req.Location = &Location{Lat: 40.0, Long: -100.0}
	req.Environment = EnvironmentData{FieldAmbientTemperature: 19.5}

	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	if _, ok := payload["location"].(map[string]any); !ok {
		t.Fatalf("location missing or wrong type: %#v", payload["location"])
	}
	env, ok := payload["environment"].(map[string]any)
	if !ok {
		t.Fatalf("environment missing or wrong type: %#v", payload["environment"])
	}
	if _, nested := env["location"]; nested {
		t.Fatal("location nested inside environment, want independent top-level keys")
	}
}

func TestBuildClassificationPayload_AllOptionalFields(t *testing.T) {
	alt := 300.0
	req := baseRequest()
	req.BoundingBox = []float64{0.1, 0.2, 0.6, 0.7}
	req.TrackID = "track-41d9a5b2"
	req.Metadata = map[string]any{"foo": "bar", "num": 123}
	req.ClassificationData = map[string]any{
		"family": []map[string]any{{"name": "Rosaceae", "confidence": 0.95}},
	}
	req.Location = &Location{Lat: 37.77, Long: -122.42, Alt: &alt}
	req.Environment = EnvironmentData{FieldPM10p0: 31.9}

	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}

	want := append(append([]string{}, requiredKeys...),
		"bounding_box", "classification_data", "environment", "location", "metadata", "track_id")
	sort.Strings(want)
	if got := payloadKeys(payload); !reflect.DeepEqual(got, want) {
		t.Fatalf("payload keys = %v, want %v", got, want)
	}
	if payload["track_id"] != "track-41d9a5b2" {
		t.Fatalf("track_id = %v, want caller value", payload["track_id"])
	}
	if !reflect.DeepEqual(payload["bounding_box"], []float64{0.1, 0.2, 0.6, 0.7}) {
		t.Fatalf("bounding_box = %v, want caller value", payload["bounding_box"])
	}
	if !reflect.DeepEqual(payload["metadata"], map[string]any{"foo": "bar", "num": 123}) {
		t.Fatalf("metadata = %v, want opaque pass-through", payload["metadata"])
	}
}

func TestBuildClassificationPayload_BoundingBoxValidation(t *testing.T) {
	req := baseRequest()
	req.BoundingBox = []float64{0.1, 0.2, 0.3}
	if _, err := buildClassificationPayload(req); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument for three values", err)
	}
}

func TestBuildClassificationPayload_ExtremeValuesPassThrough(t *testing.T) {
	req := baseRequest()
	req.Location = &Location{Lat: 89.9999, Long: 179.9999}
	req.Environment = EnvironmentData{FieldPM2p5: 0.0, FieldPM10p0: 999.9}

	payload, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	loc := payload["location"].(map[string]any)
	if loc["lat"] != 89.9999 || loc["long"] != 179.9999 {
		t.Fatalf("location = %v, want extreme coordinates unmodified", loc)
	}
	env := payload["environment"].(map[string]any)
	if env[FieldPM2p5] != 0.0 || env[FieldPM10p0] != 999.9 {
		t.Fatalf("environment = %v, want extreme readings unmodified", env)
	}
}

// The legacy required-only payload shape must survive the optional-field
// additions untouched.
func TestBuildClassificationPayload_BackwardCompatible(t *testing.T) {
	legacy, err := buildClassificationPayload(baseRequest())
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}

	req := baseRequest()
	req.Environment = EnvironmentData{FieldPM1p0: 1.0}
	enriched, err := buildClassificationPayload(req)
	if err != nil {
		t.Fatalf("buildClassificationPayload returned error: %v", err)
	}
	delete(enriched, "environment")
	if !reflect.DeepEqual(legacy, enriched) {
		t.Fatalf("required fields changed by optional additions:\nlegacy   %v\nenriched %v", legacy, enriched)
	}
}
