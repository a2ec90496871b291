// Package garden implements the HTTP client for the Sensing Garden backend.
//
// The client covers the full API surface: classifications, detections,
// models, devices, standalone environment readings, and videos. Write
// operations validate their input and assemble the JSON payload locally
// before any network activity; malformed input fails with a wrapped
// ErrInvalidArgument. Non-success responses surface as *APIError.
//
// Payload construction follows a strict shape contract: every optional
// field (location, environment, bounding_box, track_id, metadata,
// classification_data) appears under its own top-level key when supplied
// and is absent otherwise. No null placeholders, no dropped fields, no
// fabricated defaults beyond the submission timestamp.
//
// The client is stateless apart from its HTTP configuration. It performs
// no retries and no caching; a submission exists only for the duration of
// the call.
package garden
