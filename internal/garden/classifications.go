package garden

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
)

// AddClassificationRequest carries one classification submission. DeviceID,
// ModelID, Image and the taxonomy result are required; everything else is
// optional and only appears in the payload when supplied.
type AddClassificationRequest struct {
	DeviceID string
	ModelID  string
	Image    []byte

	Family            string
	Genus             string
	Species           string
	FamilyConfidence  float64
	GenusConfidence   float64
	SpeciesConfidence float64

	// Timestamp in RFC 3339; defaults to the current UTC time when empty.
	Timestamp string

	BoundingBox        []float64
	TrackID            string
	Metadata           map[string]any
	ClassificationData map[string]any
	Location           *Location
	Environment        EnvironmentData
}

// buildClassificationPayload assembles the outgoing request body. It is pure:
// no I/O, no mutation of the request. Every optional field lands under its own
// top-level key; nothing supplied is dropped and nothing absent is fabricated.
func buildClassificationPayload(req AddClassificationRequest) (map[string]any, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, invalidArgf("device_id is required")
	}
	if strings.TrimSpace(req.ModelID) == "" {
		return nil, invalidArgf("model_id is required")
	}
	if len(req.Image) == 0 {
		return nil, invalidArgf("image is required")
	}
	if req.Family == "" || req.Genus == "" || req.Species == "" {
		return nil, invalidArgf("family, genus and species are required")
	}

	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	payload := map[string]any{
		"device_id":          req.DeviceID,
		"model_id":           req.ModelID,
		"image":              base64.StdEncoding.EncodeToString(req.Image),
		"family":             req.Family,
		"genus":              req.Genus,
		"species":            req.Species,
		"family_confidence":  req.FamilyConfidence,
		"genus_confidence":   req.GenusConfidence,
		"species_confidence": req.SpeciesConfidence,
		"timestamp":          timestamp,
	}

	if req.BoundingBox != nil {
		box, err := boundingBoxPayload(req.BoundingBox)
		if err != nil {
			return nil, err
		}
		payload["bounding_box"] = box
	}
	if req.TrackID != "" {
		payload["track_id"] = req.TrackID
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}
	if req.ClassificationData != nil {
		payload["classification_data"] = req.ClassificationData
	}
	if req.Location != nil {
		loc, err := req.Location.payload()
		if err != nil {
			return nil, err
		}
		payload["location"] = loc
	}
	if req.Environment != nil {
		env, err := req.Environment.payload()
		if err != nil {
			return nil, err
		}
		// Environment readings ride under their own top-level key, not
		// inside metadata or any other block.
		payload["environment"] = env
	}

	return payload, nil
}

// AddClassification submits a classification record.
func (c *Client) AddClassification(ctx context.Context, req AddClassificationRequest) (WriteResponse, error) {
	payload, err := buildClassificationPayload(req)
	if err != nil {
		return WriteResponse{}, err
	}
	var resp WriteResponse
	if err := c.post(ctx, "/classifications", payload, &resp); err != nil {
		return WriteResponse{}, err
	}
	return resp, nil
}

// FetchClassifications retrieves stored classifications matching the query.
func (c *Client) FetchClassifications(ctx context.Context, query ListQuery) (Page[Classification], error) {
	var page Page[Classification]
	if err := c.get(ctx, "/classifications", query.values(), &page); err != nil {
		return Page[Classification]{}, err
	}
	return page, nil
}

// CountClassifications returns the number of classifications matching the query.
func (c *Client) CountClassifications(ctx context.Context, query ListQuery) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, "/classifications/count", query.values(), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
