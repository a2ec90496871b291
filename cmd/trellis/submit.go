package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sensing-garden/trellis/internal/garden"
)

const commandTimeout = 30 * time.Second

func runSubmit(args []string) int {
	fs := flag.NewFlagSet("trellis submit", flag.ExitOnError)
	configPath := fs.String("config", "", "override trellis config path")
	deviceID := fs.String("device", "", "device id (defaults to config device_id)")
	modelID := fs.String("model", "", "model id (defaults to config model_id)")
	imagePath := fs.String("image", "", "path to the source image (required)")
	family := fs.String("family", "", "taxonomic family")
	genus := fs.String("genus", "", "taxonomic genus")
	species := fs.String("species", "", "taxonomic species")
	familyConf := fs.Float64("family-confidence", 0, "family confidence")
	genusConf := fs.Float64("genus-confidence", 0, "genus confidence")
	speciesConf := fs.Float64("species-confidence", 0, "species confidence")
	timestamp := fs.String("timestamp", "", "RFC 3339 timestamp (defaults to now)")
	location := fs.String("location", "", "geolocation as lat,long[,alt]")
	env := fs.String("env", "", "environment readings as field=value,...")
	bbox := fs.String("bbox", "", "bounding box as x1,y1,x2,y2")
	trackID := fs.String("track-id", "", "track id")
	track := fs.Bool("track", false, "generate a track id")
	meta := fs.String("meta", "", "metadata as key=value,...")
	_ = fs.Parse(args)

	cfg, client, err := newClient(*configPath)
	if err != nil {
		return fatal(err)
	}

	if *deviceID == "" {
		*deviceID = cfg.DeviceID
	}
	if *modelID == "" {
		*modelID = cfg.ModelID
	}
	if *imagePath == "" {
		return fatal(fmt.Errorf("submit: -image is required"))
	}
	image, err := os.ReadFile(*imagePath)
	if err != nil {
		return fatal(fmt.Errorf("read image: %w", err))
	}

	req := garden.AddClassificationRequest{
		DeviceID:          *deviceID,
		ModelID:           *modelID,
		Image:             image,
		Family:            *family,
		Genus:             *genus,
		Species:           *species,
		FamilyConfidence:  *familyConf,
		GenusConfidence:   *genusConf,
		SpeciesConfidence: *speciesConf,
		Timestamp:         *timestamp,
		TrackID:           *trackID,
	}
	if *track && req.TrackID == "" {
		req.TrackID = "track-" + uuid.NewString()
	}

	if *location != "" {
		loc, err := parseLocation(*location)
		if err != nil {
			return fatal(err)
		}
		req.Location = loc
	}
	if *env != "" {
		readings, err := parseEnvReadings(*env)
		if err != nil {
			return fatal(err)
		}
		req.Environment = readings
	}
	if *bbox != "" {
		box, err := parseBoundingBox(*bbox)
		if err != nil {
			return fatal(err)
		}
		req.BoundingBox = box
	}
	if *meta != "" {
		req.Metadata = parsePairs(*meta)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := client.AddClassification(ctx, req)
	if err != nil {
		return fatal(err)
	}
	logrus.WithFields(logrus.Fields{
		"device": req.DeviceID,
		"model":  req.ModelID,
	}).Info("classification submitted")
	printJSON(resp)
	return 0
}

func runEnv(args []string) int {
	fs := flag.NewFlagSet("trellis env", flag.ExitOnError)
	configPath := fs.String("config", "", "override trellis config path")
	deviceID := fs.String("device", "", "device id (defaults to config device_id)")
	timestamp := fs.String("timestamp", "", "RFC 3339 timestamp (defaults to now)")
	location := fs.String("location", "", "geolocation as lat,long[,alt]")
	env := fs.String("readings", "", "environment readings as field=value,... (required)")
	_ = fs.Parse(args)

	cfg, client, err := newClient(*configPath)
	if err != nil {
		return fatal(err)
	}
	if *deviceID == "" {
		*deviceID = cfg.DeviceID
	}
	if *env == "" {
		return fatal(fmt.Errorf("env: -readings is required"))
	}

	readings, err := parseEnvReadings(*env)
	if err != nil {
		return fatal(err)
	}

	req := garden.AddEnvironmentRequest{
		DeviceID:  *deviceID,
		Timestamp: *timestamp,
		Readings:  readings,
	}
	if *location != "" {
		loc, err := parseLocation(*location)
		if err != nil {
			return fatal(err)
		}
		req.Location = loc
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp, err := client.AddEnvironmentReading(ctx, req)
	if err != nil {
		return fatal(err)
	}
	logrus.WithField("device", req.DeviceID).Info("environment reading submitted")
	printJSON(resp)
	return 0
}

// parseLocation parses "lat,long" or "lat,long,alt".
func parseLocation(raw string) (*garden.Location, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("location %q: want lat,long[,alt]", raw)
	}
	nums := make([]float64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", raw, err)
		}
		nums[i] = n
	}
	loc := &garden.Location{Lat: nums[0], Long: nums[1]}
	if len(nums) == 3 {
		loc.Alt = &nums[2]
	}
	return loc, nil
}

// parseEnvReadings parses "field=value,field=value" into readings. Values
// that parse as numbers stay numeric; anything else passes through as text
// (only unrecognized fields may carry text, the client validates the rest).
func parseEnvReadings(raw string) (garden.EnvironmentData, error) {
	readings := garden.EnvironmentData{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("env reading %q: want field=value", pair)
		}
		value = strings.TrimSpace(value)
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			readings[key] = n
		} else {
			readings[key] = value
		}
	}
	return readings, nil
}

// parseBoundingBox parses "x1,y1,x2,y2".
func parseBoundingBox(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox %q: want x1,y1,x2,y2", raw)
	}
	box := make([]float64, 4)
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox %q: %w", raw, err)
		}
		box[i] = n
	}
	return box, nil
}

// parsePairs parses "key=value,..." into opaque metadata.
func parsePairs(raw string) map[string]any {
	out := map[string]any{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}
