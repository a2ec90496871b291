package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sensing-garden/trellis/internal/garden"
	"github.com/sensing-garden/trellis/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
	recentFetchLimit    = 50
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the backend is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client *garden.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

func refresh(ctx context.Context, store *state.Store, client *garden.Client) {
	recent := garden.ListQuery{Limit: recentFetchLimit, SortBy: "timestamp", SortDesc: true}

	classifications, err := client.FetchClassifications(ctx, recent)
	if err != nil {
		fail(store, err, "classifications")
		return
	}
	detections, err := client.FetchDetections(ctx, recent)
	if err != nil {
		fail(store, err, "detections")
		return
	}
	devices, err := client.FetchDevices(ctx, garden.ListQuery{})
	if err != nil {
		fail(store, err, "devices")
		return
	}
	environment, err := client.FetchEnvironmentReadings(ctx, recent)
	if err != nil {
		fail(store, err, "environment")
		return
	}
	counts, err := fetchCounts(ctx, client)
	if err != nil {
		fail(store, err, "counts")
		return
	}

	store.Update(&state.Data{
		Classifications: classifications.Items,
		Detections:      detections.Items,
		Devices:         devices.Items,
		Environment:     environment.Items,
		Counts:          counts,
	}, nil)
}

func fetchCounts(ctx context.Context, client *garden.Client) (state.Counts, error) {
	var counts state.Counts
	var err error
	if counts.Classifications, err = client.CountClassifications(ctx, garden.ListQuery{}); err != nil {
		return state.Counts{}, err
	}
	if counts.Detections, err = client.CountDetections(ctx, garden.ListQuery{}); err != nil {
		return state.Counts{}, err
	}
	if counts.Devices, err = client.CountDevices(ctx, garden.ListQuery{}); err != nil {
		return state.Counts{}, err
	}
	if counts.Environment, err = client.CountEnvironmentReadings(ctx, garden.ListQuery{}); err != nil {
		return state.Counts{}, err
	}
	return counts, nil
}

func fail(store *state.Store, err error, what string) {
	store.Update(nil, err)
	logrus.WithError(err).WithField("resource", what).Warn("poll failed")
}
