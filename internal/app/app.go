package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sensing-garden/trellis/internal/config"
	"github.com/sensing-garden/trellis/internal/garden"
	"github.com/sensing-garden/trellis/internal/prefs"
	"github.com/sensing-garden/trellis/internal/state"
	"github.com/sensing-garden/trellis/internal/ui"
)

// Options configure the trellis dashboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/trellis/prefs.toml
	PollEvery  int    // seconds; zero uses the configured or default interval
}

// Run boots the trellis dashboard until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := garden.NewClient(cfg.BaseURL, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("init garden client: %w", err)
	}

	store := &state.Store{}

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	ensureBackendAvailable(ctx, client)

	StartPoller(ctx, store, client, interval)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// ensureBackendAvailable does a quick pre-flight count so an unreachable
// backend is reported immediately instead of after the first poll interval.
// The dashboard still starts; the poller keeps retrying.
func ensureBackendAvailable(ctx context.Context, client *garden.Client) {
	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := client.CountDevices(checkCtx, garden.ListQuery{}); err != nil {
		logrus.WithError(err).Warn("sensing garden backend not reachable yet")
	}
}
