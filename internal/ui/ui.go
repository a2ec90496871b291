package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sensing-garden/trellis/internal/state"
)

// Options configure the dashboard runtime.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Run starts the dashboard and blocks until the context is cancelled or the
// user quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}

	prog := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		// Context cancellation is a normal shutdown, not a failure.
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
