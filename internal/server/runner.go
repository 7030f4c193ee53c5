// Package server runs the bot's long-lived components under one lifecycle.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/kinobot/internal/events"
	"github.com/vmunix/kinobot/internal/handlers"
	"golang.org/x/sync/errgroup"
)

// Gateway is the chat connection. Run blocks until ctx is canceled or the
// connection fails.
type Gateway interface {
	Run(ctx context.Context) error
	Name() string
}

// Config for the runner.
type Config struct {
	// Retention is how long event log rows are kept. Zero disables pruning.
	Retention time.Duration
	// PruneInterval defaults to one hour.
	PruneInterval time.Duration
}

// Runner manages the gateway, the bus handlers and event log maintenance.
type Runner struct {
	gateway  Gateway
	bus      *events.Bus
	eventLog *events.EventLog // may be nil
	config   Config
	logger   *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(gateway Gateway, bus *events.Bus, eventLog *events.EventLog, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	return &Runner{
		gateway:  gateway,
		bus:      bus,
		eventLog: eventLog,
		config:   cfg,
		logger:   logger,
	}
}

// Run starts all components.
// It blocks until the context is canceled or a component fails; the first
// failure cancels the rest.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	hs := []handlers.Handler{
		handlers.NewReporter(r.bus, r.logger.With("component", "reporter")),
	}
	for _, h := range hs {
		g.Go(func() error {
			r.logger.Debug("handler started", "handler", h.Name())
			return h.Start(ctx)
		})
	}

	if r.eventLog != nil && r.config.Retention > 0 {
		g.Go(func() error {
			return r.pruneLoop(ctx)
		})
	}

	g.Go(func() error {
		r.logger.Info("gateway starting", "gateway", r.gateway.Name())
		return r.gateway.Run(ctx)
	})

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) error {
	r.prune()

	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.prune()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Runner) prune() {
	n, err := r.eventLog.Prune(r.config.Retention)
	if err != nil {
		r.logger.Error("event log prune failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("pruned event log", "deleted", n, "retention", r.config.Retention)
	}
}
