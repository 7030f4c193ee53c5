// Package handlers consumes watchlist events from the bus.
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/kinobot/internal/events"
)

// Handler processes events of specific types.
type Handler interface {
	// Start begins processing events (blocking).
	Start(ctx context.Context) error

	// Name returns handler name for logging.
	Name() string
}

// Routes maps an event type to the function that handles it.
type Routes map[string]func(events.Event)

// BaseHandler owns a handler's bus subscription and dispatch loop.
type BaseHandler struct {
	bus    *events.Bus
	logger *slog.Logger
	buffer int
}

// NewBaseHandler creates a base handler with a 100-event subscription buffer.
func NewBaseHandler(bus *events.Bus, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{
		bus:    bus,
		logger: logger,
		buffer: 100,
	}
}

// Logger returns the handler's logger.
func (h *BaseHandler) Logger() *slog.Logger {
	return h.logger
}

// Consume delivers bus events to the matching route until ctx is canceled or
// the bus closes. Types without a route are skipped. The subscription is
// released on cancellation; a closed bus returns nil.
func (h *BaseHandler) Consume(ctx context.Context, routes Routes) error {
	ch := h.bus.SubscribeAll(h.buffer)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if fn, found := routes[e.EventType()]; found {
				fn(e)
			}
		case <-ctx.Done():
			h.bus.Unsubscribe(ch)
			return ctx.Err()
		}
	}
}
