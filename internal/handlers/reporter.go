package handlers

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vmunix/kinobot/internal/events"
)

// Reporter logs watchlist activity and surfaces persistence failures to the
// operator. A failed write leaves the in-memory list ahead of the file, so
// each failure is reported at error level until a later add persists.
type Reporter struct {
	*BaseHandler
	failures atomic.Int64
}

// NewReporter creates a reporter bound to bus.
func NewReporter(bus *events.Bus, logger *slog.Logger) *Reporter {
	return &Reporter{BaseHandler: NewBaseHandler(bus, logger)}
}

// Name returns the handler name.
func (h *Reporter) Name() string {
	return "reporter"
}

// Failures returns the number of persistence failures seen so far.
func (h *Reporter) Failures() int64 {
	return h.failures.Load()
}

// Start begins processing events.
func (h *Reporter) Start(ctx context.Context) error {
	return h.Consume(ctx, Routes{
		events.EventEntryAdded: func(e events.Event) {
			h.handleEntryAdded(e.(*events.EntryAdded))
		},
		events.EventPersistFailed: func(e events.Event) {
			h.handlePersistFailed(e.(*events.PersistFailed))
		},
	})
}

func (h *Reporter) handleEntryAdded(e *events.EntryAdded) {
	h.Logger().Info("entry added",
		"title", e.Title,
		"added_by", e.AddedBy,
		"entries", e.EntityID())
}

func (h *Reporter) handlePersistFailed(e *events.PersistFailed) {
	n := h.failures.Add(1)
	h.Logger().Error("watchlist not persisted, memory is ahead of disk",
		"path", e.Path,
		"entries", e.Entries,
		"failures", n,
		"error", e.Error)
}
