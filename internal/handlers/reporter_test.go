package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinobot/internal/events"
)

// syncBuffer lets the handler goroutine and the test share log output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startReporter(t *testing.T) (*Reporter, *events.Bus, *syncBuffer) {
	t.Helper()
	bus := events.NewBus(nil, nil)
	out := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := NewReporter(bus, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = bus.Close()
	})
	return h, bus, out
}

func TestReporter_Name(t *testing.T) {
	bus := events.NewBus(nil, nil)
	defer bus.Close()
	assert.Equal(t, "reporter", NewReporter(bus, nil).Name())
}

func TestReporter_LogsPersistFailure(t *testing.T) {
	h, bus, out := startReporter(t)
	ctx := context.Background()

	// Start subscribes asynchronously; keep publishing until it is listening.
	require.Eventually(t, func() bool {
		_ = bus.Publish(ctx, events.NewPersistFailed("/data/list.json", 3, errors.New("disk full")))
		return h.Failures() > 0
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("level=ERROR"))
	}, time.Second, 5*time.Millisecond)
	logs := out.String()
	assert.Contains(t, logs, "path=/data/list.json")
	assert.Contains(t, logs, "entries=3")
	assert.Contains(t, logs, `error="disk full"`)
}

func TestReporter_LogsEntryAdded(t *testing.T) {
	h, bus, out := startReporter(t)
	ctx := context.Background()

	require.Eventually(t, func() bool {
		_ = bus.Publish(ctx, events.NewEntryAdded(1, "alien", "ripley"))
		return bytes.Contains([]byte(out.String()), []byte("entry added"))
	}, time.Second, 10*time.Millisecond)

	logs := out.String()
	assert.Contains(t, logs, "title=alien")
	assert.Contains(t, logs, "added_by=ripley")
	assert.Zero(t, h.Failures())
}

func TestReporter_StopsWhenBusCloses(t *testing.T) {
	bus := events.NewBus(nil, nil)
	h := NewReporter(bus, nil)

	done := make(chan error, 1)
	go func() { done <- h.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		_ = bus.Publish(context.Background(), events.NewPersistFailed("p", 0, nil))
		return h.Failures() > 0
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, bus.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not stop after bus close")
	}
}
