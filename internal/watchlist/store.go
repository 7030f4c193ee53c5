package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/vmunix/kinobot/internal/events"
)

// Publisher receives watchlist events. *events.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Store is the single owner of the watchlist. Readers get clones; appends
// replace the whole list under the write lock and then persist it.
type Store struct {
	path   string
	lock   *flock.Flock // nil when the store was not opened from disk
	pub    Publisher    // may be nil
	logger *slog.Logger

	mu      sync.RWMutex
	current Watchlist // never mutated in place
	version uint64

	// saveMu serializes writes to path; saved is the version last written.
	saveMu sync.Mutex
	saved  uint64
}

// Open locks the watchlist file for this process and loads it. The lock lives
// in <path>.lock and is released by Close. A corrupt file is returned as an
// error wrapping ErrCorruptState.
func Open(path string, pub Publisher, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create watchlist dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire watchlist lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	initial, err := Load(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	s := NewStore(path, initial, pub, logger)
	s.lock = lock
	return s, nil
}

// NewStore creates a store over an already loaded list without taking the
// file lock.
func NewStore(path string, initial Watchlist, pub Publisher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:    path,
		pub:     pub,
		logger:  logger,
		current: initial.Clone(),
	}
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() Watchlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Append validates e, installs a new list with e at the end and returns a
// copy of it. The title is trimmed and lower-cased first.
//
// The new list is written to disk before Append returns. A failed write does
// not undo the append: it is logged and published as a PersistFailed event,
// and Append still succeeds.
func (s *Store) Append(ctx context.Context, e Entry) (Watchlist, error) {
	e, err := normalize(e)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := make(Watchlist, len(s.current), len(s.current)+1)
	copy(next, s.current)
	next = append(next, e)
	s.current = next
	s.version++
	s.mu.Unlock()

	s.logger.Debug("entry added", "title", e.Title, "size", len(next))
	s.publish(ctx, events.NewEntryAdded(len(next), e.Title, e.AddedBy))
	s.persist(ctx)

	return next.Clone(), nil
}

// persist writes the newest installed list. Concurrent appends queue on
// saveMu; whoever gets it writes the latest version, so an older list never
// replaces a newer one on disk.
func (s *Store) persist(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	list, version := s.current, s.version
	s.mu.RUnlock()

	if version <= s.saved {
		return
	}

	if err := Save(s.path, list); err != nil {
		s.logger.Error("persist watchlist failed", "path", s.path, "entries", len(list), "error", err)
		s.publish(ctx, events.NewPersistFailed(s.path, len(list), err))
		return
	}
	s.saved = version
}

func (s *Store) publish(ctx context.Context, e events.Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, e); err != nil {
		s.logger.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}

// Close releases the file lock taken by Open.
func (s *Store) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}
