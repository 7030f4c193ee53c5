// Package events carries in-process notifications between the watchlist
// store and the components that report on it.
package events

import "time"

// Event is implemented by everything published on the Bus.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() int64
	OccurredAt() time.Time
}

// EntityWatchlist is the entity type for watchlist events. The entity ID is
// the length of the list the event refers to.
const EntityWatchlist = "watchlist"

const (
	EventEntryAdded    = "watchlist.entry_added"
	EventPersistFailed = "watchlist.persist_failed"
)

// Header holds the fields every event shares.
type Header struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity_type"`
	Size   int64     `json:"entity_id"`
	At     time.Time `json:"occurred_at"`
}

func (h Header) EventType() string     { return h.Type }
func (h Header) EntityType() string    { return h.Entity }
func (h Header) EntityID() int64       { return h.Size }
func (h Header) OccurredAt() time.Time { return h.At }

func watchlistHeader(eventType string, size int) Header {
	return Header{Type: eventType, Entity: EntityWatchlist, Size: int64(size), At: time.Now()}
}

// EntryAdded is emitted after an entry has been installed in the watchlist.
type EntryAdded struct {
	Header
	Title   string `json:"title"`
	AddedBy string `json:"added_by,omitempty"`
}

// NewEntryAdded builds an EntryAdded for a list that now holds size entries.
func NewEntryAdded(size int, title, addedBy string) *EntryAdded {
	return &EntryAdded{
		Header:  watchlistHeader(EventEntryAdded, size),
		Title:   title,
		AddedBy: addedBy,
	}
}

// PersistFailed is emitted when the installed watchlist could not be written
// to disk. The in-memory list is not rolled back.
type PersistFailed struct {
	Header
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Error   string `json:"error"`
}

// NewPersistFailed builds a PersistFailed event.
func NewPersistFailed(path string, entries int, err error) *PersistFailed {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &PersistFailed{
		Header:  watchlistHeader(EventPersistFailed, entries),
		Path:    path,
		Entries: entries,
		Error:   msg,
	}
}
