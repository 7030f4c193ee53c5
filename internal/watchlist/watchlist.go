// Package watchlist owns the shared movie watchlist: the in-memory list,
// its JSON file on disk and the locking that keeps the two consistent.
package watchlist

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrValidation indicates an entry failed a precondition, such as an
	// empty title.
	ErrValidation = errors.New("invalid entry")

	// ErrCorruptState indicates the watchlist file exists but cannot be parsed.
	ErrCorruptState = errors.New("corrupt watchlist file")

	// ErrPersistenceWrite indicates the watchlist could not be written to disk.
	ErrPersistenceWrite = errors.New("watchlist write failed")

	// ErrLocked indicates another process holds the watchlist file.
	ErrLocked = errors.New("watchlist file locked by another process")
)

// Entry is one film request on the watchlist.
type Entry struct {
	Title    string `json:"title"`
	Year     string `json:"year"`
	Director string `json:"director"`
	AddedBy  string `json:"addedBy"`
}

// Watchlist is the ordered list of entries. Duplicates are allowed.
type Watchlist []Entry

// Titles returns the entry titles in list order.
func (w Watchlist) Titles() []string {
	titles := make([]string, len(w))
	for i, e := range w {
		titles[i] = e.Title
	}
	return titles
}

// Clone returns a copy that shares no backing array with w.
func (w Watchlist) Clone() Watchlist {
	if w == nil {
		return Watchlist{}
	}
	return slices.Clone(w)
}

// normalize trims the title and lower-cases it. An empty result is rejected.
func normalize(e Entry) (Entry, error) {
	e.Title = strings.ToLower(strings.TrimSpace(e.Title))
	if e.Title == "" {
		return Entry{}, fmt.Errorf("%w: title is empty", ErrValidation)
	}
	return e, nil
}
