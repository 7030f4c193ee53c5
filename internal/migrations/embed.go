// Package migrations provides the embedded schema for the event log.
package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_events.sql
var EventsSQL string

// Apply creates the event log schema. It is safe to run on every start.
func Apply(db *sql.DB) error {
	if _, err := db.Exec(EventsSQL); err != nil {
		return fmt.Errorf("migrate events: %w", err)
	}
	return nil
}
