package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinobot/internal/events"
	_ "modernc.org/sqlite"
)

func newHistoryCommand(ctx *cliContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent watchlist events",
		Long:  "Reads the event log written by kinobotd when [events] path is configured.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := ctx.eventsFile()
			if err != nil {
				return err
			}
			if path == "" {
				return errors.New("no event log configured; pass --db or --config")
			}
			// Opening a missing file would create an empty database.
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("event log: %w", err)
			}

			db, err := sql.Open("sqlite", path)
			if err != nil {
				return fmt.Errorf("open event log: %w", err)
			}
			defer func() { _ = db.Close() }()

			raw, err := events.NewEventLog(db).Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return writeJSON(out, raw)
			}
			if len(raw) == 0 {
				fmt.Fprintln(out, "No events recorded.")
				return nil
			}

			rows := make([][]string, len(raw))
			for i, r := range raw {
				rows[i] = []string{
					strconv.FormatInt(r.ID, 10),
					r.OccurredAt.Local().Format("2006-01-02 15:04:05"),
					r.EventType,
					describeEvent(r),
				}
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Time", "Event", "Detail"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}

func describeEvent(raw events.RawEvent) string {
	e, err := events.Decode(raw)
	if err != nil {
		return raw.Payload
	}
	switch ev := e.(type) {
	case *events.EntryAdded:
		if ev.AddedBy == "" {
			return fmt.Sprintf("%q (%d entries)", ev.Title, ev.EntityID())
		}
		return fmt.Sprintf("%q by %s (%d entries)", ev.Title, ev.AddedBy, ev.EntityID())
	case *events.PersistFailed:
		return fmt.Sprintf("%s: %s (%d entries in memory)", ev.Path, ev.Error, ev.Entries)
	default:
		return raw.Payload
	}
}
