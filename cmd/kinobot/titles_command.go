package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinobot/internal/titles"
)

const defaultSuggestions = 10

func loadIndex(ctx *cliContext) (*titles.Index, error) {
	path, err := ctx.titlesFile()
	if err != nil {
		return nil, err
	}
	records, err := titles.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return titles.Build(records), nil
}

func newLookupCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <title...>",
		Short: "Find a title by exact (case-insensitive) name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := loadIndex(ctx)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			rec, ok := index.Find(query)
			if !ok {
				return fmt.Errorf("%w: %s", titles.ErrNotFound, query)
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return writeJSON(out, rec)
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Field", "Value"},
				[][]string{
					{"ID", rec.ID},
					{"Type", rec.TitleType},
					{"Primary title", rec.PrimaryTitle},
					{"Original title", rec.OriginalTitle},
					{"Year", yearString(rec.StartYear)},
					{"Runtime", runtimeString(rec.RuntimeMinutes)},
					{"Genres", orDash(rec.Genres)},
				},
				nil,
			))
			return nil
		},
	}
}

func newSearchCommand(ctx *cliContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <title...>",
		Short: "List titles that resemble a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := loadIndex(ctx)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			matches := index.Suggest(query, limit)

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return writeJSON(out, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintf(out, "No titles resemble %q.\n", query)
				return nil
			}

			rows := make([][]string, len(matches))
			for i, m := range matches {
				rows[i] = []string{
					fmt.Sprintf("%.2f", m.Score),
					m.Record.PrimaryTitle,
					yearString(m.Record.StartYear),
					m.Record.ID,
				}
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Score", "Title", "Year", "ID"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", defaultSuggestions, "Maximum number of suggestions")
	return cmd
}

func runtimeString(minutes string) string {
	if _, err := strconv.Atoi(minutes); err != nil {
		return "-"
	}
	return minutes + " min"
}
