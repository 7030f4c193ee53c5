package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinobot/internal/watchlist"
)

func newListCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the watchlist",
		Long:  "Reads the watchlist file directly. The bot does not need to be running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := ctx.watchlistFile()
			if err != nil {
				return err
			}
			list, err := watchlist.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return writeJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "The watchlist is empty.")
				return nil
			}

			rows := make([][]string, len(list))
			for i, e := range list {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					e.Title,
					orDash(e.Year),
					orDash(e.Director),
					orDash(e.AddedBy),
				}
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Title", "Year", "Director", "Added By"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
