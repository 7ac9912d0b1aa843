package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/up/internal/history"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/ui/static"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		prune      bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List recently created projects",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the projects created with "up new", most recent first.

The history is kept in history.json in the config directory.`,
		Example: `  up history          # Table of created projects
  up history --json   # Machine readable
  up history --prune  # Forget projects whose directory is gone`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := configFrom(ctx).HistoryPath()
			if err != nil {
				return err
			}
			if prune {
				removed, err := history.Prune(path)
				if err != nil {
					return err
				}
				l.Printf("Removed %d stale entries\n", removed)
			}

			h, err := history.Load(path)
			if err != nil {
				return err
			}
			if jsonOutput {
				entries := h.Entries
				if entries == nil {
					entries = []history.Entry{}
				}
				return out.JSON(entries)
			}
			if len(h.Entries) == 0 {
				l.Println("No projects created yet")
				return nil
			}
			out.Print(static.RenderHistory(h.Entries, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove entries whose directory no longer exists")

	return cmd
}
