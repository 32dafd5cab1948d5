package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bulkscrape/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scrape runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					if runs == nil {
						runs = []journal.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.Mode,
						string(run.Status),
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						formatElapsed(run),
						strconv.Itoa(run.Total),
						strconv.Itoa(run.Updated),
						strconv.Itoa(run.Skipped),
						strconv.Itoa(run.Failed),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Run", "Mode", "Status", "Started", "Elapsed", "Total", "Updated", "Skipped", "Failed"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&asJSON, "json", false, "Output runs as JSON")

	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(store *journal.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s), kept the newest %d\n", removed, keep)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 50, "Number of newest runs to keep")
	return cmd
}

func (c *commandContext) withJournal(fn func(*journal.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func formatElapsed(run journal.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.Elapsed().Round(time.Second).String()
}
