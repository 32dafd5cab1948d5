package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bulkscrape/internal/orchestrator"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the control tags that select items for scraping",
	}

	tagsCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create every missing control tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(cmd, func(runCtx context.Context, controller *orchestrator.Controller) error {
				created, err := controller.AddControlTags(runCtx)
				printNames(cmd, "Created", created)
				return err
			})
		},
	})

	tagsCmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Delete every existing control tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(cmd, func(runCtx context.Context, controller *orchestrator.Controller) error {
				removed, err := controller.RemoveControlTags(runCtx)
				printNames(cmd, "Removed", removed)
				return err
			})
		},
	})

	tagsCmd.AddCommand(newTagsListCommand(ctx))
	return tagsCmd
}

func newTagsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the control tag names for the current scrapers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withController(cmd, func(runCtx context.Context, controller *orchestrator.Controller) error {
				names, err := controller.ControlTagNames(runCtx)
				if err != nil {
					return err
				}
				if asJSON {
					if names == nil {
						names = []string{}
					}
					return writeJSON(cmd, names)
				}
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Control tag"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output tag names as JSON")
	return cmd
}

// withController runs fn against a controller without the run lock or journal.
func (c *commandContext) withController(cmd *cobra.Command, fn func(context.Context, *orchestrator.Controller) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), newController(cfg, logger))
}

func printNames(cmd *cobra.Command, verb string, names []string) {
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "%s no tags\n", verb)
		return
	}
	fmt.Fprintf(out, "%s %d tag(s): %s\n", verb, len(names), strings.Join(names, ", "))
}
