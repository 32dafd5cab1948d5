package main

import (
	"context"

	"github.com/spf13/cobra"

	"bulkscrape/internal/orchestrator"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape tagged items and write the results back to the catalog",
	}

	scrapeCmd.AddCommand(newModeCommand(ctx, "url",
		"Scrape tagged items by their URL",
		orchestrator.ModeURL,
		(*orchestrator.Controller).RunURLScrape))
	scrapeCmd.AddCommand(newModeCommand(ctx, "fragment",
		"Scrape tagged items with each fragment scraper",
		orchestrator.ModeFragment,
		(*orchestrator.Controller).RunFragmentScrape))
	scrapeCmd.AddCommand(newModeCommand(ctx, "stashbox",
		"Match tagged scenes against the target stash-box by fingerprint",
		orchestrator.ModeStashBox,
		(*orchestrator.Controller).RunStashBoxScrape))

	return scrapeCmd
}

// newModeCommand builds a leaf command that runs one orchestrator mode.
func newModeCommand(ctx *commandContext, use, short, mode string, method func(*orchestrator.Controller, context.Context) (orchestrator.RunSummary, error)) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runMode(cmd, mode, asJSON, func(runCtx context.Context, controller *orchestrator.Controller) (orchestrator.RunSummary, error) {
				return method(controller, runCtx)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the run summary as JSON")
	return cmd
}
