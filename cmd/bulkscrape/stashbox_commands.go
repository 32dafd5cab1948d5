package main

import (
	"github.com/spf13/cobra"

	"bulkscrape/internal/orchestrator"
)

func newStashBoxCommand(ctx *commandContext) *cobra.Command {
	stashBoxCmd := &cobra.Command{
		Use:   "stashbox",
		Short: "Detect and apply stash-box scene updates",
	}

	stashBoxCmd.AddCommand(newModeCommand(ctx, "find-updates",
		"Tag scenes whose stash-box entry changed since the last sync",
		orchestrator.ModeFindUpdates,
		(*orchestrator.Controller).FindUpdates))
	stashBoxCmd.AddCommand(newModeCommand(ctx, "identify",
		"Start the identify task for scenes tagged with updates",
		orchestrator.ModeIdentify,
		(*orchestrator.Controller).IdentifyTagged))

	return stashBoxCmd
}
