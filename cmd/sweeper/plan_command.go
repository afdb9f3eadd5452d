package main

import (
	"github.com/spf13/cobra"
)

func newPlanCommand(cCtx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "plan <path>",
		Short: "Scan a tree and report what a delete would do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, cCtx, args[0], deleteOptions{
				workers: workers,
				dryRun:  true,
				quiet:   true,
			})
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size recorded in the plan")

	return cmd
}
