package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sweeper/internal/preflight"
)

func newCheckCommand(cCtx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Run the preflight checks for a target without deleting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cCtx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.Run(cfg, args[0], preflight.Options{Force: force})
			fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(results))
			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Evaluate checks as `delete --force` would")

	return cmd
}

func renderPreflight(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "FAIL"
		if result.Passed {
			status = "OK"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return listTable([]string{"Check", "Status", "Detail"}, rows)
}
