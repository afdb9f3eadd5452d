package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sweeper/internal/journal"
)

func newHistoryCommand(cCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past deletion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Root,
					run.Outcome,
					fmt.Sprintf("%d/%d", run.DirsCompleted, run.DirsTotal),
					strconv.FormatInt(run.FilesDeleted, 10),
					strconv.FormatInt(run.DirsStalled, 10),
					(run.ScanDuration + run.DeleteDuration).Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), listTable(
				[]string{"Started", "Target", "Outcome", "Dirs", "Files", "Stalled", "Duration"},
				rows,
				4, 5, 6, 7,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}
