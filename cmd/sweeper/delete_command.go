package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sweeper/internal/config"
	"sweeper/internal/journal"
	"sweeper/internal/logging"
	"sweeper/internal/preflight"
	"sweeper/internal/runlock"
	"sweeper/internal/sweep"
)

type deleteOptions struct {
	workers int
	dryRun  bool
	quiet   bool
	force   bool
	noLock  bool
}

func newDeleteCommand(cCtx *commandContext) *cobra.Command {
	var opts deleteOptions

	cmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a directory tree",
		Long: "Delete scans the target tree once, then removes directories bottom-up with a " +
			"fixed worker pool. A directory is only removed after every subdirectory below " +
			"it is gone.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, cCtx, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Worker pool size (default: logical CPU count)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Scan and report without deleting anything")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Proceed past overridable safety findings")
	cmd.Flags().BoolVar(&opts.noLock, "no-lock", false, "Skip the per-target run lock")

	return cmd
}

func runSweep(cmd *cobra.Command, cCtx *commandContext, target string, opts deleteOptions) error {
	cfg, err := cCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cCtx.newLogger()
	if err != nil {
		return err
	}

	results := preflight.Run(cfg, target, preflight.Options{
		Force:    opts.force,
		SkipLock: opts.noLock || opts.dryRun,
	})
	if !preflight.Passed(results) {
		fmt.Fprintln(cmd.ErrOrStderr(), renderPreflight(results))
		return errors.New("preflight checks failed")
	}

	if !opts.noLock && !opts.dryRun {
		lock, err := runlock.Acquire(cfg.LockDir(), target)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Release() }()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweepOpts := sweep.Options{
		Workers: resolveWorkers(cfg, opts.workers),
		DryRun:  opts.dryRun,
	}

	var printer *progressPrinter
	if !opts.quiet && !opts.dryRun {
		printer = newProgressPrinter(os.Stdout, logger)
		sweepOpts.ProgressInterval = time.Duration(cfg.Run.ProgressIntervalMS) * time.Millisecond
		sweepOpts.OnProgress = printer.Render
	}

	summary, runErr := sweep.Run(ctx, target, sweepOpts, logger)
	if printer != nil {
		printer.Finish()
	}
	if summary == nil {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	recordRun(cfg, logger, summary)

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}

func resolveWorkers(cfg *config.Config, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Run.Workers
}

// recordRun writes the journal row. Journal failures never fail a run.
func recordRun(cfg *config.Config, logger *slog.Logger, summary *sweep.Summary) {
	if !cfg.Journal.Enabled {
		return
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		logger.Warn("journal unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	err = store.Record(context.Background(), journal.Run{
		ID:             summary.RunID,
		Root:           summary.Root,
		Outcome:        summary.Outcome,
		DirsTotal:      summary.DirsTotal,
		DirsCompleted:  summary.DirsCompleted,
		DirsStalled:    summary.DirsStalled,
		FilesTotal:     summary.FilesTotal,
		FilesDeleted:   summary.FilesDeleted,
		FileFailures:   summary.FileFailures,
		Workers:        summary.Workers,
		ScanDuration:   summary.ScanDuration,
		DeleteDuration: summary.DeleteDuration,
		StartedAt:      summary.StartedAt,
	})
	if err != nil {
		logger.Warn("journal write failed", logging.Error(err))
	}
}

func renderSummary(summary *sweep.Summary) string {
	rows := [][]string{
		{"Target", summary.Root},
		{"Outcome", summary.Outcome},
		{"Directories", fmt.Sprintf("%d of %d", summary.DirsCompleted, summary.DirsTotal)},
		{"Initial leaves", strconv.FormatInt(summary.LeafCount, 10)},
	}
	if summary.Outcome == sweep.OutcomeDryRun {
		rows = append(rows,
			[]string{"Files found", strconv.FormatInt(summary.FilesTotal, 10)},
			[]string{"Scan time", summary.ScanDuration.Round(time.Millisecond).String()},
		)
		return kvTable(rows)
	}

	rows = append(rows,
		[]string{"Files deleted", fmt.Sprintf("%d of %d", summary.FilesDeleted, summary.FilesTotal)},
	)
	if summary.FileFailures > 0 {
		rows = append(rows, []string{"File failures", strconv.FormatInt(summary.FileFailures, 10)})
	}
	if summary.DirsStalled > 0 {
		rows = append(rows, []string{"Stalled directories", strconv.FormatInt(summary.DirsStalled, 10)})
	}
	rows = append(rows,
		[]string{"Workers", strconv.Itoa(summary.Workers)},
		[]string{"Scan time", summary.ScanDuration.Round(time.Millisecond).String()},
		[]string{"Delete time", summary.DeleteDuration.Round(time.Millisecond).String()},
		[]string{"Total time", summary.TotalDuration.Round(time.Millisecond).String()},
	)
	return kvTable(rows)
}
