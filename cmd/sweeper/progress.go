package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"sweeper/internal/logging"
	"sweeper/internal/sweep"
)

// progressPrinter renders broker snapshots. On a terminal it rewrites a
// single line in place; otherwise it emits sampled log lines so piped output
// and log files stay readable.
type progressPrinter struct {
	out     io.Writer
	tty     bool
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	wrote   bool
}

func newProgressPrinter(out *os.File, logger *slog.Logger) *progressPrinter {
	return &progressPrinter{
		out:     out,
		tty:     isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
		logger:  logging.NewComponentLogger(logger, "progress"),
		sampler: logging.NewProgressSampler(5),
	}
}

func (p *progressPrinter) Render(snapshot sweep.Progress) {
	if snapshot.Total == 0 {
		return
	}
	percent := float64(snapshot.Completed) / float64(snapshot.Total) * 100

	if p.tty {
		fmt.Fprintf(p.out, "\rDeleting... %3.0f%% (%d/%d dirs)", percent, snapshot.Completed, snapshot.Total)
		p.wrote = true
		return
	}

	if p.sampler.ShouldLog(percent) {
		p.logger.Info("deleting",
			logging.Uint64("completed", snapshot.Completed),
			logging.Uint64("total", snapshot.Total),
			logging.Int("pending", snapshot.Pending),
		)
	}
}

// Finish terminates the rewrite line so the summary starts on a fresh row.
func (p *progressPrinter) Finish() {
	if p.tty && p.wrote {
		fmt.Fprintln(p.out)
	}
}
