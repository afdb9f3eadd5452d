package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sweeper/internal/broker"
	"sweeper/internal/logging"
	"sweeper/internal/tree"
	"sweeper/internal/worker"
)

// Run outcomes recorded in the summary and the journal.
const (
	OutcomeCompleted = "completed"
	OutcomePartial   = "partial"
	OutcomeDryRun    = "dry-run"
)

// Options tune a single run.
type Options struct {
	// Workers is the pool size; zero means the logical CPU count.
	Workers int
	// DryRun stops after discovery and reports what would be deleted.
	DryRun bool
	// ProgressInterval is how often OnProgress fires. Zero disables sampling.
	ProgressInterval time.Duration
	// OnProgress receives periodic snapshots plus one final snapshot.
	OnProgress func(Progress)
	// Remover overrides the deletion primitives; nil uses the OS remover.
	Remover worker.Remover
}

// Progress is a point-in-time view of a running deletion.
type Progress struct {
	Completed uint64
	Total     uint64
	Pending   int
}

// Summary describes a finished (or abandoned) run.
type Summary struct {
	RunID          string
	Root           string
	Outcome        string
	DirsTotal      int64
	DirsCompleted  int64
	DirsStalled    int64
	LeafCount      int64
	FilesTotal     int64
	FilesDeleted   int64
	FileFailures   int64
	Workers        int
	ScanDuration   time.Duration
	DeleteDuration time.Duration
	TotalDuration  time.Duration
	StartedAt      time.Time
}

// Run executes one deletion run against root.
//
// The context does not cancel in-flight deletions; it bounds how long Run
// waits for the pipeline. When the context ends first (interrupt, external
// timeout around a stalled branch), Run returns a partial summary and the
// process is expected to exit.
func Run(ctx context.Context, root string, opts Options, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		Root:      root,
		StartedAt: time.Now(),
	}
	logger = logger.With(logging.String(logging.FieldRunID, summary.RunID))

	start := time.Now()
	snapshot, err := tree.Discover(root, logging.NewComponentLogger(logger, "tree"))
	if err != nil {
		return nil, err
	}
	summary.ScanDuration = time.Since(start)
	summary.DirsTotal = int64(len(snapshot.Dirs))
	summary.LeafCount = int64(len(snapshot.Leaves))
	summary.FilesTotal = snapshot.FileCount

	logger.Info("scan complete",
		logging.Int64("dirs", summary.DirsTotal),
		logging.Int64("leaves", summary.LeafCount),
		logging.Int64("files", summary.FilesTotal),
		logging.Duration("elapsed", summary.ScanDuration),
	)

	if opts.DryRun {
		summary.Outcome = OutcomeDryRun
		summary.TotalDuration = time.Since(start)
		return summary, nil
	}

	b, work := broker.New(snapshot)
	pool := worker.NewPool(opts.Workers, b, work, opts.Remover, logging.NewComponentLogger(logger, "worker"))
	summary.Workers = pool.Workers()

	deleteStart := time.Now()
	pool.Start()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	sampled := sampleProgress(ctx, b, opts, done)

	interrupted := false
	select {
	case <-done:
	case <-ctx.Done():
		interrupted = true
	}
	<-sampled

	summary.DeleteDuration = time.Since(deleteStart)
	summary.TotalDuration = time.Since(start)
	summary.DirsCompleted = int64(b.CompletedCount())
	summary.DirsStalled = int64(pool.StalledDirs())
	summary.FilesDeleted = int64(pool.FilesDeleted())
	summary.FileFailures = int64(pool.FileFailures())

	if !interrupted && summary.DirsCompleted == summary.DirsTotal {
		summary.Outcome = OutcomeCompleted
	} else {
		summary.Outcome = OutcomePartial
	}

	logger.Info("run finished",
		logging.String("outcome", summary.Outcome),
		logging.Int64("dirs_completed", summary.DirsCompleted),
		logging.Int64("dirs_stalled", summary.DirsStalled),
		logging.Int64("files_deleted", summary.FilesDeleted),
		logging.Duration("elapsed", summary.TotalDuration),
	)

	if interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// sampleProgress polls the broker's monitoring accessors until the pool
// drains or the context ends. Observation only; scheduling never depends on
// these reads. The returned channel closes once the final snapshot has been
// delivered, so no callback can fire after Run returns.
func sampleProgress(ctx context.Context, b *broker.Broker, opts Options, done <-chan struct{}) <-chan struct{} {
	sampled := make(chan struct{})
	if opts.OnProgress == nil || opts.ProgressInterval <= 0 {
		close(sampled)
		return sampled
	}

	snapshot := func() Progress {
		return Progress{
			Completed: b.CompletedCount(),
			Total:     b.TotalCount(),
			Pending:   b.PendingCount(),
		}
	}

	ticker := time.NewTicker(opts.ProgressInterval)
	go func() {
		defer close(sampled)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				opts.OnProgress(snapshot())
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				opts.OnProgress(snapshot())
			}
		}
	}()
	return sampled
}
