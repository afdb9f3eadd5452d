package worker

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"sweeper/internal/broker"
	"sweeper/internal/logging"
	"sweeper/internal/removal"
)

// Remover abstracts the deletion primitives so tests can inject failures.
type Remover interface {
	// RemoveEntry deletes a single file or symlink.
	RemoveEntry(path string) error
	// RemoveEmptyDir deletes a directory expected to be empty.
	RemoveEmptyDir(path string) error
}

// OSRemover is the production Remover backed by internal/removal.
type OSRemover struct{}

func (OSRemover) RemoveEntry(path string) error    { return removal.RemoveEntry(path) }
func (OSRemover) RemoveEmptyDir(path string) error { return removal.RemoveEmptyDir(path) }

// Pool is a fixed set of deletion workers sharing one work channel.
type Pool struct {
	workers int
	broker  *broker.Broker
	work    <-chan string
	remover Remover
	logger  *slog.Logger
	wg      sync.WaitGroup

	filesDeleted atomic.Uint64
	fileFailures atomic.Uint64
	stalledDirs  atomic.Uint64
}

// NewPool constructs a pool of the given size. A size of zero or less falls
// back to runtime.NumCPU. A nil remover uses OSRemover.
func NewPool(workers int, b *broker.Broker, work <-chan string, remover Remover, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if remover == nil {
		remover = OSRemover{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pool{
		workers: workers,
		broker:  b,
		work:    work,
		remover: remover,
		logger:  logger,
	}
}

// Start launches the workers. Each runs until the work channel closes.
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.run(i)
	}
}

// Wait blocks until every worker has stopped.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Workers reports the pool size.
func (p *Pool) Workers() int { return p.workers }

// FilesDeleted reports how many file entries have been removed so far.
func (p *Pool) FilesDeleted() uint64 { return p.filesDeleted.Load() }

// FileFailures reports how many file entry deletions failed.
func (p *Pool) FileFailures() uint64 { return p.fileFailures.Load() }

// StalledDirs reports how many directories failed removal and were never
// reported complete.
func (p *Pool) StalledDirs() uint64 { return p.stalledDirs.Load() }

func (p *Pool) run(id int) {
	defer p.wg.Done()
	logger := p.logger.With(logging.Int("worker", id))

	for dir := range p.work {
		p.clearContents(dir, logger)

		if err := p.remover.RemoveEmptyDir(dir); err != nil {
			// No completion report: the parent never becomes eligible
			// through this branch.
			p.stalledDirs.Add(1)
			logger.Warn("directory removal failed; branch stalled",
				logging.String("dir", dir),
				logging.Error(err),
			)
			continue
		}

		p.broker.MarkComplete(dir)
	}
}

// clearContents deletes every non-directory entry of dir. Best effort: each
// failure is logged and counted, and the pass always visits every entry.
func (p *Pool) clearContents(dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("cannot enumerate directory contents",
			logging.String("dir", dir),
			logging.Error(err),
		)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			// Child directories were deleted before dir became eligible;
			// anything still present here will fail the rmdir below.
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := p.remover.RemoveEntry(path); err != nil {
			p.fileFailures.Add(1)
			logger.Warn("file deletion failed",
				logging.String("path", path),
				logging.Error(err),
			)
			continue
		}
		p.filesDeleted.Add(1)
	}
}
