package broker

import (
	"sync"
	"sync/atomic"

	"sweeper/internal/tree"
)

// Broker tracks which directories are still waiting on children and feeds
// ready directories to the worker pool. All state is owned by the broker;
// multiple brokers can run concurrently in one process.
type Broker struct {
	mu              sync.Mutex
	outstanding     map[string]struct{}
	pendingChildren map[string]int
	parentOf        map[string]string

	work      chan string
	total     uint64
	completed atomic.Uint64
}

// New builds the dependency graph from the snapshot and seeds the work
// channel with every initial leaf. The returned channel is the only way
// workers receive directories; it is closed by the final MarkComplete call.
//
// The channel capacity equals the total directory count, so a send never
// blocks: every directory flows through the channel exactly once.
func New(t *tree.DirectoryTree) (*Broker, <-chan string) {
	b := &Broker{
		outstanding:     make(map[string]struct{}, len(t.Dirs)),
		pendingChildren: make(map[string]int, len(t.Children)),
		parentOf:        make(map[string]string, len(t.Dirs)),
		work:            make(chan string, len(t.Dirs)),
		total:           uint64(len(t.Dirs)),
	}

	for _, dir := range t.Dirs {
		b.outstanding[dir] = struct{}{}
	}
	for parent, children := range t.Children {
		b.pendingChildren[parent] = len(children)
		for _, child := range children {
			b.parentOf[child] = parent
		}
	}

	for _, leaf := range t.Leaves {
		b.work <- leaf
	}

	return b, b.work
}

// MarkComplete records that a directory has been fully deleted. When the last
// directory completes the work channel is closed; otherwise the parent's
// remaining-child count is decremented, and a parent reaching zero is
// enqueued exactly once.
//
// A directory the broker never handed out, or one reported twice, is a
// silent no-op: the counter and the dependency graph only ever advance for
// directories still outstanding.
func (b *Broker) MarkComplete(dir string) {
	b.mu.Lock()
	if _, outstanding := b.outstanding[dir]; !outstanding {
		b.mu.Unlock()
		return
	}
	delete(b.outstanding, dir)

	parent, hasParent := b.parentOf[dir]
	ready := false
	if hasParent {
		remaining := b.pendingChildren[parent] - 1
		if remaining > 0 {
			b.pendingChildren[parent] = remaining
		} else {
			delete(b.pendingChildren, parent)
			ready = true
		}
	}
	b.mu.Unlock()

	// The atomic increment's return value gates channel close: exactly one
	// caller observes equality with the total, and that caller completed a
	// parentless directory, so no send can race the close.
	if b.completed.Add(1) == b.total {
		close(b.work)
		return
	}

	// Send outside the lock. The zero transition above happens at most once
	// per parent, so this enqueue cannot be duplicated.
	if ready {
		b.work <- parent
	}
}

// PendingCount reports how many directories still have undeleted children.
// Monitoring only; the value is stale the moment it is read.
func (b *Broker) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pendingChildren)
}

// CompletedCount reports how many directories have finished. Monitoring only.
func (b *Broker) CompletedCount() uint64 {
	return b.completed.Load()
}

// TotalCount reports the number of directories in the run.
func (b *Broker) TotalCount() uint64 {
	return b.total
}
