package tree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"sweeper/internal/logging"
)

// DirectoryTree is an immutable snapshot of the hierarchy beneath a root.
//
// Invariants the broker relies on: every directory reachable through Children
// appears in Dirs, every directory that is not a Children key appears in
// Leaves, and no directory has two parents.
type DirectoryTree struct {
	// Dirs lists every directory discovered under the root, root included,
	// in sorted order.
	Dirs []string
	// Children maps a directory to its immediate subdirectories. Only
	// directories with at least one subdirectory have an entry.
	Children map[string][]string
	// Leaves lists the directories with no subdirectories, in sorted order.
	// These are the initially deletable set.
	Leaves []string
	// FileCount is the number of non-directory entries seen during the scan.
	// Informational only; deletion re-enumerates each directory.
	FileCount int64
}

// Discover walks root and builds the directory snapshot. The root itself must
// exist and be a directory; anything below it that cannot be read is logged
// and skipped.
func Discover(root string, logger *slog.Logger) (*DirectoryTree, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	info, err := os.Lstat(root)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("target is not a directory: %s", root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	t := &DirectoryTree{Children: make(map[string][]string)}
	scan(abs, t, logger)

	sort.Strings(t.Dirs)
	for _, dir := range t.Dirs {
		if _, hasChildren := t.Children[dir]; !hasChildren {
			t.Leaves = append(t.Leaves, dir)
		}
	}
	return t, nil
}

func scan(dir string, t *DirectoryTree, logger *slog.Logger) {
	t.Dirs = append(t.Dirs, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("skipping unreadable directory",
			logging.String("dir", dir),
			logging.Error(err),
		)
		return
	}

	var children []string
	for _, entry := range entries {
		if !entry.IsDir() {
			t.FileCount++
			continue
		}
		child := filepath.Join(dir, entry.Name())
		children = append(children, child)
		scan(child, t, logger)
	}
	if len(children) > 0 {
		t.Children[dir] = children
	}
}
