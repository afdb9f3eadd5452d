package removal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sentinel classifications for deletion failures.
var (
	// ErrNotFound means the path no longer exists.
	ErrNotFound = errors.New("path not found")
	// ErrPermission means the OS refused the deletion (permissions or the
	// file is held open in a way that blocks unlinking).
	ErrPermission = errors.New("permission denied")
	// ErrNotEmpty means a directory removal hit remaining entries.
	ErrNotEmpty = errors.New("directory not empty")
)

// RemoveEntry deletes a single file or symbolic link. A path that is already
// gone is treated as success.
func RemoveEntry(path string) error {
	err := removeEntry(path)
	if err == nil {
		return nil
	}
	classified := classify("remove entry", path, err)
	if errors.Is(classified, ErrNotFound) {
		return nil
	}
	return classified
}

// RemoveEmptyDir deletes a directory that is expected to contain no entries.
// Unlike RemoveEntry, a missing directory is surfaced: the caller's dependency
// bookkeeping assumes it existed.
func RemoveEmptyDir(path string) error {
	err := removeEmptyDir(path)
	if err == nil {
		return nil
	}
	return classify("remove directory", path, err)
}

func classify(op, path string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		sentinel = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		sentinel = ErrPermission
	case isNotEmpty(err):
		sentinel = ErrNotEmpty
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return fmt.Errorf("%s %s: %w (%v)", op, path, sentinel, underlying(err))
}

func underlying(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
