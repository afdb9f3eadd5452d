//go:build unix

package removal

import (
	"errors"

	"golang.org/x/sys/unix"
)

// unlinkat skips the lstat-then-retry dance os.Remove performs: the caller
// already knows whether the path is a directory, so one syscall suffices.

func removeEntry(path string) error {
	return ignoringEINTR(func() error {
		return unix.Unlinkat(unix.AT_FDCWD, path, 0)
	})
}

func removeEmptyDir(path string) error {
	return ignoringEINTR(func() error {
		return unix.Unlinkat(unix.AT_FDCWD, path, unix.AT_REMOVEDIR)
	})
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

func isNotEmpty(err error) bool {
	// Some kernels report EEXIST instead of ENOTEMPTY for rmdir.
	return errors.Is(err, unix.ENOTEMPTY) || errors.Is(err, unix.EEXIST)
}
