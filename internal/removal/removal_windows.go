//go:build windows

package removal

import (
	"errors"

	"golang.org/x/sys/windows"
)

// Direct DeleteFileW/RemoveDirectoryW calls, with one retry after clearing
// the read-only attribute. Read-only files are common in deep build trees
// (version-control objects) and would otherwise fail with ACCESS_DENIED.

func removeEntry(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	err = windows.DeleteFile(p)
	if err == nil {
		return nil
	}
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) && clearReadOnly(p) {
		return windows.DeleteFile(p)
	}
	return err
}

func removeEmptyDir(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	err = windows.RemoveDirectory(p)
	if err == nil {
		return nil
	}
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) && clearReadOnly(p) {
		return windows.RemoveDirectory(p)
	}
	return err
}

func clearReadOnly(p *uint16) bool {
	attrs, err := windows.GetFileAttributes(p)
	if err != nil || attrs&windows.FILE_ATTRIBUTE_READONLY == 0 {
		return false
	}
	return windows.SetFileAttributes(p, attrs&^windows.FILE_ATTRIBUTE_READONLY) == nil
}

func isNotEmpty(err error) bool {
	return errors.Is(err, windows.ERROR_DIR_NOT_EMPTY)
}
