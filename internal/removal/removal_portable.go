//go:build !unix && !windows

package removal

import (
	"os"
	"strings"
)

func removeEntry(path string) error {
	return os.Remove(path)
}

func removeEmptyDir(path string) error {
	return os.Remove(path)
}

func isNotEmpty(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not empty")
}
