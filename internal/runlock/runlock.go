package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gofrs/flock"
)

// ErrBusy means another sweeper process holds the lock for this target.
var ErrBusy = errors.New("target is locked by another sweeper process")

// Lock is a held per-target run lock.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the lock for target, creating the lock directory as needed.
// Returns ErrBusy without blocking when another process holds it.
func Acquire(lockDir, target string) (*Lock, error) {
	path, err := lockPath(lockDir, target)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return &Lock{path: path, fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Probe reports whether the lock for target is currently available. Used by
// preflight; the lock is released immediately after the check.
func Probe(lockDir, target string) (bool, error) {
	lock, err := Acquire(lockDir, target)
	if errors.Is(err, ErrBusy) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, lock.Release()
}

func lockPath(lockDir, target string) (string, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return "", fmt.Errorf("create lock directory: %w", err)
	}
	digest := sha256.Sum256([]byte(canonicalTarget(target)))
	return filepath.Join(lockDir, hex.EncodeToString(digest[:8])+".lock"), nil
}

func canonicalTarget(target string) string {
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	target = filepath.Clean(target)
	if runtime.GOOS == "windows" {
		target = strings.ToLower(target)
	}
	return target
}
