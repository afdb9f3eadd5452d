package safety

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Verdict is the outcome of the pre-run safety gate.
type Verdict struct {
	Safe bool
	// Reason explains the hazard when Safe is false.
	Reason string
	// Overridable reports whether --force may proceed anyway. System
	// directories and configured protected paths are never overridable.
	Overridable bool
}

var protectedUnix = []string{
	"/", "/bin", "/boot", "/dev", "/etc", "/home", "/lib", "/lib64",
	"/opt", "/proc", "/root", "/sbin", "/srv", "/sys", "/usr", "/var",
}

var protectedWindows = []string{
	`C:\`, `C:\Windows`, `C:\Windows\System32`, `C:\Program Files`,
	`C:\Program Files (x86)`, `C:\ProgramData`, `C:\Users`,
}

// Check evaluates whether path may be deleted. extraProtected entries come
// from configuration and are treated like system directories.
//
// Both the raw spelling and the symlink-resolved form are matched against
// every protected entry: on usr-merged Linux /bin resolves to /usr/bin, and
// only the raw form still matches the protected list.
func Check(path string, extraProtected []string) Verdict {
	raw := cleanedAbs(path)
	resolved := canonical(path)

	if isSystemDirectory(raw) || isSystemDirectory(resolved) {
		return Verdict{
			Reason:      fmt.Sprintf("%s is a system directory; deleting it could break the machine", path),
			Overridable: false,
		}
	}

	for _, protected := range extraProtected {
		if matchesProtected(raw, resolved, protected) {
			return Verdict{
				Reason:      fmt.Sprintf("%s is protected by configuration", path),
				Overridable: false,
			}
		}
	}

	if home, err := os.UserHomeDir(); err == nil && matchesProtected(raw, resolved, home) {
		return Verdict{
			Reason:      fmt.Sprintf("%s is your home directory", path),
			Overridable: true,
		}
	}

	if coversWorkingDirectory(resolved) {
		return Verdict{
			Reason:      fmt.Sprintf("%s contains the current working directory", path),
			Overridable: true,
		}
	}

	return Verdict{Safe: true}
}

func isSystemDirectory(resolved string) bool {
	protected := protectedUnix
	if runtime.GOOS == "windows" {
		protected = protectedWindows
		// Any drive root counts, not just C.
		if len(resolved) == 3 && resolved[1] == ':' && resolved[2] == '\\' {
			return true
		}
	}
	for _, p := range protected {
		if pathsEqual(resolved, p) {
			return true
		}
	}
	return false
}

func coversWorkingDirectory(resolved string) bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	cwd = canonical(cwd)
	if pathsEqual(resolved, cwd) {
		return true
	}
	rel, err := filepath.Rel(resolved, cwd)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// matchesProtected reports whether either form of the target equals either
// form of the protected entry.
func matchesProtected(raw, resolved, protected string) bool {
	pRaw := cleanedAbs(protected)
	pResolved := canonical(protected)
	return pathsEqual(raw, pRaw) || pathsEqual(raw, pResolved) ||
		pathsEqual(resolved, pRaw) || pathsEqual(resolved, pResolved)
}

// cleanedAbs normalizes the path as spelled, without following symlinks.
func cleanedAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}

// canonical resolves symlinks where possible and falls back to a cleaned
// absolute path, so comparisons against protected entries are stable.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return cleanedAbs(path)
}

func pathsEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
