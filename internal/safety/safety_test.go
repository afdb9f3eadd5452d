package safety

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// chdir replicates t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSystemDirectoriesRefused(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix protected set")
	}
	// /bin, /sbin, /lib, and /lib64 are symlinks into /usr on usr-merged
	// distributions; the raw spelling must be refused regardless of what it
	// resolves to.
	for _, path := range []string{"/", "/bin", "/sbin", "/lib", "/lib64", "/usr", "/etc"} {
		verdict := Check(path, nil)
		if verdict.Safe {
			t.Fatalf("%s should be refused", path)
		}
		if verdict.Overridable {
			t.Fatalf("%s must not be overridable", path)
		}
	}
}

func TestTempTargetIsSafe(t *testing.T) {
	target := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	verdict := Check(target, nil)
	if !verdict.Safe {
		t.Fatalf("temp target refused: %s", verdict.Reason)
	}
}

func TestHomeDirectoryIsOverridable(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	verdict := Check(home, nil)
	if verdict.Safe {
		t.Fatal("home directory should be flagged")
	}
	if !verdict.Overridable {
		// Unless home happens to be a protected system path.
		if !isSystemDirectory(canonical(home)) {
			t.Fatal("home directory should be overridable")
		}
	}
}

func TestTargetContainingCWD(t *testing.T) {
	parent := t.TempDir()
	inside := filepath.Join(parent, "inside")
	if err := os.Mkdir(inside, 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, inside)

	verdict := Check(parent, nil)
	if verdict.Safe {
		t.Fatal("target containing the CWD should be flagged")
	}
	if !verdict.Overridable {
		t.Fatal("CWD finding should be overridable")
	}
}

func TestSiblingOfCWDIsSafe(t *testing.T) {
	base := t.TempDir()
	work := filepath.Join(base, "work")
	sibling := filepath.Join(base, "sibling")
	for _, dir := range []string{work, sibling} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	chdir(t, work)

	if verdict := Check(sibling, nil); !verdict.Safe {
		t.Fatalf("sibling of CWD refused: %s", verdict.Reason)
	}
}

func TestAdditionalProtectedPaths(t *testing.T) {
	target := t.TempDir()
	verdict := Check(target, []string{target})
	if verdict.Safe {
		t.Fatal("configured protected path should be refused")
	}
	if verdict.Overridable {
		t.Fatal("configured protected paths must not be overridable")
	}
}
