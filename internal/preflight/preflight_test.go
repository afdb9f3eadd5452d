package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"sweeper/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Paths.LogDir = ""
	return &cfg
}

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

func TestAllChecksPass(t *testing.T) {
	cfg := testConfig(t)
	target := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	results := Run(cfg, target, Options{})
	if !Passed(results) {
		t.Fatalf("preflight failed: %+v", results)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
}

func TestMissingTargetShortCircuits(t *testing.T) {
	cfg := testConfig(t)
	results := Run(cfg, filepath.Join(t.TempDir(), "gone"), Options{})
	if Passed(results) {
		t.Fatal("missing target should fail")
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want only the existence check", len(results))
	}
}

func TestNonDirectoryTarget(t *testing.T) {
	cfg := testConfig(t)
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := Run(cfg, file, Options{})
	if Passed(results) {
		t.Fatal("non-directory target should fail")
	}
}

func TestSystemDirectoryFailsEvenWithForce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix protected set")
	}
	cfg := testConfig(t)
	results := Run(cfg, "/usr", Options{Force: true, SkipLock: true})
	if Passed(results) {
		t.Fatal("system directory must fail preflight regardless of force")
	}
}

func TestForceOverridesCWDFinding(t *testing.T) {
	cfg := testConfig(t)
	parent := t.TempDir()
	inside := filepath.Join(parent, "inside")
	if err := os.Mkdir(inside, 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, inside)

	without := Run(cfg, parent, Options{SkipLock: true})
	if Passed(without) {
		t.Fatal("target containing CWD should fail without force")
	}
	with := Run(cfg, parent, Options{Force: true, SkipLock: true})
	if !Passed(with) {
		t.Fatalf("force should override the CWD finding: %+v", with)
	}
}

func TestSkipLockOmitsProbe(t *testing.T) {
	cfg := testConfig(t)
	target := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	results := Run(cfg, target, Options{SkipLock: true})
	for _, result := range results {
		if result.Name == "Run lock" {
			t.Fatal("run lock check should be skipped")
		}
	}
}
