package runlock

import (
	"os"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	lockDir := t.TempDir()
	target := t.TempDir()

	lock, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatal(err)
	}
	if lock.Path() == "" {
		t.Fatal("lock path missing")
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	lockDir := t.TempDir()
	target := t.TempDir()

	lock, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}

	again, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	_ = again.Release()
}

func TestDistinctTargetsDistinctLocks(t *testing.T) {
	lockDir := t.TempDir()

	first, err := Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer first.Release()

	second, err := Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatalf("second target should not contend: %v", err)
	}
	defer second.Release()

	if first.Path() == second.Path() {
		t.Fatal("different targets share a lock file")
	}
}

func TestProbeAvailable(t *testing.T) {
	lockDir := t.TempDir()
	target := t.TempDir()

	available, err := Probe(lockDir, target)
	if err != nil {
		t.Fatal(err)
	}
	if !available {
		t.Fatal("fresh target should be available")
	}

	// Probe must not leave the lock held.
	lock, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("probe leaked the lock: %v", err)
	}
	_ = lock.Release()
}

func TestNilLockRelease(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}
}
