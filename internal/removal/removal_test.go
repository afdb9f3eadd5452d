package removal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveEntryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RemoveEntry(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("file still exists")
	}
}

func TestRemoveEntryMissingIsSuccess(t *testing.T) {
	if err := RemoveEntry(filepath.Join(t.TempDir(), "gone")); err != nil {
		t.Fatalf("missing entry should be success, got %v", err)
	}
}

func TestRemoveEntrySymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := RemoveEntry(link); err != nil {
		t.Fatal(err)
	}
	// The link target must survive.
	if _, err := os.Lstat(target); err != nil {
		t.Fatalf("symlink target removed: %v", err)
	}
}

func TestRemoveEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := RemoveEmptyDir(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Lstat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("directory still exists")
	}
}

func TestRemoveEmptyDirMissingSurfaces(t *testing.T) {
	err := RemoveEmptyDir(filepath.Join(t.TempDir(), "gone"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveEmptyDirNotEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "full")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RemoveEmptyDir(dir)
	if !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("err = %v, want ErrNotEmpty", err)
	}
}
