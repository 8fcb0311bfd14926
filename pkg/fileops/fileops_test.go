package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	if err := os.WriteFile(src, []byte("test content"), 0600); err != nil {
		t.Fatalf("unable to write source file: %s", err)
	}

	dst := filepath.Join(dir, "nested", "deeper", "destination.txt")
	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %s", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("unable to read copied file: %s", err)
	}
	if string(data) != "test content" {
		t.Errorf("copied content mismatch: got %q", string(data))
	}
}

func TestExistsAndStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if Exists(path) {
		t.Error("expected nonexistent file to report false")
	}

	if err := os.WriteFile(path, []byte("abc"), 0600); err != nil {
		t.Fatalf("unable to write file: %s", err)
	}
	if !Exists(path) {
		t.Error("expected existing file to report true")
	}

	stat, err := StatPath(path)
	if err != nil {
		t.Fatalf("StatPath failed: %s", err)
	}
	if stat == nil || stat.Size != 3 {
		t.Errorf("unexpected stat result: %+v", stat)
	}
}

func TestStatPathMissingReturnsNil(t *testing.T) {
	dir := t.TempDir()
	stat, err := StatPath(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("expected no error for missing path, got %s", err)
	}
	if stat != nil {
		t.Errorf("expected nil stat for missing path, got %+v", stat)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("abc"), 0600); err != nil {
		t.Fatalf("unable to write file: %s", err)
	}
	if err := Delete(path); err != nil {
		t.Fatalf("Delete failed: %s", err)
	}
	if Exists(path) {
		t.Error("expected file to be gone after Delete")
	}
}

func TestDestinationPathUsesBasename(t *testing.T) {
	got := DestinationPath("/t/d1", "/t/src/a.txt")
	want := filepath.Join("/t/d1", "a.txt")
	if got != want {
		t.Errorf("DestinationPath() = %q, want %q", got, want)
	}
}
