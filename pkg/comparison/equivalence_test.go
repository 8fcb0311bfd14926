package comparison

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/panefs/syncengine/pkg/hashing"
)

func writeFileAt(t *testing.T, dir, name, content string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("unable to write file: %s", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("unable to set modification time: %s", err)
	}
	return path
}

// TestAreEquivalentSizeModTime verifies that identical content and mtime
// under size-mtime yields equivalence.
func TestAreEquivalentSizeModTime(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now().Truncate(time.Second)
	source := writeFileAt(t, dir, "a.txt", "test content", stamp)
	dest := writeFileAt(t, dir, "b.txt", "test content", stamp)

	if !AreEquivalent(source, dest, MethodSizeModTime, hashing.AlgorithmDefault, false) {
		t.Error("expected equivalent files to compare equal under size-mtime")
	}
}

// TestAreEquivalentModTimeTolerance verifies the inclusive ±1000ms window.
func TestAreEquivalentModTimeTolerance(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Truncate(time.Second)
	source := writeFileAt(t, dir, "a.txt", "x", base)

	within := writeFileAt(t, dir, "within.txt", "y", base.Add(ModTimeTolerance))
	if !AreEquivalent(source, within, MethodModTime, hashing.AlgorithmDefault, false) {
		t.Error("expected mtimes exactly at tolerance boundary to be equal")
	}

	beyond := writeFileAt(t, dir, "beyond.txt", "y", base.Add(ModTimeTolerance+time.Millisecond))
	if AreEquivalent(source, beyond, MethodModTime, hashing.AlgorithmDefault, false) {
		t.Error("expected mtimes beyond tolerance to differ")
	}
}

// TestAreEquivalentNoneNeverEquivalent verifies MethodNone always copies.
func TestAreEquivalentNoneNeverEquivalent(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now()
	source := writeFileAt(t, dir, "a.txt", "same", stamp)
	dest := writeFileAt(t, dir, "b.txt", "same", stamp)

	if AreEquivalent(source, dest, MethodNone, hashing.AlgorithmDefault, false) {
		t.Error("MethodNone must never report equivalence")
	}
}

// TestAreEquivalentHashWithoutAlgorithmDegrades verifies the degrade-to-
// size-mtime behavior (never silently to true) when hash is requested
// without an algorithm.
func TestAreEquivalentHashWithoutAlgorithmDegrades(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now().Truncate(time.Second)
	source := writeFileAt(t, dir, "a.txt", "content", stamp)
	mismatched := writeFileAt(t, dir, "b.txt", "different-length-content", stamp)

	if AreEquivalent(source, mismatched, MethodHash, hashing.AlgorithmDefault, false) {
		t.Error("degraded comparison should still detect size mismatch, not silently report true")
	}
}

// TestAreEquivalentMissingFileIsFalse verifies I/O failure is treated as
// "not equivalent, proceed" rather than an error.
func TestAreEquivalentMissingFileIsFalse(t *testing.T) {
	dir := t.TempDir()
	source := writeFileAt(t, dir, "a.txt", "content", time.Now())
	missing := filepath.Join(dir, "does-not-exist.txt")

	if AreEquivalent(source, missing, MethodSizeModTime, hashing.AlgorithmDefault, false) {
		t.Error("comparison against a missing file must report false")
	}
}

// TestAreEquivalentIdempotent verifies that repeated comparisons on an
// unchanged filesystem produce the same result.
func TestAreEquivalentIdempotent(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Now().Truncate(time.Second)
	source := writeFileAt(t, dir, "a.txt", "content", stamp)
	dest := writeFileAt(t, dir, "b.txt", "content", stamp)

	first := AreEquivalent(source, dest, MethodHash, hashing.AlgorithmBlake3, true)
	second := AreEquivalent(source, dest, MethodHash, hashing.AlgorithmBlake3, true)
	if first != second {
		t.Error("AreEquivalent must be idempotent on an unchanged filesystem")
	}
}
