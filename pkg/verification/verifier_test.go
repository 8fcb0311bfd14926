package verification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panefs/syncengine/pkg/hashing"
)

// TestVerifyDestinationAfterCopy verifies that verification succeeds
// immediately after a successful copy.
func TestVerifyDestinationAfterCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("test content"), 0600); err != nil {
		t.Fatalf("unable to write source: %s", err)
	}
	dst := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(dst, []byte("test content"), 0600); err != nil {
		t.Fatalf("unable to write destination: %s", err)
	}

	sourceDigest, err := hashing.HashFile(src, hashing.AlgorithmBlake3)
	if err != nil {
		t.Fatalf("unable to hash source: %s", err)
	}

	if !VerifyDestination(sourceDigest, dst, hashing.AlgorithmBlake3) {
		t.Error("expected verification to succeed for identical content")
	}
}

func TestVerifyDestinationMismatch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	os.WriteFile(src, []byte("test content"), 0600)
	dst := filepath.Join(dir, "b.txt")
	os.WriteFile(dst, []byte("different content"), 0600)

	sourceDigest, _ := hashing.HashFile(src, hashing.AlgorithmBlake3)
	if VerifyDestination(sourceDigest, dst, hashing.AlgorithmBlake3) {
		t.Error("expected verification to fail for mismatched content")
	}
}

func TestVerifyDestinationMissingFileFailsClosed(t *testing.T) {
	dir := t.TempDir()
	sourceDigest := hashing.Digest("deadbeef")
	if VerifyDestination(sourceDigest, filepath.Join(dir, "missing.txt"), hashing.AlgorithmBlake3) {
		t.Error("expected verification against a missing file to fail closed")
	}
}

func TestVerifyManyPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	os.WriteFile(src, []byte("content"), 0600)
	sourceDigest, _ := hashing.HashFile(src, hashing.AlgorithmBlake3)

	good1 := filepath.Join(dir, "good1.txt")
	os.WriteFile(good1, []byte("content"), 0600)
	bad := filepath.Join(dir, "bad.txt")
	os.WriteFile(bad, []byte("nope"), 0600)
	good2 := filepath.Join(dir, "good2.txt")
	os.WriteFile(good2, []byte("content"), 0600)

	results := VerifyMany(sourceDigest, []string{good1, bad, good2}, hashing.AlgorithmBlake3)
	expected := []bool{true, false, true}
	for i := range expected {
		if results[i] != expected[i] {
			t.Errorf("result[%d] = %v, want %v", i, results[i], expected[i])
		}
	}
}
