package hashing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, size int) string {
	t.Helper()
	data := bytes.Repeat([]byte{'a'}, size)
	path := filepath.Join(t.TempDir(), "content")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("unable to write temporary file: %s", err)
	}
	return path
}

// TestHashFileMatchesHashBuffer verifies the round-trip invariant that
// hashing a file produces the same digest as hashing its contents directly,
// for every supported algorithm, on both sides of the streaming threshold.
func TestHashFileMatchesHashBuffer(t *testing.T) {
	algorithms := []Algorithm{AlgorithmBlake3, AlgorithmSHA256, AlgorithmXXH3}
	sizes := []int{0, 1024, streamingThreshold - 1, streamingThreshold + 1}

	for _, algorithm := range algorithms {
		for _, size := range sizes {
			path := writeTempFile(t, size)

			fileDigest, err := HashFile(path, algorithm)
			if err != nil {
				t.Fatalf("HashFile failed for size %d: %s", size, err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("unable to re-read temporary file: %s", err)
			}
			bufferDigest := HashBuffer(data, algorithm)

			if !Verify(fileDigest, bufferDigest) {
				t.Errorf(
					"algorithm %v size %d: HashFile (%s) != HashBuffer (%s)",
					algorithm, size, fileDigest, bufferDigest,
				)
			}
		}
	}
}

// TestVerifyCaseInsensitive ensures digest comparison ignores case.
func TestVerifyCaseInsensitive(t *testing.T) {
	if !Verify("ABCDEF", "abcdef") {
		t.Error("Verify should be case-insensitive")
	}
	if Verify("abcdef", "abcdee") {
		t.Error("Verify should reject differing digests")
	}
}

// TestHashFileRejectsDirectory ensures hash_file fails on non-regular files.
func TestHashFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := HashFile(dir, AlgorithmBlake3); err == nil {
		t.Error("expected error hashing a directory")
	}
}
