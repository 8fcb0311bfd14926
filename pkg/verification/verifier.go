// Package verification recomputes destination digests after a copy and
// compares them against the source digest computed before the copy began.
package verification

import (
	"github.com/panefs/syncengine/pkg/hashing"
)

// VerifyDestination recomputes the digest of destPath under algorithm and
// compares it against sourceDigest. It returns false (verification fails
// closed) on any I/O error encountered while hashing the destination.
func VerifyDestination(sourceDigest hashing.Digest, destPath string, algorithm hashing.Algorithm) bool {
	destDigest, err := hashing.HashFile(destPath, algorithm)
	if err != nil {
		return false
	}
	return hashing.Verify(sourceDigest, destDigest)
}

// VerifyMany fans out VerifyDestination across destPaths in parallel. The
// result slice preserves the input order regardless of completion order.
func VerifyMany(sourceDigest hashing.Digest, destPaths []string, algorithm hashing.Algorithm) []bool {
	results := make([]bool, len(destPaths))

	done := make(chan struct{}, len(destPaths))
	for i, destPath := range destPaths {
		go func(index int, path string) {
			results[index] = VerifyDestination(sourceDigest, path, algorithm)
			done <- struct{}{}
		}(i, destPath)
	}
	for range destPaths {
		<-done
	}

	return results
}
