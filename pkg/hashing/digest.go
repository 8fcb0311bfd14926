package hashing

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// streamingThreshold is the file size, in bytes, at or above which HashFile
// reads via a streamed copy rather than loading the file wholly into memory. Below
// the threshold, whole-file reads avoid the overhead of chunked I/O for
// small files; above it, streaming caps the hasher's working set. Both paths
// are required to produce identical digests for the same content.
const streamingThreshold = 1 << 20 // 1 MiB

// streamCopyBufferSize is the buffer size used for the streamed read path,
// matching the default buffer size io.Copy allocates internally.
const streamCopyBufferSize = 32 * 1024

// Digest is the lowercase hex encoding of a hash function's output.
type Digest string

// HashFile computes the digest of the file at path using algorithm. It
// fails with an error if path does not refer to a regular file. Files
// smaller than streamingThreshold are read wholly into memory and hashed in
// one pass; files of streamingThreshold bytes or more are hashed via a
// buffered streamed read.
func HashFile(path string, algorithm Algorithm) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("unable to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", path)
	}

	hasher := algorithm.Factory()()

	if info.Size() < streamingThreshold {
		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("unable to read file: %w", err)
		}
		hasher.Write(data)
	} else {
		buffer := make([]byte, streamCopyBufferSize)
		if _, err := io.CopyBuffer(hasher, file, buffer); err != nil {
			return "", fmt.Errorf("unable to stream file contents: %w", err)
		}
	}

	return Digest(hex.EncodeToString(hasher.Sum(nil))), nil
}

// HashBuffer computes the digest of data using algorithm. It is pure and
// synchronous.
func HashBuffer(data []byte, algorithm Algorithm) Digest {
	hasher := algorithm.Factory()()
	hasher.Write(data)
	return Digest(hex.EncodeToString(hasher.Sum(nil)))
}

// Verify reports whether two hex-encoded digests are equal, ignoring case.
func Verify(a, b Digest) bool {
	return strings.EqualFold(string(a), string(b))
}
