package hashing

import (
	"crypto/sha256"
	"hash"

	"github.com/zeebo/xxh3"
	"lukechampine.com/blake3"
)

// blake3DigestSize is the output size (in bytes) used for BLAKE3 digests.
// 32 bytes matches the conventional default output length and keeps digest
// length consistent with SHA-256.
const blake3DigestSize = 32

// xxh3StreamingAvailable indicates whether or not a streaming XXH3
// implementation is linked into the binary. It is true whenever the
// github.com/zeebo/xxh3 package is available, which is unconditionally the
// case for this build, but the flag is kept (rather than inlining "true")
// so that a platform lacking the dependency can flip it without touching
// Algorithm.Resolved.
const xxh3StreamingAvailable = true

// newBlake3 constructs a new BLAKE3 hasher.
func newBlake3() hash.Hash {
	return blake3.New(blake3DigestSize, nil)
}

// newSHA256 constructs a new SHA-256 hasher.
func newSHA256() hash.Hash {
	return sha256.New()
}

// newXXH3 constructs a new XXH3 hasher.
func newXXH3() hash.Hash {
	return xxh3.New()
}
