package hashing

import (
	"fmt"
	"hash"

	"github.com/panefs/syncengine/pkg/logging"
)

// Algorithm is a tagged choice of content digest algorithm. The zero value,
// AlgorithmDefault, resolves to AlgorithmBlake3.
type Algorithm uint8

const (
	// AlgorithmDefault represents an unspecified algorithm and resolves to
	// AlgorithmBlake3 wherever a concrete hasher is required.
	AlgorithmDefault Algorithm = iota
	// AlgorithmBlake3 represents the BLAKE3 algorithm.
	AlgorithmBlake3
	// AlgorithmSHA256 represents the SHA-256 algorithm.
	AlgorithmSHA256
	// AlgorithmXXH3 represents the XXH3 (64-bit) algorithm. If a streaming
	// implementation is ever unavailable, Factory falls back to BLAKE3 and
	// logs the downgrade via RootLogger.
	AlgorithmXXH3
)

// IsDefault indicates whether or not the algorithm is AlgorithmDefault.
func (a Algorithm) IsDefault() bool {
	return a == AlgorithmDefault
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (a Algorithm) MarshalText() ([]byte, error) {
	var result string
	switch a {
	case AlgorithmDefault:
	case AlgorithmBlake3:
		result = "blake3"
	case AlgorithmSHA256:
		result = "sha256"
	case AlgorithmXXH3:
		result = "xxh3"
	default:
		result = "unknown"
	}
	return []byte(result), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (a *Algorithm) UnmarshalText(textBytes []byte) error {
	text := string(textBytes)
	switch text {
	case "", "default":
		*a = AlgorithmDefault
	case "blake3":
		*a = AlgorithmBlake3
	case "sha256":
		*a = AlgorithmSHA256
	case "xxh3":
		*a = AlgorithmXXH3
	default:
		return fmt.Errorf("unknown hashing algorithm specification: %s", text)
	}
	return nil
}

// Supported indicates whether or not a particular hashing algorithm is a
// valid, non-default value.
func (a Algorithm) Supported() bool {
	switch a {
	case AlgorithmBlake3, AlgorithmSHA256, AlgorithmXXH3:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of a hashing algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmDefault:
		return "Default"
	case AlgorithmBlake3:
		return "BLAKE3"
	case AlgorithmSHA256:
		return "SHA-256"
	case AlgorithmXXH3:
		return "XXH3"
	default:
		return "Unknown"
	}
}

// Resolved returns the concrete algorithm that Factory will actually use,
// following the AlgorithmDefault -> AlgorithmBlake3 resolution and any
// runtime fallback (currently none, since both BLAKE3 and XXH3 streaming
// implementations are available).
func (a Algorithm) Resolved() Algorithm {
	if a.IsDefault() {
		return AlgorithmBlake3
	}
	if a == AlgorithmXXH3 && !xxh3StreamingAvailable {
		logging.RootLogger.Warn(fmt.Errorf("xxh3 streaming implementation unavailable, falling back to blake3"))
		return AlgorithmBlake3
	}
	return a
}

// Factory returns a constructor for the hashing algorithm's hash.Hash
// implementation. It resolves AlgorithmDefault to AlgorithmBlake3 and panics
// on an unknown value.
func (a Algorithm) Factory() func() hash.Hash {
	switch a.Resolved() {
	case AlgorithmBlake3:
		return newBlake3
	case AlgorithmSHA256:
		return newSHA256
	case AlgorithmXXH3:
		return newXXH3
	default:
		panic("unknown hashing algorithm")
	}
}
