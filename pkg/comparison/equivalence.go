package comparison

import (
	"errors"
	"os"
	"time"

	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/logging"
)

// ModTimeTolerance is the inclusive window within which two modification
// times are still considered equal by MethodModTime and MethodSizeModTime.
const ModTimeTolerance = 1000 * time.Millisecond

// errNoHashAlgorithm is logged when MethodHash is requested without an
// algorithm and the comparison degrades to MethodSizeModTime.
var errNoHashAlgorithm = errors.New("compare method is hash but no hash algorithm was supplied; degrading to size-mtime")

// equivalenceLogger is used to warn when a hash comparison degrades to
// size-mtime for lack of an algorithm. It is derived from RootLogger, so the
// warning is written through the standard log package.
var equivalenceLogger = logging.RootLogger.Sublogger("comparison")

// AreEquivalent reports whether source and dest should be treated as
// equivalent under method (and, for MethodHash, algorithm), meaning the
// engine may skip copying. It returns false on any I/O failure, which the
// engine treats as "not equivalent, proceed" rather than an error.
//
// If method resolves to MethodHash but hasAlgorithm is false, the comparison
// degrades to MethodSizeModTime and logs a warning; it never silently
// degrades to an unconditional match.
func AreEquivalent(source, dest string, method Method, algorithm hashing.Algorithm, hasAlgorithm bool) bool {
	resolved := method.Resolved()
	if resolved == MethodHash && !hasAlgorithm {
		equivalenceLogger.Warn(errNoHashAlgorithm)
		resolved = MethodSizeModTime
	}

	if resolved == MethodNone {
		return false
	}

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false
	}
	destInfo, err := os.Stat(dest)
	if err != nil {
		return false
	}

	switch resolved {
	case MethodSize:
		return sourceInfo.Size() == destInfo.Size()
	case MethodModTime:
		return modTimesEqual(sourceInfo.ModTime(), destInfo.ModTime())
	case MethodSizeModTime:
		return sourceInfo.Size() == destInfo.Size() && modTimesEqual(sourceInfo.ModTime(), destInfo.ModTime())
	case MethodHash:
		sourceDigest, err := hashing.HashFile(source, algorithm)
		if err != nil {
			return false
		}
		destDigest, err := hashing.HashFile(dest, algorithm)
		if err != nil {
			return false
		}
		return hashing.Verify(sourceDigest, destDigest)
	default:
		return false
	}
}

// modTimesEqual reports whether two modification times are within
// ModTimeTolerance of one another, inclusive.
func modTimesEqual(a, b time.Time) bool {
	delta := a.Sub(b)
	if delta < 0 {
		delta = -delta
	}
	return delta <= ModTimeTolerance
}
