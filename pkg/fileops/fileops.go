// Package fileops provides thin, typed wrappers around the file operations
// the sync engine needs: copy, delete, stat, and existence checks. It is
// intentionally minimal — no directory recursion, no atomic rename, no
// metadata preservation beyond content length.
package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/panefs/syncengine/pkg/logging"
	"github.com/panefs/syncengine/pkg/must"
)

// copyBufferSize matches the default buffer size io.Copy allocates
// internally, keeping memory use predictable for large files.
const copyBufferSize = 32 * 1024

var logger = logging.RootLogger.Sublogger("fileops")

// Stat is a minimal, platform-independent snapshot of a file's metadata.
// Sizes are stored as native 64-bit integers so they round-trip beyond
// 2^53 without loss.
type Stat struct {
	Size    int64
	ModTime int64 // Unix nanoseconds.
	IsDir   bool
}

// DestinationPath joins a destination directory with the Unicode-normalized
// basename of a source path. Normalizing the basename keeps destinations
// consistent across filesystems that decompose filenames differently (e.g.
// HFS+'s NFD versus the NFC most other filesystems store).
func DestinationPath(destDir, sourcePath string) string {
	return filepath.Join(destDir, norm.NFC.String(filepath.Base(sourcePath)))
}

// Exists reports whether path refers to an existing filesystem entry.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// StatPath returns a Stat for path, or nil if path does not exist. Any other
// I/O error is returned to the caller.
func StatPath(path string) (*Stat, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Stat{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		IsDir:   info.IsDir(),
	}, nil
}

// Copy performs a byte-for-byte content copy from src to dst, creating any
// missing parent directories of dst recursively. It preserves content length
// but makes no attempt to preserve modification time or permissions beyond
// the default created by os.Create.
func Copy(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	defer must.Close(source, logger)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}

	destination, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}

	buffer := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(destination, source, buffer); err != nil {
		must.Close(destination, logger)
		return fmt.Errorf("unable to copy file contents: %w", err)
	}

	if err := destination.Close(); err != nil {
		return fmt.Errorf("unable to close destination file: %w", err)
	}

	return nil
}

// Delete removes the file at path.
func Delete(path string) error {
	return os.Remove(path)
}
