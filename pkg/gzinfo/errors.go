// pkg/gzinfo/errors.go
package gzinfo

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrNotGzip is matched by every FormatError
	ErrNotGzip = errors.New("not a gzip file")

	// ErrTooSmall is returned when the file cannot hold a gzip trailer
	ErrTooSmall = errors.New("file too small for gzip trailer")

	// ErrNotRegular is returned for directories, devices, sockets and the like
	ErrNotRegular = errors.New("not a regular file")
)

// IOError reports a filesystem failure while reading a file's metadata
type IOError struct {
	Op   string // "stat", "read header" or "read footer"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("gzinfo: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the file does not start with the gzip magic bytes.
// Magic holds the bytes that were read instead, so callers can tell what the file is.
type FormatError struct {
	Path  string
	Magic []byte
}

func (e *FormatError) Error() string {
	n := len(e.Magic)
	if n > 2 {
		n = 2
	}
	return fmt.Sprintf("gzinfo: %s: %v (signature %s)", e.Path, ErrNotGzip, hex.EncodeToString(e.Magic[:n]))
}

// Is makes errors.Is(err, ErrNotGzip) true for any FormatError
func (e *FormatError) Is(target error) bool {
	return target == ErrNotGzip
}
