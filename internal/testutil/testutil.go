// Package testutil builds gzip and other compressed fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Values of the reference fixture: a text file gzipped with default settings
// on Unix with its original name kept.
const (
	ReadmeName             = "node-readme.md"
	ReadmeModTime          = 1463752388
	ReadmeCRC32            = 340691458
	ReadmeCompressedSize   = 5287
	ReadmeUncompressedSize = 14122
)

// GzipOptions controls the member header written by Gzip
type GzipOptions struct {
	Name    string
	Comment string
	Extra   []byte
	ModTime time.Time
	OS      byte
	Level   int
}

// Gzip compresses data into a single gzip member
func Gzip(t testing.TB, data []byte, opts GzipOptions) []byte {
	t.Helper()

	level := opts.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		t.Fatalf("create gzip writer: %v", err)
	}
	w.Name = opts.Name
	w.Comment = opts.Comment
	w.Extra = opts.Extra
	// The writer stores uint32(ModTime.Unix()), so a zero time.Time would not yield MTIME 0
	w.ModTime = opts.ModTime
	if opts.ModTime.IsZero() {
		w.ModTime = time.Unix(0, 0)
	}
	w.OS = opts.OS

	if _, err := w.Write(data); err != nil {
		t.Fatalf("write gzip data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// Zstd compresses data into a zstd frame
func Zstd(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("create zstd encoder: %v", err)
	}
	if _, err := enc.Write(data); err != nil {
		t.Fatalf("write zstd data: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close zstd encoder: %v", err)
	}
	return buf.Bytes()
}

// XZ compresses data into an xz stream
func XZ(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("create xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write xz data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close xz writer: %v", err)
	}
	return buf.Bytes()
}

// ReadmeFixture returns bytes laid out like the reference gzip fixture.
// Only the header, original name and trailer are meaningful; the body is filler
// sized so that the whole file is ReadmeCompressedSize bytes.
func ReadmeFixture() []byte {
	b := make([]byte, 0, ReadmeCompressedSize)
	b = append(b, 0x1f, 0x8b, 8, 0x08)
	b = binary.LittleEndian.AppendUint32(b, ReadmeModTime)
	b = append(b, 0, 3)
	b = append(b, ReadmeName...)
	b = append(b, 0)

	for i := 0; len(b) < ReadmeCompressedSize-8; i++ {
		b = append(b, byte(i*31+7))
	}

	b = binary.LittleEndian.AppendUint32(b, ReadmeCRC32)
	b = binary.LittleEndian.AppendUint32(b, ReadmeUncompressedSize)
	return b
}

// WriteFile writes data to dir/name, creating parent directories
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}
