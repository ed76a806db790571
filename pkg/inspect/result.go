// pkg/inspect/result.go
package inspect

import (
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/creativeyann17/go-gzinfo/internal/fingerprint"
	"github.com/creativeyann17/go-gzinfo/internal/format"
	"github.com/creativeyann17/go-gzinfo/pkg/gzinfo"
)

// FileReport is the outcome of inspecting a single file
type FileReport struct {
	Path        string
	Format      format.ArchiveFormat    // Detected container format
	Info        *gzinfo.Reader          // Decoded metadata (gzip files only)
	Fingerprint fingerprint.Fingerprint // BLAKE3 of raw header+trailer (gzip files only)
	Digest      digest.Digest           // Content digest (only with ComputeDigest)
	DuplicateOf string                  // First path with the same fingerprint and size
	Err         error                   // Error if the file could not be inspected
}

// IsGzip returns true if the file's metadata was decoded
func (f *FileReport) IsGzip() bool {
	return f.Info != nil
}

// Result contains the outcome of a batch inspection
type Result struct {
	// Per-file reports, sorted by path
	Files []FileReport

	FilesTotal     int // Files considered
	GzipFiles      int // Files whose metadata was decoded
	NonGzipFiles   int // Readable files without the gzip signature
	FailedFiles    int // Files that could not be read
	DuplicateFiles int // Gzip files sharing fingerprint and size with an earlier one
	UniqueFiles    int // Gzip files left once duplicates are removed

	CompressedSize   uint64  // Sum of gzip file sizes on disk
	UncompressedSize uint64  // Sum of ISIZE over gzip files (each modulo 4 GiB)
	DuplicateBytes   uint64  // Compressed bytes held by duplicates
	DuplicateRatio   float64 // Duplicates as a percentage of gzip files

	// Errors encountered (non-fatal)
	Errors []error
}

// CompressionRatio returns the compressed size as a percentage of the uncompressed size
func (r *Result) CompressionRatio() float64 {
	if r.UncompressedSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.UncompressedSize) * 100
}

// IsValid returns true if every file could be read
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0 && r.FailedFiles == 0
}

// Summary returns a human-readable summary of the inspection
func (r *Result) Summary() string {
	status := "OK"
	if !r.IsValid() {
		status = "ERRORS"
	}

	s := fmt.Sprintf("Inspection [%s]\n", status)
	s += fmt.Sprintf("Files:        %d\n", r.FilesTotal)
	s += fmt.Sprintf("  gzip:       %d (%d unique)\n", r.GzipFiles, r.UniqueFiles)
	s += fmt.Sprintf("  other:      %d\n", r.NonGzipFiles)
	s += fmt.Sprintf("  failed:     %d\n", r.FailedFiles)

	if r.GzipFiles > 0 {
		s += fmt.Sprintf("Compressed:   %s\n", gzinfo.FormatSize(r.CompressedSize))
		s += fmt.Sprintf("Uncompressed: %s\n", gzinfo.FormatSize(r.UncompressedSize))
		if r.UncompressedSize > 0 {
			s += fmt.Sprintf("Ratio:        %.1f%%\n", r.CompressionRatio())
		}
	}

	if r.DuplicateFiles > 0 {
		s += fmt.Sprintf("\nDuplicates (%d, %s, %.1f%%):\n",
			r.DuplicateFiles, gzinfo.FormatSize(r.DuplicateBytes), r.DuplicateRatio)
		for _, f := range r.Files {
			if f.DuplicateOf != "" {
				s += fmt.Sprintf("  %s = %s\n", f.Path, f.DuplicateOf)
			}
		}
	}

	if len(r.Errors) > 0 {
		s += fmt.Sprintf("\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				s += fmt.Sprintf("  ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			s += fmt.Sprintf("  - %v\n", err)
		}
	}

	return s
}
