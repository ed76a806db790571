// pkg/gzinfo/gzinfo.go
package gzinfo

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/creativeyann17/go-gzinfo/internal/format"
)

// FileStats holds what the filesystem reports about the compressed file
type FileStats struct {
	Size    int64 // compressed size in bytes
	ModTime time.Time
	Mode    os.FileMode
}

// Reader holds the metadata of one gzip file: the decoded header and trailer,
// the raw bytes they were decoded from, and the file's stat information.
//
// A Reader is fully populated by Open and never changes afterwards. It keeps
// no file handle open, so there is nothing to close.
type Reader struct {
	path      string
	header    HeaderInfo
	footer    FooterInfo
	stats     FileStats
	headerBuf [format.HeaderSize]byte
	footerBuf [format.FooterSize]byte
}

// Open reads the header and trailer of the gzip file at path.
//
// Filesystem failures return *IOError. A file that does not start with the
// gzip magic bytes returns *FormatError; in that case the trailer is not read.
func Open(path string) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &IOError{Op: "stat", Path: path, Err: ErrNotRegular}
	}
	stats := FileStats{
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}

	var headerBuf [format.HeaderSize]byte
	if err := readRegion(path, headerBuf[:], 0); err != nil {
		return nil, &IOError{Op: "read header", Path: path, Err: err}
	}

	header, err := DecodeHeader(headerBuf[:])
	if err != nil {
		magic := make([]byte, len(headerBuf))
		copy(magic, headerBuf[:])
		return nil, &FormatError{Path: path, Magic: magic}
	}

	if stats.Size < format.FooterSize {
		return nil, &IOError{Op: "read footer", Path: path, Err: ErrTooSmall}
	}

	var footerBuf [format.FooterSize]byte
	if err := readRegion(path, footerBuf[:], stats.Size-format.FooterSize); err != nil {
		return nil, &IOError{Op: "read footer", Path: path, Err: err}
	}

	footer, err := DecodeFooter(footerBuf[:])
	if err != nil {
		return nil, &IOError{Op: "read footer", Path: path, Err: err}
	}

	return &Reader{
		path:      path,
		header:    header,
		footer:    footer,
		stats:     stats,
		headerBuf: headerBuf,
		footerBuf: footerBuf,
	}, nil
}

// readRegion fills buf from path at offset off, opening and closing the file
func readRegion(path string, buf []byte, off int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := f.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read %d bytes at offset %d (got %d): %w", len(buf), off, n, err)
}

// Path returns the path the reader was opened from
func (r *Reader) Path() string { return r.path }

// Header returns the decoded header
func (r *Reader) Header() HeaderInfo { return r.header }

// Footer returns the decoded trailer
func (r *Reader) Footer() FooterInfo { return r.footer }

// Stats returns the filesystem information captured by Open
func (r *Reader) Stats() FileStats { return r.stats }

// HeaderBytes returns a copy of the raw 10 header bytes
func (r *Reader) HeaderBytes() []byte {
	b := make([]byte, len(r.headerBuf))
	copy(b, r.headerBuf[:])
	return b
}

// FooterBytes returns a copy of the raw 8 trailer bytes
func (r *Reader) FooterBytes() []byte {
	b := make([]byte, len(r.footerBuf))
	copy(b, r.footerBuf[:])
	return b
}

// CRC32 returns the checksum of the uncompressed data stored in the trailer
func (r *Reader) CRC32() uint32 { return r.footer.CRC32 }

// CompressedSize returns the size of the file on disk
func (r *Reader) CompressedSize() int64 { return r.stats.Size }

// UncompressedSize returns ISIZE from the trailer (size modulo 2^32)
func (r *Reader) UncompressedSize() uint32 { return r.footer.UncompressedSize }

// IsASCIIFile reports FTEXT: the compressor guessed the payload is text
func (r *Reader) IsASCIIFile() bool { return r.header.Flags.Has(FlagASCII) }

// HasCRC16 reports FHCRC: a CRC16 of the header follows the optional fields
func (r *Reader) HasCRC16() bool { return r.header.Flags.Has(FlagCRC16) }

// HasExtraField reports FEXTRA: an extra field follows the fixed header
func (r *Reader) HasExtraField() bool { return r.header.Flags.Has(FlagExtra) }

// HasOriginalFileName reports FNAME: the original file name is stored
func (r *Reader) HasOriginalFileName() bool { return r.header.Flags.Has(FlagOriginalName) }

// HasComment reports FCOMMENT: a file comment is stored
func (r *Reader) HasComment() bool { return r.header.Flags.Has(FlagComment) }

// IsEncrypted reports bit 5, used by some non-standard tools to mark encryption
func (r *Reader) IsEncrypted() bool { return r.header.Flags.Has(FlagEncrypted) }

// HasReservedFlags reports whether either of the two undefined FLG bits is set
func (r *Reader) HasReservedFlags() bool { return r.header.Flags.Has(FlagReserved) }

// CompressionRatio returns the compressed size as a percentage of ISIZE.
// ISIZE wraps at 4 GiB, so the ratio is meaningless for larger inputs.
func (r *Reader) CompressionRatio() float64 {
	if r.footer.UncompressedSize == 0 {
		return 0
	}
	return float64(r.stats.Size) / float64(r.footer.UncompressedSize) * 100
}

// Summary returns a human-readable description of the file's metadata
func (r *Reader) Summary() string {
	h := r.header

	s := fmt.Sprintf("File:         %s\n", r.path)
	s += fmt.Sprintf("Signature:    %s\n", h.SignatureHex())
	s += fmt.Sprintf("Method:       %s (%d)\n", h.CompressionMethod, uint8(h.CompressionMethod))
	s += fmt.Sprintf("Flags:        %s (0x%02x)\n", h.Flags, uint8(h.Flags))
	if h.HasModTime() {
		s += fmt.Sprintf("Modified:     %s\n", h.LastModified().Format(time.RFC3339))
	} else {
		s += "Modified:     not available\n"
	}
	s += fmt.Sprintf("Extra flags:  %s\n", h.ExtraFlags)
	s += fmt.Sprintf("OS:           %s (%d)\n", h.OperatingSystem, uint8(h.OperatingSystem))
	s += fmt.Sprintf("CRC32:        0x%08x\n", r.CRC32())
	s += fmt.Sprintf("Compressed:   %s\n", FormatSize(uint64(r.CompressedSize())))
	s += fmt.Sprintf("Uncompressed: %s\n", FormatSize(uint64(r.UncompressedSize())))
	if r.UncompressedSize() > 0 {
		s += fmt.Sprintf("Ratio:        %.1f%%\n", r.CompressionRatio())
	}
	return s
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
