// internal/format/detect.go
package format

// ArchiveFormat represents the detected container format
type ArchiveFormat int

const (
	FormatUnknown ArchiveFormat = iota
	FormatGzip
	FormatZIP
	FormatXZ
	FormatZstd
)

// MinMagicSize is the number of leading bytes needed to tell every known format apart
const MinMagicSize = 6

// String returns the string representation of the format
func (f ArchiveFormat) String() string {
	switch f {
	case FormatGzip:
		return "GZIP"
	case FormatZIP:
		return "ZIP"
	case FormatXZ:
		return "XZ"
	case FormatZstd:
		return "ZSTD"
	default:
		return "UNKNOWN"
	}
}

// DetectFormat detects the container format from magic bytes.
// Shorter inputs are still matched against the formats whose magic fits.
func DetectFormat(magic []byte) ArchiveFormat {
	switch {
	case IsGzip(magic):
		return FormatGzip
	case IsZIP(magic):
		return FormatZIP
	case IsXZ(magic):
		return FormatXZ
	case IsZstd(magic):
		return FormatZstd
	default:
		return FormatUnknown
	}
}

// IsGzip returns true if the magic bytes indicate a gzip stream
func IsGzip(magic []byte) bool {
	return len(magic) >= MagicSize && magic[0] == GzipID1 && magic[1] == GzipID2
}

// IsZIP returns true if the magic bytes indicate a ZIP file
func IsZIP(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 'P' && magic[1] == 'K'
}

// IsXZ returns true if the magic bytes indicate an XZ file
func IsXZ(magic []byte) bool {
	return len(magic) >= 6 &&
		magic[0] == 0xFD && magic[1] == '7' && magic[2] == 'z' &&
		magic[3] == 'X' && magic[4] == 'Z' && magic[5] == 0x00
}

// IsZstd returns true if the magic bytes indicate a zstd frame (0xFD2FB528 little-endian)
func IsZstd(magic []byte) bool {
	return len(magic) >= 4 &&
		magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD
}
