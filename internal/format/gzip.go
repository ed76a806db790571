// internal/format/gzip.go
package format

// gzip member layout (RFC 1952, section 2.3).
//
//	+---+---+---+---+---+---+---+---+---+---+
//	|ID1|ID2|CM |FLG|     MTIME     |XFL|OS |   header
//	+---+---+---+---+---+---+---+---+---+---+
//	...compressed blocks...
//	+---+---+---+---+---+---+---+---+
//	|     CRC32     |     ISIZE     |           trailer
//	+---+---+---+---+---+---+---+---+
const (
	GzipID1   = 0x1f
	GzipID2   = 0x8b
	MagicSize = 2

	// HeaderSize is the fixed part of the member header
	HeaderSize = 10
	// FooterSize is the CRC32 + ISIZE trailer
	FooterSize = 8

	// Header field offsets
	OffsetMethod     = 2
	OffsetFlags      = 3
	OffsetModTime    = 4
	OffsetExtraFlags = 8
	OffsetOS         = 9

	// Footer field offsets
	OffsetCRC32 = 0
	OffsetISize = 4

	// MethodDeflate is the only compression method RFC 1952 defines
	MethodDeflate = 8
)

// FLG bits
const (
	FlagText      = 1 << 0
	FlagHeaderCRC = 1 << 1
	FlagExtra     = 1 << 2
	FlagName      = 1 << 3
	FlagComment   = 1 << 4
	FlagEncrypted = 1 << 5
	FlagReserved  = 1<<6 | 1<<7
)

// XFL values written by deflate compressors
const (
	ExtraFlagsMaxCompression = 2
	ExtraFlagsFastest        = 4
)
