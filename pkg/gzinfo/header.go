// pkg/gzinfo/header.go
package gzinfo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/creativeyann17/go-gzinfo/internal/format"
)

// CompressionMethod is the CM byte of the header
type CompressionMethod uint8

// Deflate is the only method defined by RFC 1952. Other values are kept as read.
const Deflate CompressionMethod = format.MethodDeflate

func (m CompressionMethod) String() string {
	if m == Deflate {
		return "deflate"
	}
	return fmt.Sprintf("unknown(%d)", uint8(m))
}

// OperatingSystem is the OS byte of the header
type OperatingSystem uint8

const (
	OSDOS         OperatingSystem = 0 // FAT filesystem (MS-DOS, OS/2, NT/Win32)
	OSAmiga       OperatingSystem = 1
	OSVMS         OperatingSystem = 2 // VMS or OpenVMS
	OSUnix        OperatingSystem = 3
	OSVMCMS       OperatingSystem = 4
	OSAtariTOS    OperatingSystem = 5
	OSHPFS        OperatingSystem = 6 // OS/2, NT
	OSMacintosh   OperatingSystem = 7
	OSZSystem     OperatingSystem = 8
	OSCPM         OperatingSystem = 9
	OSTOPS20      OperatingSystem = 10
	OSNTFS        OperatingSystem = 11
	OSQDOS        OperatingSystem = 12
	OSAcornRISCOS OperatingSystem = 13
	OSUnknown     OperatingSystem = 255
)

var osNames = map[OperatingSystem]string{
	OSDOS:         "DOS",
	OSAmiga:       "Amiga",
	OSVMS:         "VMS",
	OSUnix:        "Unix",
	OSVMCMS:       "VM/CMS",
	OSAtariTOS:    "Atari TOS",
	OSHPFS:        "HPFS",
	OSMacintosh:   "Macintosh",
	OSZSystem:     "Z-System",
	OSCPM:         "CP/M",
	OSTOPS20:      "TOPS-20",
	OSNTFS:        "NTFS",
	OSQDOS:        "QDOS",
	OSAcornRISCOS: "Acorn RISCOS",
	OSUnknown:     "unknown",
}

func (o OperatingSystem) String() string {
	if name, ok := osNames[o]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(o))
}

// Flag is a bit (or bit group) of the FLG header byte
type Flag uint8

const (
	FlagASCII        Flag = format.FlagText
	FlagCRC16        Flag = format.FlagHeaderCRC
	FlagExtra        Flag = format.FlagExtra
	FlagOriginalName Flag = format.FlagName
	FlagComment      Flag = format.FlagComment
	FlagEncrypted    Flag = format.FlagEncrypted
	FlagReserved     Flag = format.FlagReserved
)

// Flags is the raw FLG byte
type Flags uint8

// Has reports whether any bit of f is set
func (fl Flags) Has(f Flag) bool {
	return uint8(fl)&uint8(f) != 0
}

func (fl Flags) String() string {
	names := []struct {
		flag Flag
		name string
	}{
		{FlagASCII, "FTEXT"},
		{FlagCRC16, "FHCRC"},
		{FlagExtra, "FEXTRA"},
		{FlagOriginalName, "FNAME"},
		{FlagComment, "FCOMMENT"},
		{FlagEncrypted, "ENCRYPTED"},
		{FlagReserved, "RESERVED"},
	}

	s := ""
	for _, n := range names {
		if !fl.Has(n.flag) {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return "none"
	}
	return s
}

// ExtraFlags is the XFL byte; its meaning depends on the compression method
type ExtraFlags uint8

func (x ExtraFlags) String() string {
	switch x {
	case format.ExtraFlagsMaxCompression:
		return "max compression"
	case format.ExtraFlagsFastest:
		return "fastest"
	default:
		return fmt.Sprintf("%d", uint8(x))
	}
}

// HeaderInfo is the decoded fixed part of a gzip member header
type HeaderInfo struct {
	Signature         [2]byte
	CompressionMethod CompressionMethod
	Flags             Flags
	ModTime           uint32 // seconds since the Unix epoch, 0 when not set
	ExtraFlags        ExtraFlags
	OperatingSystem   OperatingSystem
}

// SignatureHex returns the magic bytes in lowercase hex ("1f8b")
func (h HeaderInfo) SignatureHex() string {
	return hex.EncodeToString(h.Signature[:])
}

// LastModified returns ModTime as a UTC time. A zero ModTime yields the epoch.
func (h HeaderInfo) LastModified() time.Time {
	return time.Unix(int64(h.ModTime), 0).UTC()
}

// HasModTime reports whether the compressor recorded a modification time
func (h HeaderInfo) HasModTime() bool {
	return h.ModTime != 0
}

// DecodeHeader decodes the fixed 10-byte gzip header.
// It returns ErrNotGzip if the magic bytes don't match.
func DecodeHeader(buf []byte) (HeaderInfo, error) {
	if len(buf) < format.HeaderSize {
		return HeaderInfo{}, fmt.Errorf("decode header: need %d bytes, got %d", format.HeaderSize, len(buf))
	}
	if !format.IsGzip(buf) {
		return HeaderInfo{}, ErrNotGzip
	}

	return HeaderInfo{
		Signature:         [2]byte{buf[0], buf[1]},
		CompressionMethod: CompressionMethod(buf[format.OffsetMethod]),
		Flags:             Flags(buf[format.OffsetFlags]),
		ModTime:           binary.LittleEndian.Uint32(buf[format.OffsetModTime:]),
		ExtraFlags:        ExtraFlags(buf[format.OffsetExtraFlags]),
		OperatingSystem:   OperatingSystem(buf[format.OffsetOS]),
	}, nil
}
