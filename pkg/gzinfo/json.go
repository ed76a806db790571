// pkg/gzinfo/json.go
package gzinfo

import (
	"encoding/json"
	"time"
)

type jsonFlags struct {
	ASCII            bool `json:"ascii"`
	CRC16            bool `json:"crc16"`
	Extra            bool `json:"extra"`
	OriginalFileName bool `json:"originalFileName"`
	Comment          bool `json:"comment"`
	Encrypted        bool `json:"encrypted"`
	Reserved         bool `json:"reserved"`
}

type jsonHeader struct {
	Signature           string     `json:"signature"`
	CompressionMethod   uint8      `json:"compressionMethod"`
	Flags               uint8      `json:"flags"`
	FlagBits            jsonFlags  `json:"flagBits"`
	LastModified        *time.Time `json:"lastModified"`
	ExtraFlags          uint8      `json:"extraFlags"`
	OperatingSystem     uint8      `json:"operatingSystem"`
	OperatingSystemName string     `json:"operatingSystemName"`
}

type jsonFooter struct {
	CRC32            uint32 `json:"crc32"`
	UncompressedSize uint32 `json:"uncompressedSize"`
}

type jsonReader struct {
	Path             string     `json:"path"`
	Header           jsonHeader `json:"header"`
	Footer           jsonFooter `json:"footer"`
	CRC32            uint32     `json:"crc32"`
	CompressedSize   int64      `json:"compressedSize"`
	UncompressedSize uint32     `json:"uncompressedSize"`
}

// MarshalJSON encodes the metadata. lastModified is null when the header has no time.
func (r *Reader) MarshalJSON() ([]byte, error) {
	h := r.header

	var modified *time.Time
	if h.HasModTime() {
		t := h.LastModified()
		modified = &t
	}

	return json.Marshal(jsonReader{
		Path: r.path,
		Header: jsonHeader{
			Signature:         h.SignatureHex(),
			CompressionMethod: uint8(h.CompressionMethod),
			Flags:             uint8(h.Flags),
			FlagBits: jsonFlags{
				ASCII:            r.IsASCIIFile(),
				CRC16:            r.HasCRC16(),
				Extra:            r.HasExtraField(),
				OriginalFileName: r.HasOriginalFileName(),
				Comment:          r.HasComment(),
				Encrypted:        r.IsEncrypted(),
				Reserved:         r.HasReservedFlags(),
			},
			LastModified:        modified,
			ExtraFlags:          uint8(h.ExtraFlags),
			OperatingSystem:     uint8(h.OperatingSystem),
			OperatingSystemName: h.OperatingSystem.String(),
		},
		Footer: jsonFooter{
			CRC32:            r.footer.CRC32,
			UncompressedSize: r.footer.UncompressedSize,
		},
		CRC32:            r.CRC32(),
		CompressedSize:   r.CompressedSize(),
		UncompressedSize: r.UncompressedSize(),
	})
}
