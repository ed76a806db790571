// pkg/gzinfo/footer.go
package gzinfo

import (
	"encoding/binary"
	"fmt"

	"github.com/creativeyann17/go-gzinfo/internal/format"
)

// FooterInfo is the decoded 8-byte gzip trailer
type FooterInfo struct {
	CRC32            uint32 // CRC-32 of the uncompressed data
	UncompressedSize uint32 // ISIZE: uncompressed length modulo 2^32
}

// DecodeFooter decodes the gzip trailer. Any 8 bytes are accepted.
func DecodeFooter(buf []byte) (FooterInfo, error) {
	if len(buf) < format.FooterSize {
		return FooterInfo{}, fmt.Errorf("decode footer: need %d bytes, got %d", format.FooterSize, len(buf))
	}
	return FooterInfo{
		CRC32:            binary.LittleEndian.Uint32(buf[format.OffsetCRC32:]),
		UncompressedSize: binary.LittleEndian.Uint32(buf[format.OffsetISize:]),
	}, nil
}
