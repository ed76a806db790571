// internal/fingerprint/fingerprint.go
package fingerprint

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies a gzip member by the BLAKE3 hash of its raw header and trailer.
// Two files with the same fingerprint and size were almost certainly produced
// from the same input by the same compressor run.
type Fingerprint [32]byte

// Of hashes the raw header bytes followed by the raw trailer bytes
func Of(header, footer []byte) Fingerprint {
	buf := make([]byte, 0, len(header)+len(footer))
	buf = append(buf, header...)
	buf = append(buf, footer...)
	return Fingerprint(blake3.Sum256(buf))
}

// String returns the full hex encoding
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex digits, enough for display
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:6])
}
