// internal/dupindex/index.go
package dupindex

import (
	"github.com/creativeyann17/go-gzinfo/internal/fingerprint"
)

// Key identifies a gzip file for duplicate detection.
// The size is part of the key so that files sharing header and trailer but
// differing in length are not reported as duplicates.
type Key struct {
	Fingerprint fingerprint.Fingerprint
	Size        int64
}

// Index records the first path seen for each Key.
// It is not safe for concurrent use; feed it in a stable order so the
// first path is deterministic.
type Index struct {
	first map[Key]string
	stats Stats
}

// New creates an empty index
func New() *Index {
	return &Index{
		first: make(map[Key]string),
	}
}

// GetOrAdd records path under key unless the key is already known.
// Returns the first path recorded for the key and whether path is that first one.
func (ix *Index) GetOrAdd(key Key, path string) (string, bool) {
	ix.stats.Total++

	if first, exists := ix.first[key]; exists {
		ix.stats.Duplicates++
		if key.Size > 0 {
			ix.stats.BytesDuplicated += uint64(key.Size)
		}
		return first, false
	}

	ix.first[key] = path
	ix.stats.Unique++
	return path, true
}

// Stats returns duplicate statistics
func (ix *Index) Stats() Stats {
	return ix.stats
}

// Stats contains duplicate detection statistics
type Stats struct {
	Total           uint64 // Keys submitted
	Unique          uint64 // Keys seen for the first time
	Duplicates      uint64 // Keys already present
	BytesDuplicated uint64 // Compressed bytes held by duplicates
}

// DuplicateRatio returns the share of duplicates as a percentage
func (s Stats) DuplicateRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Duplicates) / float64(s.Total) * 100
}
