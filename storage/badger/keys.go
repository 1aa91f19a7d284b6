package badger

import (
	"encoding/binary"

	"github.com/poiesic/roadmapper/core"
)

// Key prefixes for different data types
const (
	resourcePrefix    = "resrec:"
	resourceURLPrefix = "resurl:"
)

// makeResourceKey generates a key for a resource by ID.
// Format: prefix + big-endian ID, so keys iterate in ID order.
func makeResourceKey(id core.ID) []byte {
	buf := make([]byte, len(resourcePrefix)+8)
	offset := copy(buf, resourcePrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// idFromResourceKey extracts the ID from a resource key.
func idFromResourceKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(resourcePrefix):]))
}

// makeResourceURLKey generates a key for the URL index.
// Format: prefix + url
func makeResourceURLKey(url string) []byte {
	buf := make([]byte, len(resourceURLPrefix)+len(url))
	offset := copy(buf, resourceURLPrefix)
	copy(buf[offset:], url)
	return buf
}
