package chunkmd

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// NewID generates a globally unique, time-sortable UUIDv7 (RFC 9562).
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// sectionID derives a stable identifier from a chunk's section path and its
// index in the result. Identical path+index always hash to the same ID.
func sectionID(path []string, index int) string {
	h := fnv.New64a()
	for _, p := range path {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d", index)
	return fmt.Sprintf("%016x", h.Sum64())
}
