// Package cgid hashes content group identifiers into the 64-bit cgid field
// of a client routing label.
package cgid

import "github.com/cespare/xxhash/v2"

// Hash returns the xxHash64 (seed 0) of id, or 0 for the empty string. The
// zero value is reserved to mean "no content group", so the empty string
// must never be hashed.
func Hash(id string) uint64 {
	if id == "" {
		return 0
	}
	return xxhash.Sum64String(id)
}
