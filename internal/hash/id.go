// Package hash wraps xxHash64 for series identifiers and payload checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a series name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum32 folds the xxHash64 of data into 32 bits.
func Checksum32(data []byte) uint32 {
	sum := xxhash.Sum64(data)

	return uint32(sum) ^ uint32(sum>>32)
}
