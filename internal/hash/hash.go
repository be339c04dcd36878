// Package hash wraps xxHash64 for the internal/intern string table.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of data.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// BytesID computes the xxHash64 of a raw byte string; it equals ID of the
// same bytes as a string.
func BytesID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
