// Package fatehash implements the Blake2b-based hash helpers shared by
// the identifier and symbol systems (§4.9): a plain 32-byte content
// hash, and a 4-byte symbol identifier truncated from it.
package fatehash

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// HashSourceCode returns the 32-byte Blake2b-256 digest of src, with no
// salt, personalization, or keyed mode.
func HashSourceCode(src string) [32]byte {
	return blake2b.Sum256([]byte(src))
}

// SymbolIdentifier derives the 4-byte, big-endian-interpreted symbol id
// used to address a function or symbol table entry by name: the first
// four bytes of Blake2b-256(name).
func SymbolIdentifier(name string) uint32 {
	h := HashSourceCode(name)
	return binary.BigEndian.Uint32(h[:4])
}

// ID4 returns the first four bytes (big-endian) of Blake2b-256(name),
// the raw byte form SymbolIdentifier is derived from; the call-data
// helper embeds this directly as a FATE Bytes value.
func ID4(name string) [4]byte {
	h := HashSourceCode(name)
	var out [4]byte
	copy(out[:], h[:4])
	return out
}
