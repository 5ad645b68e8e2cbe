// Package apiencoder implements the human-facing
// "<prefix>_<encoded-payload-plus-checksum>" string form used to print
// and parse on-chain identifiers and hashes (§4.6).
package apiencoder

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/aeid"
)

// KnownType enumerates every API-string type prefix recognized by the
// encoder/decoder pair.
type KnownType int

const (
	KeyBlockHash KnownType = iota
	MicroBlockHash
	BlockPofHash
	BlockTxHash
	BlockStateHash
	Channel
	ContractBytearray
	ContractPubkey
	ContractStoreKey
	ContractStoreValue
	Transaction
	TxHash
	OraclePubkey
	OracleQuery
	OracleQueryId
	OracleResponse
	AccountPubkey
	Signature
	Name
	Commitment
	PeerPubkey
	State
	Poi
	StateTrees
	CallStateTree
	Bytearray
)

// Encoding names the textual encoding applied after the checksum is
// appended.
type Encoding int

const (
	Base58 Encoding = iota
	Base64
)

type knownTypeInfo struct {
	prefix   string
	size     int // 0 means variable size
	encoding Encoding
}

var typeTable = map[KnownType]knownTypeInfo{
	KeyBlockHash:        {"kh", 32, Base58},
	MicroBlockHash:      {"mh", 32, Base58},
	BlockPofHash:        {"bf", 32, Base58},
	BlockTxHash:         {"bx", 32, Base58},
	BlockStateHash:      {"bs", 32, Base58},
	Channel:             {"ch", 32, Base58},
	ContractBytearray:   {"cb", 0, Base58},
	ContractPubkey:      {"ck", 32, Base64},
	ContractStoreKey:    {"cv", 0, Base64},
	ContractStoreValue:  {"ct", 0, Base64},
	Transaction:         {"tx", 0, Base64},
	TxHash:              {"th", 32, Base58},
	OraclePubkey:        {"ok", 32, Base58},
	OracleQuery:         {"ov", 0, Base64},
	OracleQueryId:       {"oq", 32, Base58},
	OracleResponse:      {"or", 0, Base64},
	AccountPubkey:       {"ak", 32, Base58},
	Signature:           {"sg", 64, Base58},
	Name:                {"cm", 0, Base58},
	Commitment:          {"pp", 32, Base58},
	PeerPubkey:          {"nm", 32, Base58},
	State:               {"st", 32, Base64},
	Poi:                 {"pi", 0, Base64},
	StateTrees:          {"ss", 0, Base64},
	CallStateTree:       {"cs", 0, Base64},
	Bytearray:           {"ba", 0, Base64},
}

var prefixTable = func() map[string]KnownType {
	m := make(map[string]KnownType, len(typeTable))
	for t, info := range typeTable {
		m[info.prefix] = t
	}
	return m
}()

var idTagTable = map[KnownType]aeid.Tag{
	AccountPubkey:  aeid.TagAccount,
	Channel:        aeid.TagChannel,
	Commitment:     aeid.TagCommitment,
	ContractPubkey: aeid.TagContract,
	Name:           aeid.TagName,
	OraclePubkey:   aeid.TagOracle,
}

var tagToKnownType = func() map[aeid.Tag]KnownType {
	m := make(map[aeid.Tag]KnownType, len(idTagTable))
	for t, tag := range idTagTable {
		m[tag] = t
	}
	return m
}()

// ByteSize reports the fixed decoded payload size for t, or 0 with
// fixed=false if t's payload is variable length.
func (t KnownType) ByteSize() (n int, fixed bool) {
	info, ok := typeTable[t]
	if !ok || info.size == 0 {
		return 0, false
	}
	return info.size, true
}

func (t KnownType) checkSize(n int) bool {
	size, fixed := t.ByteSize()
	return !fixed || size == n
}

// Prefix returns t's two-character type prefix.
func (t KnownType) Prefix() string {
	return typeTable[t].prefix
}

// Encoding returns the textual encoding t's payload is rendered with.
func (t KnownType) Encoding() Encoding {
	return typeTable[t].encoding
}

// KnownTypeFromPrefix resolves a two-character prefix back to its
// KnownType.
func KnownTypeFromPrefix(prefix string) (KnownType, bool) {
	t, ok := prefixTable[prefix]
	return t, ok
}

func makeCheck(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:4]
}

func (e Encoding) encode(data []byte) string {
	switch e {
	case Base58:
		return base58.Encode(data)
	case Base64:
		return base64.StdEncoding.EncodeToString(data)
	default:
		panic("apiencoder: unknown encoding")
	}
}

func (e Encoding) decode(s string) ([]byte, error) {
	switch e {
	case Base58:
		b, err := base58.Decode(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	case Base64:
		return base64.StdEncoding.DecodeString(s)
	default:
		panic("apiencoder: unknown encoding")
	}
}

// Encode renders payload as t's API string: prefix, underscore, then
// the textual encoding of payload with its 4-byte double-SHA-256
// checksum appended.
func Encode(t KnownType, payload []byte) string {
	withCheck := append(append([]byte(nil), payload...), makeCheck(payload)...)
	return t.Prefix() + "_" + t.Encoding().encode(withCheck)
}

// EncodeID renders an identifier using the KnownType its tag maps to.
func EncodeID(id aeid.ID) string {
	t := tagToKnownType[id.Tag]
	return Encode(t, id.Payload[:])
}

// Decode parses an API string back into its KnownType and payload,
// verifying the checksum and, for fixed-size types, the payload
// length.
func Decode(data string) (KnownType, []byte, error) {
	if len(data) < 3 || data[2] != '_' {
		return 0, nil, fmt.Errorf("apiencoder: %w", aeerrors.ErrMissingPrefix)
	}
	prefix, body := data[:2], data[3:]
	t, ok := KnownTypeFromPrefix(prefix)
	if !ok {
		return 0, nil, fmt.Errorf("apiencoder: %w: %q", aeerrors.ErrInvalidPrefix, prefix)
	}
	decoded, err := t.Encoding().decode(body)
	if err != nil {
		return 0, nil, fmt.Errorf("apiencoder: %w: %s", aeerrors.ErrInvalidEncoding, err)
	}
	if len(decoded) < 4 {
		return 0, nil, fmt.Errorf("apiencoder: %w: payload shorter than checksum", aeerrors.ErrInvalidEncoding)
	}
	bodySize := len(decoded) - 4
	payload, check := decoded[:bodySize], decoded[bodySize:]
	want := makeCheck(payload)
	if !equalBytes(check, want) {
		return 0, nil, fmt.Errorf("apiencoder: %w", aeerrors.ErrInvalidCheck)
	}
	if !t.checkSize(len(payload)) {
		return 0, nil, fmt.Errorf("apiencoder: %w", aeerrors.ErrIncorrectSize)
	}
	return t, payload, nil
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DecodeID parses an identifier API string, rejecting any type not in
// allowed or with no associated identifier tag.
func DecodeID(allowed []KnownType, data string) (aeid.ID, error) {
	t, payload, err := Decode(data)
	if err != nil {
		return aeid.ID{}, err
	}
	found := false
	for _, a := range allowed {
		if a == t {
			found = true
			break
		}
	}
	if !found {
		return aeid.ID{}, fmt.Errorf("apiencoder: %w: %s not in allowed set", aeerrors.ErrInvalidPrefix, t.Prefix())
	}
	tag, ok := idTagTable[t]
	if !ok {
		return aeid.ID{}, fmt.Errorf("apiencoder: %w: %s has no identifier tag", aeerrors.ErrInvalidPrefix, t.Prefix())
	}
	return aeid.New(tag, payload)
}

// DecodeBlockHash parses a key-block or micro-block hash API string,
// rejecting any other type.
func DecodeBlockHash(data string) ([]byte, error) {
	t, payload, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if t != KeyBlockHash && t != MicroBlockHash {
		return nil, fmt.Errorf("apiencoder: %w: %s is not a block hash", aeerrors.ErrInvalidPrefix, t.Prefix())
	}
	return payload, nil
}
