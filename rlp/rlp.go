// Package rlp implements the recursive-length-prefix byte-tree framing
// used throughout the codec stack: an Item is either a ByteArray or a
// List of Items, and every well-formed Item has exactly one canonical
// encoding.
package rlp

import (
	"fmt"

	"github.com/aeternity/aeserialization-go/internal/bitlen"
)

// Framing constants, named exactly as the wire format defines them.
const (
	untaggedSizeLimit  = 55
	untaggedValueLimit = 127
	byteArrayOffset    = 128
	listOffset         = 192

	byteArrayUntaggedLimit = byteArrayOffset + untaggedSizeLimit // 183
	byteArrayTaggedOffset  = byteArrayUntaggedLimit + 1          // 184
	byteArrayLimit         = 191
	listUntaggedLimit      = listOffset + untaggedSizeLimit // 247
	listTaggedOffset       = listUntaggedLimit + 1          // 248
)

// Item is either a ByteArray or a List.
type Item interface {
	isItem()
	// Encode appends this item's canonical RLP encoding to dst and
	// returns the result.
	Encode(dst []byte) []byte
}

// ByteArray is a finite ordered byte sequence, the RLP leaf shape.
type ByteArray []byte

func (ByteArray) isItem() {}

// List is an ordered sequence of Items, the RLP branch shape.
type List []Item

func (List) isItem() {}

// Encode returns the canonical RLP encoding of item.
func Encode(item Item) []byte {
	return item.Encode(nil)
}

func (b ByteArray) Encode(dst []byte) []byte {
	n := len(b)
	if n == 1 && b[0] <= untaggedValueLimit {
		return append(dst, b[0])
	}
	if n <= untaggedSizeLimit {
		dst = append(dst, byte(byteArrayOffset+n))
		return append(dst, b...)
	}
	sizeBytes := minimalBigEndian(uint64(n))
	dst = append(dst, byte(byteArrayTaggedOffset-1+len(sizeBytes)))
	dst = append(dst, sizeBytes...)
	return append(dst, b...)
}

func (l List) Encode(dst []byte) []byte {
	var body []byte
	for _, child := range l {
		body = child.Encode(body)
	}
	p := len(body)
	if p <= untaggedSizeLimit {
		dst = append(dst, byte(listOffset+p))
		return append(dst, body...)
	}
	sizeBytes := minimalBigEndian(uint64(p))
	dst = append(dst, byte(listTaggedOffset-1+len(sizeBytes)))
	dst = append(dst, sizeBytes...)
	return append(dst, body...)
}

// minimalBigEndian returns the minimum-length big-endian encoding of n,
// with no leading zero byte (n=0 yields a single zero byte, which never
// occurs on this codec's call sites since a zero-length/zero-value size
// is always handled by the untagged branch before this is reached).
func minimalBigEndian(n uint64) []byte {
	out := make([]byte, bitlen.Uint64(n))
	v := n
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// Decode parses b as a single Item, failing with Trailing if any bytes
// of b remain undecoded.
func Decode(b []byte) (Item, error) {
	item, rest, err := TryDecode(b)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, &Trailing{Input: b, Decoded: len(b) - len(rest), Undecoded: rest}
	}
	return item, nil
}

// TryDecode parses a single canonical Item prefix of b and returns the
// item together with the unconsumed remainder.
func TryDecode(b []byte) (Item, []byte, error) {
	if len(b) == 0 {
		return nil, nil, &Empty{}
	}
	tag := b[0]
	switch {
	case tag <= untaggedValueLimit:
		return ByteArray{tag}, b[1:], nil
	case tag <= byteArrayUntaggedLimit:
		n := int(tag - byteArrayOffset)
		return decodeByteArray(b, 1, n)
	case tag <= byteArrayLimit:
		k := int(tag - byteArrayTaggedOffset + 1)
		n, _, err := decodeTaggedSize(b, 1, k)
		if err != nil {
			return nil, nil, err
		}
		return decodeByteArray(b, 1+k, n)
	case tag <= listUntaggedLimit:
		p := int(tag - listOffset)
		return decodeList(b, 1, p)
	default: // tag <= 255, i.e. listTaggedOffset..255
		k := int(tag - listTaggedOffset + 1)
		p, _, err := decodeTaggedSize(b, 1, k)
		if err != nil {
			return nil, nil, err
		}
		return decodeList(b, 1+k, p)
	}
}

// decodeByteArray reads n raw bytes starting at offset pos in b.
func decodeByteArray(b []byte, pos, n int) (Item, []byte, error) {
	if pos+n > len(b) {
		return nil, nil, &SizeOverflow{Position: pos, Expected: n, Actual: len(b) - pos}
	}
	return ByteArray(b[pos : pos+n]), b[pos+n:], nil
}

func decodeList(b []byte, pos, p int) (Item, []byte, error) {
	if pos+p > len(b) {
		return nil, nil, &SizeOverflow{Position: pos, Expected: p, Actual: len(b) - pos}
	}
	body := b[pos : pos+p]
	items := List{}
	for len(body) > 0 {
		item, rest, err := TryDecode(body)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		body = rest
	}
	return items, b[pos+p:], nil
}

// decodeTaggedSize reads the k-byte big-endian size field at offset pos
// and rejects a leading zero byte per the canonicality rule.
func decodeTaggedSize(b []byte, pos, k int) (int, []byte, error) {
	if pos+k > len(b) {
		return 0, nil, &SizeOverflow{Position: pos, Expected: k, Actual: len(b) - pos}
	}
	if b[pos] == 0 {
		return 0, nil, &LeadingZerosInSize{Position: pos}
	}
	var n uint64
	for _, c := range b[pos : pos+k] {
		n = n<<8 | uint64(c)
	}
	return int(n), b[pos+k:], nil
}

// String decodes a ByteArray item, rejecting a List item.
func String(item Item) ([]byte, error) {
	ba, ok := item.(ByteArray)
	if !ok {
		return nil, fmt.Errorf("rlp: expected byte array, got list")
	}
	return []byte(ba), nil
}

// AsList decodes a List item, rejecting a ByteArray item.
func AsList(item Item) (List, error) {
	l, ok := item.(List)
	if !ok {
		return nil, fmt.Errorf("rlp: expected list, got byte array")
	}
	return l, nil
}
