package fate

import (
	"fmt"
	"math/big"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/rlp"
)

// smallIntSize is the magnitude boundary below which an integer packs
// into a single byte.
const smallIntSize = 64

const (
	posBigIntTag byte = 0x6F
	negBigIntTag byte = 0xEF
)

// encodeInt frames n in the sign+magnitude scheme shared by Integer and
// Bits: magnitudes below smallIntSize pack into one byte, larger ones
// use a discriminator byte followed by (magnitude-smallIntSize) as an
// RLP byte array.
func encodeInt(n *big.Int) []byte {
	neg := n.Sign() < 0
	mag := new(big.Int).Abs(n)
	if mag.IsInt64() && mag.Int64() < smallIntSize {
		m := byte(mag.Int64())
		var sign byte
		if neg {
			sign = 1
		}
		return []byte{(sign << 7) | (m << 1)}
	}
	rest := new(big.Int).Sub(mag, big.NewInt(smallIntSize))
	tag := posBigIntTag
	if neg {
		tag = negBigIntTag
	}
	encoded := rlp.Encode(rlp.ByteArray(rest.Bytes()))
	out := make([]byte, 0, 1+len(encoded))
	out = append(out, tag)
	return append(out, encoded...)
}

// decodeInt reads one framed integer from the front of b and returns
// the value and the unconsumed remainder.
func decodeInt(b []byte) (*big.Int, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("fate: %w: empty integer", aeerrors.ErrInvalidIntValue)
	}
	tag := b[0]
	if tag&1 == 0 {
		sign := (tag >> 7) & 1
		mag := int64((tag & 0b0111_1110) >> 1)
		n := big.NewInt(mag)
		if sign == 1 {
			n.Neg(n)
		}
		return n, b[1:], nil
	}
	if tag != posBigIntTag && tag != negBigIntTag {
		return nil, nil, fmt.Errorf("fate: %w: unrecognized integer tag 0x%02x", aeerrors.ErrInvalidIntValue, tag)
	}
	item, rest, err := rlp.TryDecode(b[1:])
	if err != nil {
		return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidIntValue, err)
	}
	magBytes, err := rlp.String(item)
	if err != nil {
		return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidIntValue, err)
	}
	if len(magBytes) > 0 && magBytes[0] == 0 {
		return nil, nil, fmt.Errorf("fate: %w: leading zero in integer magnitude", aeerrors.ErrInvalidIntValue)
	}
	rest0 := new(big.Int).SetBytes(magBytes)
	n := new(big.Int).Add(rest0, big.NewInt(smallIntSize))
	if tag == negBigIntTag {
		n.Neg(n)
	}
	return n, rest, nil
}
