package fate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeIntSmallFormLowBit(t *testing.T) {
	for _, n := range []int64{0, 1, 63, -1, -63} {
		enc := encodeInt(big.NewInt(n))
		require.Len(t, enc, 1)
		require.Zero(t, enc[0]&1)
	}
}

func TestEncodeIntLargeFormDiscriminator(t *testing.T) {
	enc := encodeInt(big.NewInt(64))
	require.Equal(t, posBigIntTag, enc[0])
	enc = encodeInt(big.NewInt(-64))
	require.Equal(t, negBigIntTag, enc[0])
}

func TestDecodeIntRoundTrip(t *testing.T) {
	for _, n := range []int64{-1000000, -65, -64, -63, 0, 63, 64, 65, 1000000} {
		enc := encodeInt(big.NewInt(n))
		got, rest, err := decodeInt(enc)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Zero(t, got.Cmp(big.NewInt(n)))
	}
}

func TestDecodeIntRejectsLeadingZeroMagnitude(t *testing.T) {
	// posBigIntTag followed by an RLP byte array whose payload starts
	// with a zero byte is not canonical.
	_, _, err := decodeInt([]byte{posBigIntTag, 0x82, 0x00, 0x01})
	require.Error(t, err)
}
