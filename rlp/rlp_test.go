package rlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeEmptyByteArray(t *testing.T) {
	require.Equal(t, []byte{0x80}, Encode(ByteArray{}))
}

func TestEncodeEmptyList(t *testing.T) {
	require.Equal(t, []byte{0xC0}, Encode(List{}))
}

func TestEncodeSingleByteIsIdentity(t *testing.T) {
	for b := 0; b <= 0x7F; b++ {
		got := Encode(ByteArray{byte(b)})
		require.Equal(t, []byte{byte(b)}, got, "byte 0x%02x", b)
	}
}

func TestEncodeSingleByteAboveLimitIsTagged(t *testing.T) {
	require.Equal(t, []byte{0x81, 0x80}, Encode(ByteArray{0x80}))
}

func TestEncodeShortByteArray(t *testing.T) {
	got := Encode(ByteArray("dog"))
	require.Equal(t, []byte{0x83, 'd', 'o', 'g'}, got)
}

func TestEncodeLongByteArrayBoundary(t *testing.T) {
	// length 55 stays short form; length 56 switches to long form.
	short := make([]byte, 55)
	long := make([]byte, 56)
	gotShort := Encode(ByteArray(short))
	require.Equal(t, byte(0x80+55), gotShort[0])

	gotLong := Encode(ByteArray(long))
	require.Equal(t, byte(0xB8), gotLong[0]) // 184: one size byte
	require.Equal(t, byte(56), gotLong[1])
}

func TestEncodeListBoundary(t *testing.T) {
	// 56 single bytes (each encodes to 1 byte) => body length 56 => long form.
	items := make(List, 56)
	for i := range items {
		items[i] = ByteArray{0x01}
	}
	got := Encode(items)
	require.Equal(t, byte(0xF8), got[0]) // 248: one size byte
	require.Equal(t, byte(56), got[1])
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []Item{
		ByteArray{},
		ByteArray{0x00},
		ByteArray{0x7F},
		ByteArray{0x80},
		ByteArray("dog"),
		ByteArray(make([]byte, 55)),
		ByteArray(make([]byte, 56)),
		ByteArray(make([]byte, 1024)),
		List{},
		List{ByteArray("cat"), ByteArray("dog")},
		List{List{ByteArray{0x01}}, ByteArray{0x02}},
	}
	for _, item := range cases {
		enc := Encode(item)
		got, err := Decode(enc)
		require.NoError(t, err)
		require.Equal(t, item, got)
	}
}

func TestDecodeTrailing(t *testing.T) {
	_, err := Decode([]byte{0x80, 0x80})
	require.Error(t, err)
	require.IsType(t, &Trailing{}, err)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	require.IsType(t, &Empty{}, err)
}

func TestDecodeLeadingZeroInSize(t *testing.T) {
	// tag 184 (one size byte) with a zero size byte is non-canonical.
	_, _, err := TryDecode([]byte{0xB8, 0x00, 0x01})
	require.Error(t, err)
	require.IsType(t, &LeadingZerosInSize{}, err)
}

func TestDecodeSizeOverflow(t *testing.T) {
	_, _, err := TryDecode([]byte{0x83, 'd', 'o'})
	require.Error(t, err)
	require.IsType(t, &SizeOverflow{}, err)
}

func TestTryDecodeReturnsRemainder(t *testing.T) {
	enc := append(Encode(ByteArray("dog")), Encode(ByteArray("cat"))...)
	item, rest, err := TryDecode(enc)
	require.NoError(t, err)
	require.Equal(t, ByteArray("dog"), item)
	require.Equal(t, Encode(ByteArray("cat")), rest)
}

func TestCanonicalEncodeOfDecode(t *testing.T) {
	enc := Encode(List{ByteArray("dog"), ByteArray(make([]byte, 60))})
	item, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, enc, Encode(item))
}
