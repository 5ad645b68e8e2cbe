package aeid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func payload32(seed byte) []byte {
	p := make([]byte, PayloadSize)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	id, err := New(TagAccount, payload32(1))
	require.NoError(t, err)
	enc := id.Serialize()
	require.Len(t, enc, SerializedSize)
	got, err := Deserialize(enc)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestDeserializeRejectsWrongSize(t *testing.T) {
	_, err := Deserialize(make([]byte, 10))
	require.Error(t, err)
}

func TestDeserializeRejectsBadTag(t *testing.T) {
	buf := append([]byte{0}, payload32(1)...)
	_, err := Deserialize(buf)
	require.Error(t, err)

	buf[0] = 7
	_, err = Deserialize(buf)
	require.Error(t, err)
}

func TestNewRejectsBadPayloadLength(t *testing.T) {
	_, err := New(TagAccount, make([]byte, 10))
	require.Error(t, err)
}

func TestRLPRoundTrip(t *testing.T) {
	id, err := New(TagContract, payload32(5))
	require.NoError(t, err)
	item := id.ToRLPItem()
	got, err := FromRLPItem(item)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestAllTagsValid(t *testing.T) {
	for _, tag := range []Tag{TagAccount, TagName, TagCommitment, TagOracle, TagContract, TagChannel} {
		id, err := New(tag, payload32(byte(tag)))
		require.NoError(t, err)
		require.Equal(t, tag, id.Tag)
	}
}
