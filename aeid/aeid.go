// Package aeid implements the 33-byte tagged identifier (§4.5): one tag
// byte drawn from a fixed enum followed by a 32-byte payload, with a
// round-trip through rlp.ByteArray.
package aeid

import (
	"fmt"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/rlp"
)

// Tag enumerates the kinds of on-chain object an ID can name.
type Tag uint8

const (
	TagAccount    Tag = 1
	TagName       Tag = 2
	TagCommitment Tag = 3
	TagOracle     Tag = 4
	TagContract   Tag = 5
	TagChannel    Tag = 6
)

func (t Tag) valid() bool { return t >= TagAccount && t <= TagChannel }

// PayloadSize is the fixed width of an identifier's payload.
const PayloadSize = 32

// SerializedSize is PayloadSize plus the one tag byte.
const SerializedSize = PayloadSize + 1

// ID is a total 33-byte value: a tag plus its 32-byte payload.
type ID struct {
	Tag     Tag
	Payload [PayloadSize]byte
}

// New builds an ID, rejecting a payload of the wrong length.
func New(tag Tag, payload []byte) (ID, error) {
	if !tag.valid() {
		return ID{}, fmt.Errorf("aeid: %w: %d", aeerrors.ErrInvalidIdTag, tag)
	}
	if len(payload) != PayloadSize {
		return ID{}, fmt.Errorf("aeid: %w: got %d bytes, want %d", aeerrors.ErrInvalidIdPub, len(payload), PayloadSize)
	}
	var id ID
	id.Tag = tag
	copy(id.Payload[:], payload)
	return id, nil
}

// Serialize emits the 33-byte wire form: tag byte followed by payload.
func (id ID) Serialize() []byte {
	out := make([]byte, 0, SerializedSize)
	out = append(out, byte(id.Tag))
	return append(out, id.Payload[:]...)
}

// Deserialize parses an ID from an exact 33-byte buffer.
func Deserialize(b []byte) (ID, error) {
	if len(b) != SerializedSize {
		return ID{}, fmt.Errorf("aeid: %w: got %d bytes, want %d", aeerrors.ErrInvalidIdSize, len(b), SerializedSize)
	}
	tag := Tag(b[0])
	if !tag.valid() {
		return ID{}, fmt.Errorf("aeid: %w: %d", aeerrors.ErrInvalidIdTag, tag)
	}
	return New(tag, b[1:])
}

// ToRLPItem frames the identifier's 33-byte wire form as a single RLP
// byte array; an identifier is never an RLP list.
func (id ID) ToRLPItem() rlp.Item {
	return rlp.ByteArray(id.Serialize())
}

// FromRLPItem recovers an ID from an RLP byte array produced by
// ToRLPItem.
func FromRLPItem(item rlp.Item) (ID, error) {
	b, err := rlp.String(item)
	if err != nil {
		return ID{}, fmt.Errorf("aeid: %w: %s", aeerrors.ErrInvalidIdSize, err)
	}
	return Deserialize(b)
}
