package rlp

import "fmt"

// Trailing is returned by Decode when extra bytes remain after a single
// canonical item has been consumed.
type Trailing struct {
	Input     []byte
	Decoded   int
	Undecoded []byte
}

func (e *Trailing) Error() string {
	return fmt.Sprintf("rlp: trailing bytes: decoded %d of %d input bytes, %d undecoded",
		e.Decoded, len(e.Input), len(e.Undecoded))
}

// LeadingZerosInSize is returned when a tagged length field's leading
// byte is zero, which is never canonical.
type LeadingZerosInSize struct {
	Position int
}

func (e *LeadingZerosInSize) Error() string {
	return fmt.Sprintf("rlp: leading zero byte in tagged size field at position %d", e.Position)
}

// SizeOverflow is returned when a declared length exceeds the bytes
// actually remaining in the input.
type SizeOverflow struct {
	Position int
	Expected int
	Actual   int
}

func (e *SizeOverflow) Error() string {
	return fmt.Sprintf("rlp: size overflow at position %d: expected %d bytes, only %d remain",
		e.Position, e.Expected, e.Actual)
}

// Empty is returned by TryDecode/Decode on zero-length input.
type Empty struct{}

func (e *Empty) Error() string { return "rlp: empty input" }
