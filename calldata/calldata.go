// Package calldata implements the call-data envelope FATE contracts
// use to dispatch an entrypoint call: a two-element tuple pairing the
// function's symbol id with its argument tuple (§4.8).
package calldata

import (
	"fmt"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/fate"
	"github.com/aeternity/aeserialization-go/fatehash"
)

// Create serializes a call to funName with args into the FATE-encoded
// call-data buffer: Tuple([Bytes(id4(funName)), Tuple(args)]).
func Create(funName string, args []fate.Value) ([]byte, error) {
	id4 := fatehash.ID4(funName)
	envelope := fate.Tuple{Elems: []fate.Value{
		fate.Bytes{Value: id4[:]},
		fate.Tuple{Elems: args},
	}}
	enc, err := fate.Serialize(envelope)
	if err != nil {
		return nil, fmt.Errorf("calldata: %w", err)
	}
	return enc, nil
}

// Decode parses an encoded call-data buffer and returns its argument
// list, verifying that the embedded function id matches funName.
func Decode(funName string, encoded []byte) ([]fate.Value, error) {
	v, rest, err := fate.Deserialize(encoded)
	if err != nil {
		return nil, fmt.Errorf("calldata: %w: %s", aeerrors.ErrCalldataDecode, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("calldata: %w: trailing bytes after call-data", aeerrors.ErrCalldataDecode)
	}
	outer, ok := v.(fate.Tuple)
	if !ok || len(outer.Elems) != 2 {
		return nil, fmt.Errorf("calldata: %w: not a two-element tuple", aeerrors.ErrCalldataDecode)
	}
	funIDVal, ok := outer.Elems[0].(fate.Bytes)
	if !ok {
		return nil, fmt.Errorf("calldata: %w: function id field is not bytes", aeerrors.ErrCalldataDecode)
	}
	wantID := fatehash.ID4(funName)
	if len(funIDVal.Value) != len(wantID) || !equalBytes(funIDVal.Value, wantID[:]) {
		return nil, fmt.Errorf("calldata: %w: function id does not match %q", aeerrors.ErrCalldataDecode, funName)
	}
	argsVal, ok := outer.Elems[1].(fate.Tuple)
	if !ok {
		return nil, fmt.Errorf("calldata: %w: argument field is not a tuple", aeerrors.ErrCalldataDecode)
	}
	return argsVal.Elems, nil
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
