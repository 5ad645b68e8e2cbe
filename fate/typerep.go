package fate

import (
	"fmt"
	"math/big"

	"github.com/aeternity/aeserialization-go/aeerrors"
)

// Type tag bytes, fixed by the wire format.
const (
	typeTagInteger           byte = 0x07
	typeTagBoolean           byte = 0x17
	typeTagList              byte = 0x27
	typeTagTuple             byte = 0x37
	typeTagObject            byte = 0x47
	typeTagBits              byte = 0x57
	typeTagMap               byte = 0x67
	typeTagString            byte = 0x77
	typeTagVariant           byte = 0x87
	typeTagBytes             byte = 0x97
	typeTagContractBytearray byte = 0xA7
	typeTagTVar              byte = 0xE7
	typeTagAny               byte = 0xF7
)

// Object-id table shared by Type and Value object encodings. id 1 is
// reserved for the Bytes value object and must never appear as a Type.
const (
	objectIDAddress     byte = 0
	objectIDBytesValue  byte = 1
	objectIDContract    byte = 2
	objectIDOracle      byte = 3
	objectIDOracleQuery byte = 4
	objectIDChannel     byte = 5
)

// maxVariantOrTupleArity is the wire format's hard cap on tuple/variant
// element counts: the count is framed as a single byte.
const maxVariantOrTupleArity = 255

// Type is the FATE type algebra (§4.3): implementations are the
// exported *Type marker/struct types below.
type Type interface {
	isType()
	serializeType() []byte
}

// simpleType covers every type with no payload beyond its tag byte.
type simpleType struct{ tag byte }

func (simpleType) isType() {}
func (t simpleType) serializeType() []byte { return []byte{t.tag} }

var (
	TAny                = simpleType{typeTagAny}
	TBoolean            = simpleType{typeTagBoolean}
	TInteger            = simpleType{typeTagInteger}
	TBits               = simpleType{typeTagBits}
	TString             = simpleType{typeTagString}
	TContractBytearray  = simpleType{typeTagContractBytearray}
)

// object types share the object tag and a second object-id byte.
type objectType struct{ id byte }

func (objectType) isType() {}
func (t objectType) serializeType() []byte {
	return []byte{typeTagObject, t.id}
}

var (
	TAddress     = objectType{objectIDAddress}
	TContract    = objectType{objectIDContract}
	TOracle      = objectType{objectIDOracle}
	TOracleQuery = objectType{objectIDOracleQuery}
	TChannel     = objectType{objectIDChannel}
)

// TVar is a parametric type variable indexed by a single byte.
type TVar struct{ Index uint8 }

func (TVar) isType() {}
func (t TVar) serializeType() []byte {
	return []byte{typeTagTVar, t.Index}
}

// BytesType is either Unsized or Sized(N), distinguished by embedding an
// Integer of -1 (Unsized) or the non-negative size.
type BytesType struct {
	Unsized bool
	Size    int
}

func (BytesType) isType() {}
func (t BytesType) serializeType() []byte {
	n := big.NewInt(-1)
	if !t.Unsized {
		n = big.NewInt(int64(t.Size))
	}
	out := []byte{typeTagBytes}
	return append(out, encodeInt(n)...)
}

// ListType is a homogeneous list of Elem.
type ListType struct{ Elem Type }

func (ListType) isType() {}
func (t ListType) serializeType() []byte {
	out := []byte{typeTagList}
	return append(out, t.Elem.serializeType()...)
}

// TupleType is an ordered, fixed-arity sequence of element types.
type TupleType struct{ Elems []Type }

func (TupleType) isType() {}
func (t TupleType) serializeType() []byte {
	out := []byte{typeTagTuple, byte(len(t.Elems))}
	for _, e := range t.Elems {
		out = append(out, e.serializeType()...)
	}
	return out
}

// VariantType is the type-level counterpart of Variant: one element
// type per constructor.
type VariantType struct{ Cases []Type }

func (VariantType) isType() {}
func (t VariantType) serializeType() []byte {
	out := []byte{typeTagVariant, byte(len(t.Cases))}
	for _, c := range t.Cases {
		out = append(out, c.serializeType()...)
	}
	return out
}

// MapType is Key->Val.
type MapType struct{ Key, Val Type }

func (MapType) isType() {}
func (t MapType) serializeType() []byte {
	out := []byte{typeTagMap}
	out = append(out, t.Key.serializeType()...)
	return append(out, t.Val.serializeType()...)
}

// SerializeType returns the canonical byte encoding of t.
func SerializeType(t Type) ([]byte, error) {
	if tup, ok := t.(TupleType); ok && len(tup.Elems) > maxVariantOrTupleArity {
		return nil, fmt.Errorf("fate: %w: %d elements", aeerrors.ErrTupleSizeLimitExceeded, len(tup.Elems))
	}
	if v, ok := t.(VariantType); ok && len(v.Cases) > maxVariantOrTupleArity {
		return nil, fmt.Errorf("fate: %w: %d cases", aeerrors.ErrVariantSizeLimitExceeded, len(v.Cases))
	}
	return t.serializeType(), nil
}

// DeserializeType parses one Type from the front of b and returns the
// unconsumed remainder.
func DeserializeType(b []byte) (Type, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("fate: %w: empty input", aeerrors.ErrInvalidTypeId)
	}
	tag := b[0]
	rest := b[1:]
	switch tag {
	case typeTagAny:
		return TAny, rest, nil
	case typeTagBoolean:
		return TBoolean, rest, nil
	case typeTagInteger:
		return TInteger, rest, nil
	case typeTagBits:
		return TBits, rest, nil
	case typeTagString:
		return TString, rest, nil
	case typeTagContractBytearray:
		return TContractBytearray, rest, nil
	case typeTagObject:
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("fate: %w: truncated object type", aeerrors.ErrInvalidTypeObjectByte)
		}
		id, rest2 := rest[0], rest[1:]
		switch id {
		case objectIDAddress:
			return TAddress, rest2, nil
		case objectIDContract:
			return TContract, rest2, nil
		case objectIDOracle:
			return TOracle, rest2, nil
		case objectIDOracleQuery:
			return TOracleQuery, rest2, nil
		case objectIDChannel:
			return TChannel, rest2, nil
		default:
			return nil, nil, fmt.Errorf("fate: %w: 0x%02x", aeerrors.ErrInvalidTypeObjectByte, id)
		}
	case typeTagTVar:
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("fate: %w: truncated tvar", aeerrors.ErrInvalidTypeVar)
		}
		return TVar{Index: rest[0]}, rest[1:], nil
	case typeTagBytes:
		n, rest2, err := decodeInt(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidBytesType, err)
		}
		if n.Sign() < 0 {
			return BytesType{Unsized: true}, rest2, nil
		}
		if !n.IsInt64() {
			return nil, nil, fmt.Errorf("fate: %w", aeerrors.ErrBytesSizeTooBig)
		}
		return BytesType{Size: int(n.Int64())}, rest2, nil
	case typeTagList:
		elem, rest2, err := DeserializeType(rest)
		if err != nil {
			return nil, nil, err
		}
		return ListType{Elem: elem}, rest2, nil
	case typeTagTuple:
		return deserializeTypeSeq(rest, func(elems []Type) Type { return TupleType{Elems: elems} })
	case typeTagVariant:
		return deserializeTypeSeq(rest, func(elems []Type) Type { return VariantType{Cases: elems} })
	case typeTagMap:
		key, rest2, err := DeserializeType(rest)
		if err != nil {
			return nil, nil, err
		}
		val, rest3, err := DeserializeType(rest2)
		if err != nil {
			return nil, nil, err
		}
		return MapType{Key: key, Val: val}, rest3, nil
	default:
		return nil, nil, fmt.Errorf("fate: %w: 0x%02x", aeerrors.ErrInvalidTypeId, tag)
	}
}

func deserializeTypeSeq(b []byte, build func([]Type) Type) (Type, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("fate: %w: truncated tuple/variant arity", aeerrors.ErrInvalidTypeId)
	}
	n := int(b[0])
	rest := b[1:]
	elems := make([]Type, 0, n)
	for i := 0; i < n; i++ {
		var elem Type
		var err error
		elem, rest, err = DeserializeType(rest)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, elem)
	}
	return build(elems), rest, nil
}
