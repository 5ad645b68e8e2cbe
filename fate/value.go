// Package fate implements the FATE typed-value algebra: the integer
// framer (§4.2), the type codec (§4.3) and the value codec (§4.4) that
// recurses into both plus the RLP codec.
package fate

import (
	"fmt"
	"math/big"

	"github.com/google/btree"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/rlp"
)

// Value discriminator bytes, fixed by the wire format.
const (
	tagTrue              byte = 0xFF
	tagFalse             byte = 0x7F
	tagEmptyString       byte = 0x5F
	tagEmptyTuple        byte = 0x3F
	tagLongString        byte = 0x01
	tagShortStringMask   byte = 0x01
	tagShortTupleMask    byte = 0x0B
	tagShortListMask     byte = 0x03
	tagLongList          byte = 0x1F
	tagPosBits           byte = 0x4F
	tagNegBits           byte = 0xCF
	tagMap               byte = 0x2F
	tagStoreMap          byte = 0xBF
	tagVariant           byte = 0xAF
	tagObject            byte = 0x9F
	tagContractBytearray byte = 0x8F
)

const (
	shortStringSize = 64
	shortTupleSize  = 16
	shortListSize   = 16
)

const ordinalMap = 10

// Value is the FATE value algebra (§3): implementations are the
// exported struct types below.
type Value interface{ isValue() }

type Boolean struct{ Value bool }
type Integer struct{ Value *big.Int }
type Bits struct{ Value *big.Int }
type String struct{ Value []byte }
type Bytes struct{ Value []byte }
type ContractBytearray struct{ Value []byte }
type Address struct{ Payload []byte }
type Contract struct{ Payload []byte }
type Oracle struct{ Payload []byte }
type OracleQuery struct{ Payload []byte }
type Channel struct{ Payload []byte }
type Tuple struct{ Elems []Value }
type List struct{ Elems []Value }
type StoreMap struct {
	ID    uint64
	Cache Map
}
type Variant struct {
	Arities []uint8
	Tag     uint8
	Values  []Value
}
type Typerep struct{ Type Type }

func (Boolean) isValue()           {}
func (Integer) isValue()           {}
func (Bits) isValue()              {}
func (String) isValue()            {}
func (Bytes) isValue()             {}
func (ContractBytearray) isValue() {}
func (Address) isValue()           {}
func (Contract) isValue()          {}
func (Oracle) isValue()            {}
func (OracleQuery) isValue()       {}
func (Channel) isValue()           {}
func (Tuple) isValue()             {}
func (List) isValue()              {}
func (Map) isValue()               {}
func (StoreMap) isValue()          {}
func (Variant) isValue()           {}
func (Typerep) isValue()           {}

// MapEntry is a key/value pair held by a Map.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is an ordered key->value mapping, kept sorted by the ordinal
// total order (§3) in a google/btree tree so that encoding and
// uniqueness checks both fall out of the same comparator.
type Map struct {
	tree *btree.BTreeG[MapEntry]
}

func mapLess(a, b MapEntry) bool {
	lt, err := Less(a.Key, b.Key)
	if err != nil {
		panic(err)
	}
	return lt
}

// NewMap builds a Map from entries, last-write-wins on ordinal-equal
// keys. It does not itself enforce the uniform-variant rules; those are
// checked by Serialize.
func NewMap(entries []MapEntry) (m Map, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	tree := btree.NewG(32, mapLess)
	for _, e := range entries {
		tree.ReplaceOrInsert(e)
	}
	return Map{tree: tree}, nil
}

// Len returns the number of entries, 0 for the zero Map.
func (m Map) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Entries returns the entries in ascending ordinal order.
func (m Map) Entries() []MapEntry {
	return m.entries()
}

func (m Map) entries() []MapEntry {
	if m.tree == nil {
		return nil
	}
	out := make([]MapEntry, 0, m.tree.Len())
	m.tree.Ascend(func(e MapEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Serialize returns the canonical byte encoding of v, validating
// structural invariants (map key/value homogeneity, variant arity,
// store-map cache emptiness) recursively.
func Serialize(v Value) ([]byte, error) {
	if err := validate(v); err != nil {
		return nil, err
	}
	return encode(v), nil
}

func validate(v Value) error {
	switch vv := v.(type) {
	case Tuple:
		for _, e := range vv.Elems {
			if err := validate(e); err != nil {
				return err
			}
		}
	case List:
		for _, e := range vv.Elems {
			if err := validate(e); err != nil {
				return err
			}
		}
	case Variant:
		if int(vv.Tag) >= len(vv.Arities) {
			return fmt.Errorf("fate: %w: tag %d, %d constructors", aeerrors.ErrInvalidVariantTag, vv.Tag, len(vv.Arities))
		}
		if len(vv.Values) != int(vv.Arities[vv.Tag]) {
			return fmt.Errorf("fate: %w: tag %d expects %d values, got %d",
				aeerrors.ErrArityValuesMismatch, vv.Tag, vv.Arities[vv.Tag], len(vv.Values))
		}
		for _, e := range vv.Values {
			if err := validate(e); err != nil {
				return err
			}
		}
	case Map:
		entries := vv.entries()
		for i, e := range entries {
			ko, err := ordinal(e.Key)
			if err != nil {
				return err
			}
			if ko == ordinalMap {
				return fmt.Errorf("fate: %w", aeerrors.ErrMapAsKeyType)
			}
			vo, err := ordinal(e.Val)
			if err != nil {
				return err
			}
			if i > 0 {
				k0, _ := ordinal(entries[0].Key)
				v0, _ := ordinal(entries[0].Val)
				if ko != k0 {
					return fmt.Errorf("fate: %w", aeerrors.ErrHeteroMapKeys)
				}
				if vo != v0 {
					return fmt.Errorf("fate: %w", aeerrors.ErrHeteroMapValues)
				}
			}
			if err := validate(e.Key); err != nil {
				return err
			}
			if err := validate(e.Val); err != nil {
				return err
			}
		}
	case StoreMap:
		if vv.Cache.Len() != 0 {
			return fmt.Errorf("fate: %w", aeerrors.ErrNonEmptyStoreMapCache)
		}
	}
	return nil
}

func encode(v Value) []byte {
	switch vv := v.(type) {
	case Boolean:
		if vv.Value {
			return []byte{tagTrue}
		}
		return []byte{tagFalse}
	case Integer:
		return encodeInt(vv.Value)
	case Bits:
		return encodeBits(vv.Value)
	case String:
		return encodeStringBytes(vv.Value)
	case Bytes:
		out := []byte{tagObject, objectIDBytesValue}
		return append(out, encodeStringBytes(vv.Value)...)
	case ContractBytearray:
		out := []byte{tagContractBytearray}
		out = append(out, encodeInt(big.NewInt(int64(len(vv.Value))))...)
		return append(out, vv.Value...)
	case Address:
		return encodeObjectAddress(objectIDAddress, vv.Payload)
	case Contract:
		return encodeObjectAddress(objectIDContract, vv.Payload)
	case Oracle:
		return encodeObjectAddress(objectIDOracle, vv.Payload)
	case OracleQuery:
		return encodeObjectAddress(objectIDOracleQuery, vv.Payload)
	case Channel:
		return encodeObjectAddress(objectIDChannel, vv.Payload)
	case Tuple:
		return encodeTuple(vv.Elems)
	case List:
		return encodeList(vv.Elems)
	case Map:
		entries := vv.entries()
		out := []byte{tagMap}
		out = append(out, rlpEncodeUint(uint64(len(entries)))...)
		for _, e := range entries {
			out = append(out, encode(e.Key)...)
			out = append(out, encode(e.Val)...)
		}
		return out
	case StoreMap:
		out := []byte{tagStoreMap}
		return append(out, rlpEncodeUint(vv.ID)...)
	case Variant:
		out := []byte{tagVariant}
		out = append(out, rlp.Encode(rlp.ByteArray(vv.Arities))...)
		out = append(out, vv.Tag)
		return append(out, encodeTuple(vv.Values)...)
	case Typerep:
		return vv.Type.serializeType()
	default:
		panic(fmt.Sprintf("fate: unhandled value type %T", v))
	}
}

func encodeBits(n *big.Int) []byte {
	tag := tagPosBits
	if n.Sign() < 0 {
		tag = tagNegBits
	}
	mag := new(big.Int).Abs(n)
	out := []byte{tag}
	return append(out, rlp.Encode(rlp.ByteArray(mag.Bytes()))...)
}

func encodeStringBytes(b []byte) []byte {
	n := len(b)
	if n == 0 {
		return []byte{tagEmptyString}
	}
	if n < shortStringSize {
		out := []byte{byte(n<<2) | tagShortStringMask}
		return append(out, b...)
	}
	out := []byte{tagLongString}
	out = append(out, encodeInt(big.NewInt(int64(n-shortStringSize)))...)
	return append(out, b...)
}

func encodeObjectAddress(id byte, payload []byte) []byte {
	out := []byte{tagObject, id}
	return append(out, rlp.Encode(rlp.ByteArray(payload))...)
}

func encodeTuple(elems []Value) []byte {
	n := len(elems)
	var out []byte
	switch {
	case n == 0:
		out = []byte{tagEmptyTuple}
	case n < shortTupleSize:
		out = []byte{byte(n<<4) | tagShortTupleMask}
	default:
		out = []byte{tagShortTupleMask}
		out = append(out, rlpEncodeUint(uint64(n-shortTupleSize))...)
	}
	for _, e := range elems {
		out = append(out, encode(e)...)
	}
	return out
}

func encodeList(elems []Value) []byte {
	n := len(elems)
	var out []byte
	switch {
	case n < shortListSize:
		out = []byte{byte(n<<4) | tagShortListMask}
	default:
		out = []byte{tagLongList}
		out = append(out, rlpEncodeUint(uint64(n-shortListSize))...)
	}
	for _, e := range elems {
		out = append(out, encode(e)...)
	}
	return out
}

// rlpEncodeUint encodes n as the minimal big-endian byte array, framed
// through RLP, used for the size/id fields that spec.md describes as
// "RLP-encoded as a byte array" rather than run through the integer
// framer of §4.2.
func rlpEncodeUint(n uint64) []byte {
	return rlp.Encode(rlp.ByteArray(big.NewInt(0).SetUint64(n).Bytes()))
}

// Deserialize parses one Value from the front of b and returns the
// unconsumed remainder.
func Deserialize(b []byte) (Value, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("fate: %w: empty input", aeerrors.ErrInvalidTuple)
	}
	tag := b[0]
	if tag&1 == 0 || tag == posBigIntTag || tag == negBigIntTag {
		n, rest, err := decodeInt(b)
		if err != nil {
			return nil, nil, err
		}
		return Integer{Value: n}, rest, nil
	}
	switch tag {
	case tagTrue:
		return Boolean{Value: true}, b[1:], nil
	case tagFalse:
		return Boolean{Value: false}, b[1:], nil
	case tagEmptyString:
		return String{Value: []byte{}}, b[1:], nil
	case tagEmptyTuple:
		return Tuple{Elems: nil}, b[1:], nil
	case tagLongString:
		n, rest, err := decodeInt(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidString, err)
		}
		if !n.IsInt64() || n.Sign() < 0 {
			return nil, nil, fmt.Errorf("fate: %w: bad long-string length", aeerrors.ErrInvalidString)
		}
		strLen := int(n.Int64()) + shortStringSize
		if strLen > len(rest) {
			return nil, nil, fmt.Errorf("fate: %w: declared length %d exceeds input", aeerrors.ErrInvalidString, strLen)
		}
		return String{Value: append([]byte{}, rest[:strLen]...)}, rest[strLen:], nil
	case tagLongList:
		item, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidListSize, err)
		}
		sizeBytes, err := rlp.String(item)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidListSize, err)
		}
		n := new(big.Int).SetBytes(sizeBytes)
		if !n.IsInt64() {
			return nil, nil, fmt.Errorf("fate: %w: list size too large", aeerrors.ErrInvalidListSize)
		}
		count := int(n.Int64()) + shortListSize
		return decodeValueSeq(rest, count, func(elems []Value) Value { return List{Elems: elems} })
	case tagShortTupleMask: // 0x0B with no shifted length bits is the long-tuple marker
		item, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidTupleSize, err)
		}
		sizeBytes, err := rlp.String(item)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidTupleSize, err)
		}
		n := new(big.Int).SetBytes(sizeBytes)
		if !n.IsInt64() {
			return nil, nil, fmt.Errorf("fate: %w: tuple size too large", aeerrors.ErrInvalidTupleSize)
		}
		count := int(n.Int64()) + shortTupleSize
		return decodeValueSeq(rest, count, func(elems []Value) Value { return Tuple{Elems: elems} })
	case tagPosBits, tagNegBits:
		item, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidIntValue, err)
		}
		magBytes, err := rlp.String(item)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidIntValue, err)
		}
		mag := new(big.Int).SetBytes(magBytes)
		if tag == tagNegBits {
			mag.Neg(mag)
		}
		return Bits{Value: mag}, rest, nil
	case tagMap:
		n, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidMapSize, err)
		}
		countBytes, err := rlp.String(n)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidMapSize, err)
		}
		count := new(big.Int).SetBytes(countBytes)
		if !count.IsInt64() {
			return nil, nil, fmt.Errorf("fate: %w: map cardinality too large", aeerrors.ErrInvalidMapSize)
		}
		entries := make([]MapEntry, 0, count.Int64())
		for i := int64(0); i < count.Int64(); i++ {
			var key, val Value
			var err error
			key, rest, err = Deserialize(rest)
			if err != nil {
				return nil, nil, err
			}
			val, rest, err = Deserialize(rest)
			if err != nil {
				return nil, nil, err
			}
			entries = append(entries, MapEntry{Key: key, Val: val})
		}
		m, err := NewMap(entries)
		if err != nil {
			return nil, nil, err
		}
		if m.Len() != len(entries) {
			return nil, nil, fmt.Errorf("fate: %w: duplicate map key", aeerrors.ErrInvalidMapSize)
		}
		return m, rest, nil
	case tagStoreMap:
		item, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidMapId, err)
		}
		idBytes, err := rlp.String(item)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidMapId, err)
		}
		id := new(big.Int).SetBytes(idBytes)
		if !id.IsUint64() {
			return nil, nil, fmt.Errorf("fate: %w: id out of range", aeerrors.ErrInvalidMapId)
		}
		return StoreMap{ID: id.Uint64()}, rest, nil
	case tagVariant:
		item, rest, err := rlp.TryDecode(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrBadVariant, err)
		}
		arityBytes, err := rlp.String(item)
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrBadVariant, err)
		}
		if len(rest) == 0 {
			return nil, nil, fmt.Errorf("fate: %w: truncated variant tag", aeerrors.ErrBadVariant)
		}
		vtag := rest[0]
		rest = rest[1:]
		arities := make([]uint8, len(arityBytes))
		copy(arities, arityBytes)
		if int(vtag) >= len(arities) {
			return nil, nil, fmt.Errorf("fate: %w: tag %d, %d constructors", aeerrors.ErrTooLargeTagInVariant, vtag, len(arities))
		}
		tupleVal, rest2, err := Deserialize(rest)
		if err != nil {
			return nil, nil, err
		}
		tup, ok := tupleVal.(Tuple)
		if !ok {
			return nil, nil, fmt.Errorf("fate: %w: variant values are not a tuple", aeerrors.ErrBadVariant)
		}
		if len(tup.Elems) != int(arities[vtag]) {
			return nil, nil, fmt.Errorf("fate: %w: tag %d expects %d values, got %d",
				aeerrors.ErrTagDoesNotMatchVariant, vtag, arities[vtag], len(tup.Elems))
		}
		return Variant{Arities: arities, Tag: vtag, Values: tup.Elems}, rest2, nil
	case tagObject:
		if len(b) < 2 {
			return nil, nil, fmt.Errorf("fate: %w: truncated object", aeerrors.ErrInvalidObjectByte)
		}
		id := b[1]
		rest := b[2:]
		switch id {
		case objectIDBytesValue:
			inner, rest2, err := Deserialize(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidBytesObject, err)
			}
			s, ok := inner.(String)
			if !ok {
				return nil, nil, fmt.Errorf("fate: %w: bytes object payload is not a string", aeerrors.ErrInvalidBytesObject)
			}
			return Bytes{Value: s.Value}, rest2, nil
		case objectIDAddress, objectIDContract, objectIDOracle, objectIDOracleQuery, objectIDChannel:
			item, rest2, err := rlp.TryDecode(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidObject, err)
			}
			payload, err := rlp.String(item)
			if err != nil {
				return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidObject, err)
			}
			switch id {
			case objectIDAddress:
				return Address{Payload: payload}, rest2, nil
			case objectIDContract:
				return Contract{Payload: payload}, rest2, nil
			case objectIDOracle:
				return Oracle{Payload: payload}, rest2, nil
			case objectIDOracleQuery:
				return OracleQuery{Payload: payload}, rest2, nil
			default:
				return Channel{Payload: payload}, rest2, nil
			}
		default:
			return nil, nil, fmt.Errorf("fate: %w: 0x%02x", aeerrors.ErrInvalidObjectByte, id)
		}
	case tagContractBytearray:
		n, rest, err := decodeInt(b[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("fate: %w: %s", aeerrors.ErrInvalidContractByteArr, err)
		}
		if !n.IsInt64() || n.Sign() < 0 {
			return nil, nil, fmt.Errorf("fate: %w: bad length", aeerrors.ErrInvalidContractByteArr)
		}
		length := int(n.Int64())
		if length > len(rest) {
			return nil, nil, fmt.Errorf("fate: %w: declared length %d exceeds input", aeerrors.ErrInvalidContractByteArr, length)
		}
		return ContractBytearray{Value: append([]byte{}, rest[:length]...)}, rest[length:], nil
	}

	if tag&3 == tagShortStringMask {
		n := int(tag >> 2)
		if n+1 > len(b) {
			return nil, nil, fmt.Errorf("fate: %w: declared length %d exceeds input", aeerrors.ErrInvalidString, n)
		}
		return String{Value: append([]byte{}, b[1:1+n]...)}, b[1+n:], nil
	}
	if tag&0x0F == tagShortListMask {
		n := int(tag >> 4)
		return decodeValueSeq(b[1:], n, func(elems []Value) Value { return List{Elems: elems} })
	}
	if tag&0x0F == tagShortTupleMask {
		n := int(tag >> 4)
		return decodeValueSeq(b[1:], n, func(elems []Value) Value { return Tuple{Elems: elems} })
	}
	if tag&0x0F == 0x07 {
		t, rest, err := DeserializeType(b)
		if err != nil {
			return nil, nil, err
		}
		return Typerep{Type: t}, rest, nil
	}
	return nil, nil, fmt.Errorf("fate: %w: unrecognized value tag 0x%02x", aeerrors.ErrInvalidTupleOrVariant, tag)
}

func decodeValueSeq(b []byte, n int, build func([]Value) Value) (Value, []byte, error) {
	elems := make([]Value, 0, n)
	rest := b
	for i := 0; i < n; i++ {
		var v Value
		var err error
		v, rest, err = Deserialize(rest)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, v)
	}
	return build(elems), rest, nil
}
