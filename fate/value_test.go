package fate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	enc, err := Serialize(v)
	require.NoError(t, err)
	got, rest, err := Deserialize(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	// canonicality: re-encoding the decoded value reproduces the bytes.
	enc2, err := Serialize(got)
	require.NoError(t, err)
	require.Equal(t, enc, enc2)
	return got
}

func TestBooleanRoundTrip(t *testing.T) {
	require.Equal(t, Boolean{true}, roundTrip(t, Boolean{true}))
	require.Equal(t, Boolean{false}, roundTrip(t, Boolean{false}))
	require.Equal(t, []byte{0xFF}, mustEncode(t, Boolean{true}))
	require.Equal(t, []byte{0x7F}, mustEncode(t, Boolean{false}))
}

func mustEncode(t *testing.T, v Value) []byte {
	t.Helper()
	enc, err := Serialize(v)
	require.NoError(t, err)
	return enc
}

func TestIntegerBoundary(t *testing.T) {
	for _, n := range []int64{-65, -64, -63, 0, 63, 64, 65} {
		v := Integer{Value: big.NewInt(n)}
		got := roundTrip(t, v)
		require.Zero(t, got.(Integer).Value.Cmp(big.NewInt(n)), "n=%d", n)

		enc := mustEncode(t, v)
		lowBitZero := enc[0]&1 == 0
		require.Equal(t, n > -64 && n < 64, lowBitZero, "n=%d enc[0]=0x%02x", n, enc[0])
	}
}

func TestStringShortLongBoundary(t *testing.T) {
	for _, n := range []int{0, 1, 62, 63, 64, 65} {
		s := make([]byte, n)
		for i := range s {
			s[i] = 'a'
		}
		got := roundTrip(t, String{Value: s})
		require.Equal(t, s, got.(String).Value)
	}
}

func TestTupleShortLongBoundary(t *testing.T) {
	for _, n := range []int{0, 1, 14, 15, 16, 17} {
		elems := make([]Value, n)
		for i := range elems {
			elems[i] = Integer{Value: big.NewInt(int64(i))}
		}
		got := roundTrip(t, Tuple{Elems: elems})
		require.Len(t, got.(Tuple).Elems, n)
	}
}

func TestListShortLongBoundary(t *testing.T) {
	for _, n := range []int{0, 1, 14, 15, 16, 17} {
		elems := make([]Value, n)
		for i := range elems {
			elems[i] = Integer{Value: big.NewInt(int64(i))}
		}
		got := roundTrip(t, List{Elems: elems})
		require.Len(t, got.(List).Elems, n)
	}
}

func TestBitsRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 1000000, -1000000} {
		got := roundTrip(t, Bits{Value: big.NewInt(n)})
		require.Zero(t, got.(Bits).Value.Cmp(big.NewInt(n)))
	}
}

func TestBytesValueRoundTrip(t *testing.T) {
	got := roundTrip(t, Bytes{Value: []byte("hello")})
	require.Equal(t, []byte("hello"), got.(Bytes).Value)
}

func TestContractBytearrayRoundTrip(t *testing.T) {
	got := roundTrip(t, ContractBytearray{Value: []byte("bytecode")})
	require.Equal(t, []byte("bytecode"), got.(ContractBytearray).Value)
}

func TestObjectAddressesRoundTrip(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	cases := []Value{
		Address{Payload: payload},
		Contract{Payload: payload},
		Oracle{Payload: payload},
		OracleQuery{Payload: payload},
		Channel{Payload: payload},
	}
	for _, c := range cases {
		got := roundTrip(t, c)
		require.Equal(t, c, got)
	}
}

func TestMapRoundTrip(t *testing.T) {
	entries := []MapEntry{
		{Key: Integer{Value: big.NewInt(2)}, Val: String{Value: []byte("b")}},
		{Key: Integer{Value: big.NewInt(1)}, Val: String{Value: []byte("a")}},
	}
	m, err := NewMap(entries)
	require.NoError(t, err)
	got := roundTrip(t, m)
	gm := got.(Map)
	require.Equal(t, 2, gm.Len())
	es := gm.Entries()
	// ascending ordinal order: Integer(1) before Integer(2)
	require.True(t, es[0].Key.(Integer).Value.Cmp(es[1].Key.(Integer).Value) < 0)
}

func TestMapEmptyAlwaysSerializes(t *testing.T) {
	m, err := NewMap(nil)
	require.NoError(t, err)
	_, err = Serialize(m)
	require.NoError(t, err)
}

func TestMapAsKeyTypeRejected(t *testing.T) {
	innerMap, err := NewMap(nil)
	require.NoError(t, err)
	m, err := NewMap([]MapEntry{{Key: innerMap, Val: Boolean{true}}})
	require.NoError(t, err)
	_, err = Serialize(m)
	require.Error(t, err)
}

func TestHeteroMapKeysRejected(t *testing.T) {
	m, err := NewMap([]MapEntry{
		{Key: Integer{Value: big.NewInt(1)}, Val: Boolean{true}},
		{Key: String{Value: []byte("x")}, Val: Boolean{false}},
	})
	require.NoError(t, err)
	_, err = Serialize(m)
	require.Error(t, err)
}

func TestHeteroMapValuesRejected(t *testing.T) {
	m, err := NewMap([]MapEntry{
		{Key: Integer{Value: big.NewInt(1)}, Val: Boolean{true}},
		{Key: Integer{Value: big.NewInt(2)}, Val: String{Value: []byte("x")}},
	})
	require.NoError(t, err)
	_, err = Serialize(m)
	require.Error(t, err)
}

func TestStoreMapRoundTrip(t *testing.T) {
	got := roundTrip(t, StoreMap{ID: 42})
	require.Equal(t, uint64(42), got.(StoreMap).ID)
}

func TestStoreMapNonEmptyCacheRejected(t *testing.T) {
	cache, err := NewMap([]MapEntry{{Key: Integer{Value: big.NewInt(1)}, Val: Boolean{true}}})
	require.NoError(t, err)
	_, err = Serialize(StoreMap{ID: 1, Cache: cache})
	require.Error(t, err)
}

func TestVariantRoundTrip(t *testing.T) {
	v := Variant{Arities: []uint8{0, 2, 1}, Tag: 1, Values: []Value{Boolean{true}, Integer{Value: big.NewInt(5)}}}
	got := roundTrip(t, v)
	gv := got.(Variant)
	require.Equal(t, v.Tag, gv.Tag)
	require.Equal(t, v.Arities, gv.Arities)
	require.Equal(t, v.Values, gv.Values)
}

func TestVariantInvalidTagRejected(t *testing.T) {
	v := Variant{Arities: []uint8{1}, Tag: 5, Values: []Value{Boolean{true}}}
	_, err := Serialize(v)
	require.Error(t, err)
}

func TestVariantArityMismatchRejected(t *testing.T) {
	v := Variant{Arities: []uint8{2}, Tag: 0, Values: []Value{Boolean{true}}}
	_, err := Serialize(v)
	require.Error(t, err)
}

func TestTyperepRoundTrip(t *testing.T) {
	typ := TupleType{Elems: []Type{TInteger, TBoolean}}
	got := roundTrip(t, Typerep{Type: typ})
	require.Equal(t, typ, got.(Typerep).Type)
}

func TestNestedCompositeRoundTrip(t *testing.T) {
	v := Tuple{Elems: []Value{
		List{Elems: []Value{Integer{Value: big.NewInt(1)}, Integer{Value: big.NewInt(2)}}},
		String{Value: []byte("nested")},
	}}
	got := roundTrip(t, v)
	require.Equal(t, v, got)
}
