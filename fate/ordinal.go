package fate

import (
	"bytes"
	"fmt"
)

// ordinal gives the cross-variant position in the total order used to
// compare heterogeneous map keys (§3). Lower sorts first.
func ordinal(v Value) (int, error) {
	switch v.(type) {
	case Integer:
		return 0, nil
	case Boolean:
		return 1, nil
	case Address:
		return 2, nil
	case Channel:
		return 3, nil
	case Contract:
		return 4, nil
	case Oracle:
		return 5, nil
	case Bytes:
		return 6, nil
	case Bits:
		return 7, nil
	case String:
		return 8, nil
	case Tuple:
		return 9, nil
	case Map:
		return 10, nil
	case List:
		return 11, nil
	case Variant:
		return 12, nil
	case OracleQuery:
		return 13, nil
	case ContractBytearray:
		return 14, nil
	default:
		return 0, fmt.Errorf("fate: value of type %T is not comparable", v)
	}
}

// Less implements the total order of §3: cross-variant by ordinal, then
// a natural within-variant comparison, extended lexicographically for
// composites. Typerep and StoreMap refuse to compare.
func Less(a, b Value) (bool, error) {
	oa, err := ordinal(a)
	if err != nil {
		return false, err
	}
	ob, err := ordinal(b)
	if err != nil {
		return false, err
	}
	if oa != ob {
		return oa < ob, nil
	}
	switch av := a.(type) {
	case Integer:
		return av.Value.Cmp(b.(Integer).Value) < 0, nil
	case Boolean:
		return !av.Value && b.(Boolean).Value, nil
	case Address:
		return bytes.Compare(av.Payload, b.(Address).Payload) < 0, nil
	case Channel:
		return bytes.Compare(av.Payload, b.(Channel).Payload) < 0, nil
	case Contract:
		return bytes.Compare(av.Payload, b.(Contract).Payload) < 0, nil
	case Oracle:
		return bytes.Compare(av.Payload, b.(Oracle).Payload) < 0, nil
	case OracleQuery:
		return bytes.Compare(av.Payload, b.(OracleQuery).Payload) < 0, nil
	case Bytes:
		return bytes.Compare(av.Value, b.(Bytes).Value) < 0, nil
	case ContractBytearray:
		return bytes.Compare(av.Value, b.(ContractBytearray).Value) < 0, nil
	case String:
		return bytes.Compare(av.Value, b.(String).Value) < 0, nil
	case Bits:
		return av.Value.Cmp(b.(Bits).Value) < 0, nil
	case Tuple:
		return lessSeq(av.Elems, b.(Tuple).Elems)
	case List:
		return lessSeq(av.Elems, b.(List).Elems)
	case Variant:
		return lessVariant(av, b.(Variant))
	case Map:
		return lessMap(av, b.(Map))
	default:
		return false, fmt.Errorf("fate: value of type %T is not comparable", a)
	}
}

// lessSeq extends Less lexicographically over ordered element sequences.
func lessSeq(a, b []Value) (bool, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		lt, err := Less(a[i], b[i])
		if err != nil {
			return false, err
		}
		if lt {
			return true, nil
		}
		gt, err := Less(b[i], a[i])
		if err != nil {
			return false, err
		}
		if gt {
			return false, nil
		}
	}
	return len(a) < len(b), nil
}

func lessVariant(a, b Variant) (bool, error) {
	if a.Tag != b.Tag {
		return a.Tag < b.Tag, nil
	}
	return lessSeq(a.Values, b.Values)
}

func lessMap(a, b Map) (bool, error) {
	ae, be := a.entries(), b.entries()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		lt, err := Less(ae[i].Key, be[i].Key)
		if err != nil {
			return false, err
		}
		if lt {
			return true, nil
		}
		gt, err := Less(be[i].Key, ae[i].Key)
		if err != nil {
			return false, err
		}
		if gt {
			return false, nil
		}
		lt, err = Less(ae[i].Val, be[i].Val)
		if err != nil {
			return false, err
		}
		if lt {
			return true, nil
		}
		gt, err = Less(be[i].Val, ae[i].Val)
		if err != nil {
			return false, err
		}
		if gt {
			return false, nil
		}
	}
	return len(ae) < len(be), nil
}
