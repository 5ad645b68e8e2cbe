// Package contractcode implements the fixed-layout RLP record holding a
// contract's byte-code plus its metadata (§4.7).
package contractcode

import (
	"fmt"

	"github.com/aeternity/aeserialization-go/aeerrors"
	"github.com/aeternity/aeserialization-go/rlp"
)

const (
	codeTag byte = 70
	version byte = 3
)

// TypeInfo is one entry of a legacy contract's type-info table. Modern
// contracts always carry an empty TypeInfo list.
type TypeInfo struct {
	TypeHash []byte
	Name     []byte
	Payable  bool
	ArgType  []byte
	OutType  []byte
}

// Code is the full contract code record (§3 "Contract code record").
type Code struct {
	ByteCode        []byte
	Payable         bool
	SourceHash      []byte
	CompilerVersion []byte
	TypeInfo        []TypeInfo
}

// Serialize emits the seven-field RLP list: tag, version, source hash,
// type-info list, byte-code, compiler version, payable.
func (c Code) Serialize() []byte {
	typeInfoList := make(rlp.List, len(c.TypeInfo))
	for i, ti := range c.TypeInfo {
		typeInfoList[i] = ti.toRLPItem()
	}
	list := rlp.List{
		rlp.ByteArray{codeTag},
		rlp.ByteArray{version},
		rlp.ByteArray(c.SourceHash),
		typeInfoList,
		rlp.ByteArray(c.ByteCode),
		rlp.ByteArray(c.CompilerVersion),
		boolItem(c.Payable),
	}
	return rlp.Encode(list)
}

func (ti TypeInfo) toRLPItem() rlp.Item {
	return rlp.List{
		rlp.ByteArray(ti.TypeHash),
		rlp.ByteArray(ti.Name),
		boolItem(ti.Payable),
		rlp.ByteArray(ti.ArgType),
		rlp.ByteArray(ti.OutType),
	}
}

func boolItem(b bool) rlp.Item {
	if b {
		return rlp.ByteArray{1}
	}
	return rlp.ByteArray{}
}

func boolFromItem(item rlp.Item) (bool, error) {
	b, err := rlp.String(item)
	if err != nil {
		return false, err
	}
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 1:
		return true, nil
	default:
		return false, fmt.Errorf("contractcode: %w: not a canonical boolean", aeerrors.ErrInvalidBool)
	}
}

// Deserialize parses a Code from a buffer that must entirely decode as
// one RLP item: a 7-field list tagged codeTag/version. Non-empty
// type-info on what would otherwise be a modern record is rejected with
// InvalidCode.
func Deserialize(b []byte) (Code, error) {
	item, err := rlp.Decode(b)
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: %s", aeerrors.ErrInvalidRlp, err)
	}
	list, err := rlp.AsList(item)
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: %s", aeerrors.ErrInvalidCode, err)
	}
	if len(list) != 7 {
		return Code{}, fmt.Errorf("contractcode: %w: expected 7 fields, got %d", aeerrors.ErrInvalidCode, len(list))
	}
	tag, err := rlp.String(list[0])
	if err != nil || len(tag) != 1 || tag[0] != codeTag {
		return Code{}, fmt.Errorf("contractcode: %w: bad tag field", aeerrors.ErrInvalidCode)
	}
	vsn, err := rlp.String(list[1])
	if err != nil || len(vsn) != 1 || vsn[0] != version {
		return Code{}, fmt.Errorf("contractcode: %w: bad version field", aeerrors.ErrInvalidCode)
	}
	sourceHash, err := rlp.String(list[2])
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: bad source hash field", aeerrors.ErrInvalidCode)
	}
	typeInfoList, err := rlp.AsList(list[3])
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: bad type-info field", aeerrors.ErrInvalidCode)
	}
	if len(typeInfoList) != 0 {
		return Code{}, fmt.Errorf("contractcode: %w: version %d record must carry an empty type-info list", aeerrors.ErrInvalidCode, version)
	}
	byteCode, err := rlp.String(list[4])
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: bad byte-code field", aeerrors.ErrInvalidCode)
	}
	compilerVersion, err := rlp.String(list[5])
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: bad compiler-version field", aeerrors.ErrInvalidCode)
	}
	payable, err := boolFromItem(list[6])
	if err != nil {
		return Code{}, fmt.Errorf("contractcode: %w: bad payable field: %s", aeerrors.ErrInvalidCode, err)
	}

	return Code{
		ByteCode:        byteCode,
		Payable:         payable,
		SourceHash:      sourceHash,
		CompilerVersion: compilerVersion,
		TypeInfo:        nil,
	}, nil
}
