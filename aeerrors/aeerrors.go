// Package aeerrors collects the sentinel errors shared across the codec
// packages, following the same pattern erigon's transaction parser uses:
// a package-level sentinel composed with fmt.Errorf("%w: detail", ...)
// at the call site, so callers can errors.Is against the category while
// still seeing the specific detail in the message.
package aeerrors

import "errors"

// Serialization errors: refusal to encode an ill-formed value.
var (
	ErrTupleSizeLimitExceeded   = errors.New("tuple size limit exceeded")
	ErrVariantSizeLimitExceeded = errors.New("variant size limit exceeded")
	ErrInvalidVariantTag        = errors.New("invalid variant tag")
	ErrArityValuesMismatch      = errors.New("variant values count does not match arity")
	ErrMapAsKeyType             = errors.New("map cannot be used as a map key")
	ErrHeteroMapKeys            = errors.New("map keys are not all the same variant")
	ErrHeteroMapValues          = errors.New("map values are not all the same variant")
	ErrNonEmptyStoreMapCache    = errors.New("store map cache must be empty to serialize")
)

// Deserialization errors: structural problems in an encoded value.
var (
	ErrInvalidIdByte          = errors.New("invalid id discriminator byte")
	ErrInvalidObjectByte      = errors.New("invalid object discriminator byte")
	ErrInvalidBytesObject     = errors.New("invalid bytes object payload")
	ErrInvalidObject          = errors.New("invalid object value")
	ErrInvalidTypeId          = errors.New("invalid type tag")
	ErrInvalidTypeVar         = errors.New("invalid type variable")
	ErrInvalidTypeObjectByte  = errors.New("invalid type object discriminator byte")
	ErrInvalidIntValue        = errors.New("invalid integer encoding")
	ErrInvalidBytesType       = errors.New("invalid bytes type size discriminant")
	ErrBytesSizeTooBig        = errors.New("bytes type size too big")
	ErrInvalidTuple           = errors.New("invalid tuple encoding")
	ErrInvalidTupleOrVariant  = errors.New("invalid tuple or variant encoding")
	ErrInvalidString          = errors.New("invalid string encoding")
	ErrInvalidContractByteArr = errors.New("invalid contract bytearray encoding")
	ErrInvalidListSize        = errors.New("invalid list size")
	ErrInvalidTupleSize       = errors.New("invalid tuple size")
	ErrInvalidMapSize         = errors.New("invalid map size")
	ErrInvalidMapId           = errors.New("invalid store map id")
	ErrTooLargeTagInVariant   = errors.New("variant tag too large")
	ErrTagDoesNotMatchVariant = errors.New("variant tag does not match its arity vector")
	ErrBadVariant             = errors.New("malformed variant encoding")
)

// ID/API errors.
var (
	ErrInvalidIdSize   = errors.New("identifier must be exactly 33 bytes")
	ErrInvalidIdTag    = errors.New("identifier tag byte out of range")
	ErrInvalidIdPub    = errors.New("identifier payload length mismatch")
	ErrMissingPrefix   = errors.New("missing type prefix")
	ErrInvalidPrefix   = errors.New("unrecognized or disallowed type prefix")
	ErrInvalidEncoding = errors.New("invalid base58/base64 encoding")
	ErrInvalidCheck    = errors.New("checksum mismatch")
	ErrIncorrectSize   = errors.New("decoded payload has the wrong size for its type")
)

// Container errors.
var (
	ErrInvalidRlp    = errors.New("invalid rlp framing")
	ErrInvalidBool   = errors.New("invalid boolean encoding")
	ErrInvalidInt    = errors.New("invalid integer field")
	ErrInvalidBinary = errors.New("invalid binary field")
	ErrInvalidList   = errors.New("invalid list field")
	ErrInvalidCode   = errors.New("invalid contract code record")
)

// Call-data errors.
var (
	ErrCalldataDecode = errors.New("calldata does not match the expected function signature")
)
