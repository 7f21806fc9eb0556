package codec

import (
	"github.com/wippyai/abi-codec/codec/internal/types"
)

type TypeKind = types.Kind

const (
	KindUnit     = types.KindUnit
	KindBool     = types.KindBool
	KindU8       = types.KindU8
	KindU16      = types.KindU16
	KindU32      = types.KindU32
	KindU64      = types.KindU64
	KindU128     = types.KindU128
	KindU256     = types.KindU256
	KindB256     = types.KindB256
	KindBytes    = types.KindBytes
	KindRawSlice = types.KindRawSlice
	KindStrFixed = types.KindStrFixed
	KindStr      = types.KindStr
	KindTuple    = types.KindTuple
	KindArray    = types.KindArray
	KindVector   = types.KindVector
	KindStruct   = types.KindStruct
	KindEnum     = types.KindEnum
)

type TypeDesc = types.TypeDesc
type Field = types.Field
type Variant = types.Variant
type Value = types.Value

// Descriptor constructors, re-exported for callers building trees by hand.
var (
	Unit     = types.Unit
	Bool     = types.Bool
	U8       = types.U8
	U16      = types.U16
	U32      = types.U32
	U64      = types.U64
	U128     = types.U128
	U256     = types.U256
	B256     = types.B256
	Bytes    = types.Bytes
	RawSlice = types.RawSlice
	Str      = types.Str
	StrFixed = types.StrFixed
	TupleOf  = types.TupleOf
	ArrayOf  = types.ArrayOf
	VectorOf = types.VectorOf
	StructOf = types.StructOf
	EnumOf   = types.EnumOf
	Uncheck  = types.Uncheck
)

// Value constructors.
var (
	NewUnit      = types.NewUnit
	NewBool      = types.NewBool
	NewUint      = types.NewUint
	NewBig       = types.NewBig
	NewRaw       = types.NewRaw
	NewString    = types.NewString
	NewComposite = types.NewComposite
	NewEnum      = types.NewEnum
)
