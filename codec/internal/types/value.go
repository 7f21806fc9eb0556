package types

import (
	"bytes"

	"github.com/holiman/uint256"
)

// Value is the decoded in-memory counterpart of a TypeDesc. Exactly one
// representation field is populated, selected by Desc.Kind:
//
//	Bool              -> B
//	U8..U64           -> U64
//	U128, U256        -> Big
//	B256, Bytes,
//	RawSlice          -> Raw
//	StrFixed, Str     -> Str
//	Tuple, Array,
//	Vector, Struct    -> Elems
//	Enum              -> Tag + Payload
//
// Values are created per call, consumed by exactly one pipeline invocation,
// and discarded.
type Value struct {
	Desc    *TypeDesc
	Payload *Value
	Raw     []byte
	Str     string
	Elems   []Value
	Big     uint256.Int
	U64     uint64
	Tag     uint64
	B       bool
}

func NewUnit(desc *TypeDesc) Value { return Value{Desc: desc} }

func NewBool(desc *TypeDesc, b bool) Value { return Value{Desc: desc, B: b} }

func NewUint(desc *TypeDesc, v uint64) Value { return Value{Desc: desc, U64: v} }

func NewBig(desc *TypeDesc, v *uint256.Int) Value {
	val := Value{Desc: desc}
	val.Big.Set(v)
	return val
}

func NewRaw(desc *TypeDesc, raw []byte) Value { return Value{Desc: desc, Raw: raw} }

func NewString(desc *TypeDesc, s string) Value { return Value{Desc: desc, Str: s} }

func NewComposite(desc *TypeDesc, elems []Value) Value {
	return Value{Desc: desc, Elems: elems}
}

func NewEnum(desc *TypeDesc, tag uint64, payload Value) Value {
	return Value{Desc: desc, Tag: tag, Payload: &payload}
}

// Equal reports deep structural equality. Both values must describe the same
// type shape; descriptors are compared by kind, not identity, so values built
// from distinct but equivalent trees still compare equal.
func (v Value) Equal(o Value) bool {
	if v.Desc == nil || o.Desc == nil {
		return v.Desc == o.Desc
	}
	if v.Desc.Kind != o.Desc.Kind {
		return false
	}
	switch v.Desc.Kind {
	case KindUnit:
		return true
	case KindBool:
		return v.B == o.B
	case KindU8, KindU16, KindU32, KindU64:
		return v.U64 == o.U64
	case KindU128, KindU256:
		return v.Big.Eq(&o.Big)
	case KindB256, KindBytes, KindRawSlice:
		return bytes.Equal(v.Raw, o.Raw)
	case KindStrFixed, KindStr:
		return v.Str == o.Str
	case KindTuple, KindArray, KindVector, KindStruct:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case KindEnum:
		if v.Tag != o.Tag {
			return false
		}
		if v.Payload == nil || o.Payload == nil {
			return v.Payload == o.Payload
		}
		return v.Payload.Equal(*o.Payload)
	default:
		return false
	}
}
