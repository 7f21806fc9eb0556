package types

import (
	"fmt"
	"strings"
)

// TypeDesc describes the shape of a value. Trees are built once per ABI
// document and are immutable afterward; they may be shared freely across
// concurrent encode and decode operations.
type TypeDesc struct {
	Elem      *TypeDesc // Array / Vector element
	Name      string    // Struct / Enum nominal name, field-free otherwise
	Fields    []Field   // Tuple (names empty) / Struct
	Variants  []Variant // Enum, in declaration order
	Len       int       // Array count / StrFixed byte length
	Kind      Kind
	Unchecked bool // caller opted in to unvalidated trivial decoding
}

type Field struct {
	Type *TypeDesc
	Name string
}

type Variant struct {
	Type *TypeDesc
	Name string
}

// Shared singletons for primitive descriptors. Safe because descriptors are
// immutable after construction.
var (
	unitDesc = &TypeDesc{Kind: KindUnit}
	boolDesc = &TypeDesc{Kind: KindBool}
	u8Desc   = &TypeDesc{Kind: KindU8}
	u16Desc  = &TypeDesc{Kind: KindU16}
	u32Desc  = &TypeDesc{Kind: KindU32}
	u64Desc  = &TypeDesc{Kind: KindU64}
	u128Desc = &TypeDesc{Kind: KindU128}
	u256Desc = &TypeDesc{Kind: KindU256}
	b256Desc = &TypeDesc{Kind: KindB256}

	bytesDesc    = &TypeDesc{Kind: KindBytes}
	rawSliceDesc = &TypeDesc{Kind: KindRawSlice}
	strDesc      = &TypeDesc{Kind: KindStr}
)

func Unit() *TypeDesc     { return unitDesc }
func Bool() *TypeDesc     { return boolDesc }
func U8() *TypeDesc       { return u8Desc }
func U16() *TypeDesc      { return u16Desc }
func U32() *TypeDesc      { return u32Desc }
func U64() *TypeDesc      { return u64Desc }
func U128() *TypeDesc     { return u128Desc }
func U256() *TypeDesc     { return u256Desc }
func B256() *TypeDesc     { return b256Desc }
func Bytes() *TypeDesc    { return bytesDesc }
func RawSlice() *TypeDesc { return rawSliceDesc }
func Str() *TypeDesc      { return strDesc }

func StrFixed(n int) *TypeDesc {
	return &TypeDesc{Kind: KindStrFixed, Len: n}
}

func TupleOf(elems ...*TypeDesc) *TypeDesc {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	return &TypeDesc{Kind: KindTuple, Fields: fields}
}

func ArrayOf(elem *TypeDesc, n int) *TypeDesc {
	return &TypeDesc{Kind: KindArray, Elem: elem, Len: n}
}

func VectorOf(elem *TypeDesc) *TypeDesc {
	return &TypeDesc{Kind: KindVector, Elem: elem}
}

func StructOf(name string, fields ...Field) *TypeDesc {
	return &TypeDesc{Kind: KindStruct, Name: name, Fields: fields}
}

func EnumOf(name string, variants ...Variant) *TypeDesc {
	return &TypeDesc{Kind: KindEnum, Name: name, Variants: variants}
}

// Uncheck returns a copy of t with unvalidated trivial decoding enabled.
// Decoding through the copy skips trap-representation checks; malformed
// input can then produce invalid values. Callers accept that risk.
func Uncheck(t *TypeDesc) *TypeDesc {
	c := *t
	c.Unchecked = true
	return &c
}

// IsReferenceLike reports whether values of t are represented natively as a
// pointer+length pair rather than inline data.
func (t *TypeDesc) IsReferenceLike() bool {
	switch t.Kind {
	case KindBytes, KindRawSlice, KindStr, KindVector:
		return true
	default:
		return false
	}
}

// IsDynamic reports whether the encoded size of t depends on the instance.
func (t *TypeDesc) IsDynamic() bool {
	if t.IsReferenceLike() {
		return true
	}
	switch t.Kind {
	case KindTuple, KindStruct:
		for _, f := range t.Fields {
			if f.Type.IsDynamic() {
				return true
			}
		}
	case KindArray:
		return t.Elem.IsDynamic()
	case KindEnum:
		return true
	}
	return false
}

// Signature returns the canonical type string, matching the ABI document
// grammar. Used in function selectors and error messages.
func (t *TypeDesc) Signature() string {
	switch t.Kind {
	case KindStrFixed:
		return fmt.Sprintf("str[%d]", t.Len)
	case KindTuple:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Type.Signature()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.Elem.Signature(), t.Len)
	case KindVector:
		return "Vec<" + t.Elem.Signature() + ">"
	case KindStruct:
		if t.Name != "" {
			return "struct " + t.Name
		}
		return "struct"
	case KindEnum:
		if t.Name != "" {
			return "enum " + t.Name
		}
		return "enum"
	default:
		return t.Kind.String()
	}
}

// VariantByName resolves a case-sensitive variant name to its index.
func (t *TypeDesc) VariantByName(name string) (int, bool) {
	for i, v := range t.Variants {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}
