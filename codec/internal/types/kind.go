package types

type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindB256
	KindBytes
	KindRawSlice
	KindStrFixed
	KindStr
	KindTuple
	KindArray
	KindVector
	KindStruct
	KindEnum
)

var kindNames = [...]string{
	KindUnit:     "()",
	KindBool:     "bool",
	KindU8:       "u8",
	KindU16:      "u16",
	KindU32:      "u32",
	KindU64:      "u64",
	KindU128:     "u128",
	KindU256:     "u256",
	KindB256:     "b256",
	KindBytes:    "bytes",
	KindRawSlice: "raw slice",
	KindStrFixed: "str[N]",
	KindStr:      "str",
	KindTuple:    "tuple",
	KindArray:    "array",
	KindVector:   "vector",
	KindStruct:   "struct",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind carries no child types.
func (k Kind) IsPrimitive() bool {
	return k <= KindStr
}

// IsUint reports whether the kind is a fixed-width unsigned integer.
func (k Kind) IsUint() bool {
	return k >= KindU8 && k <= KindU256
}

// UintWidth returns the wire width in bytes for unsigned integer kinds, 0 otherwise.
func (k Kind) UintWidth() int {
	switch k {
	case KindU8:
		return 1
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindU64:
		return 8
	case KindU128:
		return 16
	case KindU256:
		return 32
	default:
		return 0
	}
}
