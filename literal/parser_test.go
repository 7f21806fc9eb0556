package literal

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
)

var statusEnum = codec.EnumOf("Status",
	codec.Variant{Name: "Inactive", Type: codec.Unit()},
	codec.Variant{Name: "Active", Type: codec.Bool()},
)

var pairStruct = codec.StructOf("Pair",
	codec.Field{Name: "a", Type: codec.U64()},
	codec.Field{Name: "b", Type: codec.U64()},
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		desc *codec.TypeDesc
		src  string
		want codec.Value
	}{
		{"unit", codec.Unit(), "()", codec.NewUnit(codec.Unit())},
		{"bool true", codec.Bool(), "true", codec.NewBool(codec.Bool(), true)},
		{"bool false", codec.Bool(), "false", codec.NewBool(codec.Bool(), false)},
		{"u8", codec.U8(), "255", codec.NewUint(codec.U8(), 255)},
		{"u64", codec.U64(), "42", codec.NewUint(codec.U64(), 42)},
		{"u64 underscores", codec.U64(), "1_000_000", codec.NewUint(codec.U64(), 1000000)},
		{"u64 max", codec.U64(), "18446744073709551615", codec.NewUint(codec.U64(), ^uint64(0))},
		{
			"u128",
			codec.U128(),
			"340282366920938463463374607431768211455",
			codec.NewBig(codec.U128(), uint256.MustFromDecimal("340282366920938463463374607431768211455")),
		},
		{
			"u256",
			codec.U256(),
			"115792089237316195423570985008687907853269984665640564039457584007913129639935",
			codec.NewBig(codec.U256(), uint256.MustFromDecimal("115792089237316195423570985008687907853269984665640564039457584007913129639935")),
		},
		{
			"b256 with prefix",
			codec.B256(),
			"0x" + strings.Repeat("ab", 32),
			codec.NewRaw(codec.B256(), bytes.Repeat([]byte{0xAB}, 32)),
		},
		{
			"b256 bare",
			codec.B256(),
			strings.Repeat("ab", 32),
			codec.NewRaw(codec.B256(), bytes.Repeat([]byte{0xAB}, 32)),
		},
		{
			"bytes with prefix",
			codec.Bytes(),
			"0xdeadbeef",
			codec.NewRaw(codec.Bytes(), []byte{0xDE, 0xAD, 0xBE, 0xEF}),
		},
		{
			"bytes bare",
			codec.Bytes(),
			"cafe",
			codec.NewRaw(codec.Bytes(), []byte{0xCA, 0xFE}),
		},
		{"str", codec.Str(), `"hello"`, codec.NewString(codec.Str(), "hello")},
		{"str escapes", codec.Str(), `"a\"b\n"`, codec.NewString(codec.Str(), "a\"b\n")},
		{"str fixed", codec.StrFixed(5), `"hello"`, codec.NewString(codec.StrFixed(5), "hello")},
		{
			"tuple",
			codec.TupleOf(codec.U64(), codec.Bool()),
			"(42, true)",
			codec.NewComposite(codec.TupleOf(codec.U64(), codec.Bool()), []codec.Value{
				codec.NewUint(codec.U64(), 42),
				codec.NewBool(codec.Bool(), true),
			}),
		},
		{
			// Struct fields are positional, in declaration order.
			"struct",
			pairStruct,
			"{42, 128}",
			codec.NewComposite(pairStruct, []codec.Value{
				codec.NewUint(codec.U64(), 42),
				codec.NewUint(codec.U64(), 128),
			}),
		},
		{
			"array",
			codec.ArrayOf(codec.U64(), 3),
			"[1, 2, 3]",
			codec.NewComposite(codec.ArrayOf(codec.U64(), 3), []codec.Value{
				codec.NewUint(codec.U64(), 1),
				codec.NewUint(codec.U64(), 2),
				codec.NewUint(codec.U64(), 3),
			}),
		},
		{
			"vector",
			codec.VectorOf(codec.U64()),
			"[1, 2]",
			codec.NewComposite(codec.VectorOf(codec.U64()), []codec.Value{
				codec.NewUint(codec.U64(), 1),
				codec.NewUint(codec.U64(), 2),
			}),
		},
		{
			"empty vector",
			codec.VectorOf(codec.U64()),
			"[]",
			codec.NewComposite(codec.VectorOf(codec.U64()), nil),
		},
		{
			"enum by name",
			statusEnum,
			"(Active: true)",
			codec.NewEnum(statusEnum, 1, codec.NewBool(codec.Bool(), true)),
		},
		{
			"enum by index",
			statusEnum,
			"(1: true)",
			codec.NewEnum(statusEnum, 1, codec.NewBool(codec.Bool(), true)),
		},
		{
			"enum unit payload",
			statusEnum,
			"(Inactive: ())",
			codec.NewEnum(statusEnum, 0, codec.NewUnit(codec.Unit())),
		},
		{
			"nested",
			codec.TupleOf(codec.VectorOf(codec.Bool()), codec.Str()),
			`([true, false], "x")`,
			codec.NewComposite(codec.TupleOf(codec.VectorOf(codec.Bool()), codec.Str()), []codec.Value{
				codec.NewComposite(codec.VectorOf(codec.Bool()), []codec.Value{
					codec.NewBool(codec.Bool(), true),
					codec.NewBool(codec.Bool(), false),
				}),
				codec.NewString(codec.Str(), "x"),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.desc, tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.src, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.src, got, tt.want)
			}
		})
	}
}

// Name and index selectors denote the same variant and must parse to equal
// values.
func TestParseEnumSelectorsEquivalent(t *testing.T) {
	byName, err := Parse(statusEnum, "(Active: true)")
	if err != nil {
		t.Fatalf("Parse by name error: %v", err)
	}
	byIndex, err := Parse(statusEnum, "(1: true)")
	if err != nil {
		t.Fatalf("Parse by index error: %v", err)
	}
	if !byName.Equal(byIndex) {
		t.Error("name and index selectors parsed to different values")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		desc *codec.TypeDesc
		src  string
		kind errors.Kind
	}{
		{
			// A bool element can never satisfy a vector of words.
			"heterogeneous list",
			codec.VectorOf(codec.U64()),
			"[1, true, 3]",
			errors.KindMalformedLiteral,
		},
		{"bool misspelled", codec.Bool(), "True", errors.KindMalformedLiteral},
		{"u8 overflow", codec.U8(), "256", errors.KindIntegerOverflow},
		{"u16 overflow", codec.U16(), "65536", errors.KindIntegerOverflow},
		{"u64 overflow", codec.U64(), "18446744073709551616", errors.KindIntegerOverflow},
		{
			"u128 overflow",
			codec.U128(),
			"340282366920938463463374607431768211456",
			errors.KindIntegerOverflow,
		},
		{
			"u256 overflow",
			codec.U256(),
			"115792089237316195423570985008687907853269984665640564039457584007913129639936",
			errors.KindIntegerOverflow,
		},
		{"uint not a number", codec.U64(), "true", errors.KindMalformedLiteral},
		{"b256 too short", codec.B256(), "0xabcd", errors.KindMalformedHex},
		{"odd hex digits", codec.Bytes(), "0xabc", errors.KindMalformedHex},
		{"hex stray underscore", codec.Bytes(), "0xab_cd", errors.KindMalformedHex},
		{"hex non-digit", codec.Bytes(), "grape", errors.KindMalformedHex},
		{"str fixed too short", codec.StrFixed(5), `"hey"`, errors.KindMalformedLiteral},
		{"str unquoted", codec.Str(), "hello", errors.KindMalformedLiteral},
		{
			"tuple too few",
			codec.TupleOf(codec.U64(), codec.Bool()),
			"(42)",
			errors.KindArityMismatch,
		},
		{
			"tuple too many",
			codec.TupleOf(codec.U64(), codec.Bool()),
			"(42, true, 7)",
			errors.KindArityMismatch,
		},
		{
			"struct too few",
			pairStruct,
			"{42}",
			errors.KindArityMismatch,
		},
		{
			"struct empty braces",
			pairStruct,
			"{}",
			errors.KindArityMismatch,
		},
		{
			"tuple empty parens",
			codec.TupleOf(codec.U64(), codec.Bool()),
			"()",
			errors.KindArityMismatch,
		},
		{
			"array count mismatch",
			codec.ArrayOf(codec.U64(), 3),
			"[1, 2]",
			errors.KindArityMismatch,
		},
		{
			"wrong bracket for struct",
			pairStruct,
			"(42, 128)",
			errors.KindMalformedLiteral,
		},
		{"enum unknown name", statusEnum, "(Missing: 1)", errors.KindUnknownVariant},
		{"enum case sensitive", statusEnum, "(active: true)", errors.KindUnknownVariant},
		{"enum index out of range", statusEnum, "(7: true)", errors.KindVariantOutOfRange},
		{"enum missing colon", statusEnum, "(Active true)", errors.KindMalformedLiteral},
		{"trailing input", codec.U64(), "42 43", errors.KindMalformedLiteral},
		{"empty input", codec.U64(), "", errors.KindMalformedLiteral},
		{"unterminated string", codec.Str(), `"abc`, errors.KindMalformedLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.desc, tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %s", tt.src, tt.kind)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error is not structured: %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Parse(%q) kind = %s, want %s", tt.src, e.Kind, tt.kind)
			}
			if !e.IsParse() {
				t.Errorf("Parse(%q) phase = %s, want %s", tt.src, e.Phase, errors.PhaseParse)
			}
		})
	}
}

func TestParseArityReportsCounts(t *testing.T) {
	_, err := Parse(codec.ArrayOf(codec.U64(), 3), "[1, 2]")
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected structured error, got %v", err)
	}
	if e.Value != 2 {
		t.Errorf("reported count = %v, want 2", e.Value)
	}
}
