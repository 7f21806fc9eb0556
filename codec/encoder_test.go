package codec

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/wippyai/abi-codec/errors"
)

var statusEnum = EnumOf("Status",
	Variant{Name: "Inactive", Type: Unit()},
	Variant{Name: "Active", Type: Bool()},
)

func TestEncode(t *testing.T) {
	pairStruct := StructOf("Pair",
		Field{Name: "a", Type: U64()},
		Field{Name: "b", Type: U64()},
	)

	tests := []struct {
		name string
		desc *TypeDesc
		val  Value
		want []byte
	}{
		{
			"unit",
			Unit(),
			NewUnit(Unit()),
			[]byte{},
		},
		{
			"bool true",
			Bool(),
			NewBool(Bool(), true),
			[]byte{0x01},
		},
		{
			"bool false",
			Bool(),
			NewBool(Bool(), false),
			[]byte{0x00},
		},
		{
			"u8",
			U8(),
			NewUint(U8(), 0xAB),
			[]byte{0xAB},
		},
		{
			"u16",
			U16(),
			NewUint(U16(), 0x1234),
			[]byte{0x12, 0x34},
		},
		{
			"u32",
			U32(),
			NewUint(U32(), 0xDEADBEEF),
			[]byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
		{
			"u64",
			U64(),
			NewUint(U64(), 42),
			[]byte{0, 0, 0, 0, 0, 0, 0, 0x2A},
		},
		{
			"u128",
			U128(),
			NewBig(U128(), uint256.NewInt(256)),
			append(make([]byte, 14), 0x01, 0x00),
		},
		{
			"u256",
			U256(),
			NewBig(U256(), uint256.NewInt(1)),
			append(make([]byte, 31), 0x01),
		},
		{
			"b256",
			B256(),
			NewRaw(B256(), bytes.Repeat([]byte{0x7F}, 32)),
			bytes.Repeat([]byte{0x7F}, 32),
		},
		{
			"str fixed",
			StrFixed(5),
			NewString(StrFixed(5), "hello"),
			[]byte("hello"),
		},
		{
			"str",
			Str(),
			NewString(Str(), "hi"),
			[]byte{0, 0, 0, 0, 0, 0, 0, 2, 'h', 'i'},
		},
		{
			"bytes",
			Bytes(),
			NewRaw(Bytes(), []byte{0xDE, 0xAD}),
			[]byte{0, 0, 0, 0, 0, 0, 0, 2, 0xDE, 0xAD},
		},
		{
			"empty bytes",
			Bytes(),
			NewRaw(Bytes(), nil),
			[]byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			"mixed tuple",
			TupleOf(U8(), U64()),
			NewComposite(TupleOf(U8(), U64()), []Value{
				NewUint(U8(), 7),
				NewUint(U64(), 1),
			}),
			[]byte{0x07, 0, 0, 0, 0, 0, 0, 0, 1},
		},
		{
			"struct of words",
			pairStruct,
			NewComposite(pairStruct, []Value{
				NewUint(U64(), 42),
				NewUint(U64(), 128),
			}),
			[]byte{0, 0, 0, 0, 0, 0, 0, 0x2A, 0, 0, 0, 0, 0, 0, 0, 0x80},
		},
		{
			"array",
			ArrayOf(U64(), 3),
			NewComposite(ArrayOf(U64(), 3), []Value{
				NewUint(U64(), 1),
				NewUint(U64(), 2),
				NewUint(U64(), 3),
			}),
			[]byte{
				0, 0, 0, 0, 0, 0, 0, 1,
				0, 0, 0, 0, 0, 0, 0, 2,
				0, 0, 0, 0, 0, 0, 0, 3,
			},
		},
		{
			"vector",
			VectorOf(U16()),
			NewComposite(VectorOf(U16()), []Value{
				NewUint(U16(), 1),
				NewUint(U16(), 2),
			}),
			[]byte{0, 0, 0, 0, 0, 0, 0, 2, 0, 1, 0, 2},
		},
		{
			"empty vector",
			VectorOf(U64()),
			NewComposite(VectorOf(U64()), nil),
			[]byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			// Tag word plus the selected variant's payload, nothing for the
			// others.
			"enum active",
			statusEnum,
			NewEnum(statusEnum, 1, NewBool(Bool(), true)),
			[]byte{0, 0, 0, 0, 0, 0, 0, 1, 0x01},
		},
		{
			"enum inactive",
			statusEnum,
			NewEnum(statusEnum, 0, NewUnit(Unit())),
			[]byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
	}

	enc := NewEncoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.desc, tt.val)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		desc *TypeDesc
		val  Value
		kind errors.Kind
	}{
		{
			"u8 overflow",
			U8(),
			NewUint(U8(), 256),
			errors.KindEncodingOverflow,
		},
		{
			"u16 overflow",
			U16(),
			NewUint(U16(), 1 << 16),
			errors.KindEncodingOverflow,
		},
		{
			"u128 overflow",
			U128(),
			func() Value {
				var big uint256.Int
				big.Lsh(uint256.NewInt(1), 128)
				return NewBig(U128(), &big)
			}(),
			errors.KindEncodingOverflow,
		},
		{
			"str fixed length mismatch",
			StrFixed(5),
			NewString(StrFixed(5), "hey"),
			errors.KindEncodingOverflow,
		},
		{
			"b256 wrong length",
			B256(),
			NewRaw(B256(), []byte{1, 2, 3}),
			errors.KindEncodingOverflow,
		},
		{
			"str invalid utf8",
			Str(),
			NewString(Str(), "\xff\xfe"),
			errors.KindInvalidData,
		},
		{
			"str fixed invalid utf8",
			StrFixed(2),
			NewString(StrFixed(2), "\xff\xfe"),
			errors.KindInvalidData,
		},
		{
			"str fixed invalid utf8 word multiple",
			StrFixed(8),
			NewString(StrFixed(8), "\xff\xfe\xff\xfe\xff\xfe\xff\xfe"),
			errors.KindInvalidData,
		},
		{
			"array arity",
			ArrayOf(U64(), 3),
			NewComposite(ArrayOf(U64(), 3), []Value{NewUint(U64(), 1)}),
			errors.KindArityMismatch,
		},
		{
			"tuple arity",
			TupleOf(U8(), U8()),
			NewComposite(TupleOf(U8(), U8()), []Value{NewUint(U8(), 1)}),
			errors.KindArityMismatch,
		},
		{
			"enum tag out of range",
			statusEnum,
			NewEnum(statusEnum, 9, NewUnit(Unit())),
			errors.KindInvalidData,
		},
		{
			"kind mismatch",
			U64(),
			NewBool(Bool(), true),
			errors.KindInvalidData,
		},
	}

	enc := NewEncoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := enc.Encode(tt.desc, tt.val)
			if err == nil {
				t.Fatalf("Encode() = %x, want error", out)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error is not structured: %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("error kind = %s, want %s", e.Kind, tt.kind)
			}
			if e.Phase != errors.PhaseEncode {
				t.Errorf("error phase = %s, want %s", e.Phase, errors.PhaseEncode)
			}
			if out != nil {
				t.Error("failed Encode() returned a partial buffer")
			}
		})
	}
}

func TestEncodeErrorPath(t *testing.T) {
	pair := StructOf("Pair",
		Field{Name: "count", Type: U8()},
		Field{Name: "flag", Type: Bool()},
	)
	val := NewComposite(pair, []Value{
		NewUint(U8(), 300),
		NewBool(Bool(), true),
	})

	_, err := NewEncoder().Encode(pair, val)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected structured error, got %v", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "count" {
		t.Errorf("error path = %v, want [count]", e.Path)
	}
}

func TestAppendExtends(t *testing.T) {
	enc := NewEncoder()

	dst := []byte{0xFF}
	dst, err := enc.Append(dst, U64(), NewUint(U64(), 1))
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	dst, err = enc.Append(dst, Bool(), NewBool(Bool(), true))
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	want := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0, 1, 0x01}
	if !bytes.Equal(dst, want) {
		t.Errorf("Append() = %x, want %x", dst, want)
	}
}

// The bulk copy path and the generic path must agree byte for byte.
func TestTrivialPathMatchesGeneric(t *testing.T) {
	uniform := TupleOf(U64(), U64(), U64())
	val := NewComposite(uniform, []Value{
		NewUint(U64(), 1),
		NewUint(U64(), 1<<40),
		NewUint(U64(), ^uint64(0)),
	})

	analyzer := NewLayoutAnalyzer()
	if !analyzer.Analyze(uniform).TrivialEncode {
		t.Fatal("uniform tuple should be trivially encodable")
	}

	got, err := NewEncoderWithAnalyzer(analyzer).Encode(uniform, val)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 1, 0, 0, 0, 0, 0,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = %x, want %x", got, want)
	}
}

func TestEncodedSizeMatchesOutput(t *testing.T) {
	tests := []struct {
		name string
		desc *TypeDesc
		val  Value
	}{
		{"u64", U64(), NewUint(U64(), 7)},
		{"bool", Bool(), NewBool(Bool(), false)},
		{
			"mixed tuple",
			TupleOf(U8(), U64(), U64()),
			NewComposite(TupleOf(U8(), U64(), U64()), []Value{
				NewUint(U8(), 1),
				NewUint(U64(), 2),
				NewUint(U64(), 3),
			}),
		},
		{"array", ArrayOf(U16(), 2), NewComposite(ArrayOf(U16(), 2), []Value{
			NewUint(U16(), 1),
			NewUint(U16(), 2),
		})},
	}

	enc := NewEncoder()
	analyzer := NewLayoutAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := enc.Encode(tt.desc, tt.val)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			// Static types encode to exactly their declared wire size.
			info := analyzer.Analyze(tt.desc)
			if info.Dynamic {
				t.Fatalf("%s unexpectedly dynamic", tt.desc.Signature())
			}
			if len(out) != info.EncodedSize {
				t.Errorf("len(Encode()) = %d, want EncodedSize %d", len(out), info.EncodedSize)
			}
		})
	}
}
