package literal

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
)

// Print renders a decoded value in the literal syntax. It is the structural
// inverse of Parse: printing and re-parsing yields an equal value.
func Print(t *codec.TypeDesc, v codec.Value) (string, error) {
	var b strings.Builder
	if err := printValue(&b, t, v, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

func printValue(b *strings.Builder, t *codec.TypeDesc, v codec.Value, path []string) error {
	if v.Desc != nil && v.Desc.Kind != t.Kind {
		return errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path(path...).
			Type(t.Signature()).
			Detail("value has kind %s", v.Desc.Kind).
			Build()
	}

	switch t.Kind {
	case codec.KindUnit:
		b.WriteString("()")

	case codec.KindBool:
		if v.B {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}

	case codec.KindU8, codec.KindU16, codec.KindU32, codec.KindU64:
		b.WriteString(strconv.FormatUint(v.U64, 10))

	case codec.KindU128, codec.KindU256:
		b.WriteString(v.Big.Dec())

	case codec.KindB256, codec.KindBytes, codec.KindRawSlice:
		b.WriteString("0x")
		b.WriteString(hex.EncodeToString(v.Raw))

	case codec.KindStrFixed, codec.KindStr:
		writeQuoted(b, v.Str)

	case codec.KindTuple:
		return printDelimited(b, t, v, "(", ")", path)

	case codec.KindStruct:
		return printDelimited(b, t, v, "{", "}", path)

	case codec.KindArray, codec.KindVector:
		b.WriteByte('[')
		for i := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := printValue(b, t.Elem, v.Elems[i], append(path, "["+strconv.Itoa(i)+"]")); err != nil {
				return err
			}
		}
		b.WriteByte(']')

	case codec.KindEnum:
		if v.Tag >= uint64(len(t.Variants)) {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path(path...).
				Type(t.Signature()).
				Detail("variant tag %d out of range (%d variants)", v.Tag, len(t.Variants)).
				Build()
		}
		variant := t.Variants[v.Tag]
		b.WriteByte('(')
		b.WriteString(variant.Name)
		b.WriteString(": ")
		payload := codec.Value{Desc: variant.Type}
		if v.Payload != nil {
			payload = *v.Payload
		}
		if err := printValue(b, variant.Type, payload, append(path, variant.Name)); err != nil {
			return err
		}
		b.WriteByte(')')

	default:
		return errors.InvalidData(errors.PhaseParse, path, "unsupported type kind: "+t.Kind.String())
	}
	return nil
}

func printDelimited(b *strings.Builder, t *codec.TypeDesc, v codec.Value, open, close string, path []string) error {
	if len(v.Elems) != len(t.Fields) {
		return errors.ArityMismatch(errors.PhaseParse, path, len(t.Fields), len(v.Elems))
	}
	b.WriteString(open)
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := printValue(b, f.Type, v.Elems[i], append(path, fieldLabel(f, i))); err != nil {
			return err
		}
	}
	b.WriteString(close)
	return nil
}

// writeQuoted emits a double-quoted string using only the escapes the lexer
// understands; non-ASCII runes pass through verbatim.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func fieldLabel(f codec.Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(i)
}
