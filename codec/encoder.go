package codec

import (
	"encoding/binary"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/abi-codec/errors"
)

// Safety limits to prevent memory exhaustion on hostile input.
const (
	MaxStringSize   = 16 << 20 // maximum string/bytes payload (16 MB)
	MaxVectorLength = 1 << 20  // maximum vector length (1M elements)
)

// Encoder transforms Values into their packed wire form. Stateless apart
// from the shared layout analyzer; safe for concurrent use.
type Encoder struct {
	analyzer *LayoutAnalyzer
}

func NewEncoder() *Encoder {
	return &Encoder{
		analyzer: NewLayoutAnalyzer(),
	}
}

func NewEncoderWithAnalyzer(a *LayoutAnalyzer) *Encoder {
	return &Encoder{analyzer: a}
}

// Encode returns the wire bytes of v interpreted as t. On any error the
// partial buffer is discarded, never returned.
func (e *Encoder) Encode(t *TypeDesc, v Value) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)

	out, err := e.encodeValue((*buf)[:0], t, v, nil)
	if err != nil {
		return nil, err
	}
	*buf = out[:0]

	// Return a copy since the scratch buffer goes back to the pool
	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// Append encodes v as t onto dst and returns the extended slice.
func (e *Encoder) Append(dst []byte, t *TypeDesc, v Value) ([]byte, error) {
	return e.encodeValue(dst, t, v, nil)
}

func (e *Encoder) encodeValue(dst []byte, t *TypeDesc, v Value, path []string) ([]byte, error) {
	if v.Desc != nil && v.Desc.Kind != t.Kind {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			Type(t.Signature()).
			Detail("value has kind %s", v.Desc.Kind).
			Build()
	}

	// Bulk path: native bytes already equal wire bytes.
	if e.analyzer.Analyze(t).TrivialEncode {
		return e.appendNative(dst, t, v, path)
	}

	switch t.Kind {
	case KindUnit:
		return dst, nil

	case KindBool:
		if v.B {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil

	case KindU8, KindU16, KindU32:
		width := t.Kind.UintWidth()
		if width < 8 && v.U64 >= 1<<(8*width) {
			return nil, errors.EncodingOverflow(path, v.U64, t.Signature())
		}
		return appendUint(dst, v.U64, width), nil

	case KindStrFixed:
		if len(v.Str) != t.Len {
			return nil, errors.EncodingOverflow(path, len(v.Str), t.Signature())
		}
		// Reject here so the decoder never has to refuse our own output.
		if !utf8.ValidString(v.Str) {
			return nil, errors.InvalidData(errors.PhaseEncode, path, "string payload is not valid UTF-8")
		}
		return append(dst, v.Str...), nil

	case KindStr:
		if len(v.Str) > MaxStringSize {
			return nil, errors.EncodingOverflow(path, len(v.Str), t.Signature())
		}
		if !utf8.ValidString(v.Str) {
			return nil, errors.InvalidData(errors.PhaseEncode, path, "string payload is not valid UTF-8")
		}
		dst = binary.BigEndian.AppendUint64(dst, uint64(len(v.Str)))
		return append(dst, v.Str...), nil

	case KindBytes, KindRawSlice:
		if len(v.Raw) > MaxStringSize {
			return nil, errors.EncodingOverflow(path, len(v.Raw), t.Signature())
		}
		dst = binary.BigEndian.AppendUint64(dst, uint64(len(v.Raw)))
		return append(dst, v.Raw...), nil

	case KindVector:
		if len(v.Elems) > MaxVectorLength {
			return nil, errors.EncodingOverflow(path, len(v.Elems), t.Signature())
		}
		dst = binary.BigEndian.AppendUint64(dst, uint64(len(v.Elems)))
		var err error
		for i := range v.Elems {
			dst, err = e.encodeValue(dst, t.Elem, v.Elems[i], append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindArray:
		if len(v.Elems) != t.Len {
			return nil, errors.ArityMismatch(errors.PhaseEncode, path, t.Len, len(v.Elems))
		}
		var err error
		for i := range v.Elems {
			dst, err = e.encodeValue(dst, t.Elem, v.Elems[i], append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindTuple, KindStruct:
		if len(v.Elems) != len(t.Fields) {
			return nil, errors.ArityMismatch(errors.PhaseEncode, path, len(t.Fields), len(v.Elems))
		}
		var err error
		for i, f := range t.Fields {
			dst, err = e.encodeValue(dst, f.Type, v.Elems[i], append(path, fieldLabel(f, i)))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindEnum:
		if v.Tag >= uint64(len(t.Variants)) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Type(t.Signature()).
				Detail("variant tag %d out of range (%d variants)", v.Tag, len(t.Variants)).
				Build()
		}
		variant := t.Variants[v.Tag]
		dst = binary.BigEndian.AppendUint64(dst, v.Tag)
		payload := Value{Desc: variant.Type}
		if v.Payload != nil {
			payload = *v.Payload
		}
		// No space reserved for unselected variants.
		return e.encodeValue(dst, variant.Type, payload, append(path, variant.Name))

	default:
		return nil, errors.InvalidData(errors.PhaseEncode, path, "unsupported type kind: "+t.Kind.String())
	}
}

// appendNative writes the value's native byte image. Only called for
// trivially encodable subtrees, where this equals the wire encoding.
func (e *Encoder) appendNative(dst []byte, t *TypeDesc, v Value, path []string) ([]byte, error) {
	switch t.Kind {
	case KindUnit:
		return dst, nil

	case KindU64:
		return binary.BigEndian.AppendUint64(dst, v.U64), nil

	case KindU128:
		if v.Big.BitLen() > 128 {
			return nil, errors.EncodingOverflow(path, v.Big.String(), t.Signature())
		}
		b := v.Big.Bytes32()
		return append(dst, b[16:]...), nil

	case KindU256:
		b := v.Big.Bytes32()
		return append(dst, b[:]...), nil

	case KindB256:
		if len(v.Raw) != 32 {
			return nil, errors.EncodingOverflow(path, len(v.Raw), t.Signature())
		}
		return append(dst, v.Raw...), nil

	case KindStrFixed:
		if len(v.Str) != t.Len {
			return nil, errors.EncodingOverflow(path, len(v.Str), t.Signature())
		}
		if !utf8.ValidString(v.Str) {
			return nil, errors.InvalidData(errors.PhaseEncode, path, "string payload is not valid UTF-8")
		}
		return append(dst, v.Str...), nil

	case KindArray:
		if len(v.Elems) != t.Len {
			return nil, errors.ArityMismatch(errors.PhaseEncode, path, t.Len, len(v.Elems))
		}
		var err error
		for i := range v.Elems {
			dst, err = e.appendNative(dst, t.Elem, v.Elems[i], append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindTuple, KindStruct:
		if len(v.Elems) != len(t.Fields) {
			return nil, errors.ArityMismatch(errors.PhaseEncode, path, len(t.Fields), len(v.Elems))
		}
		var err error
		for i, f := range t.Fields {
			dst, err = e.appendNative(dst, f.Type, v.Elems[i], append(path, fieldLabel(f, i)))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	default:
		return nil, errors.InvalidData(errors.PhaseEncode, path, "type is not trivially encodable: "+t.Signature())
	}
}

func appendUint(dst []byte, v uint64, width int) []byte {
	switch width {
	case 1:
		return append(dst, byte(v))
	case 2:
		return binary.BigEndian.AppendUint16(dst, uint16(v))
	case 4:
		return binary.BigEndian.AppendUint32(dst, uint32(v))
	default:
		return binary.BigEndian.AppendUint64(dst, v)
	}
}

func fieldLabel(f Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(i)
}
