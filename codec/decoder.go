package codec

import (
	"encoding/binary"
	"strconv"
	"unicode/utf8"

	"github.com/holiman/uint256"
	"github.com/wippyai/abi-codec/errors"
)

// Decoder transforms wire bytes back into Values. Stateless apart from the
// shared layout analyzer; safe for concurrent use. Each Decode call owns its
// own cursor, so one Decoder may serve many goroutines.
type Decoder struct {
	analyzer *LayoutAnalyzer
}

func NewDecoder() *Decoder {
	return &Decoder{
		analyzer: NewLayoutAnalyzer(),
	}
}

func NewDecoderWithAnalyzer(a *LayoutAnalyzer) *Decoder {
	return &Decoder{analyzer: a}
}

// Decode reads one value of type t from data. It returns the value and the
// number of bytes consumed; trailing bytes are left for the caller.
func (d *Decoder) Decode(t *TypeDesc, data []byte) (Value, int, error) {
	cur := cursor{data: data}
	v, err := d.decodeValue(&cur, t, nil)
	if err != nil {
		return Value{}, 0, err
	}
	return v, cur.off, nil
}

// cursor advances through a wire buffer. Exclusively owned by one Decode
// invocation, never shared.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

// take returns the next n bytes and advances, or a buffer underrun error.
func (c *cursor) take(n int, path []string) ([]byte, error) {
	if c.remaining() < n {
		return nil, errors.Underrun(path, c.off, n, c.remaining())
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) takeUint(width int, path []string) (uint64, error) {
	b, err := c.take(width, path)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[8-width:], b)
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (d *Decoder) decodeValue(cur *cursor, t *TypeDesc, path []string) (Value, error) {
	// Bulk path: every bit pattern of the wire image is a valid value, so
	// the bytes are adopted without per-field validation.
	info := d.analyzer.Analyze(t)
	if info.TrivialDecode {
		return d.decodeTrusted(cur, t, path)
	}

	switch t.Kind {
	case KindUnit:
		return NewUnit(t), nil

	case KindBool:
		b, err := cur.take(1, path)
		if err != nil {
			return Value{}, err
		}
		switch b[0] {
		case 0:
			return NewBool(t, false), nil
		case 1:
			return NewBool(t, true), nil
		default:
			// The trap representation the layout analyzer promised a
			// check for.
			return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path...).
				Type(t.Signature()).
				Offset(cur.off - 1).
				Detail("byte 0x%02X is not a valid bool", b[0]).
				Build()
		}

	case KindU8, KindU16, KindU32, KindU64:
		v, err := cur.takeUint(t.Kind.UintWidth(), path)
		if err != nil {
			return Value{}, err
		}
		return NewUint(t, v), nil

	case KindU128, KindU256:
		b, err := cur.take(t.Kind.UintWidth(), path)
		if err != nil {
			return Value{}, err
		}
		var big uint256.Int
		big.SetBytes(b)
		return NewBig(t, &big), nil

	case KindB256:
		b, err := cur.take(32, path)
		if err != nil {
			return Value{}, err
		}
		raw := make([]byte, 32)
		copy(raw, b)
		return NewRaw(t, raw), nil

	case KindStrFixed:
		b, err := cur.take(t.Len, path)
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(b) {
			return Value{}, errors.InvalidData(errors.PhaseDecode, path, "string payload is not valid UTF-8")
		}
		return NewString(t, string(b)), nil

	case KindStr:
		n, err := d.takeLength(cur, MaxStringSize, path)
		if err != nil {
			return Value{}, err
		}
		b, err := cur.take(n, path)
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(b) {
			return Value{}, errors.InvalidData(errors.PhaseDecode, path, "string payload is not valid UTF-8")
		}
		return NewString(t, string(b)), nil

	case KindBytes, KindRawSlice:
		n, err := d.takeLength(cur, MaxStringSize, path)
		if err != nil {
			return Value{}, err
		}
		b, err := cur.take(n, path)
		if err != nil {
			return Value{}, err
		}
		raw := make([]byte, n)
		copy(raw, b)
		return NewRaw(t, raw), nil

	case KindVector:
		n, err := d.takeLength(cur, MaxVectorLength, path)
		if err != nil {
			return Value{}, err
		}
		// Guard allocation against a hostile length claiming more
		// elements than the buffer could possibly hold.
		elemMin := d.analyzer.EncodedSize(t.Elem)
		if elemMin > 0 && n > cur.remaining()/elemMin {
			return Value{}, errors.Underrun(path, cur.off, n*elemMin, cur.remaining())
		}
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			elems[i], err = d.decodeValue(cur, t.Elem, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return Value{}, err
			}
		}
		return NewComposite(t, elems), nil

	case KindArray:
		// The length comes from the descriptor rather than the wire, but
		// a hostile ABI can still declare an array far larger than the
		// buffer. Same guard as the vector branch.
		elemMin := d.analyzer.EncodedSize(t.Elem)
		if elemMin > 0 && t.Len > cur.remaining()/elemMin {
			return Value{}, errors.Underrun(path, cur.off, t.Len*elemMin, cur.remaining())
		}
		elems := make([]Value, t.Len)
		var err error
		for i := 0; i < t.Len; i++ {
			elems[i], err = d.decodeValue(cur, t.Elem, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return Value{}, err
			}
		}
		return NewComposite(t, elems), nil

	case KindTuple, KindStruct:
		elems := make([]Value, len(t.Fields))
		var err error
		for i, f := range t.Fields {
			elems[i], err = d.decodeValue(cur, f.Type, append(path, fieldLabel(f, i)))
			if err != nil {
				return Value{}, err
			}
		}
		return NewComposite(t, elems), nil

	case KindEnum:
		tagOff := cur.off
		tag, err := cur.takeUint(8, path)
		if err != nil {
			return Value{}, err
		}
		// Range-check before trusting the tag as an index.
		if tag >= uint64(len(t.Variants)) {
			return Value{}, errors.UnknownVariantTagErr(path, tagOff, tag, len(t.Variants))
		}
		variant := t.Variants[tag]
		payload, err := d.decodeValue(cur, variant.Type, append(path, variant.Name))
		if err != nil {
			return Value{}, err
		}
		return NewEnum(t, tag, payload), nil

	default:
		return Value{}, errors.InvalidData(errors.PhaseDecode, path, "unsupported type kind: "+t.Kind.String())
	}
}

// decodeTrusted adopts wire bytes without trap-representation checks. Only
// reached for types the analyzer classified trivially decodable, including
// Uncheck()ed descriptors where the caller accepted the risk.
func (d *Decoder) decodeTrusted(cur *cursor, t *TypeDesc, path []string) (Value, error) {
	switch t.Kind {
	case KindUnit:
		return NewUnit(t), nil

	case KindU64:
		v, err := cur.takeUint(8, path)
		if err != nil {
			return Value{}, err
		}
		return NewUint(t, v), nil

	case KindU128, KindU256:
		b, err := cur.take(t.Kind.UintWidth(), path)
		if err != nil {
			return Value{}, err
		}
		var big uint256.Int
		big.SetBytes(b)
		return NewBig(t, &big), nil

	case KindB256:
		b, err := cur.take(32, path)
		if err != nil {
			return Value{}, err
		}
		raw := make([]byte, 32)
		copy(raw, b)
		return NewRaw(t, raw), nil

	case KindStrFixed:
		// UTF-8 validation skipped: caller opted in via Uncheck.
		b, err := cur.take(t.Len, path)
		if err != nil {
			return Value{}, err
		}
		return NewString(t, string(b)), nil

	case KindArray:
		elemMin := d.analyzer.EncodedSize(t.Elem)
		if elemMin > 0 && t.Len > cur.remaining()/elemMin {
			return Value{}, errors.Underrun(path, cur.off, t.Len*elemMin, cur.remaining())
		}
		elems := make([]Value, t.Len)
		var err error
		for i := 0; i < t.Len; i++ {
			elems[i], err = d.decodeTrusted(cur, t.Elem, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return Value{}, err
			}
		}
		return NewComposite(t, elems), nil

	case KindTuple, KindStruct:
		elems := make([]Value, len(t.Fields))
		var err error
		for i, f := range t.Fields {
			elems[i], err = d.decodeTrusted(cur, f.Type, append(path, fieldLabel(f, i)))
			if err != nil {
				return Value{}, err
			}
		}
		return NewComposite(t, elems), nil

	default:
		return Value{}, errors.InvalidData(errors.PhaseDecode, path, "type is not trivially decodable: "+t.Signature())
	}
}

func (d *Decoder) takeLength(cur *cursor, limit int, path []string) (int, error) {
	lenOff := cur.off
	n, err := cur.takeUint(8, path)
	if err != nil {
		return 0, err
	}
	if n > uint64(limit) {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path...).
			Offset(lenOff).
			Detail("declared length %d exceeds limit %d", n, limit).
			Build()
	}
	return int(n), nil
}
