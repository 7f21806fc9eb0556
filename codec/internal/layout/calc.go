package layout

import (
	"sync"

	"github.com/wippyai/abi-codec/codec/internal/types"
)

// WordSize is the native machine word in bytes. Every scalar field below a
// word is promoted to occupy a full word slot in memory.
const WordSize = 8

// Info describes the memory and wire layout of a type.
type Info struct {
	// NativeSize is the in-memory size in bytes. Reference-like types count
	// their pointer+length pair, not their payload.
	NativeSize int

	// EncodedSize is the wire size in bytes. For dynamic types this is the
	// statically-known minimum (the length word for reference-like types,
	// tag plus smallest variant for enums).
	EncodedSize int

	// Dynamic is true when the full encoded size depends on the instance.
	Dynamic bool

	// TrivialEncode is true when the native byte sequence of every instance
	// is byte-identical to its encoding, permitting a single bulk copy.
	TrivialEncode bool

	// TrivialDecode is true when additionally every bit pattern of
	// NativeSize bytes is a valid value, so wire bytes may be adopted
	// without validation. Strictly narrower than TrivialEncode.
	TrivialDecode bool
}

// AlignToWord rounds n up to the next multiple of the machine word.
func AlignToWord(n int) int {
	return (n + WordSize - 1) &^ (WordSize - 1)
}

// Calculator computes layout Info for descriptor trees, memoized per node.
// Safe for concurrent use; encoders and decoders running on separate
// goroutines share one calculator.
type Calculator struct {
	mu    sync.RWMutex
	cache map[*types.TypeDesc]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*types.TypeDesc]Info),
	}
}

func (c *Calculator) Calculate(t *types.TypeDesc) Info {
	c.mu.RLock()
	cached, ok := c.cache[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}
	info := c.calculate(t)
	c.mu.Lock()
	c.cache[t] = info
	c.mu.Unlock()
	return info
}

func (c *Calculator) calculate(t *types.TypeDesc) Info {
	switch t.Kind {
	case types.KindUnit:
		return Info{TrivialEncode: true, TrivialDecode: true}

	case types.KindBool:
		// Native slot is a full word, the wire form a single byte, and
		// bytes other than 0/1 are trap representations.
		return Info{NativeSize: WordSize, EncodedSize: 1}

	case types.KindU8, types.KindU16, types.KindU32:
		return Info{NativeSize: WordSize, EncodedSize: t.Kind.UintWidth()}

	case types.KindU64, types.KindU128, types.KindU256:
		w := t.Kind.UintWidth()
		return Info{
			NativeSize:    w,
			EncodedSize:   w,
			TrivialEncode: true,
			TrivialDecode: trivialDecode(t, true),
		}

	case types.KindB256:
		return Info{
			NativeSize:    32,
			EncodedSize:   32,
			TrivialEncode: true,
			TrivialDecode: trivialDecode(t, true),
		}

	case types.KindStrFixed:
		trivEnc := t.Len%WordSize == 0 && t.Len > 0
		return Info{
			NativeSize:    AlignToWord(t.Len),
			EncodedSize:   t.Len,
			TrivialEncode: trivEnc,
			// Arbitrary bytes are not guaranteed valid UTF-8.
			TrivialDecode: trivialDecode(t, false) && trivEnc,
		}

	case types.KindBytes, types.KindRawSlice, types.KindStr, types.KindVector:
		return Info{
			NativeSize:  2 * WordSize, // ptr + len
			EncodedSize: WordSize,     // length word
			Dynamic:     true,
		}

	case types.KindTuple, types.KindStruct:
		return c.calculateFields(t)

	case types.KindArray:
		elem := c.Calculate(t.Elem)
		return Info{
			NativeSize:    t.Len * elem.NativeSize,
			EncodedSize:   t.Len * elem.EncodedSize,
			Dynamic:       elem.Dynamic,
			TrivialEncode: elem.TrivialEncode,
			TrivialDecode: trivialDecode(t, elem.TrivialDecode) && elem.TrivialEncode,
		}

	case types.KindEnum:
		return c.calculateEnum(t)

	default:
		return Info{}
	}
}

func (c *Calculator) calculateFields(t *types.TypeDesc) Info {
	info := Info{TrivialEncode: true}
	allDecodable := true

	for _, f := range t.Fields {
		fi := c.Calculate(f.Type)
		info.NativeSize += fi.NativeSize
		info.EncodedSize += fi.EncodedSize
		info.Dynamic = info.Dynamic || fi.Dynamic
		// A single field whose native form differs from its wire form
		// (promotion padding, length recomputation) poisons the whole
		// composite for the bulk-copy path.
		info.TrivialEncode = info.TrivialEncode && fi.TrivialEncode
		allDecodable = allDecodable && fi.TrivialDecode
	}

	info.TrivialDecode = trivialDecode(t, allDecodable) && info.TrivialEncode
	return info
}

func (c *Calculator) calculateEnum(t *types.TypeDesc) Info {
	info := Info{
		NativeSize:  WordSize,
		EncodedSize: WordSize,
		// Encoding writes only the selected variant's payload, so the wire
		// size varies per instance while the native size reserves the
		// largest variant. This asymmetry is why enums are never trivial.
		Dynamic: true,
	}

	maxNative := 0
	minEncoded := -1
	for _, v := range t.Variants {
		vi := c.Calculate(v.Type)
		if vi.NativeSize > maxNative {
			maxNative = vi.NativeSize
		}
		if minEncoded < 0 || vi.EncodedSize < minEncoded {
			minEncoded = vi.EncodedSize
		}
	}
	if minEncoded < 0 {
		minEncoded = 0
	}

	info.NativeSize += maxNative
	info.EncodedSize += minEncoded
	return info
}

// trivialDecode applies the trap-representation rule: a type may only be
// adopted bit-for-bit when every bit pattern is valid, unless the caller
// explicitly opted out of validation.
func trivialDecode(t *types.TypeDesc, noTrap bool) bool {
	return noTrap || t.Unchecked
}
