// Package codec provides packed binary encoding and decoding of typed values.
//
// This package handles bidirectional conversion between in-memory Values and
// the wire form declared by a contract ABI:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Value ←→ [Encoder / Decoder] ←→ packed wire bytes       │
//	└─────────────────────────────────────────────────────────┘
//
// # Wire Layout
//
// Integers are fixed-width big-endian; composites concatenate their fields
// with no padding; variable-length types carry an 8-byte big-endian length
// prefix in the buffer.
//
//	Type            Native  Wire
//	─────────────────────────────────────
//	bool            8       1
//	u8/u16/u32      8       1/2/4
//	u64             8       8
//	u128            16      16
//	u256, b256      32      32
//	str[N]          N→word  N
//	bytes/str/Vec   16      8 + payload
//	tuple/struct    sum     sum (packed)
//	[T; N]          N×T     N×T
//	enum            8+max   8 + selected
//
// # Key Types
//
//	Encoder        - Writes Values to wire bytes
//	Decoder        - Reads wire bytes into Values
//	LayoutAnalyzer - Classifies types for the bulk-copy fast paths
//	TypeDesc       - Immutable recursive type description
//
// # Trivial Paths
//
// When a type's native byte image provably equals its wire image for every
// instance, the encoder performs a single bulk copy instead of field-by-field
// transformation. Decoding takes the same shortcut only for types with no
// trap representations; bool bytes and enum tags always get validated.
// Uncheck wraps a descriptor to skip that validation when the caller accepts
// constructing invalid values from malformed input.
//
// # Concurrency
//
// Descriptors are immutable and shared. Encoder and Decoder are stateless
// per call; any number of goroutines may use one instance concurrently,
// each invocation owning its own buffer.
package codec
