// Package layout computes native and wire layouts for type descriptors.
//
// For every TypeDesc it derives the in-memory size (word-promoted fields),
// the wire size (packed, no padding), and two independent classifications:
//
//   - TrivialEncode: native bytes are provably identical to wire bytes for
//     every instance, so encoding is a single bulk copy
//   - TrivialDecode: additionally, no bit pattern is a trap representation,
//     so wire bytes may be adopted without validation
//
// # Layout Rules
//
//   - Scalars below a word are promoted to a full 8-byte slot in memory but
//     occupy only their wire width when encoded
//   - Composites concatenate fields, natively word-by-word, on the wire
//     without padding
//   - Enums reserve the largest variant natively but encode only the
//     selected variant after an 8-byte tag
//   - Reference-like types (bytes, str, raw slice, Vec) are a ptr+len pair
//     natively and a length-prefixed payload on the wire
//
// This package is internal to the codec.
package layout
