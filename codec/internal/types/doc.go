// Package types defines the type descriptor and value structures for the codec.
//
// TypeDesc is a recursive, immutable description of a value's shape. Trees
// are built once from an ABI document and shared read-only across any number
// of concurrent encode/decode operations.
//
// # Key Types
//
//   - TypeDesc: Recursive type shape (primitive, tuple, array, struct, enum, ...)
//   - Kind: Type discriminator
//   - Value: Decoded in-memory counterpart, one representation per Kind
//
// This package is internal to the codec.
package types
