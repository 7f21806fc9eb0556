// Package errors provides structured error types for the abi-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, the expected
// type signature, the byte offset where decoding failed, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindMalformedLiteral).
//		Path("user", "age").
//		Type("u32").
//		Detail("expected a decimal integer, got %q", tok).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Underrun(path, offset, need, have)
//	err := errors.UnknownVariantTagErr(path, offset, tag, count)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
