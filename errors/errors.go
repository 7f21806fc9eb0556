package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse  Phase = "parse"  // textual literal parsing
	PhaseEncode Phase = "encode" // value to wire bytes
	PhaseDecode Phase = "decode" // wire bytes to value
	PhaseABI    Phase = "abi"    // ABI document handling
	PhaseLayout Phase = "layout" // layout analysis
)

// Kind categorizes the error
type Kind string

const (
	// Parse kinds. Always caused by bad user input and recoverable by
	// correcting the literal.
	KindMalformedLiteral  Kind = "malformed_literal"
	KindArityMismatch     Kind = "arity_mismatch"
	KindMalformedHex      Kind = "malformed_hex"
	KindIntegerOverflow   Kind = "integer_overflow"
	KindUnknownVariant    Kind = "unknown_variant_name"
	KindVariantOutOfRange Kind = "variant_index_out_of_range"

	// Codec kinds. A malformed wire payload (decode) or an inconsistency
	// between declared type and supplied value (encode).
	KindBufferUnderrun    Kind = "buffer_underrun"
	KindUnknownVariantTag Kind = "unknown_variant_tag"
	KindEncodingOverflow  Kind = "encoding_overflow"
	KindInvalidData       Kind = "invalid_data"

	// ABI kinds. External-input errors surfaced before any encode/decode.
	KindMalformedABI    Kind = "malformed_abi"
	KindUnknownType     Kind = "unknown_type"
	KindUnknownFunction Kind = "unknown_function"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // expected type signature, e.g. "(u64, bool)"
	Detail string
	Path   []string
	Offset int // byte offset into the wire buffer, zero when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset > 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Type != "" {
		b.WriteString(": expected ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsParse reports whether the error was caused by bad literal input
func (e *Error) IsParse() bool {
	return e.Phase == PhaseParse
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the expected type signature
func (b *Builder) Type(sig string) *Builder {
	b.err.Type = sig
	return b
}

// Offset sets the byte offset into the wire buffer
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedLiteral creates a literal syntax error
func MalformedLiteral(path []string, sig, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedLiteral,
		Path:   path,
		Type:   sig,
		Detail: detail,
	}
}

// ArityMismatch creates an element/argument count error
func ArityMismatch(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d elements, got %d", want, got),
		Value:  got,
	}
}

// MalformedHex creates a hex literal error
func MalformedHex(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedHex,
		Path:   path,
		Detail: detail,
	}
}

// IntegerOverflow creates an error for a decimal literal exceeding its width
func IntegerOverflow(path []string, literal, sig string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindIntegerOverflow,
		Path:   path,
		Type:   sig,
		Detail: fmt.Sprintf("literal %s exceeds %s", literal, sig),
		Value:  literal,
	}
}

// UnknownVariantName creates an error for an enum selector that does not resolve
func UnknownVariantName(path []string, name, sig string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownVariant,
		Path:   path,
		Type:   sig,
		Detail: fmt.Sprintf("no variant named %q", name),
		Value:  name,
	}
}

// VariantIndexOutOfRange creates an error for a numeric enum selector beyond the variant count
func VariantIndexOutOfRange(path []string, index uint64, count int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindVariantOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("variant index %d out of range (%d variants)", index, count),
		Value:  index,
	}
}

// Underrun creates a buffer underrun error
func Underrun(path []string, offset, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBufferUnderrun,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remain", need, have),
	}
}

// UnknownVariantTagErr creates an error for a decoded discriminant beyond the variant count
func UnknownVariantTagErr(path []string, offset int, tag uint64, count int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownVariantTag,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("tag %d out of range (%d variants)", tag, count),
		Value:  tag,
	}
}

// EncodingOverflow creates an error for a value too large for its declared width
func EncodingOverflow(path []string, value any, sig string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncodingOverflow,
		Path:   path,
		Type:   sig,
		Detail: fmt.Sprintf("value %v does not fit %s", value, sig),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// MalformedABI creates an ABI document error
func MalformedABI(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseABI,
		Kind:   KindMalformedABI,
		Detail: detail,
		Cause:  cause,
	}
}

// UnknownType creates an error for a type string that does not resolve
func UnknownType(typeStr string) *Error {
	return &Error{
		Phase:  PhaseABI,
		Kind:   KindUnknownType,
		Detail: fmt.Sprintf("unknown type %q", typeStr),
		Value:  typeStr,
	}
}

// UnknownFunction creates an error for a function name absent from the ABI
func UnknownFunction(name string) *Error {
	return &Error{
		Phase:  PhaseABI,
		Kind:   KindUnknownFunction,
		Detail: fmt.Sprintf("function %q not declared", name),
		Value:  name,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
