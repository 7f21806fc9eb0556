// Package literal provides the human-readable value syntax used by tooling
// that calls contract functions without access to the original source types.
//
// Parsing is driven by the expected type descriptor, since the syntax is not
// self-describing. The grammar, informally:
//
//	bool            true | false
//	u8..u256        decimal digits
//	b256            [0x] 64 hex digits
//	bytes/raw slice [0x] hex digits
//	str / str[N]    "chars"
//	tuple           (v1, v2, ...)
//	struct          {v1, v2, ...}     positional, field names not written
//	array / Vec     [v1, v2, ...]
//	enum            (Name: v) | (index: v)   name case-sensitive, index 0-based
//
// Print is the structural inverse, used to render decoded results for human
// consumption. Printing a parsed value and re-parsing it yields an equal
// value, though not necessarily an identical string (whitespace).
package literal
