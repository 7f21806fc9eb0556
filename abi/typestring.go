package abi

import (
	"strconv"
	"strings"

	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
)

// resolver maps a nominal name ("struct User", "enum Status") to its
// descriptor. Implemented by Document during type resolution.
type resolver interface {
	resolveStruct(name string) (*codec.TypeDesc, error)
	resolveEnum(name string) (*codec.TypeDesc, error)
}

// parseTypeString parses the ABI type-string grammar:
//
//	()  bool  u8  u16  u32  u64  u128  u256  b256  bytes  raw slice
//	str  str[N]  [T; N]  (T1, T2, ...)  Vec<T>  struct Name  enum Name
func parseTypeString(s string, r resolver) (*codec.TypeDesc, error) {
	p := &typeParser{src: strings.TrimSpace(s), res: r}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.UnknownType(s)
	}
	return t, nil
}

type typeParser struct {
	res resolver
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) eat(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

// word reads a maximal identifier run.
func (p *typeParser) word() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.pos++
		} else {
			break
		}
	}
	return p.src[start:p.pos]
}

func (p *typeParser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, errors.UnknownType(p.src)
	}
	return strconv.Atoi(p.src[start:p.pos])
}

func (p *typeParser) parse() (*codec.TypeDesc, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, errors.UnknownType(p.src)
	}

	switch c := p.src[p.pos]; {
	case c == '(':
		return p.parseParen()
	case c == '[':
		return p.parseArray()
	}

	w := p.word()
	switch w {
	case "bool":
		return codec.Bool(), nil
	case "u8":
		return codec.U8(), nil
	case "u16":
		return codec.U16(), nil
	case "u32":
		return codec.U32(), nil
	case "u64":
		return codec.U64(), nil
	case "u128":
		return codec.U128(), nil
	case "u256":
		return codec.U256(), nil
	case "b256":
		return codec.B256(), nil
	case "bytes":
		return codec.Bytes(), nil
	case "raw":
		p.skipSpace()
		if p.word() == "slice" {
			return codec.RawSlice(), nil
		}
		return nil, errors.UnknownType(p.src)
	case "str":
		if p.eat("[") {
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			if !p.eat("]") {
				return nil, errors.UnknownType(p.src)
			}
			return codec.StrFixed(n), nil
		}
		return codec.Str(), nil
	case "Vec":
		if !p.eat("<") {
			return nil, errors.UnknownType(p.src)
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.eat(">") {
			return nil, errors.UnknownType(p.src)
		}
		return codec.VectorOf(elem), nil
	case "struct":
		p.skipSpace()
		name := p.word()
		if name == "" {
			return nil, errors.UnknownType(p.src)
		}
		return p.res.resolveStruct(name)
	case "enum":
		p.skipSpace()
		name := p.word()
		if name == "" {
			return nil, errors.UnknownType(p.src)
		}
		return p.res.resolveEnum(name)
	default:
		return nil, errors.UnknownType(p.src)
	}
}

// parseParen handles the unit type "()" and tuples "(T1, T2, ...)".
func (p *typeParser) parseParen() (*codec.TypeDesc, error) {
	p.pos++ // '('
	p.skipSpace()
	if p.eat(")") {
		return codec.Unit(), nil
	}

	var elems []*codec.TypeDesc
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		p.skipSpace()
		if p.eat(")") {
			break
		}
		if !p.eat(",") {
			return nil, errors.UnknownType(p.src)
		}
	}
	return codec.TupleOf(elems...), nil
}

// parseArray handles "[T; N]".
func (p *typeParser) parseArray() (*codec.TypeDesc, error) {
	p.pos++ // '['
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat(";") {
		return nil, errors.UnknownType(p.src)
	}
	p.skipSpace()
	n, err := p.number()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat("]") {
		return nil, errors.UnknownType(p.src)
	}
	return codec.ArrayOf(elem, n), nil
}
