package token

import (
	"fmt"
	"unicode"
)

type Type int

const (
	LParen Type = iota
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Ident
	Number
	String
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Pos   int // rune offset in the source, for error messages
}

var puncts = map[rune]Type{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	':': Colon,
}

// Tokenize splits a literal into tokens. Hex blobs with or without the 0x
// prefix lex as Number when they start with a digit and as Ident otherwise;
// the parser accepts both where a hex literal is expected.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if unicode.IsSpace(r) {
			continue
		}

		if typ, ok := puncts[r]; ok {
			tokens = append(tokens, Token{string(r), typ, i})
			continue
		}

		// String literal with escapes
		if r == '"' {
			start := i
			i++
			var buf []rune
			for i < len(runes) && runes[i] != '"' {
				c := runes[i]
				if c == '\\' {
					i++
					if i >= len(runes) {
						break
					}
					switch runes[i] {
					case 'n':
						c = '\n'
					case 't':
						c = '\t'
					case 'r':
						c = '\r'
					case '"':
						c = '"'
					case '\\':
						c = '\\'
					default:
						return nil, fmt.Errorf("position %d: unknown escape \\%c", i, runes[i])
					}
				}
				buf = append(buf, c)
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("position %d: unterminated string literal", start)
			}
			tokens = append(tokens, Token{string(buf), String, start})
			continue
		}

		// Number: decimal digits, hex digits, optional 0x prefix
		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) && isNumberRune(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, start})
			i--
			continue
		}

		// Identifier: variant names, true/false, bare hex blobs
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, start})
			i--
			continue
		}

		return nil, fmt.Errorf("position %d: unexpected character %q", i, r)
	}

	return tokens, nil
}

func isNumberRune(r rune) bool {
	return unicode.IsDigit(r) || r == 'x' || r == 'X' || r == '_' ||
		(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
