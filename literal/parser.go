package literal

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
	"github.com/wippyai/abi-codec/literal/internal/token"
)

// Parse reads a textual literal as a value of type t. The expected type
// drives the parse, since the literal syntax is not self-describing: {42, 1}
// only denotes a struct because t says so.
func Parse(t *codec.TypeDesc, src string) (codec.Value, error) {
	tokens, err := token.Tokenize(src)
	if err != nil {
		return codec.Value{}, errors.New(errors.PhaseParse, errors.KindMalformedLiteral).
			Type(t.Signature()).
			Cause(err).
			Detail("tokenize literal").
			Build()
	}

	p := &parser{tokens: tokens}
	v, err := p.parseValue(t, nil)
	if err != nil {
		return codec.Value{}, err
	}
	if tok := p.peek(); tok != nil {
		return codec.Value{}, errors.MalformedLiteral(nil, t.Signature(),
			"trailing input after value: "+strconv.Quote(tok.Value))
	}
	return v, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ token.Type, sig string, path []string) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.MalformedLiteral(path, sig, "unexpected end of input, expected "+typ.String())
	}
	if t.Type != typ {
		return nil, errors.MalformedLiteral(path, sig,
			"expected "+typ.String()+", got "+strconv.Quote(t.Value))
	}
	return t, nil
}

func (p *parser) parseValue(t *codec.TypeDesc, path []string) (codec.Value, error) {
	switch t.Kind {
	case codec.KindUnit:
		if _, err := p.expect(token.LParen, t.Signature(), path); err != nil {
			return codec.Value{}, err
		}
		if _, err := p.expect(token.RParen, t.Signature(), path); err != nil {
			return codec.Value{}, err
		}
		return codec.NewUnit(t), nil

	case codec.KindBool:
		tok := p.next()
		if tok == nil || tok.Type != token.Ident {
			return codec.Value{}, errors.MalformedLiteral(path, t.Signature(), `expected "true" or "false"`)
		}
		switch tok.Value {
		case "true":
			return codec.NewBool(t, true), nil
		case "false":
			return codec.NewBool(t, false), nil
		default:
			return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
				`expected "true" or "false", got `+strconv.Quote(tok.Value))
		}

	case codec.KindU8, codec.KindU16, codec.KindU32, codec.KindU64:
		return p.parseUint(t, path)

	case codec.KindU128, codec.KindU256:
		return p.parseBigUint(t, path)

	case codec.KindB256:
		return p.parseB256(t, path)

	case codec.KindBytes, codec.KindRawSlice:
		return p.parseHexBlob(t, path)

	case codec.KindStrFixed, codec.KindStr:
		return p.parseString(t, path)

	case codec.KindTuple:
		return p.parseDelimited(t, token.LParen, token.RParen, path)

	case codec.KindStruct:
		return p.parseDelimited(t, token.LBrace, token.RBrace, path)

	case codec.KindArray, codec.KindVector:
		return p.parseList(t, path)

	case codec.KindEnum:
		return p.parseEnum(t, path)

	default:
		return codec.Value{}, errors.MalformedLiteral(path, t.Signature(), "unsupported type kind")
	}
}

func (p *parser) parseUint(t *codec.TypeDesc, path []string) (codec.Value, error) {
	tok, err := p.expect(token.Number, t.Signature(), path)
	if err != nil {
		return codec.Value{}, err
	}
	lit := strings.ReplaceAll(tok.Value, "_", "")
	v, perr := strconv.ParseUint(lit, 10, 64)
	if perr != nil {
		if isRange(perr) {
			return codec.Value{}, errors.IntegerOverflow(path, tok.Value, t.Signature())
		}
		return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
			"expected decimal digits, got "+strconv.Quote(tok.Value))
	}
	if width := t.Kind.UintWidth(); width < 8 && v >= 1<<(8*width) {
		return codec.Value{}, errors.IntegerOverflow(path, tok.Value, t.Signature())
	}
	return codec.NewUint(t, v), nil
}

func (p *parser) parseBigUint(t *codec.TypeDesc, path []string) (codec.Value, error) {
	tok, err := p.expect(token.Number, t.Signature(), path)
	if err != nil {
		return codec.Value{}, err
	}
	lit := strings.ReplaceAll(tok.Value, "_", "")
	big, perr := uint256.FromDecimal(lit)
	if perr != nil {
		if strings.ContainsAny(lit, "abcdefABCDEFxX") {
			return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
				"expected decimal digits, got "+strconv.Quote(tok.Value))
		}
		return codec.Value{}, errors.IntegerOverflow(path, tok.Value, t.Signature())
	}
	if t.Kind == codec.KindU128 && big.BitLen() > 128 {
		return codec.Value{}, errors.IntegerOverflow(path, tok.Value, t.Signature())
	}
	return codec.NewBig(t, big), nil
}

func (p *parser) parseB256(t *codec.TypeDesc, path []string) (codec.Value, error) {
	digits, err := p.hexDigits(t, path)
	if err != nil {
		return codec.Value{}, err
	}
	if len(digits) != 64 {
		return codec.Value{}, errors.MalformedHex(path,
			"b256 requires exactly 64 hex digits, got "+strconv.Itoa(len(digits)))
	}
	raw, derr := hex.DecodeString(digits)
	if derr != nil {
		return codec.Value{}, errors.MalformedHex(path, derr.Error())
	}
	return codec.NewRaw(t, raw), nil
}

func (p *parser) parseHexBlob(t *codec.TypeDesc, path []string) (codec.Value, error) {
	digits, err := p.hexDigits(t, path)
	if err != nil {
		return codec.Value{}, err
	}
	if len(digits)%2 != 0 {
		return codec.Value{}, errors.MalformedHex(path, "odd number of hex digits")
	}
	raw, derr := hex.DecodeString(digits)
	if derr != nil {
		return codec.Value{}, errors.MalformedHex(path, derr.Error())
	}
	return codec.NewRaw(t, raw), nil
}

// hexDigits accepts a Number or Ident token and strips the optional 0x prefix.
func (p *parser) hexDigits(t *codec.TypeDesc, path []string) (string, error) {
	tok := p.next()
	if tok == nil || (tok.Type != token.Number && tok.Type != token.Ident) {
		return "", errors.MalformedLiteral(path, t.Signature(), "expected a hex literal")
	}
	digits := strings.TrimPrefix(tok.Value, "0x")
	digits = strings.TrimPrefix(digits, "0X")
	if strings.ContainsAny(digits, "xX_") {
		return "", errors.MalformedHex(path, "invalid character in hex literal "+strconv.Quote(tok.Value))
	}
	return digits, nil
}

func (p *parser) parseString(t *codec.TypeDesc, path []string) (codec.Value, error) {
	tok, err := p.expect(token.String, t.Signature(), path)
	if err != nil {
		return codec.Value{}, err
	}
	if t.Kind == codec.KindStrFixed && len(tok.Value) != t.Len {
		return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
			"string length "+strconv.Itoa(len(tok.Value))+" does not match declared length "+strconv.Itoa(t.Len))
	}
	return codec.NewString(t, tok.Value), nil
}

// parseDelimited handles tuples "(a, b)" and structs "{a, b}". Struct fields
// are positional; names are never written in the literal form.
func (p *parser) parseDelimited(t *codec.TypeDesc, open, close token.Type, path []string) (codec.Value, error) {
	if _, err := p.expect(open, t.Signature(), path); err != nil {
		return codec.Value{}, err
	}

	if len(t.Fields) > 0 {
		if tok := p.peek(); tok != nil && tok.Type == close {
			return codec.Value{}, errors.ArityMismatch(errors.PhaseParse, path, len(t.Fields), 0)
		}
	}

	elems := make([]codec.Value, 0, len(t.Fields))
	for i, f := range t.Fields {
		if i > 0 {
			tok := p.next()
			if tok == nil || tok.Type != token.Comma {
				return codec.Value{}, errors.ArityMismatch(errors.PhaseParse, path, len(t.Fields), i)
			}
		}
		label := f.Name
		if label == "" {
			label = strconv.Itoa(i)
		}
		v, err := p.parseValue(f.Type, append(path, label))
		if err != nil {
			return codec.Value{}, err
		}
		elems = append(elems, v)
	}

	tok := p.next()
	if tok == nil || tok.Type != close {
		if tok != nil && tok.Type == token.Comma {
			return codec.Value{}, errors.ArityMismatch(errors.PhaseParse, path, len(t.Fields), len(t.Fields)+1)
		}
		return codec.Value{}, errors.MalformedLiteral(path, t.Signature(), "expected "+close.String())
	}
	return codec.NewComposite(t, elems), nil
}

// parseList handles fixed arrays and dynamic vectors "[a, b, c]". All
// elements share the declared element type; a mismatched element fails
// inside its own parse.
func (p *parser) parseList(t *codec.TypeDesc, path []string) (codec.Value, error) {
	if _, err := p.expect(token.LBracket, t.Signature(), path); err != nil {
		return codec.Value{}, err
	}

	var elems []codec.Value
	if tok := p.peek(); tok != nil && tok.Type == token.RBracket {
		p.next()
	} else {
		for {
			v, err := p.parseValue(t.Elem, append(path, "["+strconv.Itoa(len(elems))+"]"))
			if err != nil {
				return codec.Value{}, err
			}
			elems = append(elems, v)

			tok := p.next()
			if tok == nil {
				return codec.Value{}, errors.MalformedLiteral(path, t.Signature(), "expected ',' or ']'")
			}
			if tok.Type == token.RBracket {
				break
			}
			if tok.Type != token.Comma {
				return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
					"expected ',' or ']', got "+strconv.Quote(tok.Value))
			}
		}
	}

	if t.Kind == codec.KindArray && len(elems) != t.Len {
		return codec.Value{}, errors.ArityMismatch(errors.PhaseParse, path, t.Len, len(elems))
	}
	return codec.NewComposite(t, elems), nil
}

// parseEnum handles "(variant-name: payload)" and "(index: payload)". Names
// are case-sensitive; indices are 0-based.
func (p *parser) parseEnum(t *codec.TypeDesc, path []string) (codec.Value, error) {
	if _, err := p.expect(token.LParen, t.Signature(), path); err != nil {
		return codec.Value{}, err
	}

	sel := p.next()
	if sel == nil || (sel.Type != token.Ident && sel.Type != token.Number) {
		return codec.Value{}, errors.MalformedLiteral(path, t.Signature(), "expected a variant name or index")
	}

	var idx int
	switch sel.Type {
	case token.Ident:
		i, ok := t.VariantByName(sel.Value)
		if !ok {
			return codec.Value{}, errors.UnknownVariantName(path, sel.Value, t.Signature())
		}
		idx = i
	case token.Number:
		n, perr := strconv.ParseUint(sel.Value, 10, 64)
		if perr != nil {
			return codec.Value{}, errors.MalformedLiteral(path, t.Signature(),
				"invalid variant index "+strconv.Quote(sel.Value))
		}
		if n >= uint64(len(t.Variants)) {
			return codec.Value{}, errors.VariantIndexOutOfRange(path, n, len(t.Variants))
		}
		idx = int(n)
	}

	if _, err := p.expect(token.Colon, t.Signature(), path); err != nil {
		return codec.Value{}, err
	}

	variant := t.Variants[idx]
	payload, err := p.parseValue(variant.Type, append(path, variant.Name))
	if err != nil {
		return codec.Value{}, err
	}

	if _, err := p.expect(token.RParen, t.Signature(), path); err != nil {
		return codec.Value{}, err
	}
	return codec.NewEnum(t, uint64(idx), payload), nil
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
