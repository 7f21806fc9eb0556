package pipeline

import (
	"context"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/wippyai/abi-codec/abi"
	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
	"github.com/wippyai/abi-codec/literal"
)

// SelectorSize is the length of the function selector prefix.
const SelectorSize = 4

// CallData is a finished call payload. It is handed to an external
// Performer; this package never transmits or executes anything itself.
type CallData struct {
	Payload  []byte
	Selector [SelectorSize]byte
}

// Performer executes an assembled call against the external environment
// (virtual machine, node RPC, simulator) and returns the raw result bytes.
type Performer interface {
	Perform(ctx context.Context, call CallData) ([]byte, error)
}

// Selector derives the 4-byte function selector from the canonical
// signature, e.g. "transfer(b256,u64)".
func Selector(fn *abi.Function) [SelectorSize]byte {
	var sel [SelectorSize]byte
	copy(sel[:], crypto.Keccak256([]byte(fn.Signature())))
	return sel
}

// ArgumentPipeline turns literal argument strings into a call payload for
// one declared function: parse each literal against its declared parameter
// type, encode, and concatenate in declaration order.
type ArgumentPipeline struct {
	fn       *abi.Function
	enc      *codec.Encoder
	selector [SelectorSize]byte
}

func NewArgumentPipeline(fn *abi.Function) *ArgumentPipeline {
	return NewArgumentPipelineWithEncoder(fn, codec.NewEncoder())
}

func NewArgumentPipelineWithEncoder(fn *abi.Function, enc *codec.Encoder) *ArgumentPipeline {
	return &ArgumentPipeline{
		fn:       fn,
		enc:      enc,
		selector: Selector(fn),
	}
}

// Assemble builds the call payload from one literal per declared parameter.
// The argument count is checked before any parsing or encoding is attempted;
// on any later failure the partial payload is discarded.
func (p *ArgumentPipeline) Assemble(literals []string) (*CallData, error) {
	params := p.fn.Params
	if len(literals) != len(params) {
		return nil, errors.ArityMismatch(errors.PhaseParse, []string{p.fn.Name}, len(params), len(literals))
	}

	var payload []byte
	for i, param := range params {
		v, err := literal.Parse(param.Type, literals[i])
		if err != nil {
			return nil, withParam(err, param.Name)
		}

		before := len(payload)
		payload, err = p.enc.Append(payload, param.Type, v)
		if err != nil {
			return nil, withParam(err, param.Name)
		}

		Logger().Debug("encoded argument",
			zap.String("function", p.fn.Name),
			zap.String("param", param.Name),
			zap.String("type", param.Type.Signature()),
			zap.Int("bytes", len(payload)-before))
	}

	return &CallData{Selector: p.selector, Payload: payload}, nil
}

// ResultPipeline turns returned wire bytes back into a literal string for
// display: decode against the declared return type, then print.
type ResultPipeline struct {
	fn       *abi.Function
	dec      *codec.Decoder
	analyzer *codec.LayoutAnalyzer
}

func NewResultPipeline(fn *abi.Function) *ResultPipeline {
	analyzer := codec.NewLayoutAnalyzer()
	return &ResultPipeline{
		fn:       fn,
		dec:      codec.NewDecoderWithAnalyzer(analyzer),
		analyzer: analyzer,
	}
}

// Render decodes the returned payload and renders it in the literal syntax.
func (p *ResultPipeline) Render(data []byte) (string, error) {
	out := p.fn.Output

	// Fail before decoding when the payload cannot possibly satisfy the
	// statically-required size.
	if min := p.analyzer.EncodedSize(out); len(data) < min {
		return "", errors.Underrun([]string{p.fn.Name}, 0, min, len(data))
	}

	v, n, err := p.dec.Decode(out, data)
	if err != nil {
		return "", err
	}

	Logger().Debug("decoded result",
		zap.String("function", p.fn.Name),
		zap.String("type", out.Signature()),
		zap.Int("consumed", n))

	return literal.Print(out, v)
}

// Call composes both pipelines around an external performer: assemble the
// payload, perform the call, render the result.
func Call(ctx context.Context, performer Performer, fn *abi.Function, literals []string) (string, error) {
	call, err := NewArgumentPipeline(fn).Assemble(literals)
	if err != nil {
		return "", err
	}

	result, err := performer.Perform(ctx, *call)
	if err != nil {
		return "", err
	}

	return NewResultPipeline(fn).Render(result)
}

// withParam prefixes the parameter name onto a structured error's path so
// the user sees which argument failed.
func withParam(err error, name string) error {
	if e, ok := err.(*errors.Error); ok {
		c := *e
		c.Path = append([]string{name}, e.Path...)
		return &c
	}
	return err
}
