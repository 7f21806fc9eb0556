package codec

import (
	"github.com/wippyai/abi-codec/codec/internal/layout"
)

// WordSize is the native machine word assumed by the layout model.
const WordSize = layout.WordSize

type LayoutInfo = layout.Info

// LayoutAnalyzer computes native/wire sizes and triviality classifications
// for type descriptors. Results are memoized; one analyzer may be shared by
// any number of encoders and decoders.
type LayoutAnalyzer struct {
	calc *layout.Calculator
}

func NewLayoutAnalyzer() *LayoutAnalyzer {
	return &LayoutAnalyzer{
		calc: layout.NewCalculator(),
	}
}

func (a *LayoutAnalyzer) Analyze(t *TypeDesc) LayoutInfo {
	return a.calc.Calculate(t)
}

// NativeSize returns the in-memory size of t in bytes.
func (a *LayoutAnalyzer) NativeSize(t *TypeDesc) int {
	return a.calc.Calculate(t).NativeSize
}

// EncodedSize returns the statically-known wire size of t in bytes. For
// dynamic types this is the minimum any instance occupies.
func (a *LayoutAnalyzer) EncodedSize(t *TypeDesc) int {
	return a.calc.Calculate(t).EncodedSize
}
