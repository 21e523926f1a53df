// Package windowing provides the window functions applied before spectral
// analysis to reduce leakage. All windows use the periodic (denominator N)
// form so coefficients tile seamlessly across hops.
package windowing

// Window is implemented by every window function in this package
type Window interface {
	Apply(signal []float64) []float64
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// Kind selects a window function at run time
type Kind int

const (
	KindRectangular Kind = iota
	KindBartlett
	KindHann
	KindHamming
)

// AllKinds lists every supported window kind
var AllKinds = [...]Kind{KindRectangular, KindBartlett, KindHann, KindHamming}

func (k Kind) String() string {
	switch k {
	case KindRectangular:
		return "rectangular"
	case KindBartlett:
		return "bartlett"
	case KindHann:
		return "hann"
	case KindHamming:
		return "hamming"
	default:
		return "unknown"
	}
}

// New creates a window of the given kind and size. Sizes 0 and 1 are
// degenerate but accepted; the caller owns that decision.
func New(kind Kind, size int) Window {
	switch kind {
	case KindBartlett:
		return NewBartlett(size)
	case KindHann:
		return NewHann(size)
	case KindHamming:
		return NewHamming(size)
	default:
		return NewRectangular(size)
	}
}
