package windowing

import (
	"fmt"
	"math"
)

// Bartlett represents a Bartlett (triangular) window function
type Bartlett struct {
	size         int
	coefficients []float64
}

// NewBartlett creates a new Bartlett window
func NewBartlett(size int) *Bartlett {
	b := &Bartlett{
		size: size,
	}
	b.generate()
	return b
}

func (b *Bartlett) generate() {
	b.coefficients = make([]float64, b.size)

	half := float64(b.size) / 2.0
	for i := range b.coefficients {
		b.coefficients[i] = 1.0 - math.Abs((float64(i)-half)/half)
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Bartlett) Apply(signal []float64) []float64 {
	if len(signal) != b.size {
		return nil
	}

	windowed := make([]float64, b.size)
	for i := 0; i < b.size; i++ {
		windowed[i] = signal[i] * b.coefficients[i]
	}

	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (b *Bartlett) ApplyInPlace(signal []float64) error {
	if len(signal) != b.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), b.size)
	}

	for i := 0; i < b.size; i++ {
		signal[i] *= b.coefficients[i]
	}

	return nil
}

// GetCoefficients returns the window's coefficient buffer. Callers must
// treat it as read-only.
func (b *Bartlett) GetCoefficients() []float64 {
	return b.coefficients
}

// GetSize returns the window size
func (b *Bartlett) GetSize() int {
	return b.size
}

// GetType returns the window type
func (b *Bartlett) GetType() string {
	return "bartlett"
}
