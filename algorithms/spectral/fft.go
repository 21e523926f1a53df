package spectral

import (
	"fmt"
	"math/bits"

	"github.com/mjibson/go-dsp/fft"
)

// Transform widths the engine dispatches on. The bounds mirror the
// fixed-size kernels the rest of the pipeline is tuned for.
const (
	MinWidth = 2
	MaxWidth = 16384
)

// checkWidth panics unless width is a power of two within the supported
// dispatch range. A bad width is a programmer error, not a recoverable one.
func checkWidth(width int) {
	if width < MinWidth || width > MaxWidth || bits.OnesCount(uint(width)) != 1 {
		panic(fmt.Sprintf("spectral: unsupported transform width %d (want a power of two in [%d, %d])", width, MinWidth, MaxWidth))
	}
}

// cfft computes the in-order complex FFT of the buffer.
func cfft(buckets []complex128) []complex128 {
	checkWidth(len(buckets))
	return fft.FFT(buckets)
}

// InverseReal computes the inverse FFT and keeps only the real part,
// reconstructing time-domain samples from a (possibly shifted) spectrum.
func InverseReal(buckets []complex128) []float64 {
	checkWidth(len(buckets))

	result := fft.IFFT(buckets)
	samples := make([]float64, len(result))
	for i, val := range result {
		samples[i] = real(val)
	}
	return samples
}
