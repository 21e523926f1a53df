// Package spectral computes discrete Fourier spectra of windowed waveform
// slices and the quantities derived from them: amplitudes, phases,
// frequency-bucket mapping and spectral shifting.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/quaverlabs/pitchroll/algorithms/windowing"
	"github.com/quaverlabs/pitchroll/audio"
)

// Spectrum is a fixed-width array of complex frequency-domain coefficients
// produced from one waveform slice. Width is always a power of two. Buckets
// 0..width/2 carry all non-redundant information for a real input signal;
// the upper half is the conjugate mirror.
type Spectrum struct {
	width      int
	sampleRate int
	buckets    []complex128
}

// Compute builds a width-length complex buffer from the slice (each sample
// scaled by its window coefficient, zero where the window or the slice runs
// out) and transforms it in place. Width must be a power of two in
// [MinWidth, MaxWidth]; anything else panics.
func Compute(slice *audio.Waveform, win windowing.Window, width int) *Spectrum {
	checkWidth(width)

	samples := slice.Samples()
	coefficients := win.GetCoefficients()

	buckets := make([]complex128, width)
	for i := range buckets {
		if i < len(samples) && i < len(coefficients) {
			buckets[i] = complex(samples[i]*coefficients[i], 0)
		}
	}

	return &Spectrum{
		width:      width,
		sampleRate: slice.SampleRate(),
		buckets:    cfft(buckets),
	}
}

// Width returns the transform width.
func (s *Spectrum) Width() int {
	return s.width
}

// SampleRate returns the sample rate the bucket-to-frequency mapping is
// interpreted against.
func (s *Spectrum) SampleRate() int {
	return s.sampleRate
}

// Buckets returns the raw complex coefficients. Callers must treat the
// slice as read-only.
func (s *Spectrum) Buckets() []complex128 {
	return s.buckets
}

// Amplitudes returns the norm of every coefficient, full width.
func (s *Spectrum) Amplitudes() []float64 {
	amps := make([]float64, len(s.buckets))
	for i, b := range s.buckets {
		amps[i] = cmplx.Abs(b)
	}
	return amps
}

// AmplitudesReal returns the first width/2+1 amplitudes, the non-redundant
// half for a real-valued input signal.
func (s *Spectrum) AmplitudesReal() []float64 {
	return s.Amplitudes()[:s.width/2+1]
}

// Phases returns the argument of every coefficient divided by the width.
func (s *Spectrum) Phases() []float64 {
	phases := make([]float64, len(s.buckets))
	for i, b := range s.buckets {
		phases[i] = cmplx.Phase(b) / float64(s.width)
	}
	return phases
}

// PhasesReal returns the first width/2+1 phases.
func (s *Spectrum) PhasesReal() []float64 {
	return s.Phases()[:s.width/2+1]
}

// MainFrequency returns the bucket and amplitude of the largest value among
// the real-half amplitudes. NaN amplitudes order below every number;
// comparing two NaNs panics since the spectrum is then garbage.
func (s *Spectrum) MainFrequency() (bucket int, amplitude float64) {
	amps := s.AmplitudesReal()

	bucket, amplitude = 0, amps[0]
	for i, amp := range amps[1:] {
		if amplitudeLess(amplitude, amp) || amp == amplitude {
			bucket, amplitude = i+1, amp
		}
	}
	return bucket, amplitude
}

// amplitudeLess orders a before b treating NaN as smaller than any number.
func amplitudeLess(a, b float64) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		panic("spectral: encountered two NaN amplitudes")
	case aNaN:
		return true
	case bNaN:
		return false
	default:
		return a < b
	}
}

// FreqResolution returns the frequency covered by one bucket in Hz.
func (s *Spectrum) FreqResolution() float64 {
	return float64(s.sampleRate) / float64(s.width)
}

// FreqFromBucket maps a bucket index to its frequency. Buckets above
// width/2 map to negative frequencies.
func (s *Spectrum) FreqFromBucket(bucket int) float64 {
	if bucket > s.width/2 {
		return -float64(s.width-bucket) * s.FreqResolution()
	}
	return float64(bucket) * s.FreqResolution()
}

// BucketFromFreq maps a frequency to the nearest bucket index.
func (s *Spectrum) BucketFromFreq(freq float64) int {
	return int(math.Round(freq * float64(s.width) / float64(s.sampleRate)))
}

// Shift returns a new Spectrum with the lowest `buckets` buckets of both
// spectral halves zeroed and the remaining content of each half moved by
// that many buckets, frequency-shifting a tone without changing duration.
// Shifting by width/2 or more yields an all-zero spectrum.
func (s *Spectrum) Shift(buckets int) *Spectrum {
	half := s.width / 2

	shifted := make([]complex128, s.width)
	if buckets < half {
		copy(shifted[buckets:half], s.buckets[:half-buckets])
		copy(shifted[half:s.width-buckets], s.buckets[half+buckets:])
	}

	return &Spectrum{
		width:      s.width,
		sampleRate: s.sampleRate,
		buckets:    shifted,
	}
}
