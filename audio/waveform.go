// Package audio holds the decoded-waveform data model shared by the
// analysis and playback pipelines. Decoding itself (demuxing, codecs) is an
// external collaborator: it hands this package a flat buffer of mono
// samples in [-1, 1] plus the rate they were captured at.
package audio

import (
	"time"

	"github.com/quaverlabs/pitchroll/algorithms/common"
)

// ProgressFunc reports completion fractions in [0, 1]. Decoders invoke it
// while producing samples; callers must not block inside it.
type ProgressFunc func(fraction float64)

// Waveform is an immutable sequence of mono float samples plus an integer
// sample rate in Hz. Slices produced by Slice share the backing buffer with
// their parent, so a slice stays valid for as long as any reference to the
// family of waveforms exists.
type Waveform struct {
	samples    []float64
	sampleRate int
}

// New wraps an already-decoded sample buffer. The buffer is retained, not
// copied; callers hand over ownership.
func New(samples []float64, sampleRate int) *Waveform {
	return &Waveform{samples: samples, sampleRate: sampleRate}
}

// FromFloat32 converts a decoder's float32 buffer into a Waveform.
func FromFloat32(samples []float32, sampleRate int) *Waveform {
	converted := make([]float64, len(samples))
	for i, s := range samples {
		converted[i] = float64(s)
	}
	return New(converted, sampleRate)
}

// Samples returns the underlying buffer. Callers must treat it as read-only.
func (w *Waveform) Samples() []float64 {
	return w.samples
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.samples)
}

// IsEmpty reports whether the waveform holds no samples.
func (w *Waveform) IsEmpty() bool {
	return len(w.samples) == 0
}

// SampleRate returns the sample rate in Hz.
func (w *Waveform) SampleRate() int {
	return w.sampleRate
}

// Duration returns the total play time of the waveform.
func (w *Waveform) Duration() time.Duration {
	if w.sampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.samples)) / float64(w.sampleRate) * float64(time.Second))
}

// TimeFromSample maps a sample index to its offset in seconds.
func (w *Waveform) TimeFromSample(sample int) float64 {
	return float64(sample) / float64(w.sampleRate)
}

// Slice returns a non-owning view of samples [start, end). The view shares
// the parent's backing buffer and sample rate.
func (w *Waveform) Slice(start, end int) *Waveform {
	return &Waveform{
		samples:    w.samples[start:end],
		sampleRate: w.sampleRate,
	}
}

// RMS returns the root mean square level of the waveform.
func (w *Waveform) RMS() float64 {
	return common.RMS(w.samples)
}

// Peak returns the largest absolute sample value.
func (w *Waveform) Peak() float64 {
	return common.MaxAbs(w.samples)
}

// Point is one (time, amplitude) pair of the time-domain signal.
type Point struct {
	Time  float64
	Value float64
}

// TimeDomain materializes the waveform as (time, amplitude) pairs for
// plotting consumers.
func (w *Waveform) TimeDomain() []Point {
	points := make([]Point, len(w.samples))
	for i, s := range w.samples {
		points[i] = Point{Time: w.TimeFromSample(i), Value: s}
	}
	return points
}
