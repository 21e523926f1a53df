// Package analysis slides a window across a decoded waveform, computes the
// spectrum of every window and turns above-threshold frequency buckets into
// per-key press intervals plus a rasterized spectrogram.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/quaverlabs/pitchroll/algorithms/spectral"
	"github.com/quaverlabs/pitchroll/algorithms/windowing"
	"github.com/quaverlabs/pitchroll/audio"
	"github.com/quaverlabs/pitchroll/logging"
	"github.com/quaverlabs/pitchroll/music"
	"github.com/quaverlabs/pitchroll/roll"
)

// ErrSpectrogramTooLarge reports that the raster would exceed the rendering
// target's maximum texture dimension. The analysis itself still succeeds;
// only the image is dropped.
var ErrSpectrogramTooLarge = errors.New("spectrogram exceeds the maximum texture dimension")

// Options configures one analysis pass.
type Options struct {
	// FFTWidth is the transform width, a power of two in [2, 16384].
	FFTWidth int
	// WindowFraction in (0, 1] scales FFTWidth down to the analysis window
	// width; samples past the window are zero-padded up to FFTWidth.
	WindowFraction float64
	// StepFraction scales the window width to the hop between windows.
	StepFraction float64
	// Threshold is the minimum bucket amplitude that counts as a press.
	Threshold float64
	// MaxTextureDim overrides DefaultMaxTextureDim when positive.
	MaxTextureDim int
}

// DefaultOptions returns the tuning used by the interactive frontends.
func DefaultOptions() Options {
	return Options{
		FFTWidth:       2048,
		WindowFraction: 1.0,
		StepFraction:   0.5,
		Threshold:      0.2,
	}
}

// Validate checks the options for programmer errors.
func (o Options) Validate() error {
	if o.FFTWidth < spectral.MinWidth || o.FFTWidth > spectral.MaxWidth || bits.OnesCount(uint(o.FFTWidth)) != 1 {
		return fmt.Errorf("fft width must be a power of two in [%d, %d], got %d", spectral.MinWidth, spectral.MaxWidth, o.FFTWidth)
	}
	if o.WindowFraction <= 0 || o.WindowFraction > 1 {
		return fmt.Errorf("window fraction must be in (0, 1], got %v", o.WindowFraction)
	}
	if o.StepFraction <= 0 {
		return fmt.Errorf("step fraction must be positive, got %v", o.StepFraction)
	}
	if o.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", o.Threshold)
	}
	return nil
}

func (o Options) maxTextureDim() int {
	if o.MaxTextureDim > 0 {
		return o.MaxTextureDim
	}
	return DefaultMaxTextureDim
}

// ProgressFunc is invoked synchronously from the analysis worker with the
// fraction of windows processed. Callers must not block inside it.
type ProgressFunc func(fraction float64)

// Result is the outcome of one analysis pass, published once at completion.
type Result struct {
	// Keys holds only the keys that had at least one qualifying bucket;
	// each set already satisfies the coalescing invariant.
	Keys map[music.Key]*roll.KeyPresses
	// Spectrogram has exactly one column per analysis window. It is nil
	// when SpectrogramErr is set.
	Spectrogram *Spectrogram
	// SpectrogramErr reports a recoverable raster failure; the note results
	// above are still valid.
	SpectrogramErr error
}

// Analysis is the terminal outcome delivered by Go.
type Analysis struct {
	Result *Result
	Err    error
}

// Analyzer runs sliding-window pitch detection over a waveform and reports
// its progress through a StatusCell.
type Analyzer struct {
	status *StatusCell
	logger logging.Logger
}

// NewAnalyzer creates an analyzer publishing into the given cell. A nil
// cell is replaced with a private one.
func NewAnalyzer(status *StatusCell) *Analyzer {
	if status == nil {
		status = &StatusCell{}
	}
	return &Analyzer{
		status: status,
		logger: logging.WithFields(logging.Fields{"component": "analysis"}),
	}
}

// Status returns the most recently published pipeline status.
func (a *Analyzer) Status() Status {
	return a.status.Get()
}

// Analyze runs one pass over the waveform. A waveform shorter than one
// analysis window yields an empty result, not an error. The input is only
// read, never written.
func (a *Analyzer) Analyze(wf *audio.Waveform, opts Options, progress ProgressFunc) (*Result, error) {
	if wf == nil {
		return nil, errors.New("no waveform to analyze")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis options: %w", err)
	}

	windowWidth := int(math.Ceil(float64(opts.FFTWidth) * opts.WindowFraction))
	step := int(math.Ceil(float64(windowWidth) * opts.StepFraction))
	rows := opts.FFTWidth / 2

	result := &Result{Keys: make(map[music.Key]*roll.KeyPresses)}

	if wf.Len() < windowWidth {
		result.Spectrogram = newSpectrogram(0, rows)
		return result, nil
	}

	windowCount := (wf.Len() - windowWidth) / step
	if windowCount == 0 {
		result.Spectrogram = newSpectrogram(0, rows)
		return result, nil
	}

	var columns [][]float64
	if maxDim := opts.maxTextureDim(); windowCount > maxDim || rows > maxDim {
		result.SpectrogramErr = fmt.Errorf("%w: %dx%d with limit %d", ErrSpectrogramTooLarge, windowCount, rows, maxDim)
		a.logger.Warn("dropping spectrogram", logging.Fields{
			"columns": windowCount,
			"rows":    rows,
			"limit":   maxDim,
		})
	} else {
		columns = make([][]float64, windowCount)
	}

	win := windowing.NewHann(opts.FFTWidth)
	secondsPerWindow := float64(windowWidth) / float64(wf.SampleRate())
	durationMs := uint64(math.Round(secondsPerWindow * 1000))

	for i := 0; i < windowCount; i++ {
		fraction := float64(i) / float64(windowCount)
		a.status.Set(Status{Phase: PhaseAnalyzing, Progress: fraction})
		if progress != nil {
			progress(fraction)
		}

		start := i * step
		spectrum := spectral.Compute(wf.Slice(start, start+windowWidth), win, opts.FFTWidth)
		amplitudes := spectrum.AmplitudesReal()

		if columns != nil {
			columns[i] = amplitudes
		}

		startMs := uint64(math.Round(float64(i) * secondsPerWindow * 1000))
		for bucket := 0; bucket < rows; bucket++ {
			amplitude := amplitudes[bucket]
			if amplitude < opts.Threshold {
				continue
			}

			key, ok := music.KeyFromConcertPitch(spectrum.FreqFromBucket(bucket))
			if !ok {
				continue
			}

			presses := result.Keys[key]
			if presses == nil {
				presses = roll.NewKeyPresses()
				result.Keys[key] = presses
			}
			presses.Add(roll.NewKeyPress(startMs, durationMs, amplitude))
		}
	}

	if columns != nil {
		a.status.Set(Status{Phase: PhaseGeneratingSpectrogram})
		spectrogram := newSpectrogram(windowCount, rows)
		for i, column := range columns {
			spectrogram.setColumn(i, column)
		}
		result.Spectrogram = spectrogram
	}

	a.logger.Info("analysis complete", logging.Fields{
		"windows": windowCount,
		"keys":    len(result.Keys),
	})
	return result, nil
}

// Go runs Analyze on a dedicated worker goroutine and delivers the outcome
// exactly once on the returned channel. The channel is buffered, so the
// worker never blocks on an absent reader; an abandoned analysis is simply
// never consumed. The status cell reads PhaseNone again once the outcome
// has been published.
func (a *Analyzer) Go(wf *audio.Waveform, opts Options, progress ProgressFunc) <-chan Analysis {
	done := make(chan Analysis, 1)
	go func() {
		result, err := a.Analyze(wf, opts, progress)
		if err != nil {
			a.logger.Error(err, "analysis failed")
		}
		a.status.Clear()
		done <- Analysis{Result: result, Err: err}
	}()
	return done
}
