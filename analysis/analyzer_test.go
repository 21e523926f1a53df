package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quaverlabs/pitchroll/audio"
	"github.com/quaverlabs/pitchroll/music"
)

// sineWaveform samples a unit sine tone at 44100 Hz.
func sineWaveform(freq float64, length int) *audio.Waveform {
	const rate = 44100
	samples := make([]float64, length)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return audio.New(samples, rate)
}

func singleWindowOptions() Options {
	opts := DefaultOptions()
	opts.StepFraction = 1.0
	return opts
}

func TestAnalyzeDetectsConcertA(t *testing.T) {
	// 4096 samples with a full-width window and a full hop yield exactly one
	// analysis window.
	wf := sineWaveform(440, 4096)

	result, err := NewAnalyzer(nil).Analyze(wf, singleWindowOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	presses, ok := result.Keys[music.Key(49)]
	if !ok {
		t.Fatalf("A4 not detected; got %d other keys", len(result.Keys))
	}
	if presses.Len() != 1 {
		t.Fatalf("A4 has %d presses, want 1", presses.Len())
	}

	press, _ := presses.First()
	if press.StartMs() != 0 {
		t.Errorf("press starts at %dms, want 0", press.StartMs())
	}
	// One 2048-sample window at 44100 Hz covers 46.44 ms, rounded to 46.
	if press.DurationMs() != 46 {
		t.Errorf("press lasts %dms, want 46", press.DurationMs())
	}
}

func TestAnalyzeSpectrogramShape(t *testing.T) {
	wf := sineWaveform(440, 4096)
	opts := singleWindowOptions()

	result, err := NewAnalyzer(nil).Analyze(wf, opts, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.SpectrogramErr != nil {
		t.Fatalf("SpectrogramErr: %v", result.SpectrogramErr)
	}

	sg := result.Spectrogram
	if sg.Columns() != 1 || sg.Rows() != opts.FFTWidth/2 {
		t.Fatalf("spectrogram %dx%d, want 1x%d", sg.Columns(), sg.Rows(), opts.FFTWidth/2)
	}

	// The brightest row should sit at the bucket nearest 440 Hz:
	// 440 * 2048 / 44100 = 20.4.
	peakRow := 0
	for row := 1; row < sg.Rows(); row++ {
		if sg.Intensity(0, row) > sg.Intensity(0, peakRow) {
			peakRow = row
		}
	}
	if peakRow != 20 && peakRow != 21 {
		t.Errorf("peak in row %d, want 20 or 21", peakRow)
	}

	if sg.Peak() <= 0 {
		t.Errorf("Peak() = %v, want positive", sg.Peak())
	}

	img := sg.Gray()
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != sg.Rows() {
		t.Errorf("Gray() bounds = %v", img.Bounds())
	}
}

func TestAnalyzeShortWaveformIsEmpty(t *testing.T) {
	wf := sineWaveform(440, 100)

	result, err := NewAnalyzer(nil).Analyze(wf, singleWindowOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Keys) != 0 {
		t.Errorf("short waveform produced %d keys", len(result.Keys))
	}
	if result.Spectrogram == nil || result.Spectrogram.Columns() != 0 {
		t.Errorf("short waveform spectrogram = %+v, want 0 columns", result.Spectrogram)
	}
}

func TestAnalyzeDropsOversizedSpectrogram(t *testing.T) {
	wf := sineWaveform(440, 4096)
	opts := singleWindowOptions()
	opts.MaxTextureDim = 1

	result, err := NewAnalyzer(nil).Analyze(wf, opts, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !errors.Is(result.SpectrogramErr, ErrSpectrogramTooLarge) {
		t.Fatalf("SpectrogramErr = %v, want ErrSpectrogramTooLarge", result.SpectrogramErr)
	}
	if result.Spectrogram != nil {
		t.Error("oversized spectrogram was kept")
	}
	// Note detection still succeeds when only the raster is dropped.
	if _, ok := result.Keys[music.Key(49)]; !ok {
		t.Error("dropping the spectrogram also dropped the notes")
	}
}

func TestAnalyzeReportsProgress(t *testing.T) {
	wf := sineWaveform(440, 4096*4)

	var fractions []float64
	_, err := NewAnalyzer(nil).Analyze(wf, singleWindowOptions(), func(fraction float64) {
		fractions = append(fractions, fraction)
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(fractions) == 0 {
		t.Fatal("progress callback never invoked")
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Fatalf("progress went backwards: %v", fractions)
		}
	}
	if fractions[0] != 0 {
		t.Errorf("first progress fraction = %v, want 0", fractions[0])
	}
}

func TestAnalyzeValidatesInput(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	if _, err := analyzer.Analyze(nil, DefaultOptions(), nil); err == nil {
		t.Error("nil waveform accepted")
	}

	bad := []Options{
		{FFTWidth: 1000, WindowFraction: 1, StepFraction: 0.5, Threshold: 0.2},
		{FFTWidth: 2048, WindowFraction: 0, StepFraction: 0.5, Threshold: 0.2},
		{FFTWidth: 2048, WindowFraction: 1.5, StepFraction: 0.5, Threshold: 0.2},
		{FFTWidth: 2048, WindowFraction: 1, StepFraction: 0, Threshold: 0.2},
		{FFTWidth: 2048, WindowFraction: 1, StepFraction: 0.5, Threshold: -1},
	}
	for i, opts := range bad {
		if _, err := analyzer.Analyze(sineWaveform(440, 4096), opts, nil); err == nil {
			t.Errorf("bad options %d accepted: %+v", i, opts)
		}
	}
}

func TestGoDeliversOnceAndClearsStatus(t *testing.T) {
	status := &StatusCell{}
	analyzer := NewAnalyzer(status)

	done := analyzer.Go(sineWaveform(440, 4096), singleWindowOptions(), nil)

	select {
	case analysis := <-done:
		if analysis.Err != nil {
			t.Fatalf("analysis failed: %v", analysis.Err)
		}
		if analysis.Result == nil {
			t.Fatal("analysis delivered no result")
		}
	case <-time.After(30 * time.Second):
		t.Fatal("analysis did not complete")
	}

	if got := status.Get().Phase; got != PhaseNone {
		t.Errorf("status after completion = %v, want %v", got, PhaseNone)
	}
}

func TestGoDeliversErrors(t *testing.T) {
	done := NewAnalyzer(nil).Go(nil, DefaultOptions(), nil)

	select {
	case analysis := <-done:
		if analysis.Err == nil {
			t.Fatal("nil waveform did not report an error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("analysis did not complete")
	}
}
