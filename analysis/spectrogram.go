package analysis

import (
	"image"
	"image/color"
	"math"

	"github.com/quaverlabs/pitchroll/algorithms/common"
)

// DefaultMaxTextureDim caps either spectrogram side. Rendering targets
// commonly refuse textures larger than 16384 on a side; a spectrogram that
// would exceed the cap is dropped while the note results are kept.
const DefaultMaxTextureDim = 16384

// Spectrogram is the rasterized time-by-frequency amplitude grid: one
// column per analysis window, fftWidth/2 rows, row 0 = DC. Intensities are
// the raw spectral amplitudes.
type Spectrogram struct {
	cols, rows int
	intensity  []float64 // column-major: intensity[col*rows+row]
}

func newSpectrogram(cols, rows int) *Spectrogram {
	return &Spectrogram{
		cols:      cols,
		rows:      rows,
		intensity: make([]float64, cols*rows),
	}
}

// Columns returns the number of analysis windows rasterized.
func (s *Spectrogram) Columns() int {
	return s.cols
}

// Rows returns the number of frequency buckets per column.
func (s *Spectrogram) Rows() int {
	return s.rows
}

// setColumn copies one window's amplitudes into column col, ignoring
// amplitudes past the last row (the shared Nyquist bucket).
func (s *Spectrogram) setColumn(col int, amplitudes []float64) {
	column := s.intensity[col*s.rows : (col+1)*s.rows]
	copy(column, amplitudes)
}

// Intensity returns the amplitude stored at (col, row).
func (s *Spectrogram) Intensity(col, row int) float64 {
	return s.intensity[col*s.rows+row]
}

// Peak returns the largest amplitude in the grid.
func (s *Spectrogram) Peak() float64 {
	return common.Max(s.intensity)
}

// Gray renders the grid as a grayscale image, columns on the x axis and
// bucket 0 (DC) at y=0. Amplitudes are clamped to [0, 1] and scaled to the
// 8-bit range.
func (s *Spectrogram) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.cols, s.rows))
	for col := 0; col < s.cols; col++ {
		for row := 0; row < s.rows; row++ {
			level := math.Round(255 * common.Clamp(s.Intensity(col, row), 0, 1))
			img.SetGray(col, row, color.Gray{Y: uint8(level)})
		}
	}
	return img
}

// RGBA renders the grid through a color scale mapping a clamped amplitude
// in [0, 1] to a color, for consumers that want a perceptual palette
// instead of the grayscale default.
func (s *Spectrogram) RGBA(scale func(float64) color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.cols, s.rows))
	for col := 0; col < s.cols; col++ {
		for row := 0; row < s.rows; row++ {
			img.Set(col, row, scale(common.Clamp(s.Intensity(col, row), 0, 1)))
		}
	}
	return img
}
