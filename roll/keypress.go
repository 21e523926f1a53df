// Package roll stores detected note presses as per-key ordered sets of
// non-overlapping, non-touching intervals, the piano-roll data model shared
// by analysis and playback.
package roll

import (
	"fmt"
	"time"
)

// KeyPress is one detected press of a single key: a start offset and a
// duration in whole milliseconds since analysis begin, plus the spectral
// amplitude that produced it. KeyPress values are immutable.
type KeyPress struct {
	start     uint64
	duration  uint64
	intensity float64
}

// NewKeyPress builds a press from millisecond offsets.
func NewKeyPress(startMs, durationMs uint64, intensity float64) KeyPress {
	return KeyPress{start: startMs, duration: durationMs, intensity: intensity}
}

// StartMs returns the start offset in milliseconds.
func (p KeyPress) StartMs() uint64 {
	return p.start
}

// DurationMs returns the duration in milliseconds.
func (p KeyPress) DurationMs() uint64 {
	return p.duration
}

// EndMs returns the first millisecond after the press.
func (p KeyPress) EndMs() uint64 {
	return p.start + p.duration
}

// Start returns the start offset as a Duration.
func (p KeyPress) Start() time.Duration {
	return time.Duration(p.start) * time.Millisecond
}

// Duration returns the press length as a Duration.
func (p KeyPress) Duration() time.Duration {
	return time.Duration(p.duration) * time.Millisecond
}

// Intensity returns the amplitude recorded for the press.
func (p KeyPress) Intensity() float64 {
	return p.intensity
}

func (p KeyPress) String() string {
	return fmt.Sprintf("[%dms +%dms @%.3f]", p.start, p.duration, p.intensity)
}
