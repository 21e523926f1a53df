package analysis

import (
	"fmt"
	"sync"
)

// Phase enumerates the pipeline stages surfaced to UI consumers.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseDecoding
	PhaseAnalyzing
	PhaseGeneratingSpectrogram
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseDecoding:
		return "decoding"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseGeneratingSpectrogram:
		return "generating spectrogram"
	default:
		return "unknown"
	}
}

// Status pairs a phase with its completion fraction in [0, 1]. Phases
// without a meaningful fraction leave it at 0.
type Status struct {
	Phase    Phase
	Progress float64
}

func (s Status) String() string {
	switch s.Phase {
	case PhaseDecoding, PhaseAnalyzing:
		return fmt.Sprintf("%s %.0f%%", s.Phase, s.Progress*100)
	default:
		return s.Phase.String()
	}
}

// StatusCell is a single-writer/multi-reader notification cell. Readers
// never observe a torn value: they always see one complete Status write.
// The zero value is ready to use and reads as PhaseNone.
type StatusCell struct {
	mu     sync.RWMutex
	status Status
}

// Set publishes a new status.
func (c *StatusCell) Set(status Status) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

// Get returns the most recently published status.
func (c *StatusCell) Get() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Clear resets the cell to PhaseNone.
func (c *StatusCell) Clear() {
	c.Set(Status{})
}
