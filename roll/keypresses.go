package roll

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	// ErrNotFound reports that no press starts at the given offset.
	ErrNotFound = errors.New("no press at that start offset")
	// ErrDurationMismatch reports that the press at the given offset has a
	// different duration than the one being removed.
	ErrDurationMismatch = errors.New("stored duration does not match")
)

// KeyPresses is the ordered set of press intervals for one key. No two
// stored intervals overlap or touch: Add merges a press with an interval it
// exactly abuts (millisecond-exact boundary equality), so two intervals
// separated by even 1 ms stay distinct. The zero value is an empty set.
//
// A KeyPresses is not safe for concurrent mutation; playback takes a
// cloned snapshot instead of sharing one.
type KeyPresses struct {
	presses []KeyPress
}

// NewKeyPresses returns an empty set.
func NewKeyPresses() *KeyPresses {
	return &KeyPresses{}
}

// search returns the index of the first stored press whose start is not
// below startMs.
func (kp *KeyPresses) search(startMs uint64) int {
	return sort.Search(len(kp.presses), func(i int) bool {
		return kp.presses[i].start >= startMs
	})
}

// Add inserts a press, merging it with every exactly-touching neighbor.
//
// If the preceding interval ends exactly where the press starts, the
// preceding interval is extended in place; if the extension now reaches the
// following interval, that one is absorbed as well, so a press bridging two
// stored intervals collapses all three into one. If the press ends exactly
// where the following interval starts, the press absorbs it. A merged
// interval keeps the larger of the involved intensities. A press starting
// exactly where a stored interval starts replaces it.
func (kp *KeyPresses) Add(press KeyPress) {
	i := kp.search(press.start)

	if i > 0 {
		prev := &kp.presses[i-1]
		if prev.EndMs() == press.start {
			prev.duration += press.duration
			prev.intensity = math.Max(prev.intensity, press.intensity)
			if i < len(kp.presses) && prev.EndMs() == kp.presses[i].start {
				prev.duration += kp.presses[i].duration
				prev.intensity = math.Max(prev.intensity, kp.presses[i].intensity)
				kp.presses = slices.Delete(kp.presses, i, i+1)
			}
			return
		}
	}

	if i < len(kp.presses) {
		next := kp.presses[i]
		if next.start == press.start {
			kp.presses[i] = press
			return
		}
		if press.EndMs() == next.start {
			press.duration += next.duration
			press.intensity = math.Max(press.intensity, next.intensity)
			kp.presses[i] = press
			return
		}
	}

	kp.presses = slices.Insert(kp.presses, i, press)
}

// Remove deletes the press starting at press.StartMs(). It fails with
// ErrNotFound when no press starts there and with ErrDurationMismatch when
// one does but its duration differs, so a stale caller cannot silently
// delete an interval it never inserted.
func (kp *KeyPresses) Remove(press KeyPress) error {
	i := kp.search(press.start)
	if i == len(kp.presses) || kp.presses[i].start != press.start {
		return fmt.Errorf("remove press at %dms: %w", press.start, ErrNotFound)
	}
	if kp.presses[i].duration != press.duration {
		return fmt.Errorf("remove press at %dms (stored %dms, given %dms): %w",
			press.start, kp.presses[i].duration, press.duration, ErrDurationMismatch)
	}

	kp.presses = slices.Delete(kp.presses, i, i+1)
	return nil
}

// Len returns the number of stored intervals.
func (kp *KeyPresses) Len() int {
	return len(kp.presses)
}

// All returns the stored intervals in increasing start order. The slice is
// a copy; mutating it does not affect the set.
func (kp *KeyPresses) All() []KeyPress {
	return slices.Clone(kp.presses)
}

// First returns the earliest interval.
func (kp *KeyPresses) First() (KeyPress, bool) {
	if len(kp.presses) == 0 {
		return KeyPress{}, false
	}
	return kp.presses[0], true
}

// Last returns the latest interval.
func (kp *KeyPresses) Last() (KeyPress, bool) {
	if len(kp.presses) == 0 {
		return KeyPress{}, false
	}
	return kp.presses[len(kp.presses)-1], true
}

// Clone returns an independent copy of the set.
func (kp *KeyPresses) Clone() *KeyPresses {
	return &KeyPresses{presses: slices.Clone(kp.presses)}
}
