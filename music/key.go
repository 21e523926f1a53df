// Package music maps between concert-pitch frequencies, the 88 physical
// piano keys and written musical notes under twelve-tone equal temperament.
package music

import (
	"math"
)

// Key is an integer piano key in the range 1 - 88, where 1 is A0 and 88 is
// C8. The zero value is invalid.
type Key uint8

const (
	// FirstKey is A0, the lowest key on a standard piano.
	FirstKey Key = 1
	// LastKey is C8, the highest key on a standard piano.
	LastKey Key = 88
	// KeyCount is the number of keys on a standard piano.
	KeyCount = 88
)

// NewKey validates a key number. Numbers outside [1, 88] report false.
func NewKey(number uint8) (Key, bool) {
	if number < 1 || number > 88 {
		return 0, false
	}
	return Key(number), true
}

// KeyFromConcertPitch rounds a frequency to the nearest equal-temperament
// semitone relative to A4 = 440 Hz. Frequencies outside the piano's
// practical range report false.
func KeyFromConcertPitch(freq float64) (Key, bool) {
	if freq <= 0 {
		return 0, false
	}

	number := math.Round(12*math.Log2(freq/440.0)) + 49
	if number < 1 || number > 88 {
		return 0, false
	}
	return Key(number), true
}

// Number returns the key's position on the keyboard, 1 through 88.
func (k Key) Number() uint8 {
	return uint8(k)
}

// ConcertPitch returns the key's frequency in Hz: 440 * 2^((key-49)/12).
func (k Key) ConcertPitch() float64 {
	return 440.0 * math.Pow(2, (float64(k)-49)/12)
}

// AsNote spells the key as a written note. Keys with two spellings follow
// the accidental preference; naturals spell identically under either.
func (k Key) AsNote(preference Accidental) Note {
	// Although the piano starts with A0, the octave starts with C0
	keyFromC0 := k.Number() + 8

	noteOffset := keyFromC0 % 12
	octave := keyFromC0 / 12

	if preference == Flat {
		switch noteOffset {
		case 1:
			return Note{D, Flat, octave}
		case 3:
			return Note{E, Flat, octave}
		case 6:
			return Note{G, Flat, octave}
		case 8:
			return Note{A, Flat, octave}
		case 10:
			return Note{B, Flat, octave}
		}
	}

	switch noteOffset {
	case 0:
		return Note{C, Natural, octave}
	case 1:
		return Note{C, Sharp, octave}
	case 2:
		return Note{D, Natural, octave}
	case 3:
		return Note{D, Sharp, octave}
	case 4:
		return Note{E, Natural, octave}
	case 5:
		return Note{F, Natural, octave}
	case 6:
		return Note{F, Sharp, octave}
	case 7:
		return Note{G, Natural, octave}
	case 8:
		return Note{G, Sharp, octave}
	case 9:
		return Note{A, Natural, octave}
	case 10:
		return Note{A, Sharp, octave}
	default:
		return Note{B, Natural, octave}
	}
}

// IsWhite reports whether the key is a white key.
func (k Key) IsWhite() bool {
	switch (k.Number() + 8) % 12 {
	case 0, 2, 4, 5, 7, 9, 11:
		return true
	default:
		return false
	}
}

// IsBlack reports whether the key is a black key.
func (k Key) IsBlack() bool {
	return !k.IsWhite()
}

// AllKeys returns every piano key from highest to lowest, the order a
// piano-roll display draws them in.
func AllKeys() []Key {
	keys := make([]Key, KeyCount)
	for i := range keys {
		keys[i] = LastKey - Key(i)
	}
	return keys
}
