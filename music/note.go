package music

import (
	"fmt"
)

// Letter is one of the seven note letters A through G.
type Letter uint8

const (
	A Letter = iota
	B
	C
	D
	E
	F
	G
)

// Semitone returns the semitone within the octave that this letter
// represents, counting from C.
func (l Letter) Semitone() uint8 {
	switch l {
	case C:
		return 0
	case D:
		return 2
	case E:
		return 4
	case F:
		return 5
	case G:
		return 7
	case A:
		return 9
	default:
		return 11
	}
}

func (l Letter) String() string {
	return string(rune('A' + (l - A)))
}

// Accidental modifies a note letter by a semitone. Natural leaves it
// unchanged and renders as nothing.
type Accidental uint8

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// SemitoneDelta returns the semitone change represented by the accidental.
func (a Accidental) SemitoneDelta() int8 {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Symbol returns the typographic form of the accidental (♯ / ♭).
func (a Accidental) Symbol() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	default:
		return ""
	}
}

// Note is a written musical note: a letter, an optional accidental and an
// octave number.
type Note struct {
	Letter     Letter
	Accidental Accidental
	Octave     uint8
}

// SemitoneOffset returns how many semitones the note is off from the C that
// starts its octave. Accidentals can push it to -1 (Cb) or 12 (B#).
func (n Note) SemitoneOffset() int8 {
	return int8(n.Letter.Semitone()) + n.Accidental.SemitoneDelta()
}

// Semitone returns the twelve-tone equal temperament semitone from C0.
func (n Note) Semitone() int {
	return int(n.Octave)*12 + int(n.SemitoneOffset())
}

// SamePitchAs reports whether two notes sound the same pitch even when they
// are spelled with different letters or accidentals.
func (n Note) SamePitchAs(other Note) bool {
	return n.Octave == other.Octave && n.SemitoneOffset() == other.SemitoneOffset()
}

// Key returns the piano key sounding this note. Notes beyond the keyboard
// report false.
func (n Note) Key() (Key, bool) {
	if n.Octave > 8 {
		return 0, false
	}

	// The octave count starts at C0 but the keyboard starts at A0, eight
	// semitones up
	semitone := n.Semitone()
	if semitone < 8 {
		return 0, false
	}
	return NewKey(uint8(semitone - 8))
}

func (n Note) String() string {
	return fmt.Sprintf("%s%s%d", n.Letter, n.Accidental, n.Octave)
}
