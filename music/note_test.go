package music

import (
	"testing"
)

func TestLetterSemitones(t *testing.T) {
	tests := []struct {
		letter Letter
		want   uint8
	}{
		{C, 0}, {D, 2}, {E, 4}, {F, 5}, {G, 7}, {A, 9}, {B, 11},
	}
	for _, tt := range tests {
		if got := tt.letter.Semitone(); got != tt.want {
			t.Errorf("%s.Semitone() = %d, want %d", tt.letter, got, tt.want)
		}
	}
}

func TestSemitoneOffsetWithAccidentals(t *testing.T) {
	tests := []struct {
		note Note
		want int8
	}{
		{Note{C, Natural, 4}, 0},
		{Note{C, Flat, 4}, -1},
		{Note{B, Sharp, 4}, 12},
		{Note{A, Flat, 4}, 8},
	}
	for _, tt := range tests {
		if got := tt.note.SemitoneOffset(); got != tt.want {
			t.Errorf("%v.SemitoneOffset() = %d, want %d", tt.note, got, tt.want)
		}
	}
}

func TestSamePitchAs(t *testing.T) {
	cSharp := Note{C, Sharp, 4}
	dFlat := Note{D, Flat, 4}

	if !cSharp.SamePitchAs(dFlat) {
		t.Errorf("%v and %v should sound the same pitch", cSharp, dFlat)
	}
	if !dFlat.SamePitchAs(cSharp) {
		t.Errorf("SamePitchAs is not symmetric for %v and %v", cSharp, dFlat)
	}
	if cSharp.SamePitchAs(Note{D, Flat, 5}) {
		t.Error("notes an octave apart reported as the same pitch")
	}
	if cSharp.SamePitchAs(Note{D, Natural, 4}) {
		t.Error("notes a semitone apart reported as the same pitch")
	}
}

func TestNoteKey(t *testing.T) {
	tests := []struct {
		note Note
		key  Key
		ok   bool
	}{
		{Note{A, Natural, 0}, 1, true},
		{Note{A, Sharp, 0}, 2, true},
		{Note{C, Natural, 4}, 40, true},
		{Note{A, Natural, 4}, 49, true},
		{Note{C, Natural, 8}, 88, true},
		{Note{C, Natural, 0}, 0, false},  // below A0
		{Note{G, Sharp, 0}, 0, false},    // one semitone below A0
		{Note{C, Sharp, 8}, 0, false},    // above C8
		{Note{C, Natural, 12}, 0, false}, // beyond octave range
	}

	for _, tt := range tests {
		key, ok := tt.note.Key()
		if ok != tt.ok || key != tt.key {
			t.Errorf("%v.Key() = (%d, %v), want (%d, %v)", tt.note, key, ok, tt.key, tt.ok)
		}
	}
}

func TestNoteString(t *testing.T) {
	tests := []struct {
		note Note
		want string
	}{
		{Note{A, Natural, 0}, "A0"},
		{Note{C, Sharp, 4}, "C#4"},
		{Note{B, Flat, 0}, "Bb0"},
	}
	for _, tt := range tests {
		if got := tt.note.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAccidentalSymbols(t *testing.T) {
	if Sharp.Symbol() != "♯" || Flat.Symbol() != "♭" || Natural.Symbol() != "" {
		t.Error("accidental symbols are wrong")
	}
	if Sharp.SemitoneDelta() != 1 || Flat.SemitoneDelta() != -1 || Natural.SemitoneDelta() != 0 {
		t.Error("accidental semitone deltas are wrong")
	}
}
