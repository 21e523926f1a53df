package music

import (
	"math"
	"testing"
)

func TestNewKeyRange(t *testing.T) {
	for _, number := range []uint8{0, 89, 255} {
		if _, ok := NewKey(number); ok {
			t.Errorf("NewKey(%d) accepted, want rejection", number)
		}
	}
	for _, number := range []uint8{1, 49, 88} {
		if key, ok := NewKey(number); !ok || key.Number() != number {
			t.Errorf("NewKey(%d) = (%v, %v), want (%d, true)", number, key, ok, number)
		}
	}
}

func TestConcertPitchReference(t *testing.T) {
	a4 := Key(49)
	if got := a4.ConcertPitch(); math.Abs(got-440) > 1e-9 {
		t.Errorf("key 49 ConcertPitch() = %v, want 440", got)
	}

	// Each octave doubles the frequency.
	a5 := Key(61)
	if got := a5.ConcertPitch(); math.Abs(got-880) > 1e-9 {
		t.Errorf("key 61 ConcertPitch() = %v, want 880", got)
	}
}

func TestKeyFromConcertPitchRoundTrip(t *testing.T) {
	for number := FirstKey; number <= LastKey; number++ {
		key, ok := KeyFromConcertPitch(number.ConcertPitch())
		if !ok {
			t.Fatalf("key %d: own concert pitch rejected", number)
		}
		if key != number {
			t.Errorf("key %d round-tripped to %d", number, key)
		}
	}
}

func TestKeyFromConcertPitchRejectsOutOfRange(t *testing.T) {
	for _, freq := range []float64{0, -10, 5, 20, 10000} {
		if key, ok := KeyFromConcertPitch(freq); ok {
			t.Errorf("KeyFromConcertPitch(%v) = %d, want rejection", freq, key)
		}
	}
}

func TestKeyFromConcertPitchRoundsToNearest(t *testing.T) {
	// 445 Hz is still closest to A4; 452.9 Hz is already closer to A#4.
	if key, ok := KeyFromConcertPitch(445); !ok || key != 49 {
		t.Errorf("KeyFromConcertPitch(445) = (%d, %v), want (49, true)", key, ok)
	}
	if key, ok := KeyFromConcertPitch(452.9); !ok || key != 50 {
		t.Errorf("KeyFromConcertPitch(452.9) = (%d, %v), want (50, true)", key, ok)
	}
}

func TestAsNoteSpellings(t *testing.T) {
	tests := []struct {
		key        Key
		preference Accidental
		want       Note
	}{
		{1, Sharp, Note{A, Natural, 0}},
		{2, Sharp, Note{A, Sharp, 0}},
		{2, Flat, Note{B, Flat, 0}},
		{12, Sharp, Note{G, Sharp, 1}},
		{12, Flat, Note{A, Flat, 1}},
		{40, Sharp, Note{C, Natural, 4}},
		{41, Flat, Note{D, Flat, 4}},
		{49, Sharp, Note{A, Natural, 4}},
		{88, Flat, Note{C, Natural, 8}},
	}

	for _, tt := range tests {
		if got := tt.key.AsNote(tt.preference); got != tt.want {
			t.Errorf("key %d AsNote(%v) = %v, want %v", tt.key, tt.preference, got, tt.want)
		}
	}
}

func TestAsNoteNaturalsIgnorePreference(t *testing.T) {
	for number := FirstKey; number <= LastKey; number++ {
		if number.IsBlack() {
			continue
		}
		sharp, flat := number.AsNote(Sharp), number.AsNote(Flat)
		if sharp != flat {
			t.Errorf("white key %d spells %v sharp but %v flat", number, sharp, flat)
		}
	}
}

func TestAsNoteKeyRoundTrip(t *testing.T) {
	// Both spellings of every key name the same piano key again.
	for _, preference := range []Accidental{Sharp, Flat} {
		for number := FirstKey; number <= LastKey; number++ {
			key, ok := number.AsNote(preference).Key()
			if !ok || key != number {
				t.Errorf("key %d AsNote(%v).Key() = (%d, %v)", number, preference, key, ok)
			}
		}
	}
}

func TestKeyColors(t *testing.T) {
	whites := 0
	for number := FirstKey; number <= LastKey; number++ {
		if number.IsWhite() == number.IsBlack() {
			t.Fatalf("key %d is both or neither color", number)
		}
		if number.IsWhite() {
			whites++
		}
	}
	if whites != 52 {
		t.Errorf("counted %d white keys, want 52", whites)
	}

	// A0 and C8 are white, A#0 is black.
	if !FirstKey.IsWhite() || !LastKey.IsWhite() || !Key(2).IsBlack() {
		t.Error("edge keys have the wrong color")
	}
}

func TestAllKeysOrder(t *testing.T) {
	keys := AllKeys()
	if len(keys) != KeyCount {
		t.Fatalf("AllKeys() returned %d keys, want %d", len(keys), KeyCount)
	}
	if keys[0] != LastKey || keys[len(keys)-1] != FirstKey {
		t.Fatalf("AllKeys() spans %d..%d, want %d..%d", keys[0], keys[len(keys)-1], LastKey, FirstKey)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] != keys[i-1]-1 {
			t.Fatalf("AllKeys() not strictly descending at index %d", i)
		}
	}
}
