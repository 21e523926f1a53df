// Package midiout replays detected key presses as a real-time stream of
// MIDI note-on/note-off commands driving an output device.
package midiout

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/quaverlabs/pitchroll/music"
)

// Note is a 7-bit MIDI note number.
type Note uint8

// NewNote validates a note number. Numbers outside the 7-bit range panic;
// they cannot come from a piano key.
func NewNote(number uint8) Note {
	if number>>7 != 0 {
		panic(fmt.Sprintf("midi notes can only be between 0-127, got %d", number))
	}
	return Note(number)
}

// NoteFromKey maps piano keys 1..88 onto MIDI notes 21..108.
func NoteFromKey(key music.Key) Note {
	return NewNote(key.Number() + 20)
}

// Key returns the piano key sounding this note, false for notes outside
// the keyboard.
func (n Note) Key() (music.Key, bool) {
	if n < 21 || n > 108 {
		return 0, false
	}
	return music.NewKey(uint8(n) - 20)
}

func (n Note) String() string {
	if key, ok := n.Key(); ok {
		return fmt.Sprintf("%s (%d)", key.AsNote(music.Sharp), uint8(n))
	}
	return fmt.Sprintf("note %d", uint8(n))
}

// Notes are emitted at full velocity; the press intensity currently drives
// detection thresholds, not dynamics.
const fullVelocity = 0x7F

// all-sound-off controller number (MIDI CC 120)
const allSoundOffController = 120

func noteOnMessage(n Note) midi.Message {
	return midi.NoteOn(0, uint8(n), fullVelocity)
}

func noteOffMessage(n Note) midi.Message {
	return midi.NoteOffVelocity(0, uint8(n), fullVelocity)
}

func allSoundOffMessage() midi.Message {
	return midi.ControlChange(0, allSoundOffController, 0)
}
