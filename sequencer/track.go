package sequencer

import (
	"go-avril/midi"
	"go-avril/stream"
	"go-avril/theory"
)

// Pitch is what a voice is sounding: one note, or nothing.
type Pitch struct {
	Note     theory.Note
	Sounding bool
}

// Silence is the pitch of a voice that sounds nothing.
var Silence = Pitch{}

// Sound returns the pitch sounding n.
func Sound(n theory.Note) Pitch {
	return Pitch{Note: n, Sounding: true}
}

// Track is one MIDI output channel a voice plays on.
type Track struct {
	Name     string
	Channel  uint8 // MIDI output channel (1-16)
	Program  uint8
	Velocity uint8
}

func (t Track) wire() uint8 {
	return t.Channel - 1
}

// Play turns a voice's pitch over time into note events on the track's
// channel. The channel is silenced first; when the pitch stream ends the
// last note is released.
//
// Same-instant pitch changes collapse to the last one, so a note is never
// struck and released at the same moment. Notes outside the MIDI range are
// not sounded.
func (t Track) Play(pitch *stream.Var[Pitch]) *stream.Stream[midi.Event] {
	changes := pitch.ToStream().
		Chain(stream.Immediate(Silence)).
		Coalesce(func(_, next Pitch) Pitch { return next })

	var current Pitch
	notes := stream.FlatMap(changes, func(next Pitch) []midi.Event {
		events := t.swap(current, next)
		current = next
		return events
	})
	return stream.Immediate(midi.AllSoundOffEvent(t.wire())).Chain(notes)
}

func (t Track) swap(from, to Pitch) []midi.Event {
	var events []midi.Event
	if key, ok := midiKey(from); ok {
		events = append(events, midi.NoteOffEvent(t.wire(), key, t.Velocity))
	}
	if key, ok := midiKey(to); ok {
		events = append(events, midi.NoteOnEvent(t.wire(), key, t.Velocity))
	}
	return events
}

func midiKey(p Pitch) (uint8, bool) {
	if !p.Sounding {
		return 0, false
	}
	key, err := p.Note.MIDI()
	return key, err == nil
}
