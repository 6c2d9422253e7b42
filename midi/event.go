package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	CC            uint8 = 0xB0
	ProgramChange uint8 = 0xC0
	ActiveSensing uint8 = 0xFE
)

// AllSoundOff is the channel mode controller that silences a channel at once.
const AllSoundOff uint8 = 120

// Event represents a MIDI event in the sequencer
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC, ProgramChange, ActiveSensing
	Channel  uint8 // 0-15
	Note     uint8 // key; controller for CC; program for ProgramChange
	Velocity uint8 // velocity; controller value for CC
}

func NoteOnEvent(channel, note, velocity uint8) Event {
	return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}
}

func NoteOffEvent(channel, note, velocity uint8) Event {
	return Event{Type: NoteOff, Channel: channel, Note: note, Velocity: velocity}
}

func ProgramChangeEvent(channel, program uint8) Event {
	return Event{Type: ProgramChange, Channel: channel, Note: program}
}

func AllSoundOffEvent(channel uint8) Event {
	return Event{Type: CC, Channel: channel, Note: AllSoundOff}
}

func ActiveSensingEvent() Event {
	return Event{Type: ActiveSensing}
}

// Message encodes the event as a wire message.
func (e Event) Message() gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOffVelocity(e.Channel, e.Note, e.Velocity)
	case CC:
		return gomidi.ControlChange(e.Channel, e.Note, e.Velocity)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Note)
	case ActiveSensing:
		return gomidi.Message{ActiveSensing}
	}
	return nil
}

// Bytes returns the raw wire bytes of the event.
func (e Event) Bytes() []byte {
	return []byte(e.Message())
}

// String formats the event for logs and dumps. Channels are shown 1-based.
func (e Event) String() string {
	ch := int(e.Channel) + 1
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("note-on ch=%d key=%d vel=%d", ch, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("note-off ch=%d key=%d vel=%d", ch, e.Note, e.Velocity)
	case CC:
		if e.Note == AllSoundOff {
			return fmt.Sprintf("all-sound-off ch=%d", ch)
		}
		return fmt.Sprintf("cc ch=%d ctrl=%d val=%d", ch, e.Note, e.Velocity)
	case ProgramChange:
		return fmt.Sprintf("program ch=%d prog=%d", ch, e.Note)
	case ActiveSensing:
		return "active-sensing"
	}
	return fmt.Sprintf("unknown type=0x%02x", e.Type)
}
