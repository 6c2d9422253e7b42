package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBytes(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []byte
	}{
		{"note on", NoteOnEvent(0, 60, 0x40), []byte{0x90, 60, 0x40}},
		{"note on channel 2", NoteOnEvent(1, 38, 100), []byte{0x91, 38, 100}},
		{"note off", NoteOffEvent(0, 60, 0x40), []byte{0x80, 60, 0x40}},
		{"program", ProgramChangeEvent(3, 5), []byte{0xC3, 5}},
		{"all sound off", AllSoundOffEvent(1), []byte{0xB1, 120, 0}},
		{"active sensing", ActiveSensingEvent(), []byte{0xFE}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Bytes())
		})
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "note-on ch=1 key=60 vel=64", NoteOnEvent(0, 60, 64).String())
	assert.Equal(t, "note-off ch=2 key=38 vel=64", NoteOffEvent(1, 38, 64).String())
	assert.Equal(t, "program ch=16 prog=0", ProgramChangeEvent(15, 0).String())
	assert.Equal(t, "all-sound-off ch=1", AllSoundOffEvent(0).String())
	assert.Equal(t, "cc ch=1 ctrl=7 val=100", Event{Type: CC, Note: 7, Velocity: 100}.String())
	assert.Equal(t, "active-sensing", ActiveSensingEvent().String())
	assert.Equal(t, "unknown type=0x12", Event{Type: 0x12}.String())
}

func TestUnknownEventHasNoMessage(t *testing.T) {
	assert.Nil(t, Event{Type: 0x12}.Message())
}

func TestMatchPort(t *testing.T) {
	names := []string{"Midi Through Port-0", "FLUID Synth (1234):Synth input port", "fluid other"}
	assert.Equal(t, 1, MatchPort(names, "FLUID"))
	assert.Equal(t, 1, MatchPort(names, "fluid"))
	assert.Equal(t, 0, MatchPort(names, "midi"))
	assert.Equal(t, -1, MatchPort(names, "Launchpad"))
	assert.Equal(t, -1, MatchPort(nil, "FLUID"))
}
