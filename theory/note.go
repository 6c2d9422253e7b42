// Package theory holds the small amount of music theory the composer needs:
// pitch classes, notes, scales and keys.
package theory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPitchClass = errors.New("unknown pitch class")
	ErrUnknownScale      = errors.New("unknown scale")
	ErrNoteOutOfRange    = errors.New("note outside MIDI range")
)

// PitchClass is a note name without octave, C = 0 through B = 11.
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var pitchClassNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (pc PitchClass) String() string {
	return pitchClassNames[mod(int(pc), 12)]
}

// ParsePitchClass accepts names like "D", "F#" or "Bb" (case-insensitive).
func ParsePitchClass(name string) (PitchClass, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitchClass, name)
	}
	base := -1
	for i, n := range pitchClassNames {
		if len(n) == 1 && strings.EqualFold(n, s[:1]) {
			base = i
			break
		}
	}
	if base < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitchClass, name)
	}
	switch strings.ToLower(s[1:]) {
	case "":
	case "#", "sharp":
		base++
	case "b", "flat":
		base--
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitchClass, name)
	}
	return PitchClass(mod(base, 12)), nil
}

// Note is a pitch, stored as semitones relative to middle C (C4).
type Note struct {
	semitones int
}

func NewNote(pc PitchClass, octave int) Note {
	return Note{semitones: int(pc) + (octave-4)*12}
}

func (n Note) PitchClass() PitchClass {
	return PitchClass(mod(n.semitones, 12))
}

func (n Note) Octave() int {
	return floorDiv(n.semitones, 12) + 4
}

// Semitones returns the distance from middle C.
func (n Note) Semitones() int {
	return n.semitones
}

func (n Note) Offset(semitones int) Note {
	return Note{semitones: n.semitones + semitones}
}

// MIDI returns the MIDI key number, middle C being 60.
func (n Note) MIDI() (uint8, error) {
	v := n.semitones + 60
	if v < 0 || v > 127 {
		return 0, fmt.Errorf("%w: %s", ErrNoteOutOfRange, n)
	}
	return uint8(v), nil
}

// NoteFromMIDI returns the note of a MIDI key number.
func NoteFromMIDI(key uint8) Note {
	return Note{semitones: int(key) - 60}
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.PitchClass(), n.Octave())
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func floorDiv(a, n int) int {
	return (a - mod(a, n)) / n
}
