package theory

import (
	"fmt"
	"slices"
	"strings"
)

// Scale is an ordered set of degrees within one octave, in semitones above
// the tonic. The first degree is always 0.
type Scale struct {
	name    string
	degrees []int
}

// Scale definitions - degrees from root (semitones)
var scales = map[string][]int{
	"chromatic":      {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":          {0, 2, 4, 5, 7, 9, 11},
	"minor":          {0, 2, 3, 5, 7, 8, 10},
	"pentatonic":     {0, 2, 4, 7, 9},
	"ryukyu":         {0, 4, 5, 7, 11},
	"dorian":         {0, 2, 3, 5, 7, 9, 10},
	"phrygian":       {0, 1, 3, 5, 7, 8, 10},
	"lydian":         {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":     {0, 2, 4, 5, 7, 9, 10},
	"locrian":        {0, 1, 3, 5, 6, 8, 10},
	"harmonic-minor": {0, 2, 3, 5, 7, 8, 11},
	"melodic-minor":  {0, 2, 3, 5, 7, 9, 11},
	"blues":          {0, 3, 5, 6, 7, 10},
	"whole-tone":     {0, 2, 4, 6, 8, 10},
	"hirajoshi":      {0, 2, 3, 7, 8},
	"in-sen":         {0, 1, 5, 7, 10},
	"yo":             {0, 2, 5, 7, 9},
}

// ScaleByName looks up a named scale.
func ScaleByName(name string) (Scale, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	degrees, ok := scales[key]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return Scale{name: key, degrees: degrees}, nil
}

// ScaleNames lists the known scales in alphabetical order.
func ScaleNames() []string {
	names := make([]string, 0, len(scales))
	for n := range scales {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ScaleFromIntervals builds a scale from the steps between consecutive
// degrees. The steps must be positive and add up to an octave.
func ScaleFromIntervals(name string, intervals []int) (Scale, error) {
	total := 0
	degrees := make([]int, 0, len(intervals))
	for _, step := range intervals {
		if step <= 0 {
			return Scale{}, fmt.Errorf("scale %q: non-positive interval %d", name, step)
		}
		degrees = append(degrees, total)
		total += step
	}
	if total != 12 {
		return Scale{}, fmt.Errorf("scale %q: intervals span %d semitones, want 12", name, total)
	}
	return Scale{name: name, degrees: degrees}, nil
}

func (s Scale) Name() string {
	return s.name
}

// Len is the number of degrees per octave.
func (s Scale) Len() int {
	return len(s.degrees)
}

// Intervals returns the semitone steps between consecutive degrees,
// including the step back up to the octave.
func (s Scale) Intervals() []int {
	out := make([]int, len(s.degrees))
	for i, d := range s.degrees {
		next := 12
		if i+1 < len(s.degrees) {
			next = s.degrees[i+1]
		}
		out[i] = next - d
	}
	return out
}

// offset returns the semitone distance from the tonic to the given scale
// step, which may be negative or span several octaves.
func (s Scale) offset(steps int) int {
	n := len(s.degrees)
	return floorDiv(steps, n)*12 + s.degrees[mod(steps, n)]
}
