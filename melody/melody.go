// Package melody generates random-walk melodies as timed note streams.
package melody

import (
	"math"
	"time"

	"go-avril/seed"
	"go-avril/stream"
	"go-avril/theory"
)

// durationRate is the rate of the exponential distribution the note lengths
// are drawn from, in quanta.
const durationRate = 2.0

// Melody returns an endless random walk through key starting at first.
//
// Each step moves by a non-zero number of scale steps drawn from a normal
// distribution whose mean pulls the walk back toward the tonic, and lasts a
// whole number of quanta drawn from an exponential distribution. The walk is
// a pure function of s: rebuilding it from the same seed replays it exactly.
func Melody(key *theory.Key, first theory.NoteInKey, quantum time.Duration, s seed.Seed) *stream.Var[theory.NoteInKey] {
	stdDev := float64(key.Scale().Len()) / 2

	type walk struct {
		prev theory.NoteInKey
		seed seed.Seed
	}
	notes := stream.Unfold(walk{prev: first, seed: s.Fork("notes")}, func(w walk) (time.Duration, theory.NoteInKey, walk) {
		note := w.prev.Offset(stepDelta(w.prev, stdDev, w.seed.Fork("delta")))
		length := quantum * time.Duration(quanta(w.seed.Fork("num_quanta")))
		return length, note, walk{prev: note, seed: w.seed.Fork("next")}
	})
	return stream.FromUpdates(first, notes)
}

func stepDelta(prev theory.NoteInKey, stdDev float64, s seed.Seed) int {
	r := s.Rand()
	mean := float64(-prev.StepsFromTonic() / 2)
	for {
		if d := math.Round(r.NormFloat64()*stdDev + mean); d != 0 {
			return int(d)
		}
	}
}

func quanta(s seed.Seed) int {
	q := math.Ceil(s.Rand().ExpFloat64() / durationRate)
	return max(int(q), 1)
}
