package melody

import (
	"time"

	"go-avril/seed"
	"go-avril/stream"
	"go-avril/theory"
)

// Walk describes one voice: where its melody starts, how fast it moves and
// how it repeats.
type Walk struct {
	Key     *theory.Key
	Start   int           // scale steps from the tonic
	Quantum time.Duration // smallest note length
	Phrase  time.Duration // length of the repeated phrase
	Reseed  time.Duration // a fresh melody starts every Reseed
}

// Voice plays a sequence of melodies. Every Reseed a new melody is derived
// from s and its first Phrase is looped until the next reseed.
func (w Walk) Voice(s seed.Seed) *stream.Var[theory.NoteInKey] {
	reseeds := stream.Unfold(uint64(1), func(i uint64) (time.Duration, seed.Seed, uint64) {
		return w.Reseed, s.ForkN(i), i + 1
	})
	melodies := stream.MapVar(stream.FromUpdates(s.ForkN(0), reseeds), func(ms seed.Seed) *stream.Var[theory.NoteInKey] {
		return Melody(w.Key, w.Key.At(w.Start), w.Quantum, ms).RepeatEvery(w.Phrase)
	})
	return stream.SequenceVar(melodies)
}
