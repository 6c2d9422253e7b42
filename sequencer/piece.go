package sequencer

import (
	"time"

	"go-avril/config"
	"go-avril/melody"
	"go-avril/midi"
	"go-avril/seed"
	"go-avril/stream"
	"go-avril/theory"
)

// Piece is a composed performance ready to be played or dumped.
type Piece struct {
	Seed   string
	Key    *theory.Key
	Tracks []Track
	Length time.Duration // 0 for endless
	Events *stream.Stream[midi.Event]
}

// ActiveSensing returns an endless heartbeat, one active sensing message
// every interval, starting immediately.
func ActiveSensing(interval time.Duration) *stream.Stream[midi.Event] {
	return stream.Immediate(midi.ActiveSensingEvent()).RepeatEvery(interval)
}

// Compose builds the piece cfg describes. Every voice walks the same key
// from its own fork of the seed, so adding or renaming one voice leaves the
// others unchanged.
//
// A bounded piece ends with every voice channel silenced at its length.
func Compose(cfg *config.Config) (*Piece, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, err := cfg.MusicalKey()
	if err != nil {
		return nil, err
	}

	root := seed.New(cfg.Seed)
	tracks := make([]Track, len(cfg.Voices))
	var programs, voices []*stream.Stream[midi.Event]
	for i, v := range cfg.Voices {
		tracks[i] = Track{
			Name:     v.Name,
			Channel:  uint8(v.Channel),
			Program:  uint8(v.Program),
			Velocity: uint8(cfg.Output.Velocity),
		}
		walk := melody.Walk{
			Key:     key,
			Start:   v.Start,
			Quantum: cfg.Beat * time.Duration(v.QuantumBeats),
			Phrase:  cfg.Phrase(),
			Reseed:  cfg.Reseed(),
		}
		pitch := stream.MapVar(walk.Voice(root.Fork(v.Name)), func(n theory.NoteInKey) Pitch {
			return Sound(n.Note())
		})
		programs = append(programs, stream.Immediate(midi.ProgramChangeEvent(tracks[i].wire(), tracks[i].Program)))
		voices = append(voices, tracks[i].Play(pitch))
	}

	all := append(programs, voices...)
	if cfg.ActiveSensing > 0 {
		all = append(all, ActiveSensing(cfg.ActiveSensing))
	}
	events := stream.MergeAll(all...)

	length := cfg.Length()
	if length > 0 {
		coda := make([]stream.Event[midi.Event], len(tracks))
		for i, t := range tracks {
			coda[i] = stream.At(0, midi.AllSoundOffEvent(t.wire()))
		}
		events = events.ChainAt(length, stream.FromEvents(coda...))
	}

	return &Piece{
		Seed:   cfg.Seed,
		Key:    key,
		Tracks: tracks,
		Length: length,
		Events: events,
	}, nil
}
