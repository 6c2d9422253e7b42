package sequencer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-avril/config"
	"go-avril/midi"
	"go-avril/stream"
	"go-avril/theory"
)

func TestTrackPlay_ReleasesBeforeStriking(t *testing.T) {
	track := Track{Channel: 3, Velocity: 90}
	pitch := stream.FromUpdates(Silence, stream.FromEvents(
		stream.At(10*ms, Sound(theory.NewNote(theory.A, 4))),
		stream.At(10*ms, Sound(theory.NewNote(theory.A, 4))),
		stream.At(10*ms, Silence),
	))

	assert.Equal(t, []stream.Event[midi.Event]{
		stream.At(0, midi.AllSoundOffEvent(2)),
		stream.At(10*ms, midi.NoteOnEvent(2, 69, 90)),
		stream.At(10*ms, midi.NoteOffEvent(2, 69, 90)),
		stream.At(0, midi.NoteOnEvent(2, 69, 90)),
		stream.At(10*ms, midi.NoteOffEvent(2, 69, 90)),
	}, track.Play(pitch).Collect())
}

func TestTrackPlay_ReleasesLastNoteAtEnd(t *testing.T) {
	track := Track{Channel: 1, Velocity: 64}
	pitch := stream.FromUpdates(Sound(theory.NewNote(theory.C, 4)), stream.FromEvents(
		stream.At(20*ms, Sound(theory.NewNote(theory.D, 4))),
	))

	// the final update lasts no time: it folds into the closing silence
	assert.Equal(t, []stream.Event[midi.Event]{
		stream.At(0, midi.AllSoundOffEvent(0)),
		stream.At(0, midi.NoteOnEvent(0, 60, 64)),
		stream.At(20*ms, midi.NoteOffEvent(0, 60, 64)),
	}, track.Play(pitch).Collect())
}

func TestTrackPlay_SkipsNotesOutOfRange(t *testing.T) {
	track := Track{Channel: 1, Velocity: 64}
	pitch := stream.FromUpdates(Sound(theory.NewNote(theory.C, -2)), stream.FromEvents(
		stream.At(5*ms, Sound(theory.NewNote(theory.C, 4))),
		stream.At(5*ms, Silence),
	))

	assert.Equal(t, []stream.Event[midi.Event]{
		stream.At(0, midi.AllSoundOffEvent(0)),
		stream.At(5*ms, midi.NoteOnEvent(0, 60, 64)),
		stream.At(5*ms, midi.NoteOffEvent(0, 60, 64)),
	}, track.Play(pitch).Collect())
}

func TestActiveSensing(t *testing.T) {
	events := ActiveSensing(250 * ms).Take(time.Second).Collect()
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, midi.ActiveSensingEvent(), e.Value)
		if i > 0 {
			assert.Equal(t, 250*ms, e.Delay)
		}
	}
}

func dump(t *testing.T, p *Piece, limit int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, p.Events, limit))
	return buf.String()
}

func TestCompose_Opening(t *testing.T) {
	p, err := Compose(config.DefaultConfig())
	require.NoError(t, err)

	events := make([]midi.Event, 0, 7)
	for i := 0; i < 7; i++ {
		e, ok := p.Events.Next()
		require.True(t, ok)
		assert.Zero(t, e.Delay)
		events = append(events, e.Value)
	}
	// treble starts 7 steps above D4 in ryukyu, bass 10 below
	assert.Equal(t, []midi.Event{
		midi.ProgramChangeEvent(0, 0),
		midi.ProgramChangeEvent(1, 0),
		midi.AllSoundOffEvent(0),
		midi.NoteOnEvent(0, 79, 64),
		midi.AllSoundOffEvent(1),
		midi.NoteOnEvent(1, 38, 64),
		midi.ActiveSensingEvent(),
	}, events)
}

func TestCompose_Reproducible(t *testing.T) {
	a, err := Compose(config.DefaultConfig())
	require.NoError(t, err)
	b, err := Compose(config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, dump(t, a, 500), dump(t, b, 500))
}

func TestCompose_SeedMatters(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := Compose(cfg)
	require.NoError(t, err)

	cfg.Seed = "paper lantern"
	b, err := Compose(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, dump(t, a, 500), dump(t, b, 500))
}

func TestCompose_VoicesAreIndependent(t *testing.T) {
	onChannel := func(cfg *config.Config, ch uint8) []stream.Event[midi.Event] {
		p, err := Compose(cfg)
		require.NoError(t, err)
		var out []stream.Event[midi.Event]
		var now time.Duration
		for delay, e := range p.Events.All() {
			now += delay
			if e.Type != midi.ActiveSensing && e.Channel == ch {
				out = append(out, stream.At(now, e))
			}
		}
		return out
	}

	full := config.DefaultConfig()
	solo := config.DefaultConfig()
	solo.Voices = solo.Voices[:1]
	assert.Equal(t, onChannel(full, 0), onChannel(solo, 0))
}

func TestCompose_BoundedPieceEndsSilenced(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := Compose(cfg)
	require.NoError(t, err)
	require.Equal(t, cfg.Length(), p.Length)

	var now time.Duration
	var all []stream.Event[midi.Event]
	for delay, e := range p.Events.All() {
		now += delay
		all = append(all, stream.At(now, e))
	}
	require.GreaterOrEqual(t, len(all), 2)
	tail := all[len(all)-2:]
	for _, e := range tail {
		assert.Equal(t, cfg.Length(), e.Delay)
	}
	assert.Equal(t, midi.AllSoundOffEvent(0), tail[0].Value)
	assert.Equal(t, midi.AllSoundOffEvent(1), tail[1].Value)
	for _, e := range all {
		assert.LessOrEqual(t, e.Delay, cfg.Length())
	}
}

func TestCompose_EndlessWithoutHeartbeat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Phrases = 0
	cfg.ActiveSensing = 0
	p, err := Compose(cfg)
	require.NoError(t, err)
	assert.Zero(t, p.Length)

	// well past any bounded length
	events := p.Events.Take(10 * cfg.Reseed()).Collect()
	assert.NotEmpty(t, events)
	for _, e := range events {
		assert.NotEqual(t, midi.ActiveSensing, e.Value.Type)
	}
}

func TestCompose_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Beat = 0
	_, err := Compose(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
