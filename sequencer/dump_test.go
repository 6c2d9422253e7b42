package sequencer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-avril/midi"
	"go-avril/stream"
	"go-avril/theory"
)

const ms = time.Millisecond

// handBuilt plays C4, then G4 from 100ms (an E4 at the same instant is
// skipped), silent from 300ms, over a 150ms heartbeat, cut at 400ms.
func handBuilt() *stream.Stream[midi.Event] {
	track := Track{Name: "lead", Channel: 1, Program: 5, Velocity: 64}
	pitch := stream.FromUpdates(Sound(theory.NewNote(theory.C, 4)), stream.FromEvents(
		stream.At(100*ms, Sound(theory.NewNote(theory.E, 4))),
		stream.At(0, Sound(theory.NewNote(theory.G, 4))),
		stream.At(200*ms, Silence),
	))
	return stream.MergeAll(
		stream.Immediate(midi.ProgramChangeEvent(track.wire(), track.Program)),
		track.Play(pitch),
		ActiveSensing(150*ms),
	).ChainAt(400*ms, stream.Immediate(midi.AllSoundOffEvent(track.wire())))
}

func TestDump_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, handBuilt(), 0))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "hand_built", buf.Bytes())
}

func TestDump_Limit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, ActiveSensing(250*ms), 3))
	assert.Equal(t, "0\tactive-sensing\n250\tactive-sensing\n250\tactive-sensing\n", buf.String())
}

func TestDump_LimitLongerThanStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, handBuilt(), 100))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 10)
}
