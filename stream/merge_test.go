package stream

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_StableInterleave(t *testing.T) {
	a := FromEvents(ev(1, "a"), ev(3, "b"))
	b := FromEvents(ev(2, "x"), ev(1, "y"))
	assert.Equal(t,
		[]Event[string]{ev(1, "a"), ev(1, "x"), ev(1, "y"), ev(1, "b")},
		a.Merge(b).Collect())
}

func TestMerge_TiesFavourLeft(t *testing.T) {
	a := FromEvents(ev(1, "a"), ev(1, "b"))
	b := FromEvents(ev(2, "x"))
	assert.Equal(t,
		[]Event[string]{ev(1, "a"), ev(1, "b"), ev(0, "x")},
		a.Merge(b).Collect())

	c := FromEvents(ev(0, "c"))
	d := FromEvents(ev(0, "d"))
	assert.Equal(t, []Event[string]{ev(0, "c"), ev(0, "d")}, c.Merge(d).Collect())
}

func TestMerge_OneSideEmpty(t *testing.T) {
	s := FromEvents(ev(1, "a"), ev(2, "b"))
	assert.Equal(t, []Event[string]{ev(1, "a"), ev(2, "b")}, Empty[string]().Merge(s).Collect())

	s = FromEvents(ev(1, "a"), ev(2, "b"))
	assert.Equal(t, []Event[string]{ev(1, "a"), ev(2, "b")}, s.Merge(Empty[string]()).Collect())
}

func TestMerge_RemainderKeepsOffsets(t *testing.T) {
	a := FromEvents(ev(5, "a"), ev(5, "b"))
	b := FromEvents(ev(2, "x"))
	// x@2 a@5 b@10
	assert.Equal(t,
		[]Event[string]{ev(2, "x"), ev(3, "a"), ev(5, "b")},
		a.Merge(b).Collect())
}

func TestMerge_InfiniteInputs(t *testing.T) {
	heartbeat := Immediate("x").RepeatEvery(3 * ms)
	notes := FromEvents(ev(1, "a"), ev(4, "b"))
	// x@0 a@1 x@3 b@5 x@6, x@9 is past the end
	assert.Equal(t,
		[]Event[string]{ev(0, "x"), ev(1, "a"), ev(2, "x"), ev(2, "b"), ev(1, "x")},
		heartbeat.Merge(notes).Take(7*ms).Collect())
}

func TestMergeAll(t *testing.T) {
	assert.Empty(t, MergeAll[string]().Collect())

	s := MergeAll(
		FromEvents(ev(3, "a")),
		FromEvents(ev(1, "b")),
		FromEvents(ev(2, "c")),
	)
	assert.Equal(t, []Event[string]{ev(1, "b"), ev(1, "c"), ev(1, "a")}, s.Collect())
}

type tagged struct {
	side  int
	index int
}

func randomEvents(r *rand.Rand, side, n int) []Event[tagged] {
	out := make([]Event[tagged], n)
	for i := range out {
		// Small range so ties and zero delays are common.
		out[i] = At(time.Duration(r.IntN(4))*ms, tagged{side: side, index: i})
	}
	return out
}

func TestMerge_MatchesStableSortOfAbsoluteTimes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		left := randomEvents(r, 0, r.IntN(12))
		right := randomEvents(r, 1, r.IntN(12))

		want := append(absolute(left), absolute(right)...)
		sort.SliceStable(want, func(i, j int) bool { return want[i].Delay < want[j].Delay })

		merged := FromEvents(left...).Merge(FromEvents(right...)).Collect()
		for _, e := range merged {
			require.GreaterOrEqual(t, e.Delay, time.Duration(0))
		}
		require.Equal(t, want, absolute(merged), "round %d", round)
	}
}

func TestCombinators_NeverEmitNegativeDelays(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 100; round++ {
		a := FromEvents(randomEvents(r, 0, 10)...)
		b := FromEvents(randomEvents(r, 1, 10)...).RepeatEvery(5 * ms)
		c := FromEvents(randomEvents(r, 2, 10)...).Drop(3 * ms).Delay(2 * ms)

		s := MergeAll(a, b, c).
			ChainAt(20*ms, FromEvents(randomEvents(r, 3, 5)...)).
			Coalesce(func(x, _ tagged) tagged { return x }).
			Take(40 * ms)
		for _, e := range s.Collect() {
			require.GreaterOrEqual(t, e.Delay, time.Duration(0))
		}
	}
}
