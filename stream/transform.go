package stream

import "time"

// Map applies f to every value of s. Delays are unchanged.
func Map[E, F any](s *Stream[E], f func(E) F) *Stream[F] {
	return newStream[F](&mapper[E, F]{src: s.own(), f: f})
}

// Flatten explodes every batch into its members. The first member keeps the
// batch delay and the rest follow at delay 0, so a batch is delivered as
// simultaneous events in order. The delay of an empty batch is carried over
// to the next emitted event so the schedule does not shift.
func Flatten[E any](s *Stream[[]E]) *Stream[E] {
	return newStream[E](&flattener[E]{src: s.own()})
}

// FlatMap is Map followed by Flatten.
func FlatMap[E, F any](s *Stream[E], f func(E) []F) *Stream[F] {
	return Flatten(Map(s, f))
}

// Coalesce folds every event that follows its predecessor at delay 0 into
// that predecessor with reduce. The merged event keeps the delay of the first
// member of the run.
func (s *Stream[E]) Coalesce(reduce func(prev, next E) E) *Stream[E] {
	return newStream[E](&coalescer[E]{src: s.own(), reduce: reduce})
}

type mapper[E, F any] struct {
	src *Stream[E]
	f   func(E) F
}

func (m *mapper[E, F]) pull() (Event[F], bool, producer[F]) {
	ev, ok := m.src.Next()
	if !ok {
		return Event[F]{}, false, nil
	}
	return Event[F]{Delay: ev.Delay, Value: m.f(ev.Value)}, true, nil
}

type flattener[E any] struct {
	src     *Stream[[]E]
	pending []E
	delay   time.Duration
}

func (f *flattener[E]) pull() (Event[E], bool, producer[E]) {
	for len(f.pending) == 0 {
		batch, ok := f.src.Next()
		if !ok {
			return Event[E]{}, false, nil
		}
		f.delay += batch.Delay
		f.pending = batch.Value
	}
	ev := Event[E]{Delay: f.delay, Value: f.pending[0]}
	f.pending = f.pending[1:]
	f.delay = 0
	return ev, true, nil
}

type coalescer[E any] struct {
	src    *Stream[E]
	reduce func(E, E) E
	head   Event[E]
	primed bool
}

func (c *coalescer[E]) pull() (Event[E], bool, producer[E]) {
	if !c.primed {
		ev, ok := c.src.Next()
		if !ok {
			return Event[E]{}, false, nil
		}
		c.head, c.primed = ev, true
	}
	for {
		ev, ok := c.src.Next()
		if !ok {
			c.primed = false
			return c.head, true, nil
		}
		if ev.Delay == 0 {
			c.head.Value = c.reduce(c.head.Value, ev.Value)
			continue
		}
		out := c.head
		c.head = ev
		return out, true, nil
	}
}
