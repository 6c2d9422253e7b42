package stream

import "time"

// Chain plays all of s, then all of other. s must be finite for other to be
// reached. Delays are untouched.
func (s *Stream[E]) Chain(other *Stream[E]) *Stream[E] {
	return newStream[E](&chain[E]{first: s.own(), second: other.own()})
}

// ChainAt splices other into s at threshold.
//
// Events of s pass through while their cumulative delay stays within
// threshold. The first event that would land past it is dropped and s is
// abandoned. From then on other plays with its clock starting exactly at
// threshold: its first delay absorbs whatever part of threshold s did not
// use, whether s was cut or simply ran out.
func (s *Stream[E]) ChainAt(threshold time.Duration, other *Stream[E]) *Stream[E] {
	if threshold < 0 {
		panic("stream: negative splice threshold")
	}
	return newStream[E](&chainAt[E]{first: s.own(), second: other.own(), remaining: threshold})
}

// Take truncates s to at most d of elapsed time. An event that would cross
// the boundary is dropped, not split.
func (s *Stream[E]) Take(d time.Duration) *Stream[E] {
	return s.ChainAt(d, Empty[E]())
}

// Drop discards the events of s whose cumulative delay is below d. The first
// surviving event is moved earlier by d, so it keeps its place relative to
// the new origin.
func (s *Stream[E]) Drop(d time.Duration) *Stream[E] {
	if d < 0 {
		panic("stream: negative drop duration")
	}
	return newStream[E](&dropper[E]{src: s.own(), remaining: d})
}

// Delay shifts every event of s later by d.
func (s *Stream[E]) Delay(d time.Duration) *Stream[E] {
	return Empty[E]().ChainAt(d, s)
}

type chain[E any] struct {
	first, second *Stream[E]
}

func (c *chain[E]) pull() (Event[E], bool, producer[E]) {
	if ev, ok := c.first.Next(); ok {
		return ev, true, nil
	}
	return Event[E]{}, false, handOff(c.second, 0)
}

type chainAt[E any] struct {
	first, second *Stream[E]
	remaining     time.Duration
}

func (c *chainAt[E]) pull() (Event[E], bool, producer[E]) {
	if ev, ok := c.first.Next(); ok && ev.Delay <= c.remaining {
		c.remaining -= ev.Delay
		return ev, true, nil
	}
	return Event[E]{}, false, handOff(c.second, c.remaining)
}

// handOff returns the producer that continues with s, its first event
// pushed back by lead. A nil result means s is already exhausted.
func handOff[E any](s *Stream[E], lead time.Duration) producer[E] {
	if s.src == nil {
		return nil
	}
	if lead == 0 {
		return s.src
	}
	return &shifted[E]{inner: s, by: lead}
}

// shifted adds a lead time to the first event of inner and then steps aside.
type shifted[E any] struct {
	inner *Stream[E]
	by    time.Duration
}

func (s *shifted[E]) pull() (Event[E], bool, producer[E]) {
	ev, ok := s.inner.Next()
	if !ok {
		return Event[E]{}, false, nil
	}
	ev.Delay += s.by
	return ev, true, s.inner.src
}

type dropper[E any] struct {
	src       *Stream[E]
	remaining time.Duration
}

func (d *dropper[E]) pull() (Event[E], bool, producer[E]) {
	for {
		ev, ok := d.src.Next()
		if !ok {
			return Event[E]{}, false, nil
		}
		if ev.Delay >= d.remaining {
			ev.Delay -= d.remaining
			return ev, true, d.src.src
		}
		d.remaining -= ev.Delay
	}
}
