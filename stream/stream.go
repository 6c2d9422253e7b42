package stream

import (
	"fmt"
	"iter"
	"time"
)

// Event is a value paired with its delay after the previous event.
type Event[E any] struct {
	Delay time.Duration
	Value E
}

// At is shorthand for an Event literal.
func At[E any](delay time.Duration, value E) Event[E] {
	return Event[E]{Delay: delay, Value: value}
}

// producer yields the events of a Stream.
//
// A non-nil rest replaces the producer for every later pull. When ok is false
// and rest is non-nil, the pull is retried against rest. Splices and lazy
// thunks use this to hand their successor to the owning stream, so a stream
// that has switched sources a million times is still one frame deep.
type producer[E any] interface {
	pull() (ev Event[E], ok bool, rest producer[E])
}

// Stream is a lazy sequence of timed events. The zero value is not usable;
// build streams with the constructors in this package.
type Stream[E any] struct {
	src      producer[E]
	consumed bool
}

func newStream[E any](p producer[E]) *Stream[E] {
	return &Stream[E]{src: p}
}

// Next pulls the next event. It returns false once the stream is exhausted.
func (s *Stream[E]) Next() (Event[E], bool) {
	if s.consumed {
		panic("stream: stream already consumed")
	}
	for s.src != nil {
		ev, ok, rest := s.src.pull()
		if rest != nil {
			s.src = rest
			if !ok {
				continue
			}
		}
		if !ok {
			s.src = nil
			break
		}
		return ev, true
	}
	return Event[E]{}, false
}

// own moves the producer out of s into a fresh handle and marks s consumed.
func (s *Stream[E]) own() *Stream[E] {
	if s == nil {
		panic("stream: nil stream")
	}
	if s.consumed {
		panic("stream: stream already consumed")
	}
	t := &Stream[E]{src: s.src}
	s.src = nil
	s.consumed = true
	return t
}

// Collect drains the stream into a slice. It never returns for an infinite
// stream; bound it with Take first.
func (s *Stream[E]) Collect() []Event[E] {
	src := s.own()
	var out []Event[E]
	for {
		ev, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

// All consumes the stream and returns it as a (delay, value) iterator.
func (s *Stream[E]) All() iter.Seq2[time.Duration, E] {
	src := s.own()
	return func(yield func(time.Duration, E) bool) {
		for {
			ev, ok := src.Next()
			if !ok || !yield(ev.Delay, ev.Value) {
				return
			}
		}
	}
}

// Empty returns an exhausted stream.
func Empty[E any]() *Stream[E] {
	return newStream[E](nil)
}

// Immediate returns a stream holding the single event (0, value).
func Immediate[E any](value E) *Stream[E] {
	return FromEvents(Event[E]{Value: value})
}

// FromEvents returns a finite stream over events. It panics if any delay is
// negative.
func FromEvents[E any](events ...Event[E]) *Stream[E] {
	for i, ev := range events {
		checkDelay(ev.Delay, i)
	}
	return newStream[E](&sliceProducer[E]{events: events})
}

// FromFunc wraps a producer function. next is called once per pull and
// returns false when there are no more events; it is not called again after
// that. A negative delay panics when it is produced.
func FromFunc[E any](next func() (time.Duration, E, bool)) *Stream[E] {
	return newStream[E](&funcProducer[E]{next: next})
}

// Unfold returns the infinite stream obtained by repeatedly applying step to
// a state. Each step yields a delay, a value and the following state.
func Unfold[S, E any](state S, step func(S) (time.Duration, E, S)) *Stream[E] {
	return FromFunc(func() (time.Duration, E, bool) {
		d, v, next := step(state)
		state = next
		return d, v, true
	})
}

func checkDelay(d time.Duration, index int) {
	if d < 0 {
		panic(fmt.Sprintf("stream: negative delay %v at event %d", d, index))
	}
}

type sliceProducer[E any] struct {
	events []Event[E]
	i      int
}

func (p *sliceProducer[E]) pull() (Event[E], bool, producer[E]) {
	if p.i >= len(p.events) {
		return Event[E]{}, false, nil
	}
	ev := p.events[p.i]
	p.i++
	return ev, true, nil
}

type funcProducer[E any] struct {
	next  func() (time.Duration, E, bool)
	count int
	done  bool
}

func (p *funcProducer[E]) pull() (Event[E], bool, producer[E]) {
	if p.done {
		return Event[E]{}, false, nil
	}
	d, v, ok := p.next()
	if !ok {
		p.done = true
		return Event[E]{}, false, nil
	}
	checkDelay(d, p.count)
	p.count++
	return Event[E]{Delay: d, Value: v}, true, nil
}
