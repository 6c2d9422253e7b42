package stream

import "time"

// Var is a value that changes over time: a present value plus a stream of
// future replacements. Each update (d, v) replaces the value with v, d after
// the previous replacement (or after time 0 for the first).
//
// Like Stream, a Var is consumed by every operation that advances or
// transforms it.
type Var[T any] struct {
	present  T
	future   *Stream[T]
	consumed bool
}

// Constant returns a Var that holds v forever.
func Constant[T any](v T) *Var[T] {
	return &Var[T]{present: v, future: Empty[T]()}
}

// FromUpdates returns a Var starting at initial and replaced by updates.
func FromUpdates[T any](initial T, updates *Stream[T]) *Var[T] {
	return &Var[T]{present: initial, future: updates.own()}
}

// Value returns the present value. It is a snapshot accessor and does not
// consume v.
func (v *Var[T]) Value() T {
	if v.consumed {
		panic("stream: var already consumed")
	}
	return v.present
}

func (v *Var[T]) own() *Var[T] {
	if v == nil {
		panic("stream: nil var")
	}
	if v.consumed {
		panic("stream: var already consumed")
	}
	w := &Var[T]{present: v.present, future: v.future}
	var zero T
	v.present = zero
	v.future = nil
	v.consumed = true
	return w
}

// ToStream returns every value of v, starting with (0, present).
func (v *Var[T]) ToStream() *Stream[T] {
	w := v.own()
	return Immediate(w.present).Chain(w.future)
}

// MapVar applies f to the present value and to every future value.
func MapVar[T, U any](v *Var[T], f func(T) U) *Var[U] {
	w := v.own()
	return &Var[U]{present: f(w.present), future: Map(w.future, f)}
}

// RepeatEvery replays the first interval of v's timeline forever. The
// present value is kept and also opens every period.
func (v *Var[T]) RepeatEvery(interval time.Duration) *Var[T] {
	w := v.own()
	present := w.present
	return &Var[T]{present: present, future: w.ToStream().RepeatEvery(interval)}
}

// Sequence plays a time-varying choice of stream. The present stream plays
// until the next replacement arrives; it is then cut at that point and the
// replacement takes over with its clock starting at the switch.
func Sequence[T any](v *Var[*Stream[T]]) *Stream[T] {
	w := v.own()
	return Lazy(func() *Stream[T] {
		next, ok := w.future.Next()
		if !ok {
			return w.present
		}
		return w.present.ChainAt(next.Delay, Sequence(FromUpdates(next.Value, w.future)))
	})
}

// SequenceVar collapses a Var of Vars. At any time its value is the value of
// the inner Var that is current at that time.
//
// The flattened timeline must open with an event at delay 0, which holds for
// any Var built by this package since ToStream always starts at 0. A
// violation panics.
func SequenceVar[T any](v *Var[*Var[T]]) *Var[T] {
	flat := Sequence(MapVar(v, (*Var[T]).ToStream))
	first, ok := flat.Next()
	if !ok || first.Delay != 0 {
		panic("stream: nested var does not start at delay 0")
	}
	return &Var[T]{present: first.Value, future: flat}
}
