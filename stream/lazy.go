package stream

// Lazy defers calling factory until the first event is requested, then
// forwards to the stream it returned. Self-referential and infinite streams
// are built from it: the factory may itself return a stream that contains a
// Lazy, and no recursion happens until somebody pulls.
func Lazy[E any](factory func() *Stream[E]) *Stream[E] {
	return newStream[E](&thunk[E]{factory: factory})
}

// thunk is either pending (factory set) or spent. Once built it hands the
// inner producer back to its owner and is never pulled again.
type thunk[E any] struct {
	factory func() *Stream[E]
}

func (t *thunk[E]) pull() (Event[E], bool, producer[E]) {
	if t.factory == nil {
		return Event[E]{}, false, nil
	}
	f := t.factory
	t.factory = nil
	inner := f().own()
	return Event[E]{}, false, inner.src
}
