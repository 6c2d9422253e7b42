package stream

// Merge interleaves s and other as if both were placed on one absolute
// timeline and sorted. Ties go to s. Only one pending event per side is held,
// so infinite inputs are fine.
func (s *Stream[E]) Merge(other *Stream[E]) *Stream[E] {
	return newStream[E](&merger[E]{
		left:      s.own(),
		right:     other.own(),
		needLeft:  true,
		needRight: true,
	})
}

// MergeAll is a left fold of Merge over streams. It returns an empty stream
// when streams is empty.
func MergeAll[E any](streams ...*Stream[E]) *Stream[E] {
	if len(streams) == 0 {
		return Empty[E]()
	}
	out := streams[0].own()
	for _, s := range streams[1:] {
		out = out.Merge(s)
	}
	return out
}

// merger keeps the next event of each side with its delay measured from the
// last emitted event of the merged stream.
type merger[E any] struct {
	left, right         *Stream[E]
	lhead, rhead        Event[E]
	lok, rok            bool
	needLeft, needRight bool
}

func (m *merger[E]) pull() (Event[E], bool, producer[E]) {
	if m.needLeft {
		m.lhead, m.lok = m.left.Next()
		m.needLeft = false
	}
	if m.needRight {
		m.rhead, m.rok = m.right.Next()
		m.needRight = false
	}
	switch {
	case !m.lok && !m.rok:
		return Event[E]{}, false, nil
	case !m.rok:
		// The rest of left is already relative to its head.
		m.needLeft = true
		return m.lhead, true, m.left.src
	case !m.lok:
		m.needRight = true
		return m.rhead, true, m.right.src
	case m.lhead.Delay <= m.rhead.Delay:
		m.rhead.Delay -= m.lhead.Delay
		m.needLeft = true
		return m.lhead, true, nil
	default:
		m.lhead.Delay -= m.rhead.Delay
		m.needRight = true
		return m.rhead, true, nil
	}
}
