package stream

import "time"

// RepeatEvery samples the first interval of s and replays that sample back
// to back forever, one copy every interval. Sampling is deferred to the first
// pull and each period is built only when reached. Values are copied
// shallowly from the sample into every period.
//
// RepeatEvery panics if interval is not positive.
func (s *Stream[E]) RepeatEvery(interval time.Duration) *Stream[E] {
	if interval <= 0 {
		panic("stream: repeat interval must be positive")
	}
	src := s.own()
	return Lazy(func() *Stream[E] {
		sample := src.Take(interval).Collect()
		if len(sample) == 0 {
			return Empty[E]()
		}
		return replay(sample, interval)
	})
}

func replay[E any](sample []Event[E], interval time.Duration) *Stream[E] {
	return Lazy(func() *Stream[E] {
		period := newStream[E](&sliceProducer[E]{events: sample})
		return period.ChainAt(interval, replay(sample, interval))
	})
}
