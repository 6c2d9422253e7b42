// Package stream models timed event sequences with relative delays.
//
// A Stream is a lazy, possibly infinite sequence of events, each carrying the
// time elapsed since the previous event of the same stream. Absolute times are
// never stored: the k-th event happens at the sum of the first k delays. Every
// combinator preserves that encoding, so splicing, truncating and merging
// yield the same absolute schedule the operation describes.
//
// Streams are pull-based. Nothing is produced until a consumer calls Next, and
// each call does only the work needed for one event. Infinite streams such as
// a repeating pattern are fine as long as the consumer stops pulling.
//
// Ownership is exclusive. Each combinator consumes the streams it is given and
// returns a new one; the consumed handles are emptied and any further use of
// them panics. The same holds for Var.
//
// Violated preconditions (negative delays, reuse of a consumed handle, a
// nested Var that does not start at delay zero) panic with a message prefixed
// by "stream:". There is no recoverable error path in the algebra.
package stream
