package sequencer

import (
	"fmt"
	"io"

	"go-avril/midi"
	"go-avril/stream"
)

// Dump writes events to w, one per line as "<delay ms>\t<event>", stopping
// after limit events. A limit of 0 writes the whole stream, which never
// returns for an endless one.
func Dump(w io.Writer, events *stream.Stream[midi.Event], limit int) error {
	n := 0
	for delay, e := range events.All() {
		if limit > 0 && n == limit {
			break
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", delay.Milliseconds(), e); err != nil {
			return err
		}
		n++
	}
	return nil
}
