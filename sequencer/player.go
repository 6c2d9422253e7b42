package sequencer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-avril/midi"
	"go-avril/stream"
)

// Sink receives events as they fall due.
type Sink interface {
	Send(midi.Event) error
}

// Status is a snapshot of playback, published after every sent event.
type Status struct {
	Elapsed  time.Duration // scheduled time of Last
	Sent     int
	Last     midi.Event
	Sounding [16]int // key sounding per channel, -1 when silent
}

// Clock abstracts wall time so playback can be driven in tests.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx's error.
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Player sends a stream to a sink in real time.
type Player struct {
	sink   Sink
	clock  Clock
	log    *zap.Logger
	status chan<- Status
	id     string
}

type Option func(*Player)

func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.log = l }
}

func WithClock(c Clock) Option {
	return func(p *Player) { p.clock = c }
}

// WithStatus publishes a Status after every event. Sends never block: a
// full channel drops the update.
func WithStatus(ch chan<- Status) Option {
	return func(p *Player) { p.status = ch }
}

// NewPlayer creates a player writing to sink
func NewPlayer(sink Sink, opts ...Option) *Player {
	p := &Player{
		sink:  sink,
		clock: wallClock{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	p.id = id.String()
	p.log = p.log.With(zap.String("run", p.id))
	return p
}

// ID identifies this player's run in the logs.
func (p *Player) ID() string {
	return p.id
}

// Play sends each event when it falls due, measured from the moment Play is
// called. Deadlines are absolute, so time spent sending does not accumulate
// as drift.
//
// Play returns when the stream ends, when the sink fails, or when ctx is
// done. On cancellation every channel that sounded a note is silenced
// before ctx's error is returned.
func (p *Player) Play(ctx context.Context, events *stream.Stream[midi.Event]) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var st Status
	for i := range st.Sounding {
		st.Sounding[i] = -1
	}
	var touched [16]bool

	start := p.clock.Now()
	p.log.Info("playback started")

	for delay, e := range events.All() {
		st.Elapsed += delay
		wait := start.Add(st.Elapsed).Sub(p.clock.Now())
		if err := p.clock.Sleep(ctx, wait); err != nil {
			p.silence(touched)
			p.log.Info("playback cancelled", zap.Duration("elapsed", st.Elapsed), zap.Int("sent", st.Sent))
			return err
		}

		if err := p.sink.Send(e); err != nil {
			p.log.Error("send failed", zap.Stringer("event", e), zap.Error(err))
			return fmt.Errorf("send %s: %w", e, err)
		}
		if wait < 0 {
			p.log.Debug("late", zap.Duration("by", -wait), zap.Stringer("event", e))
		}

		ch := e.Channel & 0x0F
		switch {
		case e.Type == midi.NoteOn:
			st.Sounding[ch] = int(e.Note)
			touched[ch] = true
		case e.Type == midi.NoteOff && st.Sounding[ch] == int(e.Note):
			st.Sounding[ch] = -1
		case e.Type == midi.CC && e.Note == midi.AllSoundOff:
			st.Sounding[ch] = -1
		}
		st.Sent++
		st.Last = e
		p.log.Debug("sent", zap.Duration("at", st.Elapsed), zap.Stringer("event", e))
		p.publish(st)
	}

	p.log.Info("playback finished", zap.Duration("elapsed", st.Elapsed), zap.Int("sent", st.Sent))
	return nil
}

func (p *Player) publish(st Status) {
	if p.status == nil {
		return
	}
	select {
	case p.status <- st:
	default:
	}
}

// silence releases every channel that played a note.
func (p *Player) silence(touched [16]bool) {
	for ch, t := range touched {
		if !t {
			continue
		}
		if err := p.sink.Send(midi.AllSoundOffEvent(uint8(ch))); err != nil {
			p.log.Warn("silence failed", zap.Int("channel", ch+1), zap.Error(err))
		}
	}
}
