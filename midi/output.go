package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

var (
	ErrPortNotFound    = errors.New("midi: no output port matches")
	ErrPortScanTimeout = errors.New("midi: timed out listing ports")
)

// ScanTimeout bounds how long listing ports may take. Some backends hang
// when the MIDI server is wedged.
var ScanTimeout = 3 * time.Second

// OutPorts lists the output ports of the registered driver.
func OutPorts(ctx context.Context) ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case ports := <-ch:
		return ports, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(ScanTimeout):
		return nil, ErrPortScanTimeout
	}
}

// OutPortNames lists the names of the output ports.
func OutPortNames(ctx context.Context) ([]string, error) {
	ports, err := OutPorts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names, nil
}

// MatchPort returns the index of the first name starting with prefix,
// ignoring case, or -1.
func MatchPort(names []string, prefix string) int {
	prefix = strings.ToLower(prefix)
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			return i
		}
	}
	return -1
}

// Output is an open output port.
type Output struct {
	port drivers.Out
	send func(gomidi.Message) error
}

// OpenOutput opens the first output port whose name starts with prefix.
func OpenOutput(ctx context.Context, prefix string) (*Output, error) {
	ports, err := OutPorts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	i := MatchPort(names, prefix)
	if i < 0 {
		return nil, fmt.Errorf("%w %q (have %s)", ErrPortNotFound, prefix, strings.Join(names, ", "))
	}

	send, err := gomidi.SendTo(ports[i])
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", names[i], err)
	}
	return &Output{port: ports[i], send: send}, nil
}

// Name returns the port name.
func (o *Output) Name() string {
	return o.port.String()
}

// Send writes one event to the port.
func (o *Output) Send(e Event) error {
	msg := e.Message()
	if msg == nil {
		return fmt.Errorf("midi: cannot encode %s", e)
	}
	return o.send(msg)
}

func (o *Output) Close() error {
	return o.port.Close()
}

// CloseDriver releases the MIDI backend. Call once at exit.
func CloseDriver() {
	gomidi.CloseDriver()
}
