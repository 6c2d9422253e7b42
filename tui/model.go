package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-avril/midi"
	"go-avril/sequencer"
	"go-avril/theme"
	"go-avril/theory"
	"go-avril/widgets"
)

// recentEvents is how many sent events the log keeps.
const recentEvents = 6

type Model struct {
	Piece    *sequencer.Piece
	Theme    *theme.Theme
	status   <-chan sequencer.Status
	done     <-chan error
	cancel   context.CancelFunc
	keyboard widgets.Keyboard

	last     sequencer.Status
	recent   []midi.Event
	quitting bool
	finished bool
	err      error
}

type StatusMsg sequencer.Status

type DoneMsg struct {
	Err error
}

// NewModel shows playback of piece. status carries player updates, done
// receives the player's result exactly once, and cancel stops the player.
func NewModel(piece *sequencer.Piece, th *theme.Theme, status <-chan sequencer.Status, done <-chan error, cancel context.CancelFunc) Model {
	m := Model{
		Piece:  piece,
		Theme:  th,
		status: status,
		done:   done,
		cancel: cancel,
		keyboard: widgets.Keyboard{
			Low:   28, // E1
			High:  103, // G7
			White: th.Symbols.KeyWhite,
			Black: th.Symbols.KeyBlack,
			On:    th.Symbols.KeyOn,
			Muted: th.Muted(),
		},
	}
	for i := range m.last.Sounding {
		m.last.Sounding[i] = -1
	}
	return m
}

func ListenForStatus(ch <-chan sequencer.Status) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return StatusMsg(st)
	}
}

func WaitForDone(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Err: <-done}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForStatus(m.status),
		WaitForDone(m.done),
	)
}

// Err is the player's result once it has finished.
func (m Model) Err() error {
	return m.err
}

// Finished reports whether the player has returned.
func (m Model) Finished() bool {
	return m.finished
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// the player silences the synth, then DoneMsg quits
			m.quitting = true
			m.cancel()
		}

	case StatusMsg:
		m.last = sequencer.Status(msg)
		if m.last.Last.Type != midi.ActiveSensing {
			m.recent = append(m.recent, m.last.Last)
			if len(m.recent) > recentEvents {
				m.recent = m.recent[len(m.recent)-recentEvents:]
			}
		}
		return m, ListenForStatus(m.status)

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.finished {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	state := m.Theme.Symbols.Playing
	if m.quitting {
		state = m.Theme.Symbols.Stopped
	}
	header := headerStyle.Render(fmt.Sprintf("go-avril  %c  %q  %s %s  %s",
		state, m.Piece.Seed, m.Piece.Key.Tonic(), m.Piece.Key.Scale().Name(), m.clock()))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	for i, t := range m.Piece.Tracks {
		color := m.Theme.Voice(i, len(m.Piece.Tracks))
		name := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-8s", t.Name))
		note := "  -"
		var marks []widgets.KeyMark
		if key := m.last.Sounding[(t.Channel-1)&0x0F]; key >= 0 {
			note = fmt.Sprintf("%3s", theory.NoteFromMIDI(uint8(key)))
			marks = append(marks, widgets.KeyMark{Key: uint8(key), Color: color})
		}
		fmt.Fprintf(&out, "%s ch%-2d %s  %s\n", name, t.Channel, fgStyle.Render(note), m.keyboard.Render(marks...))
	}

	out.WriteString("\n")
	for _, e := range m.recent {
		out.WriteString(dimStyle.Render(e.String()))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	help := widgets.RenderKeyHelp([]widgets.KeyBinding{{Key: "q", Desc: "stop"}})
	if m.quitting {
		help = "stopping..."
	}
	out.WriteString(dimStyle.Render(fmt.Sprintf("%c %d sent  %s", m.Theme.Symbols.Heartbeat, m.last.Sent, help)))
	return out.String()
}

// clock shows elapsed time, and the total for a bounded piece.
func (m Model) clock() string {
	elapsed := formatClock(m.last.Elapsed)
	if m.Piece.Length == 0 {
		return elapsed
	}
	return elapsed + " / " + formatClock(m.Piece.Length)
}

func formatClock(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%d:%04.1f", int(d.Minutes()), (d % time.Minute).Seconds())
}
