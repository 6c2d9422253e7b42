package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Keyboard renders a one-line piano strip, one cell per MIDI key.
type Keyboard struct {
	Low, High uint8 // inclusive key range
	White     rune
	Black     rune
	On        rune
	Muted     lipgloss.Color
}

// KeyMark lights one key.
type KeyMark struct {
	Key   uint8
	Color lipgloss.Color
}

// Width is the number of cells Render produces.
func (k Keyboard) Width() int {
	if k.High < k.Low {
		return 0
	}
	return int(k.High-k.Low) + 1
}

// Render draws the strip with marks lit. Marks outside the range are
// ignored; a later mark on the same key wins.
func (k Keyboard) Render(marks ...KeyMark) string {
	lit := make(map[uint8]lipgloss.Color, len(marks))
	for _, m := range marks {
		lit[m.Key] = m.Color
	}

	muted := lipgloss.NewStyle().Foreground(k.Muted)
	var out strings.Builder
	for i := 0; i < k.Width(); i++ {
		key := k.Low + uint8(i)
		if c, ok := lit[key]; ok {
			out.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(k.On)))
			continue
		}
		sym := k.White
		if isBlack(key) {
			sym = k.Black
		}
		out.WriteString(muted.Render(string(sym)))
	}
	return out.String()
}

func isBlack(key uint8) bool {
	switch key % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
