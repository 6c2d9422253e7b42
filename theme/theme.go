package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Keyboard strip
	KeyWhite rune // · white key, silent
	KeyBlack rune // ˙ black key, silent
	KeyOn    rune // █ sounding key

	Heartbeat rune // ♥ active sensing
	Playing   rune // ▶
	Stopped   rune // ■
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			KeyWhite: '·',
			KeyBlack: '˙',
			KeyOn:    '█',

			Heartbeat: '♥',
			Playing:   '▶',
			Stopped:   '■',
		},
	}
}

// Default is the theme over the built-in palette.
func Default() *Theme {
	return New(DefaultPalette())
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Voices are spread over this part of the palette.
const (
	voiceLow  = 0.55
	voiceHigh = 0.95
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Voice returns the colour of voice i out of n.
func (t *Theme) Voice(i, n int) lipgloss.Color {
	if n <= 1 {
		return t.Color(voiceLow)
	}
	return t.Color(voiceLow + (voiceHigh-voiceLow)*float64(i)/float64(n-1))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
