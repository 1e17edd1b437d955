package ui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

var theme = palette{
	Text:      lipgloss.Color("#cdd6f4"),
	Muted:     lipgloss.Color("#a6adc8"),
	Accent:    lipgloss.Color("#cba6f7"),
	AccentAlt: lipgloss.Color("#f38ba8"),
	Border:    lipgloss.Color("#585b70"),
	Success:   lipgloss.Color("#94e2d5"),
	Warning:   lipgloss.Color("#f9e2af"),
}

// Overlay colours drawn over preview pixels.
var (
	frameColor  = color.NRGBA{R: 0xcb, G: 0xa6, B: 0xf7, A: 0xff}
	activeColor = color.NRGBA{R: 0xf3, G: 0x8b, B: 0xa8, A: 0xff}
)

// dimFactor darkens pixels outside the crop rectangle.
const dimFactor = 0.35

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
	warn   lipgloss.Style
	ok     lipgloss.Style
	box    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		muted:  lipgloss.NewStyle().Foreground(theme.Muted),
		accent: lipgloss.NewStyle().Foreground(theme.AccentAlt),
		warn:   lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		ok:     lipgloss.NewStyle().Foreground(theme.Success),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1),
	}
}
