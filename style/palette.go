package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette of the full-screen interface.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Sapphire = lipgloss.Color("#74c7ec")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	FaintColor  = Overlay
	ErrorColor  = Red
)

// statusColors tints the playback status badge, keyed by status name.
var statusColors = map[string]lipgloss.Color{
	"playing":  Green,
	"paused":   Yellow,
	"finished": Lavender,
	"idle":     Overlay,
}

// kindColors tints source kind tags, keyed by kind name.
var kindColors = map[string]lipgloss.Color{
	"streaming":      Sapphire,
	"local_file":     Green,
	"playlist_file":  Peach,
	"generic_stream": Teal,
	"unknown":        Overlay,
}

// StatusBadge renders a status name as an uppercase badge.
func StatusBadge(status string) string {
	c, ok := statusColors[status]
	if !ok {
		c = Overlay
	}
	return Tag(Base, c)(strings.ToUpper(status))
}

// KindTag renders a source kind name such as local_file as a small tag.
func KindTag(kind string) string {
	c, ok := kindColors[kind]
	if !ok {
		c = Overlay
	}
	return Tag(Base, c)(strings.ReplaceAll(kind, "_", " "))
}
