// Package style renders text for the command line and the full-screen interface.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored is a style with both colors set. An empty color leaves the terminal default.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer for the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate renders into a block max cells wide.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).MaxWidth(max).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title is the padded banner used for headings such as the DJ name.
var Title = func(s string) string {
	return Colored(Base, AccentColor).Bold(true).Padding(0, 1).Render(s)
}

// ErrorTitle is Title for failures.
var ErrorTitle = func(s string) string {
	return Colored(Base, ErrorColor).Bold(true).Padding(0, 1).Render(s)
}

// Tag renders a short padded label, as used for badges.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
