// Package color holds the ANSI colors of the command line output.
// The full-screen interface uses the hex palette in package style.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")

	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")

	Orange = New("#ffb703")
)
