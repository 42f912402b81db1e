package mini

import (
	"fmt"
	"strings"

	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/style"
	"github.com/djecho/djecho/util"
)

func (m *mini) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *mini) banner() {
	m.println(style.Title(constant.DJName) + " " + style.Faint("ready"))
	m.println(style.Faint(dj.Help))
}

func (m *mini) title(s string) {
	m.println(style.Fg(color.HiBlue)(style.Bold(s)))
}

func (m *mini) fail(s string) {
	m.println(icon.Get(icon.Fail) + " " + style.Fg(color.Red)(s))
}

func (m *mini) warn(s string) {
	m.println(icon.Get(icon.Warn) + " " + style.Fg(color.Yellow)(s))
}

func (m *mini) progress(s string) (eraser func()) {
	return util.PrintErasable(icon.Get(icon.Progress) + " " + style.Faint(s))
}

func (m *mini) fields(fields []dj.Field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Label))
	}

	for _, f := range fields {
		label := style.Fg(color.Purple)(f.Label + ":" + strings.Repeat(" ", width-len(f.Label)))
		m.println("  " + label + " " + f.Value)
	}
}

func truncate(s string) string {
	if truncateAt > 3 && len([]rune(s)) > truncateAt {
		return string([]rune(s)[:truncateAt-3]) + "..."
	}
	return s
}

// printEvent is the player subscriber of the line interface.
func (m *mini) printEvent(e player.Event) {
	switch e := e.(type) {
	case player.Playing:
		m.println(truncate(fmt.Sprintf("%s Now playing: %s", icon.Get(icon.Play), style.Fg(color.Purple)(e.Title))))
		m.println(style.Faint("  " + e.Source.Format(false)))
	case player.Paused:
		m.println(icon.Get(icon.Pause) + " Music paused.")
	case player.Stopped:
		m.println(icon.Get(icon.Stop) + " Playback stopped.")
	case player.Finished:
		if e.Err != nil {
			m.fail("Playback failed: " + e.Err.Error())
			return
		}
		m.println(icon.Get(icon.Success) + " Track finished. Ready for a new vibe.")
	case player.VolumeChanged:
		m.println(fmt.Sprintf("%s Volume set to %d%%", icon.Get(icon.Volume), e.Level))
	}
}
