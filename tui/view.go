package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/icon"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/style"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case searchState:
		output = b.viewSearch()
	case statsState:
		output = listExtraPaddingStyle.Render(b.playedC.View())
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewSearch() string {
	input := b.inputC.View()
	if suggestion, ok := b.searchSuggestion.Get(); ok {
		input += "  " + style.Faint(fmt.Sprintf("%s %s", suggestion, b.keymap.acceptSuggestion.Help().Key))
	}

	lines := []string{
		style.Title(constant.DJName),
		"",
		input,
		"",
	}

	if b.busy {
		lines = append(lines, b.spinnerC.View()+" "+style.Faint(b.progressStatus))
	} else {
		lines = append(lines, "")
	}

	if b.commentary != "" {
		quote := wordwrap.String(fmt.Sprintf("%s %q", icon.Get(icon.Mic), b.commentary), max(b.width, 20))
		lines = append(lines, "", style.Italic(quote))
	}

	lines = append(lines, "")
	lines = append(lines, b.viewNowPlaying()...)

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewNowPlaying() []string {
	st := b.snapshot

	header := style.StatusBadge(string(st.Status)) + " " +
		style.Faint(fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), st.Volume))

	if !st.Status.Active() {
		return []string{header, style.Faint("Nothing playing. Type a vibe and press enter.")}
	}

	lines := []string{
		header,
		"",
		style.Truncate(b.width)(style.Fg(color.Purple)(st.TrackTitle.OrEmpty())),
	}

	if d, ok := st.Source.Get(); ok {
		lines = append(lines, style.KindTag(string(d.Kind))+" "+style.Truncate(b.width)(d.Format(viper.GetBool(key.TUIShowSourceDetails))))
	}

	lines = append(lines, "", b.viewProgress(st))
	return lines
}

func (b *statefulBubble) viewProgress(st player.State) string {
	position := dj.Position(st)
	if st.DurationSeconds <= 0 {
		return style.Faint(position)
	}

	percent := float64(st.PositionSeconds) / float64(st.DurationSeconds)
	return b.progressC.ViewAs(min(percent, 1)) + " " + style.Faint(position)
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.New().Foreground(style.ErrorColor).Bold(true).Render(b.lastError.Error()), b.width)
	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " An error occurred:",
		"",
		errorMsg,
	})
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
