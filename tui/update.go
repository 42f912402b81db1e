package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/internal/ui"
	"github.com/djecho/djecho/query"
	"github.com/samber/mo"
)

const volumeStep = 5

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.refresh())
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case refreshMsg:
		b.snapshot = b.session.Status()
		return b, tea.Batch(append(cmds, b.refresh())...)
	case eventMsg:
		b.snapshot = b.session.Status()
		if text := describe(msg.event); text != "" {
			cmds = append(cmds, ui.Notify(text))
		}
		return b, tea.Batch(cmds...)
	case commentaryMsg:
		b.commentary = string(msg)
		b.progressStatus = "On air..."
		return b, tea.Batch(cmds...)
	case replyMsg:
		b.busy = false
		b.progressStatus = ""
		cmds = append(cmds, b.handleFailure(msg.err))
		return b, tea.Batch(cmds...)
	case skipMsg:
		b.busy = false
		b.progressStatus = ""
		cmds = append(cmds, b.handleFailure(msg.err))
		return b, tea.Batch(cmds...)
	case spinner.TickMsg:
		if !b.busy {
			return b, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case searchState:
		cmd = b.updateSearch(msg)
	case statsState:
		cmd = b.updateStats(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.confirm):
			line := b.inputC.Value()
			b.inputC.SetValue("")
			b.searchSuggestion = mo.None[string]()

			cmd, err := dj.Parse(line)
			if err != nil {
				return ui.Notify(err.Error())
			}
			return b.execute(cmd)
		case key.Matches(msg, b.keymap.acceptSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.inputC.CursorEnd()
			b.searchSuggestion = mo.None[string]()
			return nil
		case key.Matches(msg, b.keymap.clear):
			b.inputC.SetValue("")
			b.searchSuggestion = mo.None[string]()
			return nil
		case key.Matches(msg, b.keymap.playPause):
			return b.togglePause()
		case key.Matches(msg, b.keymap.stop):
			return b.execute(dj.Command{Verb: dj.VerbStop})
		case key.Matches(msg, b.keymap.skip):
			return b.execute(dj.Command{Verb: dj.VerbSkip})
		case key.Matches(msg, b.keymap.openPage):
			return b.openPage()
		case key.Matches(msg, b.keymap.volumeUp):
			return b.execute(dj.Command{Verb: dj.VerbVolume, Level: b.snapshot.Volume + volumeStep})
		case key.Matches(msg, b.keymap.volumeDown):
			return b.execute(dj.Command{Verb: dj.VerbVolume, Level: b.snapshot.Volume - volumeStep})
		case key.Matches(msg, b.keymap.stats):
			b.showPlayed()
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updateStats(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.back) {
		b.setState(searchState)
		return nil
	}

	var cmd tea.Cmd
	b.playedC, cmd = b.playedC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.back) {
		b.lastError = nil
		b.setState(searchState)
	}
	return nil
}
