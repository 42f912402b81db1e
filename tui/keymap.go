package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/style"
)

type statefulKeymap struct {
	state state

	forceQuit,
	confirm,
	acceptSuggestion,
	clear,
	playPause,
	stop,
	skip,
	openPage,
	volumeUp, volumeDown,
	stats,
	back,
	up, down,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("request")),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		playPause: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "pause/resume"),
		),
		stop: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "stop"),
		),
		skip: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "skip"),
		),
		openPage: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open in browser"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+up"),
			key.WithHelp("pgup", "volume +5"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+down"),
			key.WithHelp("pgdown", "volume -5"),
		),
		stats: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "played"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case searchState:
		return h(k.confirm, k.playPause, k.skip, k.stats, k.forceQuit),
			h(k.confirm, k.acceptSuggestion, k.clear, k.playPause, k.stop, k.skip, k.openPage, k.volumeUp, k.volumeDown, k.stats, k.forceQuit)
	case statsState:
		return h(k.back, k.forceQuit), h(k.up, k.down, k.back, k.forceQuit)
	case errorState:
		return h(k.back, k.forceQuit), h(k.back, k.forceQuit)
	default:
		return h(), h()
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		ForceQuit:     k.forceQuit,
	}
}
