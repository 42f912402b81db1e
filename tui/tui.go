// Package tui is the full-screen interface: a vibe prompt above a live now-playing panel.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/player"
)

// Run shows the interface until the listener quits.
func Run(ctx context.Context, session *dj.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, session)
	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := session.Player.Subscribe(func(e player.Event) {
		program.Send(eventMsg{e})
	})
	defer unsubscribe()

	session.OnCommentary = func(text string) {
		program.Send(commentaryMsg(text))
	}
	defer func() { session.OnCommentary = nil }()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
