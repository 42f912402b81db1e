// Package ui holds small bubbletea components shared by the full-screen interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/djecho/djecho/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Notifier shows one short-lived message next to the last line of a view.
type Notifier struct {
	notification string
	generation   int
}

// NotifyMsg asks the notifier to show Text.
type NotifyMsg struct {
	Text string
}

type clearMsg struct {
	generation int
}

// Notify returns a command showing text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text}
	}
}

// Update handles NotifyMsg and its expiry. Other messages are ignored.
func (n *Notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		n.notification = msg.Text
		n.generation++
		generation := n.generation
		return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
			return clearMsg{generation: generation}
		})
	case clearMsg:
		// a newer notification owns the screen
		if msg.generation == n.generation {
			n.notification = ""
		}
	}
	return nil
}

// Current is the visible notification, empty when there is none.
func (n *Notifier) Current() string {
	return n.notification
}

// View appends the notification to the last line of content.
func (n *Notifier) View(content string) string {
	if n.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.notification)
	return strings.Join(lines, "\n")
}
