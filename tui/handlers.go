package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/history"
	"github.com/djecho/djecho/internal/ui"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/open"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/query"
	"github.com/djecho/djecho/selector"
	"github.com/samber/lo"
)

type (
	eventMsg struct {
		event player.Event
	}

	commentaryMsg string

	replyMsg struct {
		reply dj.Reply
		err   error
	}

	skipMsg struct {
		track selector.Track
		err   error
	}

	refreshMsg time.Time
)

func (b *statefulBubble) refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (b *statefulBubble) request(vibe string) tea.Cmd {
	b.busy = true
	b.commentary = ""
	b.progressStatus = fmt.Sprintf("Finding something for %q...", vibe)

	go func() {
		if err := query.Remember(vibe, 1); err != nil {
			log.Warnf("remember vibe: %s", err)
		}
	}()

	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		reply, err := b.session.Request(b.ctx, vibe)
		return replyMsg{reply: reply, err: err}
	})
}

func (b *statefulBubble) skip() tea.Cmd {
	b.busy = true
	b.progressStatus = "Picking another track..."

	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		track, err := b.session.Skip(b.ctx)
		return skipMsg{track: track, err: err}
	})
}

// execute runs a parsed command typed into the prompt.
func (b *statefulBubble) execute(cmd dj.Command) tea.Cmd {
	switch cmd.Verb {
	case dj.VerbQuit:
		return tea.Quit
	case dj.VerbVibe:
		if cmd.Vibe == "" {
			return nil
		}
		if b.busy {
			return ui.Notify("Still working on the last request")
		}
		return b.request(cmd.Vibe)
	case dj.VerbSkip:
		if b.busy {
			return ui.Notify("Still working on the last request")
		}
		return b.skip()
	case dj.VerbStop:
		return b.notifyErr(b.session.Stop())
	case dj.VerbPause:
		if b.session.Pause() != nil {
			return ui.Notify("No music to pause or already paused")
		}
	case dj.VerbResume:
		if b.session.Resume() != nil {
			return ui.Notify("No music to resume or not paused")
		}
	case dj.VerbVolume:
		b.session.Volume(cmd.Level)
	case dj.VerbStats, dj.VerbStatus:
		b.showPlayed()
	case dj.VerbHelp:
		b.helpC.ShowAll = !b.helpC.ShowAll
	}
	return nil
}

func (b *statefulBubble) togglePause() tea.Cmd {
	switch b.snapshot.Status {
	case player.StatusPaused:
		return b.execute(dj.Command{Verb: dj.VerbResume})
	default:
		return b.execute(dj.Command{Verb: dj.VerbPause})
	}
}

// openPage opens the current streaming track in the browser.
func (b *statefulBubble) openPage() tea.Cmd {
	uri, hasURI := b.snapshot.TrackURI.Get()
	d, hasSource := b.snapshot.Source.Get()
	if !hasURI || !hasSource {
		return ui.Notify("Nothing is playing")
	}

	page, ok := open.Page(uri, d)
	if !ok {
		return ui.Notify(d.DisplayName + " has no web page")
	}

	if err := open.Start(page); err != nil {
		return ui.Notify(err.Error())
	}
	return ui.Notify("Opened " + d.DisplayName)
}

func (b *statefulBubble) showPlayed() {
	entries := b.session.History.Recent(-1)
	b.playedC.SetItems(lo.Map(entries, func(e history.Entry, _ int) list.Item {
		return &listItem{entry: e}
	}))
	b.playedC.Title = "Played this session " + statsLine(b.session.Stats())
	b.setState(statsState)
}

func (b *statefulBubble) notifyErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return ui.Notify(err.Error())
}

// describe is the notification shown for a player event.
func describe(e player.Event) string {
	switch e := e.(type) {
	case player.Playing:
		return "Now playing " + e.Title
	case player.Paused:
		return "Paused"
	case player.Stopped:
		return "Playback stopped"
	case player.Finished:
		if e.Err != nil {
			return "Playback failed: " + e.Err.Error()
		}
		return "Track finished"
	case player.VolumeChanged:
		return fmt.Sprintf("Volume set to %d%%", e.Level)
	default:
		return ""
	}
}

func requestFailure(err error) string {
	switch {
	case errors.Is(err, selector.ErrNoTrack):
		return "No music track was selected"
	case errors.Is(err, dj.ErrNoVibe):
		return "Nothing to skip to yet, enter a vibe first"
	default:
		return err.Error()
	}
}

// handleFailure notifies about recoverable request errors. A player that cannot
// be started at all gets the error screen.
func (b *statefulBubble) handleFailure(err error) tea.Cmd {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, player.ErrSpawn), errors.Is(err, player.ErrClosed):
		b.raiseError(err)
		return nil
	default:
		return ui.Notify(requestFailure(err))
	}
}
