// Package mini is the line-mode interface: type a vibe or a command, read what happens.
package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/query"
	"github.com/djecho/djecho/util"
)

var truncateAt = 100

type mini struct {
	session *dj.Session
	out     io.Writer
	prompt  func() (string, error)
}

func newMini(session *dj.Session, out io.Writer) *mini {
	m := &mini{session: session, out: out, prompt: ask}
	session.OnCommentary = func(text string) {
		m.println(fmt.Sprintf("\n%s: %s", constant.DJName, text))
	}
	return m
}

func ask() (string, error) {
	var line string
	err := survey.AskOne(&survey.Input{
		Message: "You >",
		Suggest: query.SuggestMany,
	}, &line)
	return line, err
}

// Run reads commands until quit, an interrupt, or the end of input.
func Run(ctx context.Context, session *dj.Session) error {
	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	m := newMini(session, os.Stdout)
	unsubscribe := session.Player.Subscribe(m.printEvent)
	defer unsubscribe()

	m.banner()
	return m.loop(ctx)
}

func (m *mini) loop(ctx context.Context) error {
	for {
		line, err := m.prompt()
		switch {
		case errors.Is(err, terminal.InterruptErr), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		quit, err := m.handle(ctx, line)
		if err != nil {
			m.fail(err.Error())
		}
		if quit {
			log.Info("exiting mini mode")
			return nil
		}
	}
}

// handle executes one line. The bool result asks the loop to quit.
func (m *mini) handle(ctx context.Context, line string) (bool, error) {
	cmd, err := dj.Parse(line)
	if err != nil {
		return false, err
	}

	switch cmd.Verb {
	case dj.VerbQuit:
		return true, nil
	case dj.VerbHelp:
		m.println(dj.Help)
	case dj.VerbStop:
		return false, m.session.Stop()
	case dj.VerbPause:
		if m.session.Pause() != nil {
			m.warn("No music to pause or already paused.")
		}
	case dj.VerbResume:
		if m.session.Resume() != nil {
			m.warn("No music to resume or not paused.")
		}
	case dj.VerbSkip:
		erase := m.progress("Picking another track..")
		_, err := m.session.Skip(ctx)
		erase()
		if errors.Is(err, dj.ErrNoVibe) {
			m.warn("Nothing to skip to yet. Enter a vibe first.")
			return false, nil
		}
		return false, err
	case dj.VerbVolume:
		m.session.Volume(cmd.Level)
	case dj.VerbStatus:
		m.title("Status")
		m.fields(dj.StatusReport(m.session.Status(), time.Now()))
	case dj.VerbStats:
		m.title("Sources played")
		m.fields(dj.StatsReport(m.session.Stats()))
	case dj.VerbVibe:
		if cmd.Vibe == "" {
			return false, nil
		}
		return false, m.request(ctx, cmd.Vibe)
	}

	return false, nil
}

func (m *mini) request(ctx context.Context, vibe string) error {
	if err := query.Remember(vibe, 1); err != nil {
		log.Warnf("remember vibe: %s", err)
	}

	erase := m.progress("Warming up the decks..")
	reply, err := m.session.Request(ctx, vibe)
	erase()

	if track, ok := reply.Track.Get(); ok {
		log.Debugf("requested %q got %s", vibe, track.URI)
	}

	if err != nil {
		return fmt.Errorf("no music track was selected: %w", err)
	}
	return nil
}
