package mini

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/dj"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/speech"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// stubPlayer records calls and emits nothing.
type stubPlayer struct {
	calls  []string
	paused bool
	volume int
}

func (p *stubPlayer) Start(uri, _ string) error {
	p.calls = append(p.calls, "start "+uri)
	return nil
}

func (p *stubPlayer) Stop() error {
	p.calls = append(p.calls, "stop")
	return nil
}

func (p *stubPlayer) Pause() error {
	if p.paused {
		return player.ErrInvalidState
	}
	p.paused = true
	return nil
}

func (p *stubPlayer) Resume() error {
	if !p.paused {
		return player.ErrInvalidState
	}
	p.paused = false
	return nil
}

func (p *stubPlayer) SetVolume(level int) int {
	p.volume = level
	return level
}

func (p *stubPlayer) Status() player.State {
	return player.State{Status: player.StatusIdle, Volume: p.volume}
}

func (p *stubPlayer) Subscribe(func(player.Event)) func() { return func() {} }

type oneTrack struct{}

func (oneTrack) Name() string { return "one" }

func (oneTrack) Select(context.Context, string) (selector.Track, error) {
	return selector.Track{URI: "/music/one.mp3", Title: "One"}, nil
}

func TestLoop(t *testing.T) {
	Convey("Given a line session", t, func() {
		p := &stubPlayer{}
		session := dj.New(p, commentary.Static("Here we go."), speech.Null{}, oneTrack{})
		Reset(session.Close)

		var out bytes.Buffer
		m := newMini(session, &out)

		script := func(lines ...string) {
			m.prompt = func() (string, error) {
				if len(lines) == 0 {
					return "", io.EOF
				}
				line := lines[0]
				lines = lines[1:]
				return line, nil
			}
		}

		Convey("a vibe plays a track and prints the commentary", func() {
			script("chill", "quit", "never reached")
			So(m.loop(context.Background()), ShouldBeNil)
			So(p.calls, ShouldResemble, []string{"start /music/one.mp3"})
			So(out.String(), ShouldContainSubstring, "Here we go.")
		})

		Convey("controls reach the player", func() {
			script("pause", "pause", "resume", "volume 30", "stop", "exit")
			So(m.loop(context.Background()), ShouldBeNil)
			So(p.volume, ShouldEqual, 30)
			So(p.calls, ShouldResemble, []string{"stop"})
			So(out.String(), ShouldContainSubstring, "No music to pause or already paused.")
		})

		Convey("skip before any vibe is explained", func() {
			script("skip")
			So(m.loop(context.Background()), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Enter a vibe first")
		})

		Convey("bad volume input shows usage", func() {
			script("volume loud")
			So(m.loop(context.Background()), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "usage: volume <0-100>")
		})

		Convey("status prints the snapshot", func() {
			script("status", "stats")
			So(m.loop(context.Background()), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Idle")
			So(out.String(), ShouldContainSubstring, "Total")
		})

		Convey("an interrupt ends the loop quietly", func() {
			m.prompt = func() (string, error) { return "", terminal.InterruptErr }
			So(m.loop(context.Background()), ShouldBeNil)
		})

		Convey("other prompt errors are returned", func() {
			boom := errors.New("tty gone")
			m.prompt = func() (string, error) { return "", boom }
			So(m.loop(context.Background()), ShouldEqual, boom)
		})
	})
}
