// Package dj ties the playback core to the commentary, speech and selection collaborators.
package dj

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/history"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/speech"
	"github.com/djecho/djecho/util"
	"github.com/samber/mo"
)

// ErrNoVibe is returned by Skip before any request was made.
var ErrNoVibe = errors.New("no vibe requested yet")

// Reply is the outcome of a request.
type Reply struct {
	Commentary string
	// Spoken is true when the commentary was played as audio.
	Spoken bool
	Track  mo.Option[selector.Track]
}

// Session is one listening session: a player and the collaborators feeding it.
type Session struct {
	Player      player.Player
	Commentator commentary.Commentator
	Speaker     speech.Speaker
	Selector    selector.Selector
	History     *history.Ledger

	// OnCommentary is called with the commentary before it is spoken.
	OnCommentary func(text string)

	mu        sync.Mutex
	lastVibe  string
	unobserve func()
}

func New(p player.Player, c commentary.Commentator, sp speech.Speaker, sel selector.Selector) *Session {
	ledger := history.New()
	return &Session{
		Player:      p,
		Commentator: c,
		Speaker:     sp,
		Selector:    sel,
		History:     ledger,
		unobserve:   p.Subscribe(ledger.Observe()),
	}
}

// Close detaches the session from the player. The player itself is left running.
func (s *Session) Close() {
	if s.unobserve != nil {
		s.unobserve()
	}
}

// Request runs the full pipeline for a vibe: commentary, speech, the spoken clip
// and finally the selected track. Only player errors for the track are returned;
// commentary and speech failures degrade to printed text.
func (s *Session) Request(ctx context.Context, vibe string) (Reply, error) {
	vibe = strings.TrimSpace(vibe)
	s.mu.Lock()
	s.lastVibe = vibe
	s.mu.Unlock()

	log.Infof("vibe received: %q", vibe)

	var reply Reply
	reply.Commentary = s.Commentator.Comment(ctx, vibe)
	if s.OnCommentary != nil {
		s.OnCommentary(reply.Commentary)
	}

	track, selectErr := s.Selector.Select(ctx, vibe)
	if selectErr != nil {
		log.Warnf("%s selector: %s", s.Selector.Name(), selectErr)
	}

	clip, err := s.Speaker.Speak(ctx, reply.Commentary)
	if err != nil {
		log.Errorf("speech: %s", err)
	}

	if clip != "" {
		if err := s.playClip(ctx, clip); err != nil {
			log.Warnf("commentary clip: %s", err)
		} else {
			reply.Spoken = true
		}
	}

	if selectErr != nil {
		return reply, fmt.Errorf("select track: %w", selectErr)
	}

	if err := ctx.Err(); err != nil {
		return reply, err
	}

	if err := s.Player.Start(track.URI, track.Title); err != nil {
		return reply, err
	}

	reply.Track = mo.Some(track)
	return reply, nil
}

// clipTitle is shown while spoken commentary plays.
const clipTitle = "DJ commentary"

// playClip plays a speech clip and blocks until it ends, is stopped, or is replaced.
// The clip is kept out of the history and stopped if ctx ends first.
func (s *Session) playClip(ctx context.Context, path string) error {
	defer func() {
		if err := util.Delete(path); err != nil {
			log.Debugf("remove %s: %s", path, err)
		}
	}()

	include := s.History.Exclude(path)

	done := make(chan struct{})
	var (
		once    sync.Once
		started bool
	)
	finish := func() { once.Do(func() { close(done) }) }

	unsubscribe := s.Player.Subscribe(func(e player.Event) {
		switch e.(type) {
		case player.Playing:
			if started {
				finish()
			}
			started = true
		case player.Stopped, player.Finished:
			if started {
				finish()
			}
		}
	})
	defer unsubscribe()

	if err := s.Player.Start(path, clipTitle); err != nil {
		include()
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}

	if st := s.Player.Status(); st.TrackURI.OrEmpty() == path {
		if err := s.Player.Stop(); err != nil {
			log.Warnf("stop commentary clip: %s", err)
		}
	}
	return ctx.Err()
}

// Skip plays another track for the last vibe, without commentary.
func (s *Session) Skip(ctx context.Context) (selector.Track, error) {
	s.mu.Lock()
	vibe := s.lastVibe
	s.mu.Unlock()

	if vibe == "" {
		return selector.Track{}, ErrNoVibe
	}

	track, err := s.Selector.Select(ctx, vibe)
	if err != nil {
		return selector.Track{}, err
	}

	if err := s.Player.Start(track.URI, track.Title); err != nil {
		return selector.Track{}, err
	}
	return track, nil
}

func (s *Session) Stop() error {
	return s.Player.Stop()
}

func (s *Session) Pause() error {
	return s.Player.Pause()
}

func (s *Session) Resume() error {
	return s.Player.Resume()
}

// Volume sets the level and returns the value actually stored.
func (s *Session) Volume(level int) int {
	return s.Player.SetVolume(level)
}

func (s *Session) Status() player.State {
	return s.Player.Status()
}

// Stats counts distinct tracks played per source kind.
func (s *Session) Stats() map[source.Kind]int {
	return s.History.Statistics()
}

// LastVibe is the most recent request, empty before the first one.
func (s *Session) LastVibe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastVibe
}
