// Package player supervises an external audio player process and tracks playback state.
//
// A Supervisor owns at most one player process. All state lives on a single owner
// goroutine; callers and the status monitor talk to it through messages, and
// observers receive state changes through Subscribe.
package player

import "errors"

var (
	// ErrNoPlayer means no supported player binary was found on PATH.
	ErrNoPlayer = errors.New("no supported audio player found")

	// ErrInvalidState is returned by operations not allowed in the current status.
	ErrInvalidState = errors.New("invalid playback state")

	ErrEmptyTarget   = errors.New("empty media target")
	ErrInvalidTarget = errors.New("invalid media target")
	ErrSpawn         = errors.New("failed to start player")

	// ErrClosed is returned once the supervisor has been closed.
	ErrClosed = errors.New("player closed")
)

// Player is the playback surface used by sessions and frontends.
type Player interface {
	Start(uri, title string) error
	Stop() error
	Pause() error
	Resume() error
	SetVolume(level int) int
	Status() State
	Subscribe(fn func(Event)) (unsubscribe func())
}

var _ Player = (*Supervisor)(nil)
