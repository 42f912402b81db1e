package player

import "github.com/djecho/djecho/source"

// Event is a state change broadcast to subscribers. The set of variants is closed:
// Playing, Paused, Stopped, Finished and VolumeChanged.
type Event interface {
	// Kind is a stable name suitable for serialization.
	Kind() string
	event()
}

// Playing is emitted when a track starts and when a paused track resumes.
type Playing struct {
	Title  string
	URI    string
	Source source.Descriptor
}

type Paused struct{}

// Stopped is emitted by every Stop, including one with nothing to stop.
type Stopped struct{}

// Finished is emitted once when the player process exits on its own.
// Err holds the exit error when the player did not exit cleanly.
type Finished struct {
	Err error
}

type VolumeChanged struct {
	Level int
}

func (Playing) Kind() string       { return "playing" }
func (Paused) Kind() string        { return "paused" }
func (Stopped) Kind() string       { return "stopped" }
func (Finished) Kind() string      { return "finished" }
func (VolumeChanged) Kind() string { return "volume_changed" }

func (Playing) event()       {}
func (Paused) event()        {}
func (Stopped) event()       {}
func (Finished) event()      {}
func (VolumeChanged) event() {}

// Terminal reports whether e ends a play session.
func Terminal(e Event) bool {
	switch e.(type) {
	case Stopped, Finished:
		return true
	default:
		return false
	}
}
