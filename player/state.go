package player

import (
	"time"

	"github.com/djecho/djecho/source"
	"github.com/samber/mo"
)

// Status is the coarse playback state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Active reports whether a track is loaded.
func (s Status) Active() bool {
	return s == StatusPlaying || s == StatusPaused
}

// Action is an input to the state machine.
type Action int

const (
	ActStart Action = iota
	ActPause
	ActResume
	ActStop
	ActExit
)

func (a Action) String() string {
	switch a {
	case ActStart:
		return "start"
	case ActPause:
		return "pause"
	case ActResume:
		return "resume"
	case ActStop:
		return "stop"
	case ActExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Finished never lingers: the supervisor broadcasts it and resets to idle straight away.
var transitions = map[Status]map[Action]Status{
	StatusIdle: {
		ActStart: StatusPlaying,
		ActStop:  StatusIdle,
	},
	StatusPlaying: {
		ActStart: StatusPlaying,
		ActPause: StatusPaused,
		ActStop:  StatusIdle,
		ActExit:  StatusFinished,
	},
	StatusPaused: {
		ActStart:  StatusPlaying,
		ActResume: StatusPlaying,
		ActStop:   StatusIdle,
		ActExit:   StatusFinished,
	},
	StatusFinished: {
		ActStart: StatusPlaying,
		ActStop:  StatusIdle,
	},
}

// Transition returns the status reached by applying action to from.
// The second result is false when the transition is not allowed.
func Transition(from Status, action Action) (Status, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

// State is a snapshot of the playback session. Snapshots are plain values;
// the supervisor owns the only copy that changes.
type State struct {
	Status          Status
	TrackURI        mo.Option[string]
	TrackTitle      mo.Option[string]
	Source          mo.Option[source.Descriptor]
	Volume          int
	PositionSeconds int
	DurationSeconds int
	// Player is the name of the discovered binary.
	Player    string
	StartedAt mo.Option[time.Time]

	seq uint64
}

// idle keeps the settings that outlive a track.
func (s State) idle() State {
	return State{
		Status: StatusIdle,
		Volume: s.Volume,
		Player: s.Player,
		seq:    s.seq,
	}
}
