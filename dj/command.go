package dj

import (
	"errors"
	"strconv"
	"strings"
)

// Verb is what a line typed by the listener asks for.
type Verb int

const (
	VerbVibe Verb = iota
	VerbStop
	VerbPause
	VerbResume
	VerbSkip
	VerbVolume
	VerbStatus
	VerbStats
	VerbHelp
	VerbQuit
)

// Command is a parsed input line. Anything that is not a known verb is a vibe.
type Command struct {
	Verb  Verb
	Level int
	Vibe  string
}

// ErrVolumeUsage is returned for a malformed volume command.
var ErrVolumeUsage = errors.New("usage: volume <0-100>")

var verbs = map[string]Verb{
	"stop":   VerbStop,
	"pause":  VerbPause,
	"resume": VerbResume,
	"skip":   VerbSkip,
	"status": VerbStatus,
	"stats":  VerbStats,
	"help":   VerbHelp,
	"quit":   VerbQuit,
	"exit":   VerbQuit,
}

// Parse reads one input line. Verbs are case-insensitive; an empty line is an empty vibe.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(strings.ToLower(line))

	if len(fields) == 1 {
		if verb, ok := verbs[fields[0]]; ok {
			return Command{Verb: verb}, nil
		}
	}

	if len(fields) > 0 && fields[0] == "volume" {
		if len(fields) != 2 {
			return Command{}, ErrVolumeUsage
		}
		level, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, ErrVolumeUsage
		}
		return Command{Verb: VerbVolume, Level: level}, nil
	}

	return Command{Verb: VerbVibe, Vibe: line}, nil
}

// Help lists the commands understood by Parse.
const Help = `Enter a vibe to start music, or one of:
  pause            pause current track
  resume           resume paused track
  stop             stop current track
  skip             play another track for the last vibe
  volume <0-100>   set volume
  status           show current status
  stats            show sources played this session
  quit             exit`
