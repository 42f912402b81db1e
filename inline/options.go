// Package inline answers a single request without an interface, for scripts and pipes.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/selector"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Picker narrows the selected candidates down to the tracks that are printed.
type Picker func([]selector.Track) []selector.Track

type Options struct {
	Out      io.Writer
	Selector selector.Selector
	// Commentator is asked for a line when present.
	Commentator mo.Option[commentary.Commentator]
	Vibe        string
	// Candidates is how many times the selector is asked. Duplicates are dropped.
	Candidates int
	Picker     mo.Option[Picker]
	Json       bool
	Player     string
}

// ParsePicker understands "all", "first", "last" and a zero-based index.
func ParsePicker(description string) (Picker, error) {
	switch description {
	case "all":
		return func(tracks []selector.Track) []selector.Track {
			return tracks
		}, nil
	case "first":
		return func(tracks []selector.Track) []selector.Track {
			return lo.Subset(tracks, 0, 1)
		}, nil
	case "last":
		return func(tracks []selector.Track) []selector.Track {
			return lo.Subset(tracks, -1, 1)
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid picker: %s", description)
	}

	return func(tracks []selector.Track) []selector.Track {
		if uint64(len(tracks)) <= idx {
			return []selector.Track{}
		}
		return []selector.Track{tracks[idx]}
	}, nil
}
