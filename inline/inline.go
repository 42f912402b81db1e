package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/selector"
	"github.com/samber/lo"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	var line string
	if c, ok := options.Commentator.Get(); ok {
		line = c.Comment(ctx, options.Vibe)
	}

	tracks, err := candidates(ctx, options)
	if err != nil {
		return err
	}

	if picker, ok := options.Picker.Get(); ok {
		tracks = picker(tracks)
	}

	if options.Json {
		return writeJson(options.Out, tracks, line, options)
	}

	if line != "" {
		fmt.Fprintln(options.Out, "# "+line)
	}
	for _, t := range tracks {
		fmt.Fprintln(options.Out, t.URI)
	}

	return nil
}

// candidates asks the selector up to options.Candidates times and keeps the
// distinct tracks in the order they came. ErrNoTrack is only returned when
// nothing at all was found.
func candidates(ctx context.Context, options *Options) ([]selector.Track, error) {
	var tracks []selector.Track
	for range max(options.Candidates, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		track, err := options.Selector.Select(ctx, options.Vibe)
		if err != nil {
			if len(tracks) > 0 {
				log.Warnf("selector %s: %s", options.Selector.Name(), err)
				break
			}
			return nil, err
		}
		tracks = append(tracks, track)
	}

	return lo.UniqBy(tracks, func(t selector.Track) string {
		return t.URI
	}), nil
}
