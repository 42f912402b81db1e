package inline

import (
	"encoding/json"
	"io"

	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/source"
	"github.com/samber/lo"
)

type Track struct {
	URI    string          `json:"uri"`
	Title  string          `json:"title"`
	Source source.Document `json:"source"`
}

type Output struct {
	Vibe       string   `json:"vibe"`
	Commentary string   `json:"commentary,omitempty"`
	Tracks     []*Track `json:"tracks"`
}

func writeJson(out io.Writer, tracks []selector.Track, line string, options *Options) error {
	result := lo.Map(tracks, func(t selector.Track, _ int) *Track {
		return &Track{
			URI:    t.URI,
			Title:  t.Title,
			Source: source.Classify(t.URI, options.Player).Document(),
		}
	})

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&Output{
		Vibe:       options.Vibe,
		Commentary: line,
		Tracks:     result,
	})
}
