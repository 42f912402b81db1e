package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/djecho/djecho/commentary"
	"github.com/djecho/djecho/selector"
	"github.com/djecho/djecho/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// rotating hands out tracks from a fixed list in turn.
type rotating struct {
	uris []string
	next int
}

func (*rotating) Name() string { return "rotating" }

func (r *rotating) Select(context.Context, string) (selector.Track, error) {
	if len(r.uris) == 0 {
		return selector.Track{}, selector.ErrNoTrack
	}
	uri := r.uris[r.next%len(r.uris)]
	r.next++
	return selector.Track{URI: uri, Title: fmt.Sprintf("track %d", r.next)}, nil
}

func TestRun(t *testing.T) {
	Convey("Given a selector with two tracks", t, func() {
		var buf bytes.Buffer
		opts := &Options{
			Out:        &buf,
			Selector:   &rotating{uris: []string{"/music/a.mp3", "https://www.youtube.com/watch?v=b"}},
			Vibe:       "late night",
			Candidates: 5,
			Player:     "mpv",
		}

		Convey("plain output lists distinct URIs", func() {
			So(Run(context.Background(), opts), ShouldBeNil)
			So(buf.String(), ShouldEqual, "/music/a.mp3\nhttps://www.youtube.com/watch?v=b\n")
		})

		Convey("commentary comes first as a comment line", func() {
			opts.Commentator = mo.Some[commentary.Commentator](commentary.Static("Settle in."))
			opts.Picker = mo.Some(mustPicker(ParsePicker("first")))
			So(Run(context.Background(), opts), ShouldBeNil)
			So(buf.String(), ShouldEqual, "# Settle in.\n/music/a.mp3\n")
		})

		Convey("json output classifies every track", func() {
			opts.Json = true
			So(Run(context.Background(), opts), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Vibe, ShouldEqual, "late night")
			So(output.Tracks, ShouldHaveLength, 2)
			So(output.Tracks[0].Source.Kind, ShouldEqual, source.LocalFile)
			So(output.Tracks[1].Source.Kind, ShouldEqual, source.Streaming)
		})

		Convey("an empty selector fails", func() {
			opts.Selector = &rotating{}
			So(Run(context.Background(), opts), ShouldEqual, selector.ErrNoTrack)
		})

		Convey("an empty result is still valid json", func() {
			opts.Json = true
			opts.Picker = mo.Some(mustPicker(ParsePicker("7")))
			So(Run(context.Background(), opts), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Tracks, ShouldHaveLength, 0)
		})
	})
}

func TestParsePicker(t *testing.T) {
	Convey("ParsePicker", t, func() {
		tracks := []selector.Track{{URI: "a"}, {URI: "b"}, {URI: "c"}}

		Convey("keeps the requested tracks", func() {
			So(mustPicker(ParsePicker("all"))(tracks), ShouldHaveLength, 3)
			So(mustPicker(ParsePicker("first"))(tracks), ShouldResemble, tracks[:1])
			So(mustPicker(ParsePicker("last"))(tracks), ShouldResemble, tracks[2:])
			So(mustPicker(ParsePicker("1"))(tracks), ShouldResemble, tracks[1:2])
		})

		Convey("rejects anything else", func() {
			_, err := ParsePicker("middle")
			So(err, ShouldNotBeNil)
		})
	})
}

// mustPicker unwraps a picker in tests.
func mustPicker(p Picker, err error) Picker {
	So(err, ShouldBeNil)
	return p
}
