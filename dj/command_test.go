package dj

import (
	"errors"
	"testing"
	"time"

	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("recognizes verbs in any case", func() {
			for line, verb := range map[string]Verb{
				"stop":      VerbStop,
				" PAUSE ":   VerbPause,
				"Resume":    VerbResume,
				"skip":      VerbSkip,
				"status":    VerbStatus,
				"stats":     VerbStats,
				"help":      VerbHelp,
				"quit":      VerbQuit,
				"exit":      VerbQuit,
				"volume 40": VerbVolume,
			} {
				cmd, err := Parse(line)
				So(err, ShouldBeNil)
				So(cmd.Verb, ShouldEqual, verb)
			}
		})

		Convey("keeps the raw volume level for clamping later", func() {
			cmd, err := Parse("volume 150")
			So(err, ShouldBeNil)
			So(cmd.Level, ShouldEqual, 150)

			cmd, err = Parse("volume -5")
			So(err, ShouldBeNil)
			So(cmd.Level, ShouldEqual, -5)
		})

		Convey("rejects malformed volume commands", func() {
			for _, line := range []string{"volume", "volume loud", "volume 1 2"} {
				_, err := Parse(line)
				So(errors.Is(err, ErrVolumeUsage), ShouldBeTrue)
			}
		})

		Convey("treats everything else as a vibe", func() {
			cmd, err := Parse("  late-night Synthwave ")
			So(err, ShouldBeNil)
			So(cmd, ShouldResemble, Command{Verb: VerbVibe, Vibe: "late-night Synthwave"})

			cmd, err = Parse("stop the rain")
			So(err, ShouldBeNil)
			So(cmd.Verb, ShouldEqual, VerbVibe)
		})
	})
}

func TestReports(t *testing.T) {
	Convey("StatusReport", t, func() {
		now := time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC)

		Convey("describes an idle player", func() {
			fields := StatusReport(player.State{Status: player.StatusIdle, Volume: 70, Player: "mpv"}, now)
			So(fields, ShouldResemble, []Field{
				{"Status", "Idle"},
				{"Track", "None"},
				{"Volume", "70%"},
				{"Position", "0:00"},
				{"Player", "🎬 MPV Media Player"},
			})
		})

		Convey("describes a playing track", func() {
			st := player.State{
				Status:          player.StatusPlaying,
				TrackTitle:      mo.Some("Miles Davis - So What"),
				TrackURI:        mo.Some("/music/so-what.mp3"),
				Source:          mo.Some(source.Classify("/music/so-what.mp3", "mpv")),
				Volume:          50,
				PositionSeconds: 65,
				DurationSeconds: 545,
				StartedAt:       mo.Some(now.Add(-65 * time.Second)),
				Player:          "mpv",
			}
			fields := StatusReport(st, now)
			So(fields[1].Value, ShouldEqual, "Miles Davis - So What")
			So(fields[3].Value, ShouldEqual, "1:05 / 9:05")
			So(fields[4], ShouldResemble, Field{"Started", "1 minute ago"})
			So(fields[5].Label, ShouldEqual, "Source")
		})
	})

	Convey("StatsReport skips empty kinds", t, func() {
		fields := StatsReport(map[source.Kind]int{source.LocalFile: 2, source.Streaming: 1})
		So(fields, ShouldResemble, []Field{
			{"Streaming", "1 track"},
			{"Local file", "2 tracks"},
			{"Total", "3 tracks"},
		})
	})
}
