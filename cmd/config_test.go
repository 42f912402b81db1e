package cmd

import (
	"testing"

	"github.com/djecho/djecho/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("parseValue follows the type of the default", t, func() {
		Convey("ints", func() {
			v, err := parseValue(key.PlayerVolume, []string{"50"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 50)

			_, err = parseValue(key.PlayerVolume, []string{"loud"})
			So(err, ShouldNotBeNil)
		})

		Convey("bools", func() {
			v, err := parseValue(key.PlayerIPCControl, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("lists split on commas", func() {
			v, err := parseValue(key.PlayerCandidates, []string{"mpv,vlc", "ffplay"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"mpv", "vlc", "ffplay"})
		})

		Convey("strings pass through", func() {
			v, err := parseValue(key.SelectorDefault, []string{"subsonic"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "subsonic")
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest one", t, func() {
		err := errUnknownKey("player.volum")
		So(err.Error(), ShouldContainSubstring, key.PlayerVolume)
	})
}
