package player

import (
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("accepts http(s) URLs untouched", func() {
			target, err := sanitizeMediaTarget(" https://music.lan/rest/stream?id=1 ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://music.lan/rest/stream?id=1")
		})

		Convey("keeps file paths as written", func() {
			target, err := sanitizeMediaTarget(" ./song.mp3 ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "./song.mp3")
		})

		Convey("rejects empty targets", func() {
			_, err := sanitizeMediaTarget("")
			So(errors.Is(err, ErrEmptyTarget), ShouldBeTrue)
		})

		Convey("rejects flags, control characters and other schemes", func() {
			for _, bad := range []string{"--input-ipc-server=/tmp/x", "a\nb", "file:///etc/passwd", "ftp://host/a.mp3"} {
				_, err := sanitizeMediaTarget(bad)
				So(errors.Is(err, ErrInvalidTarget), ShouldBeTrue)
			}
		})
	})
}

func TestLaunchTarget(t *testing.T) {
	Convey("launchTarget", t, func() {
		Convey("cleans file paths", func() {
			So(launchTarget("/music/./rock/../jazz/a.mp3"), ShouldEqual, filepath.Clean("/music/jazz/a.mp3"))
			So(launchTarget("./song.mp3"), ShouldEqual, "song.mp3")
		})

		Convey("never produces a leading dash", func() {
			So(launchTarget("./-rf.mp3"), ShouldEqual, "."+string(filepath.Separator)+"-rf.mp3")
		})

		Convey("leaves URLs untouched", func() {
			So(launchTarget("https://music.lan/a/../b"), ShouldEqual, "https://music.lan/a/../b")
		})
	})
}

func TestLaunchArgs(t *testing.T) {
	Convey("launchArgs", t, func() {
		Convey("mpv runs audio-only with the launch volume and title", func() {
			args := launchArgs("mpv", "a.mp3", "Line\nOne", 55, "/tmp/djecho.sock")
			So(args, ShouldContain, "--no-video")
			So(args, ShouldContain, "--volume=55")
			So(args, ShouldContain, "--force-media-title=Line One")
			So(args, ShouldContain, "--input-ipc-server=/tmp/djecho.sock")
			So(args[len(args)-1], ShouldEqual, "a.mp3")
		})

		Convey("ffplay runs without a display and exits at the end", func() {
			args := launchArgs("ffplay", "a.mp3", "", 30, "")
			So(args, ShouldResemble, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", "30", "a.mp3"})
		})

		Convey("vlc maps volume to gain", func() {
			args := launchArgs("vlc", "a.mp3", "", 50, "")
			So(args, ShouldContain, "--gain=0.50")
			So(args, ShouldContain, "--play-and-exit")
		})

		Convey("unknown players only get the target", func() {
			So(launchArgs("mplayer", "a.mp3", "x", 50, ""), ShouldResemble, []string{"a.mp3"})
		})
	})
}

func TestDiscover(t *testing.T) {
	Convey("Discover strips directories and .exe from the binary name", t, func() {
		original := lookPath
		lookPath = func(name string) (string, error) { return name, nil }
		Reset(func() { lookPath = original })

		b, err := Discover([]string{`/opt/players/mpv.exe`})
		So(err, ShouldBeNil)
		So(b.Name, ShouldEqual, "mpv")
		So(b.Path, ShouldEqual, "/opt/players/mpv.exe")
	})
}
