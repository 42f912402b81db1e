package source

import (
	"testing"

	"github.com/djecho/djecho/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestClassifyURL(t *testing.T) {
	Convey("Given a Navidrome stream URL", t, func() {
		d := Classify("https://myserver.local:4533/rest/stream?id=42&u=alice&c=djecho", "mpv")

		Convey("It is a streaming source from the navidrome rule", func() {
			So(d.Kind, ShouldEqual, Streaming)
			So(d.Provider, ShouldEqual, "navidrome")
			So(d.DisplayName, ShouldEqual, "Navidrome Server")
			So(d.Player, ShouldEqual, "mpv")
		})

		Convey("It records the Subsonic query details", func() {
			So(attr(d, "track_id"), ShouldEqual, "42")
			So(attr(d, "username"), ShouldEqual, "alice")
			So(attr(d, "client"), ShouldEqual, "djecho")
			So(attr(d, "api_version"), ShouldEqual, "Subsonic API")
			So(attr(d, "hostname"), ShouldEqual, "myserver.local")
			So(attr(d, "port"), ShouldEqual, "4533")
		})
	})

	Convey("Given URLs for streaming sites", t, func() {
		for raw, provider := range map[string]string{
			"https://open.spotify.com/track/abc":          "spotify",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ": "youtube",
			"https://youtu.be/dQw4w9WgXcQ":                "youtube",
			"HTTPS://SoundCloud.com/artist/track":         "soundcloud",
		} {
			d := Classify(raw, "mpv")
			So(d.Kind, ShouldEqual, Streaming)
			So(d.Provider, ShouldEqual, provider)
			So(attr(d, "port"), ShouldEqual, "default")
		}
	})

	Convey("Media servers win over generic stream patterns", t, func() {
		d := Classify("http://navidrome.home/stream/playlist.m3u", "mpv")
		So(d.Provider, ShouldEqual, "navidrome")
	})

	Convey("Radio playlists are generic streams", t, func() {
		d := Classify("http://ice.example.org/jazz.pls", "mpv")
		So(d.Kind, ShouldEqual, GenericStream)
		So(d.Provider, ShouldEqual, "radio")
		So(d.DisplayName, ShouldEqual, "Radio Stream")
	})

	Convey("An unmatched URL falls into the generic stream bucket", t, func() {
		d := Classify("https://cdn.example.org/a/b.mp3", "vlc")
		So(d.Kind, ShouldEqual, GenericStream)
		So(d.Provider, ShouldBeEmpty)
		So(d.DisplayName, ShouldEqual, "Stream (cdn.example.org)")
		So(d.Attributes(), ShouldResemble, map[string]string{
			"url":      "https://cdn.example.org/a/b.mp3",
			"hostname": "cdn.example.org",
		})
	})
}

func TestClassifyPath(t *testing.T) {
	Convey("Given a file inside a music library", t, func() {
		d := Classify("/home/alice/Music/Rock/song.flac", "mpv")

		So(d.Kind, ShouldEqual, LocalFile)
		So(attr(d, "file_type"), ShouldEqual, "audio")
		So(d.DisplayName, ShouldEqual, "Local Music (Rock)")
		So(attr(d, "location"), ShouldContainSubstring, "Rock")
		So(attr(d, "filename"), ShouldEqual, "song.flac")
		So(attr(d, "directory"), ShouldEqual, "/home/alice/Music/Rock")
		So(attr(d, "exists"), ShouldEqual, "false")
	})

	Convey("Given a playlist file", t, func() {
		d := Classify("./party.M3U", "mpv")
		So(d.Kind, ShouldEqual, PlaylistFile)
		So(attr(d, "file_type"), ShouldEqual, "playlist")
		So(d.DisplayName, ShouldEqual, "Local File")
	})

	Convey("Location hints", t, func() {
		So(Classify("/home/bob/clip.wav", "mpv").DisplayName, ShouldEqual, "Personal Music Library")
		So(Classify(`C:\stuff\clip.wav`, "mpv").DisplayName, ShouldEqual, "Local Files (C:)")
		So(Classify("/srv/x/readme.txt", "mpv").DisplayName, ShouldEqual, "Local File")
	})

	Convey("Unknown extensions are still local files", t, func() {
		d := Classify("/srv/x/readme.txt", "mpv")
		So(d.Kind, ShouldEqual, LocalFile)
		So(attr(d, "file_type"), ShouldEqual, "unknown")
	})

	Convey("Existing relative files are classified as paths", t, func() {
		lo.Must0(filesystem.API().WriteFile("track.ogg", []byte("ogg"), 0o644))
		d := Classify("track.ogg", "mpv")
		So(d.Kind, ShouldEqual, LocalFile)
		So(attr(d, "exists"), ShouldEqual, "true")
	})
}

func TestClassifyUnknown(t *testing.T) {
	Convey("Empty input is unknown without attributes", t, func() {
		for _, in := range []string{"", "   "} {
			d := Classify(in, "mpv")
			So(d.Kind, ShouldEqual, Unknown)
			So(d.Attributes(), ShouldBeEmpty)
		}
	})

	Convey("Anything else is unknown with the raw path", t, func() {
		d := Classify("spotify:track:123", "mpv")
		So(d.Kind, ShouldEqual, Unknown)
		So(attr(d, "path"), ShouldEqual, "spotify:track:123")
	})
}

func TestDescriptorImmutability(t *testing.T) {
	Convey("Mutating returned attributes does not change the descriptor", t, func() {
		d := Classify("https://cdn.example.org/a.mp3", "mpv")
		attrs := d.Attributes()
		attrs["hostname"] = "evil"
		So(attr(d, "hostname"), ShouldEqual, "cdn.example.org")
	})

	Convey("Rules returns a copy of the table", t, func() {
		r := Rules()
		So(r[0].Provider, ShouldEqual, "navidrome")
		r[0].Patterns[0] = "changed"
		So(Rules()[0].Patterns[0], ShouldEqual, "navidrome")
	})
}

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		Convey("renders the player", func() {
			d := Classify("https://youtu.be/x", "/usr/bin/mpv")
			So(d.Format(false), ShouldEqual, "📺 YouTube via 🎬 MPV Media Player")
		})

		Convey("adds navidrome details", func() {
			d := Classify("http://music.lan:4533/rest/stream?id=1", "mpv")
			So(d.Format(true), ShouldEndWith, "(Server: music.lan, API: Subsonic API)")
		})

		Convey("adds local file details", func() {
			d := Classify("/home/alice/Music/Rock/song.flac", "ffplay")
			So(d.Format(true), ShouldEqual, "🎵 Local Music (Rock) via ⚡ FFplay (Location: Rock, Type: Audio)")
		})

		Convey("falls back to a generic player entry", func() {
			So(PlayerInfo("cvlc").Name, ShouldEqual, "Cvlc Player")
			So(PlayerInfo(`C:\bin\vlc.exe`).Name, ShouldEqual, "VLC Media Player")
		})
	})
}

func attr(d Descriptor, name string) string {
	v, _ := d.Attr(name)
	return v
}
