package selector

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLocal(t *testing.T) {
	Convey("Given a music directory", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		for _, f := range []string{
			"/music/Rock/Queen - Under Pressure.mp3",
			"/music/Rock/AC-DC - Thunderstruck.flac",
			"/music/Jazz/Miles Davis - So What.ogg",
			"/music/Jazz/cover.jpg",
		} {
			lo.Must0(fs.MkdirAll(filepath.Dir(f), 0o755))
			lo.Must0(fs.WriteFile(f, []byte("not really audio"), 0o644))
		}

		local := NewLocal("/music")
		local.pick = func(int) int { return 0 }

		Convey("only audio files are listed", func() {
			tracks, err := local.Tracks()
			So(err, ShouldBeNil)
			So(tracks, ShouldHaveLength, 3)
		})

		Convey("the vibe narrows the choice", func() {
			track, err := local.Select(context.Background(), "some jazz please")
			So(err, ShouldBeNil)
			So(track.URI, ShouldEqual, "/music/Jazz/Miles Davis - So What.ogg")
			So(track.Title, ShouldEqual, "Miles Davis - So What")
		})

		Convey("files too small to carry tags are titled by name", func() {
			lo.Must0(fs.WriteFile("/music/Jazz/tiny.mp3", []byte("id3"), 0o644))
			So(readTitle("/music/Jazz/tiny.mp3"), ShouldEqual, "tiny")
		})

		Convey("untagged files are titled by name", func() {
			lo.Must0(fs.WriteFile("/music/Jazz/noise.mp3", make([]byte, 4*minTagSize), 0o644))
			So(readTitle("/music/Jazz/noise.mp3"), ShouldEqual, "noise")
		})

		Convey("an unmatched vibe picks from everything", func() {
			scored := local.match("polka", lo.Must(local.Tracks()))
			So(scored, ShouldHaveLength, 3)
		})

		Convey("a cancelled request is refused", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := local.Select(ctx, "jazz")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("an empty directory has no track", func() {
			lo.Must0(fs.MkdirAll("/empty", 0o755))
			_, err := NewLocal("/empty").Select(context.Background(), "anything")
			So(errors.Is(err, ErrNoTrack), ShouldBeTrue)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("score", t, func() {
		So(score([]string{"rock"}, "Rock/Queen - Under Pressure"), ShouldEqual, 2)
		So(score([]string{"thndr"}, "Rock/AC-DC - Thunderstruck"), ShouldEqual, 1)
		So(score([]string{"polka"}, "Rock/AC-DC - Thunderstruck"), ShouldEqual, 0)
	})
}

func TestSubsonic(t *testing.T) {
	Convey("Given a Subsonic server", t, func() {
		var calls []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			calls = append(calls, r.URL.Path)

			sum := md5.Sum([]byte("sesame" + q.Get("s")))
			if q.Get("u") != "alice" || q.Get("t") != hex.EncodeToString(sum[:]) {
				fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`)
				return
			}

			switch r.URL.Path {
			case "/rest/ping":
				fmt.Fprint(w, `{"subsonic-response":{"status":"ok"}}`)
			case "/rest/search3":
				if q.Get("query") == "nothing" {
					fmt.Fprint(w, `{"subsonic-response":{"status":"ok","searchResult3":{}}}`)
					return
				}
				fmt.Fprint(w, `{"subsonic-response":{"status":"ok","searchResult3":{"song":[{"id":"7","title":"Blue in Green","artist":"Miles Davis"}]}}}`)
			case "/rest/getRandomSongs":
				fmt.Fprint(w, `{"subsonic-response":{"status":"ok","randomSongs":{"song":[{"id":"42","title":"Song","artist":""}]}}}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		Reset(server.Close)

		s := NewSubsonic(server.URL+"/", "alice", "sesame", "djecho")

		Convey("ping authenticates with a salted token", func() {
			So(s.Ping(context.Background()), ShouldBeNil)
		})

		Convey("a vibe is searched first", func() {
			track, err := s.Select(context.Background(), "blue")
			So(err, ShouldBeNil)
			So(track.Title, ShouldEqual, "Miles Davis - Blue in Green")

			u := lo.Must(url.Parse(track.URI))
			So(u.Path, ShouldEqual, "/rest/stream")
			So(u.Query().Get("id"), ShouldEqual, "7")
			So(u.Query().Get("c"), ShouldEqual, "djecho")
		})

		Convey("no search hits fall back to a random song", func() {
			track, err := s.Select(context.Background(), "nothing")
			So(err, ShouldBeNil)
			So(track.Title, ShouldEqual, "Song")
			So(calls, ShouldResemble, []string{"/rest/search3", "/rest/getRandomSongs"})
		})

		Convey("stream URLs classify as Navidrome", func() {
			d := source.Classify(s.StreamURL("42"), "mpv")
			So(d.Provider, ShouldEqual, "navidrome")
			v, _ := d.Attr("track_id")
			So(v, ShouldEqual, "42")
		})

		Convey("wrong credentials are reported", func() {
			s.Password = "wrong"
			err := s.Ping(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "Wrong username or password")
		})
	})
}

func TestLua(t *testing.T) {
	Convey("Given Lua selector scripts", t, func() {
		dir := where.Selectors()
		write := func(name, body string) string {
			path := filepath.Join(dir, name+".lua")
			lo.Must0(filesystem.API().WriteFile(path, []byte(body), 0o644))
			return path
		}

		write("radio", `
function SelectTrack(vibe)
	return { uri = "https://radio.example/" .. vibe .. ".m3u", title = "Radio " .. vibe }
end`)
		write("plain", `function SelectTrack(vibe) return "/music/" .. vibe .. ".mp3" end`)
		write("empty", `function SelectTrack(vibe) return nil end`)
		write("invalid", `x = 1`)

		Convey("a table result carries uri and title", func() {
			sel, err := New("radio")
			So(err, ShouldBeNil)
			So(sel.Name(), ShouldEqual, "radio")

			track, err := sel.Select(context.Background(), "jazz")
			So(err, ShouldBeNil)
			So(track, ShouldResemble, Track{URI: "https://radio.example/jazz.m3u", Title: "Radio jazz"})
		})

		Convey("a string result is the uri", func() {
			sel, err := New("plain")
			So(err, ShouldBeNil)
			track, err := sel.Select(context.Background(), "song")
			So(err, ShouldBeNil)
			So(track.URI, ShouldEqual, "/music/song.mp3")
		})

		Convey("nil means no track", func() {
			sel, err := New("empty")
			So(err, ShouldBeNil)
			_, err = sel.Select(context.Background(), "x")
			So(errors.Is(err, ErrNoTrack), ShouldBeTrue)
		})

		Convey("a script without SelectTrack is rejected", func() {
			_, err := New("invalid")
			So(err, ShouldNotBeNil)
		})

		Convey("unknown names list what is available", func() {
			_, err := New("missing")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "local, subsonic")
			So(Available(), ShouldContain, "radio")
		})
	})
}

func TestNewFromConfig(t *testing.T) {
	Convey("The local selector reads its directory from config", t, func() {
		viper.Set(key.SelectorMusicDir, "/srv/music")
		sel, err := New(LocalName)
		So(err, ShouldBeNil)
		So(sel.(*Local).Dir, ShouldEqual, "/srv/music")
	})

	Convey("The subsonic selector needs a server", t, func() {
		viper.Set(key.SubsonicURL, "")
		_, err := New(SubsonicName)
		So(err, ShouldNotBeNil)
	})
}
