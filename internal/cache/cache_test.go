package cache

import (
	"testing"

	"github.com/djecho/djecho/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Given the response cache", t, func() {
		type entry struct {
			Status int    `json:"status"`
			Body   string `json:"body"`
		}

		Convey("keys depend on method, url and body", func() {
			So(Key("get", "https://a", ""), ShouldEqual, Key("GET", "https://a", ""))
			So(Key("GET", "https://a", ""), ShouldNotEqual, Key("POST", "https://a", ""))
			So(Key("POST", "https://a", "x"), ShouldNotEqual, Key("POST", "https://a", "y"))
		})

		Convey("a written entry can be read back", func() {
			key := Key("GET", "https://radio.example/list", "")
			So(Write(key, entry{Status: 200, Body: "ok"}), ShouldBeNil)

			var got entry
			So(Read(key, &got), ShouldBeTrue)
			So(got, ShouldResemble, entry{Status: 200, Body: "ok"})
		})

		Convey("a missing entry is a miss", func() {
			var got entry
			So(Read("nope", &got), ShouldBeFalse)
		})
	})
}
