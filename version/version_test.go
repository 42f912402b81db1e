package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/djecho/djecho/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Compare orders semantic versions", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.2.3", "1.2.3", 0},
			{"v1.2.4", "1.2.3", 1},
			{"1.10.0", "1.9.9", 1},
			{"0.3.0", "1.0.0", -1},
			{"1.0.0-rc1", "1.0.0", 0},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}
	})

	Convey("Malformed versions are errors", t, func() {
		_, err := Compare("1.2", "1.2.3")
		So(err, ShouldNotBeNil)
		_, err = Compare("1.2.3", "one.two.three")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Latest reads the release tag and caches it", t, func() {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			fmt.Fprint(w, `{"tag_name":"v9.9.9"}`)
		}))
		Reset(server.Close)

		prev := releasesURL
		releasesURL = server.URL
		Reset(func() { releasesURL = prev })

		v, err := Latest(context.Background())
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "9.9.9")

		v, err = Latest(context.Background())
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "9.9.9")
		So(hits, ShouldEqual, 1)
	})
}
