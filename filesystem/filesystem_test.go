package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAPI(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("GacheFs writes through the active backend", func() {
			SetMemMapFs()
			var gfs GacheFs
			So(gfs.MkdirAll("/cache", 0o755), ShouldBeNil)

			f, err := gfs.OpenFile("/cache/q.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, err := API().Exists("/cache/q.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
