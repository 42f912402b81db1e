package query

import (
	"testing"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given vibe history", t, func() {
		So(Forget(), ShouldBeNil)
		So(Remember("late night synthwave", 1), ShouldBeNil)
		So(Remember("Late   Night  Jazz", 5), ShouldBeNil)
		So(Remember("sunny morning", 2), ShouldBeNil)

		Convey("suggestions are sorted by rank", func() {
			So(SuggestMany("late"), ShouldResemble, []string{"late night jazz", "late night synthwave"})
		})

		Convey("fuzzy partial input matches", func() {
			So(Suggest("snmrn").MustGet(), ShouldEqual, "sunny morning")
		})

		Convey("ranks start fresh for every case", func() {
			So(SuggestMany("late"), ShouldResemble, []string{"late night jazz", "late night synthwave"})
		})

		Convey("remembering again raises the rank and refreshes suggestions", func() {
			So(SuggestMany("synth"), ShouldResemble, []string{"late night synthwave"})
			So(Remember("late night synthwave", 10), ShouldBeNil)
			So(SuggestMany("late")[0], ShouldEqual, "late night synthwave")
		})

		Convey("blank vibes are ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(Suggest("zzzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("forgetting drops every vibe", func() {
			So(Forget(), ShouldBeNil)
			So(SuggestMany("late"), ShouldBeEmpty)
		})

		Convey("suggestions can be disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			Reset(func() { viper.Set(key.SearchShowQuerySuggestions, true) })
			So(SuggestMany("late"), ShouldBeEmpty)
		})
	})
}
