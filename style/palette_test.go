package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPalette(t *testing.T) {
	Convey("Badges keep their text", t, func() {
		So(StatusBadge("playing"), ShouldContainSubstring, "PLAYING")
		So(StatusBadge("whatever"), ShouldContainSubstring, "WHATEVER")
		So(KindTag("local_file"), ShouldContainSubstring, "local file")
	})

	Convey("Tag pads its label", t, func() {
		So(Tag(Base, Green)("x"), ShouldContainSubstring, " x ")
	})
}
