package icon

import (
	"testing"

	"github.com/djecho/djecho/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the icon registry", t, func() {
		Convey("Every icon renders in every variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Play), ShouldBeEmpty)
		})

		Convey("An unregistered icon renders nothing", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Icon(999)), ShouldBeEmpty)
		})
	})
}
