package icon

import (
	"testing"

	"github.com/lumina-cli/lumina/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Lua

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			result := Get(target)
			So(result, ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every icon has a glyph in every variant", t, func() {
		for i := Lua; i <= Muted; i++ {
			for _, variant := range AvailableVariants() {
				So(icons[i].in(variant), ShouldNotBeEmpty)
			}
		}
	})

	Convey("Plain icons stay ascii", t, func() {
		for i := Lua; i <= Muted; i++ {
			for _, r := range icons[i].plain {
				So(r, ShouldBeLessThan, 128)
			}
		}
	})
}
