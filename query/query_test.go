package query

import (
	"testing"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(Clear(), ShouldBeNil)

		Convey("When remembering queries", func() {
			So(Remember("Blade Runner", 1), ShouldBeNil)
			So(Remember("blade runner 2049", 10), ShouldBeNil)
			So(Remember("  ", 5), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				s := SuggestMany("blade")
				So(s, ShouldResemble, []string{"blade runner 2049", "blade runner"})
				So(Suggest("BLADE").MustGet(), ShouldEqual, "blade runner 2049")
			})

			Convey("Then a new remember refreshes suggestions", func() {
				So(SuggestMany("blade"), ShouldHaveLength, 2)
				So(Remember("blade runner", 20), ShouldBeNil)
				So(SuggestMany("blade")[0], ShouldEqual, "blade runner")
			})

			Convey("Then the top queries are capped", func() {
				So(Top(1), ShouldResemble, []string{"blade runner 2049"})
				So(Top(10), ShouldHaveLength, 2)
			})
		})

		Convey("When suggestions are disabled", func() {
			So(Remember("heat", 1), ShouldBeNil)
			viper.Set(key.SearchShowQuerySuggestions, false)

			Convey("Then nothing is suggested", func() {
				So(SuggestMany("heat"), ShouldBeEmpty)
				So(Suggest("heat").IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  DUNE  "), ShouldEqual, "dune")
		})
	})
}
