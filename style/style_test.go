package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	Convey("Renderers keep the text", t, func() {
		var render func(string) string = Fg(Blue)
		So(render("lumina"), ShouldEqual, "lumina")
		So(Faint("a"), ShouldEqual, "a")
		So(Bold("a"), ShouldEqual, "a")
	})

	Convey("Truncate cuts at the width", t, func() {
		So(Truncate(3)("lumina"), ShouldEqual, "lum")
	})

	Convey("Badges are padded", t, func() {
		So(Title("Search"), ShouldEqual, " Search ")
		So(ErrorTitle("Error"), ShouldEqual, " Error ")
	})
}
