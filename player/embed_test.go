package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEmbed(t *testing.T) {
	Convey("Embed detection", t, func() {
		So(IsEmbedded(Item{VideoURL: "https://www.youtube.com/watch?v=x"}), ShouldBeTrue)
		So(IsEmbedded(Item{VideoURL: "https://youtu.be/x"}), ShouldBeTrue)
		So(IsEmbedded(Item{VideoURL: "https://www.youtube.com/embed/x"}), ShouldBeTrue)
		So(IsEmbedded(Item{VideoURL: "https://cdn.example.com/x.mp4", Provider: "youtube"}), ShouldBeTrue)
		So(IsEmbedded(Item{VideoURL: "https://cdn.example.com/x.mp4"}), ShouldBeFalse)
	})

	Convey("Embed addresses autoplay with controls", t, func() {
		So(EmbedURL("https://www.youtube.com/watch?v=abc"), ShouldEqual, "https://www.youtube.com/embed/abc?autoplay=1&controls=1")
		So(EmbedURL("https://www.youtube.com/watch?v=abc&t=42"), ShouldEqual, "https://www.youtube.com/embed/abc?autoplay=1&controls=1")
		So(EmbedURL("https://youtu.be/abc"), ShouldEqual, "https://www.youtube.com/embed/abc?autoplay=1&controls=1")
		So(EmbedURL("https://www.youtube.com/embed/abc?start=5"), ShouldEqual, "https://www.youtube.com/embed/abc?start=5&autoplay=1&controls=1")
	})

	Convey("The embed backend opens the page and refuses transport", t, func() {
		var opened, app string
		e := NewEmbed("firefox")
		e.opener = func(target, with string) error {
			opened, app = target, with
			return nil
		}

		So(e.Open("https://www.youtube.com/embed/abc", "Trailer"), ShouldBeNil)
		So(opened, ShouldEqual, "https://www.youtube.com/embed/abc")
		So(app, ShouldEqual, "firefox")
		So(e.Events(), ShouldBeNil)
		So(e.Seek(1), ShouldEqual, ErrNotControllable)
		So(e.Close(), ShouldBeNil)
	})
}
