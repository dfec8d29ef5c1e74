package subtitle

import (
	"strings"
	"testing"

	"github.com/lumina-cli/lumina/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestStore(t *testing.T) {
	Convey("Given a store on an in-memory filesystem", t, func() {
		fs := afero.NewMemMapFs()
		store := NewStoreAt(fs, "/tmp/lumina/subtitles")

		Convey("Acquire writes the converted track", func() {
			track, err := store.Acquire("movie.srt", "00:00:01,000 --> 00:00:02,000\n{\\b1}x{\\b0}\n")
			So(err, ShouldBeNil)
			So(track.Name(), ShouldEqual, "movie.srt")
			So(track.Path(), ShouldEndWith, ".vtt")
			So(strings.HasPrefix(track.URL(), "file:///tmp/lumina/subtitles/"), ShouldBeTrue)

			data, err := afero.ReadFile(fs, track.Path())
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<b>x</b>\n")

			content, err := track.Content()
			So(err, ShouldBeNil)
			So(content, ShouldEqual, string(data))

			Convey("Release removes the file and is idempotent", func() {
				So(track.Release(), ShouldBeNil)
				So(track.Release(), ShouldBeNil)
				So(track.Released(), ShouldBeTrue)

				exists, _ := afero.Exists(fs, track.Path())
				So(exists, ShouldBeFalse)

				_, err := track.Content()
				So(err, ShouldEqual, ErrReleased)
			})
		})

		Convey("Every acquisition gets its own file", func() {
			a, _ := store.Acquire("a.srt", "a")
			b, _ := store.Acquire("a.srt", "a")
			So(a.Path(), ShouldNotEqual, b.Path())
		})

		Convey("Load reads srt and vtt files", func() {
			So(afero.WriteFile(fs, "/home/u/ep1.srt", []byte("00:00:01,000"), 0o644), ShouldBeNil)
			track, err := store.Load("/home/u/ep1.srt")
			So(err, ShouldBeNil)
			So(track.Name(), ShouldEqual, "ep1.srt")

			_, err = store.Load("/home/u/ep1.ass")
			So(err, ShouldNotBeNil)
		})

		Convey("Purge removes leftover tracks", func() {
			track, _ := store.Acquire("a.srt", "a")
			So(store.Purge(), ShouldBeNil)
			exists, _ := afero.Exists(fs, track.Path())
			So(exists, ShouldBeFalse)
		})
	})
}

func TestSlot(t *testing.T) {
	Convey("Given a slot holding a track", t, func() {
		fs := afero.NewMemMapFs()
		store := NewStoreAt(fs, "/subs")
		first, _ := store.Acquire("first.srt", "1")

		var slot Slot
		So(slot.Replace(first), ShouldBeNil)
		So(slot.Current(), ShouldEqual, first)

		Convey("Replacing releases the previous track", func() {
			second, _ := store.Acquire("second.srt", "2")
			So(slot.Replace(second), ShouldBeNil)
			So(first.Released(), ShouldBeTrue)
			So(second.Released(), ShouldBeFalse)
			So(slot.Current(), ShouldEqual, second)
		})

		Convey("Replacing with the same track keeps it alive", func() {
			So(slot.Replace(first), ShouldBeNil)
			So(first.Released(), ShouldBeFalse)
		})

		Convey("Release empties the slot", func() {
			So(slot.Release(), ShouldBeNil)
			So(first.Released(), ShouldBeTrue)
			So(slot.Current(), ShouldBeNil)
			So(slot.Release(), ShouldBeNil)
		})
	})
}
