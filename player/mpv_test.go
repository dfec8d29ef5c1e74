package player

import (
	"errors"
	"runtime"
	"testing"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestMPV(t *testing.T) {
	Convey("Given an mpv backend", t, func() {
		mpv := NewMPV()

		Convey("Open refuses flag-like targets", func() {
			err := mpv.Open("--input-ipc-server=/tmp/x", "title")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid media target")
		})

		Convey("Open reports a missing binary", func() {
			mpv.binary = "lumina-test-missing-mpv"
			err := mpv.Open("https://example.com/video.mp4", "Test Video")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "start lumina-test-missing-mpv")
		})

		Convey("The command line ends with the target after a separator", func() {
			mpv.socketPath = "/tmp/lumina-test.sock"
			args := mpv.args("https://example.com/a.mp4", "A")
			So(args[0], ShouldEqual, "--no-terminal")
			So(args, ShouldContain, "--input-ipc-server=/tmp/lumina-test.sock")
			So(args, ShouldContain, "--force-media-title=A")
			So(args[len(args)-2:], ShouldResemble, []string{"--", "https://example.com/a.mp4"})
		})

		Convey("Close without Open is safe and closes the event stream", func() {
			So(mpv.Close(), ShouldBeNil)
			So(mpv.Close(), ShouldBeNil)
			_, ok := <-mpv.Events()
			So(ok, ShouldBeFalse)
		})

		Convey("Requests are refused once closed", func() {
			So(mpv.Close(), ShouldBeNil)
			So(mpv.Seek(3), ShouldNotBeNil)
		})
	})
}

func TestIINA(t *testing.T) {
	Convey("Given an IINA backend", t, func() {
		iina := NewIINA()
		iina.socketPath = "/tmp/lumina-test.sock"
		args := iina.args("https://example.com/a.mp4", "A")

		Convey("mpv options are forwarded through iina-cli", func() {
			So(iina.binary, ShouldEqual, "iina-cli")
			So(args[0], ShouldEqual, "--keep-running")
			So(args, ShouldContain, "--mpv-input-ipc-server=/tmp/lumina-test.sock")
			So(args, ShouldNotContain, "--")
			So(args[len(args)-1], ShouldEqual, "https://example.com/a.mp4")
		})
	})

	Convey("The native backend follows the configuration", t, func() {
		viper.Set(key.Player, "mpv")
		So(NativeBinary(), ShouldEqual, "mpv")

		viper.Set(key.Player, "iina")
		if runtime.GOOS == constant.Darwin {
			So(NativeBinary(), ShouldEqual, "iina-cli")
		} else {
			So(NativeBinary(), ShouldEqual, "mpv")
		}

		viper.Set(key.Player, "mpv")
	})
}

func TestSanitize(t *testing.T) {
	Convey("Media targets", t, func() {
		for _, ok := range []string{
			"https://example.com/a.mp4",
			"http://example.com/a.m3u8",
			"magnet:?xt=urn:btih:abcdef",
			"/home/user/movie.mkv",
		} {
			_, err := sanitizeMediaTarget(ok)
			So(err, ShouldBeNil)
		}

		for _, bad := range []string{"", "-v", "ftp://example.com/a", "https://x\n--y"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Titles are flattened", t, func() {
		So(sanitizeTitle(" a\nb\tc\x00 "), ShouldEqual, "a b c")
	})

	Convey("Item validation names the failing fields", t, func() {
		err := Item{VideoURL: "-x"}.Validate()
		So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "id is required")
		So(err.Error(), ShouldContainSubstring, "videoUrl is not a playable address")
		So(movie.Validate(), ShouldBeNil)
	})
}
