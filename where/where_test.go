package where

import (
	"path/filepath"
	"testing"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":    Config,
			"Cache":     Cache,
			"Logs":      Logs,
			"Addons":    Addons,
			"Temp":      Temp,
			"Subtitles": Subtitles,
		} {
			Convey(name+"()", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Subtitles() should live under Temp()", func() {
			So(filepath.Dir(Subtitles()), ShouldEqual, Temp())
		})

		Convey("Config override", func() {
			t.Setenv(EnvConfigPath, "/tmp/lumina-override")
			So(Config(), ShouldEqual, "/tmp/lumina-override")
			So(filepath.Dir(Favorites()), ShouldEqual, "/tmp/lumina-override")
		})
	})
}

func TestFiles(t *testing.T) {
	Convey("Data files live next to their directory", t, func() {
		So(filepath.Dir(History()), ShouldEqual, Config())
		So(filepath.Base(History()), ShouldEqual, "history.json")
		So(filepath.Dir(Queries()), ShouldEqual, Cache())
		So(filepath.Dir(Trending()), ShouldEqual, Cache())
	})

	Convey("An empty override is ignored", t, func() {
		t.Setenv(EnvConfigPath, "")
		So(Config(), ShouldNotBeEmpty)
		So(filepath.Base(Config()), ShouldEqual, "lumina")
	})
}
