package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
		defer func() { now = time.Now }()

		Convey("Disabled logging writes nothing", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
			Warn("ignored")

			files, _ := filesystem.API().ReadDir(where.Logs())
			So(files, ShouldBeEmpty)
		})

		Convey("Enabled logging writes to today's file and prunes old ones", func() {
			dir := where.Logs()
			old := filepath.Join(dir, "2026-02-01.log")
			recent := filepath.Join(dir, "2026-03-08.log")
			So(filesystem.API().WriteFile(old, []byte("x"), 0o644), ShouldBeNil)
			So(filesystem.API().WriteFile(recent, []byte("x"), 0o644), ShouldBeNil)

			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsKeep, 7)
			viper.Set(key.LogsLevel, "debug")
			So(Setup(), ShouldBeNil)
			defer func() { enabled = false }()

			Warnf("resolved %d streams", 3)

			data, err := filesystem.API().ReadFile(filepath.Join(dir, "2026-03-10.log"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "resolved 3 streams")

			exists, _ := filesystem.API().Exists(old)
			So(exists, ShouldBeFalse)
			exists, _ = filesystem.API().Exists(recent)
			So(exists, ShouldBeTrue)
		})
	})
}
