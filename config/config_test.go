package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Player timings should match the documented defaults", func() {
			_ = Setup()
			So(viper.GetInt(key.PlayerAutohideDelay), ShouldEqual, 3)
			So(viper.GetInt(key.PlayerProgressInterval), ShouldEqual, 5)
			So(viper.GetInt(key.CatalogSearchDebounce), ShouldEqual, 600)
			So(viper.GetInt(key.HistoryLimit), ShouldEqual, 30)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("catalog.api.key")
			So(result, ShouldEqual, "catalog_api_key")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.StreamsProviders]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "LUMINA_STREAMS_PROVIDERS")
		})

		Convey("typeName should describe the default value", func() {
			So(field.typeName(), ShouldEqual, "[]string")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given raw command line values", t, func() {
		Convey("Integers are converted", func() {
			v, err := Parse(key.PlayerSeekStep, []string{"30"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 30)

			_, err = Parse(key.PlayerSeekStep, []string{"-1"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerSeekStep, []string{"ten"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are converted", func() {
			v, err := Parse(key.PlayerResume, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)
		})

		Convey("Enumerated strings only accept their options", func() {
			v, err := Parse(key.StreamsFilter, []string{"4k"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "4k")

			_, err = Parse(key.StreamsFilter, []string{"8k"})
			So(err, ShouldNotBeNil)
		})

		Convey("Lists accept commas and repeated values", func() {
			v, err := Parse(key.StreamsProviders, []string{"torrentio, brazuca", "mine", "torrentio"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"torrentio", "brazuca", "mine"})
		})

		Convey("Unknown keys suggest the closest one", func() {
			_, err := Parse("player.seek_stpe", []string{"1"})
			var unknown *UnknownKeyError
			So(errors.As(err, &unknown), ShouldBeTrue)
			So(unknown.Closest, ShouldEqual, key.PlayerSeekStep)
		})

		Convey("A missing value is an error", func() {
			_, err := Parse(key.PlayerSeekStep, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestReset(t *testing.T) {
	Convey("Given a changed value", t, func() {
		So(Setup(), ShouldBeNil)
		viper.Set(key.PlayerSeekStep, 42)

		Convey("Restore brings back the default and writes the file", func() {
			So(Restore(key.PlayerSeekStep), ShouldBeNil)
			So(viper.GetInt(key.PlayerSeekStep), ShouldEqual, 10)

			exists, err := filesystem.API().Exists(filepath.Join(where.Config(), constant.Lumina+".toml"))
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Restore rejects unknown keys", func() {
			So(Restore("nope"), ShouldNotBeNil)
		})
	})
}
