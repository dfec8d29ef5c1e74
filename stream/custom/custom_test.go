package custom

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/where"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	filesystem.SetMemMapFs()
}

const addonScript = `
function Streams(kind, id)
	return {
		{ title = "Sample " .. kind .. " " .. id, url = "https://cdn.example/" .. id .. ".mp4" },
		{ name = "Hash only", infoHash = "deadbeef", fileIdx = 2 },
		{ title = "Broken" },
	}
end
`

func writeAddon(name, content string) string {
	path := filepath.Join(where.Addons(), name+Extension)
	So(filesystem.API().WriteFile(path, []byte(content), 0o644), ShouldBeNil)
	return path
}

func TestAddon(t *testing.T) {
	Convey("Given an installed addon", t, func() {
		path := writeAddon("sample", addonScript)

		Convey("When it is loaded and queried for an episode", func() {
			addon, err := Load(path)
			So(err, ShouldBeNil)
			defer addon.Close()

			streams, err := addon.Streams(context.Background(), stream.Request{
				IMDbID: "tt7", Kind: catalog.TV, Season: 1, Episode: 2,
			})

			Convey("Then valid entries become streams tagged with the addon name", func() {
				So(err, ShouldBeNil)
				So(addon.ID(), ShouldEqual, "sample custom")
				So(streams, ShouldHaveLength, 2)
				So(streams[0].Title, ShouldEqual, "Sample series tt7:1:2")
				So(streams[0].Origin, ShouldEqual, "sample")
				So(streams[1].Title, ShouldEqual, "Hash only")
				So(streams[1].Playable(), ShouldEqual, "magnet:?xt=urn:btih:deadbeef")
				So(*streams[1].FileIdx, ShouldEqual, 2)
			})
		})

		Convey("Then it is listed with the other addons", func() {
			paths, err := Paths()
			So(err, ShouldBeNil)
			So(paths, ShouldContain, path)
		})
	})

	Convey("Given a script without Streams", t, func() {
		path := writeAddon("empty", `x = 1`)

		Convey("Then loading fails", func() {
			_, err := Load(path)
			So(err, ShouldNotBeNil)
		})

		So(filesystem.API().Remove(path), ShouldBeNil)
	})
}

func TestStreamFromTable(t *testing.T) {
	Convey("Given a Lua table", t, func() {
		L := lua.NewState()
		defer L.Close()
		tbl := L.NewTable()

		Convey("When it has neither url nor infoHash", func() {
			tbl.RawSetString("title", lua.LString("nothing"))
			_, err := streamFromTable(tbl, "x")

			Convey("Then it is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When it only has a name", func() {
			tbl.RawSetString("name", lua.LString("Name"))
			tbl.RawSetString("url", lua.LString("https://a/b.mkv"))
			s, err := streamFromTable(tbl, "x")

			Convey("Then the name doubles as title", func() {
				So(err, ShouldBeNil)
				So(s.Title, ShouldEqual, "Name")
				So(s.FileIdx, ShouldBeNil)
			})
		})
	})
}
