package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("The backend can be swapped", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()

		Convey("WriteAtomic creates parents and leaves no temporary file", func() {
			So(WriteAtomic("/cache/responses/a", []byte("one"), 0o644), ShouldBeNil)
			So(WriteAtomic("/cache/responses/a", []byte("two"), 0o644), ShouldBeNil)

			data, err := API().ReadFile("/cache/responses/a")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "two")

			exists, _ := API().Exists("/cache/responses/a.tmp")
			So(exists, ShouldBeFalse)
		})

		Convey("GacheFs writes through the same backend", func() {
			var fs GacheFs
			So(fs.MkdirAll("/gache", 0o755), ShouldBeNil)
			exists, _ := API().DirExists("/gache")
			So(exists, ShouldBeTrue)
		})
	})
}
