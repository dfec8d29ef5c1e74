package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumina-cli/lumina/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare orders versions numerically", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"0.10.0", "0.9.9", 1},
			{"v1.0.0", "1.0.1", -1},
			{"1.2.0-rc1", "1.2.0", 0},
			{"2.0.0+build.7", "1.9.0", 1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Malformed versions are errors", t, func() {
		_, err := Compare("1.2", "1.2.0")
		So(err, ShouldNotBeNil)

		_, err = Compare("1.2.0", "one.two.three")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		filesystem.SetMemMapFs()
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = w.Write([]byte(`{"tag_name":"v0.4.1"}`))
		}))
		defer server.Close()

		previous := releasesURL
		releasesURL = server.URL
		defer func() { releasesURL = previous }()

		Convey("The tag is returned without its prefix and cached", func() {
			latest, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.4.1")

			latest, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.4.1")
			So(hits, ShouldEqual, 1)
		})
	})
}
