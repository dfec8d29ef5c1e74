package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type failing struct{}

func (failing) ID() string   { return "failing" }
func (failing) Name() string { return "Failing" }
func (failing) Streams(context.Context, Request) ([]Stream, error) {
	return nil, errors.New("boom")
}

func TestRequest(t *testing.T) {
	Convey("Series ids carry season and episode", t, func() {
		So(Request{IMDbID: "tt1", Kind: catalog.TV, Season: 2, Episode: 5}.ID(), ShouldEqual, "tt1:2:5")
		So(Request{IMDbID: "tt1", Kind: catalog.Movie}.ID(), ShouldEqual, "tt1")
	})
}

func TestResolve(t *testing.T) {
	Convey("Given an addon server", t, func() {
		var (
			mu    sync.Mutex
			paths []string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			paths = append(paths, r.URL.Path)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"streams":[
				{"name":"Torrentio\n4k","title":"Movie.2160p\n👤 10","infoHash":"abc"},
				{"name":"Torrentio\n1080p","title":"Movie.1080p.DUB","url":"https://cdn/movie.mp4"}
			]}`))
		}))
		defer server.Close()

		addon := NewStremio("torrentio", Torrentio, server.URL)
		ctx := context.Background()

		Convey("When one provider fails", func() {
			streams, err := Resolve(ctx, Request{IMDbID: "tt42", Kind: catalog.TV, Season: 1, Episode: 3}, []Provider{failing{}, addon})

			Convey("Then the other still contributes", func() {
				So(err, ShouldBeNil)
				So(streams, ShouldHaveLength, 2)
				So(streams[0].Origin, ShouldEqual, Torrentio)
				So(paths, ShouldContain, "/stream/series/tt42:1:3.json")
			})
		})

		Convey("When every provider fails", func() {
			_, err := Resolve(ctx, Request{IMDbID: "tt42"}, []Provider{failing{}})

			Convey("Then ErrNoSources is returned", func() {
				So(err, ShouldEqual, ErrNoSources)
			})
		})

		Convey("When the IMDb id is missing", func() {
			_, err := Resolve(ctx, Request{}, []Provider{addon})

			Convey("Then nothing is fetched", func() {
				So(err, ShouldEqual, ErrNoSources)
				So(paths, ShouldBeEmpty)
			})
		})
	})
}

func TestStream(t *testing.T) {
	Convey("Given some streams", t, func() {
		streams := []Stream{
			{Name: "Torrentio\n4k", Title: "Film.2160p", InfoHash: "abc", Origin: Torrentio},
			{Name: "Torrentio\n1080p", Title: "Film.1080p.DUAL.Dub", URL: "https://cdn/a.mp4", Origin: Torrentio},
			{Name: "Brazuca", Title: "Filme 720p", InfoHash: "def", Origin: Brazuca},
		}

		Convey("Then playable targets fall back to magnets", func() {
			So(streams[0].Playable(), ShouldEqual, "magnet:?xt=urn:btih:abc")
			So(streams[1].Playable(), ShouldEqual, "https://cdn/a.mp4")
			So(Stream{}.Playable(), ShouldBeEmpty)
		})

		Convey("Then filters follow origin and title", func() {
			So(Filter(streams, FilterAll), ShouldHaveLength, 3)
			So(Filter(streams, "unknown"), ShouldHaveLength, 3)

			dub := Filter(streams, FilterDub)
			So(dub, ShouldHaveLength, 2)
			So(dub[1].Origin, ShouldEqual, Brazuca)

			leg := Filter(streams, FilterLeg)
			So(leg, ShouldHaveLength, 1)
			So(leg[0].InfoHash, ShouldEqual, "abc")

			So(Filter(streams, Filter4K), ShouldHaveLength, 1)
		})

		Convey("Then labels describe audio and quality", func() {
			So(streams[0].Labels(), ShouldResemble, []string{"Sub", "4K"})
			So(streams[1].Labels(), ShouldResemble, []string{"Dub", "1080p"})
			So(streams[2].Labels(), ShouldResemble, []string{"Dub", "720p"})
		})

		Convey("Then filters cycle", func() {
			So(NextFilter(FilterAll), ShouldEqual, FilterDub)
			So(NextFilter(Filter4K), ShouldEqual, FilterAll)
		})
	})

	Convey("Only known built-ins are enabled", t, func() {
		providers := Enabled([]string{"brazuca", "nope", "brazuca"})
		So(providers, ShouldHaveLength, 1)
		So(providers[0].Name(), ShouldEqual, Brazuca)
	})
}
