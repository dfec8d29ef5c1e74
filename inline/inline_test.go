package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/stream"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type fixedProvider []stream.Stream

func (fixedProvider) ID() string   { return "fixed" }
func (fixedProvider) Name() string { return "Fixed" }
func (p fixedProvider) Streams(context.Context, stream.Request) ([]stream.Stream, error) {
	return p, nil
}

func newCatalog(t *testing.T) *catalog.Client {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"media_type":"movie","title":"Alien","release_date":"1979-05-25"},
			{"id":2,"media_type":"movie","title":"Aliens","release_date":"1986-07-18"},
			{"id":3,"media_type":"tv","name":"Alien: Earth","first_air_date":"2025-08-12"}
		]}`))
	})
	mux.HandleFunc("/movie/2/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id":"tt0090605"}`))
	})
	mux.HandleFunc("/tv/3/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id":null}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return catalog.New("key", catalog.WithBaseURL(server.URL))
}

func TestParsePicker(t *testing.T) {
	titles := []catalog.Title{{ID: 1, Name: "Alien"}, {ID: 2, Name: "Aliens"}, {ID: 3, Name: "Prometheus"}}

	Convey("Given search results", t, func() {
		Convey("first and last pick the edges", func() {
			first, err := ParsePicker("first", "")
			So(err, ShouldBeNil)
			So(first(titles).MustGet().ID, ShouldEqual, 1)

			last, err := ParsePicker("last", "")
			So(err, ShouldBeNil)
			So(last(titles).MustGet().ID, ShouldEqual, 3)
		})

		Convey("an index is clamped to the results", func() {
			pick, err := ParsePicker("10", "")
			So(err, ShouldBeNil)
			So(pick(titles).MustGet().ID, ShouldEqual, 3)
		})

		Convey("closest uses the query", func() {
			pick, err := ParsePicker("closest", "prometeus")
			So(err, ShouldBeNil)
			So(pick(titles).MustGet().Name, ShouldEqual, "Prometheus")
		})

		Convey("nothing is picked from no results", func() {
			pick, _ := ParsePicker("first", "")
			So(pick(nil).IsAbsent(), ShouldBeTrue)
		})

		Convey("an unknown selector is an error", func() {
			_, err := ParsePicker("middle", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a catalog", t, func() {
		client := newCatalog(t)
		var buf bytes.Buffer

		Convey("When searching as JSON", func() {
			err := Run(context.Background(), &Options{Out: &buf, Client: client, Query: "alien", Json: true})
			So(err, ShouldBeNil)

			var out Output
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)

			Convey("Then every result is written", func() {
				So(out.Query, ShouldEqual, "alien")
				So(out.Result, ShouldHaveLength, 3)
				So(out.Result[2].Title.Kind, ShouldEqual, catalog.TV)
				So(out.Result[0].Streams, ShouldBeEmpty)
			})
		})

		Convey("When picking one title with its streams", func() {
			pick, _ := ParsePicker("1", "")
			providers := []stream.Provider{fixedProvider{
				{Title: "Aliens 1080p", URL: "https://cdn.example/aliens.mp4"},
				{Title: "Aliens 4K", InfoHash: "abc"},
			}}

			err := Run(context.Background(), &Options{
				Out:       &buf,
				Client:    client,
				Query:     "alien",
				Json:      true,
				Picker:    mo.Some[Picker](pick),
				Streams:   true,
				Providers: providers,
				Filter:    stream.Filter4K,
			})
			So(err, ShouldBeNil)

			var out Output
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)

			Convey("Then the filtered streams are attached", func() {
				So(out.Result, ShouldHaveLength, 1)
				So(out.Result[0].IMDbID, ShouldEqual, "tt0090605")
				So(out.Result[0].Streams, ShouldHaveLength, 1)
				So(out.Result[0].Streams[0].Playable(), ShouldEqual, "magnet:?xt=urn:btih:abc")
			})
		})

		Convey("When a series has no IMDb id", func() {
			pick, _ := ParsePicker("last", "")
			err := Run(context.Background(), &Options{
				Out:       &buf,
				Client:    client,
				Query:     "alien",
				Picker:    mo.Some[Picker](pick),
				Streams:   true,
				Providers: []stream.Provider{fixedProvider{{Title: "x", URL: "https://x"}}},
			})

			Convey("Then it is skipped without failing", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldBeEmpty)
			})
		})

		Convey("Without a client the key error is returned", func() {
			err := Run(context.Background(), &Options{Out: &buf, Query: "alien"})
			So(err, ShouldEqual, catalog.ErrNoAPIKey)
		})
	})
}

func TestStreams(t *testing.T) {
	Convey("Given a provider", t, func() {
		var buf bytes.Buffer
		req := stream.Request{IMDbID: "tt0078748", Kind: catalog.Movie}
		providers := []stream.Provider{fixedProvider{{Name: "Fixed\n1080p", Title: "Alien", URL: "https://cdn.example/alien.mp4"}}}

		Convey("Plain output lists the heading and the link", func() {
			So(Streams(context.Background(), &buf, req, providers, stream.FilterAll, false), ShouldBeNil)
			So(buf.String(), ShouldEqual, "Alien\thttps://cdn.example/alien.mp4\n")
		})

		Convey("JSON output carries the request", func() {
			So(Streams(context.Background(), &buf, req, providers, stream.FilterAll, true), ShouldBeNil)

			var out StreamsOutput
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
			So(out.Request.IMDbID, ShouldEqual, "tt0078748")
			So(out.Streams, ShouldHaveLength, 1)
		})

		Convey("No providers is an error", func() {
			err := Streams(context.Background(), &buf, req, nil, stream.FilterAll, false)
			So(err, ShouldEqual, stream.ErrNoSources)
		})
	})
}
