package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumina-cli/lumina/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const searchBody = `{"results":[
	{"id":1,"media_type":"movie","title":"Dune","release_date":"2021-09-15","poster_path":"/dune.jpg","vote_average":7.8},
	{"id":2,"media_type":"tv","name":"Dune: Prophecy","first_air_date":"2024-11-17","vote_average":7.1},
	{"id":3,"media_type":"person","name":"Denis Villeneuve"}
]}`

func newServer(t *testing.T, hits *int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	})
	mux.HandleFunc("/trending/all/week", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_, _ = w.Write([]byte(`{"results":[{"id":7,"title":"Heat","release_date":"1995-12-15"}]}`))
	})
	mux.HandleFunc("/movie/1/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id":"tt1160419"}`))
	})
	mux.HandleFunc("/tv/2/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id":null}`))
	})
	mux.HandleFunc("/tv/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seasons":[
			{"season_number":0,"name":"Specials","episode_count":2},
			{"season_number":1,"name":"Season 1","episode_count":6}
		]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient(t *testing.T) {
	Convey("Given a TMDb server", t, func() {
		hits := 0
		server := newServer(t, &hits)
		client := New("secret", WithBaseURL(server.URL), WithLanguage("pt-BR"))
		ctx := context.Background()

		Convey("When searching", func() {
			titles, err := client.SearchMulti(ctx, "dune")

			Convey("Then only movies and series are kept", func() {
				So(err, ShouldBeNil)
				So(titles, ShouldHaveLength, 2)
				So(titles[0].Kind, ShouldEqual, Movie)
				So(titles[0].Name, ShouldEqual, "Dune")
				So(titles[0].Year, ShouldEqual, "2021")
				So(titles[0].PosterURL(), ShouldEqual, "https://image.tmdb.org/t/p/w500/dune.jpg")
				So(titles[1].Kind, ShouldEqual, TV)
				So(titles[1].Name, ShouldEqual, "Dune: Prophecy")
				So(titles[1].String(), ShouldEqual, "Dune: Prophecy (2024)")
			})
		})

		Convey("When the key is rejected", func() {
			bad := New("wrong", WithBaseURL(server.URL))
			_, err := bad.SearchMulti(ctx, "dune")

			Convey("Then an error is returned and Search degrades to nothing", func() {
				So(err, ShouldNotBeNil)
				So(Search(ctx, bad, "dune"), ShouldBeEmpty)
			})
		})

		Convey("When there is no key", func() {
			_, err := New("", WithBaseURL(server.URL)).SearchMulti(ctx, "dune")

			Convey("Then ErrNoAPIKey is returned", func() {
				So(err, ShouldEqual, ErrNoAPIKey)
			})
		})

		Convey("When asking for trending titles twice", func() {
			So(ClearCache(), ShouldBeNil)
			first, err := client.Trending(ctx)
			So(err, ShouldBeNil)
			second, err := client.Trending(ctx)
			So(err, ShouldBeNil)

			Convey("Then the server is hit once and missing media types default to movie", func() {
				So(hits, ShouldEqual, 1)
				So(first, ShouldResemble, second)
				So(first[0].Kind, ShouldEqual, Movie)
				So(first[0].Name, ShouldEqual, "Heat")
			})
		})

		Convey("When resolving external ids", func() {
			imdb, err := client.ExternalID(ctx, 1, Movie)
			So(err, ShouldBeNil)
			missing, err := client.ExternalID(ctx, 2, TV)
			So(err, ShouldBeNil)

			Convey("Then the IMDb id or an empty string is returned", func() {
				So(imdb, ShouldEqual, "tt1160419")
				So(missing, ShouldBeEmpty)
			})
		})

		Convey("When fetching series details", func() {
			seasons, err := client.TVDetails(ctx, 2)

			Convey("Then specials are dropped", func() {
				So(err, ShouldBeNil)
				So(seasons, ShouldHaveLength, 1)
				So(seasons[0].Number, ShouldEqual, 1)
				So(seasons[0].Episodes, ShouldEqual, 6)
			})
		})
	})
}

func TestClosest(t *testing.T) {
	Convey("Given a list of titles", t, func() {
		titles := []Title{{ID: 1, Name: "The Matrix Reloaded"}, {ID: 2, Name: "The Matrix"}, {ID: 3, Name: "Matrix"}}

		Convey("Then the nearest name wins", func() {
			So(Closest("the matrix", titles).MustGet().ID, ShouldEqual, 2)
			So(Closest("MATRIX ", titles).MustGet().ID, ShouldEqual, 3)
		})

		Convey("Then an empty list yields nothing", func() {
			So(Closest("x", nil).IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Kinds map to addon types", t, func() {
		So(TV.StremioType(), ShouldEqual, "series")
		So(Movie.StremioType(), ShouldEqual, "movie")
		So(Title{ID: 5}.Key(), ShouldEqual, "tmdb-5")
	})
}
