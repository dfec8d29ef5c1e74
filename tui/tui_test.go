package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/stream"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type nopBackend struct{ events chan player.Event }

func (n *nopBackend) Open(string, string) error          { return nil }
func (n *nopBackend) Events() <-chan player.Event        { return n.events }
func (n *nopBackend) Play() error                        { return nil }
func (n *nopBackend) Pause() error                       { return nil }
func (n *nopBackend) Seek(float64) error                 { return nil }
func (n *nopBackend) SetVolume(float64) error            { return nil }
func (n *nopBackend) SetMute(bool) error                 { return nil }
func (n *nopBackend) SetRate(float64) error              { return nil }
func (n *nopBackend) SetFullscreen(bool) error           { return nil }
func (n *nopBackend) SetProperties(map[string]any) error { return nil }
func (n *nopBackend) LoadSubtitle(string) error          { return nil }
func (n *nopBackend) Close() error                       { return nil }

type staticProvider struct{ streams []stream.Stream }

func (staticProvider) ID() string   { return "static" }
func (staticProvider) Name() string { return "Static" }
func (p staticProvider) Streams(context.Context, stream.Request) ([]stream.Stream, error) {
	return p.streams, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble(t *testing.T) *statefulBubble {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":1,"media_type":"movie","title":"Dune","release_date":"2021-09-15"}]}`))
	})
	mux.HandleFunc("/trending/all/week", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	mux.HandleFunc("/movie/1/external_ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id":"tt1160419"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	b := newBubble(&Options{
		Client: catalog.New("secret", catalog.WithBaseURL(server.URL)),
		Providers: []stream.Provider{staticProvider{streams: []stream.Stream{
			{Name: "Torrentio", Title: "Dune.2021.2160p", URL: "https://cdn.example/dune.mp4", Origin: stream.Torrentio},
			{Name: "Brazuca", Title: "Duna 1080p", InfoHash: "abc", Origin: stream.Brazuca},
		}}},
		Backends: func() (player.Backend, player.Backend) {
			return &nopBackend{events: make(chan player.Event)}, &nopBackend{}
		},
	})
	b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return b
}

func TestSearch(t *testing.T) {
	Convey("Given the search screen", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		b := newTestBubble(t)
		So(b.state, ShouldEqual, searchState)

		Convey("When typing two characters", func() {
			b.Update(runes("d"))
			b.Update(runes("u"))
			So(b.inputC.Value(), ShouldEqual, "du")

			Convey("Then the first debounce tick is ignored", func() {
				_, cmd := b.Update(searchTickMsg{seq: 1})
				So(cmd, ShouldBeNil)
			})

			Convey("Then the latest tick searches and its results replace the list", func() {
				_, cmd := b.Update(searchTickMsg{seq: b.searchSeq})
				So(cmd, ShouldNotBeNil)

				msg := b.runSearch(b.searchSeq, "du")()
				b.Update(msg)
				So(b.results, ShouldHaveLength, 1)
				So(b.results[0].Name, ShouldEqual, "Dune")
			})

			Convey("Then results of an older query are dropped", func() {
				b.Update(searchResultMsg{seq: 1, titles: []catalog.Title{{Name: "stale"}}})
				So(b.results, ShouldBeEmpty)
			})
		})

		Convey("When there is no API key", func() {
			b.options.Client = nil
			b.Update(b.runSearch(1, "dune")())

			Convey("Then the error screen explains it", func() {
				So(b.state, ShouldEqual, errorState)
				So(b.lastError, ShouldEqual, catalog.ErrNoAPIKey)
				So(b.View(), ShouldContainSubstring, "lumina auth")
			})
		})
	})
}

func TestBrowseAndPlay(t *testing.T) {
	Convey("Given search results for a movie", t, func() {
		viper.Set(key.HistorySave, true)
		viper.Set(key.PlayerResume, true)
		So(history.Clear(), ShouldBeNil)

		b := newTestBubble(t)
		b.Update(searchResultMsg{seq: b.searchSeq, titles: []catalog.Title{{ID: 1, Kind: catalog.Movie, Name: "Dune"}}})
		b.Update(tea.KeyMsg{Type: tea.KeyEnter})
		So(b.state, ShouldEqual, resultsState)

		Convey("When the movie is selected and its sources resolve", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.state, ShouldEqual, loadingState)

			b.Update(b.resolveStreams(b.selectedTitle, 0, 0)())

			Convey("Then the sources are listed", func() {
				So(b.state, ShouldEqual, streamsState)
				So(b.streamsC.Items(), ShouldHaveLength, 2)
			})

			Convey("Then tab cycles the filter", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyTab})
				So(b.filter, ShouldEqual, stream.FilterDub)
				So(b.streamsC.Items(), ShouldHaveLength, 1)
			})

			Convey("Then esc goes back to the results", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, resultsState)
			})

			Convey("And a source is played", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEnter})

				Convey("Then a player session runs and the title enters the history", func() {
					So(b.state, ShouldEqual, playState)
					So(b.session, ShouldNotBeNil)
					So(b.session.Engine().Item().VideoURL, ShouldEqual, "https://cdn.example/dune.mp4")

					entries, err := history.Get()
					So(err, ShouldBeNil)
					So(entries, ShouldHaveLength, 1)
					So(entries[0].ID, ShouldEqual, "tmdb-1")
				})

				Convey("Then closing the player returns to the sources", func() {
					b.Update(player.ClosedMsg{})
					So(b.session, ShouldBeNil)
					So(b.state, ShouldEqual, streamsState)
				})
			})
		})

		Convey("When a title is starred", func() {
			b.Update(runes("f"))

			Convey("Then it shows up in the favorites", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, searchState)
				b.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
				So(b.state, ShouldEqual, favoritesState)
				So(b.favoritesC.Items(), ShouldHaveLength, 1)

				b.Update(runes("d"))
				So(b.favoritesC.Items(), ShouldBeEmpty)
			})
		})
	})
}
