package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/favorites"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/query"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/util"
	"github.com/samber/lo"
)

type (
	searchTickMsg   struct{ seq int }
	searchResultMsg struct {
		seq    int
		titles []catalog.Title
	}
	trendingMsg []catalog.Title
	seasonsMsg  []catalog.Season
	streamsMsg  []stream.Stream
)

// debounceSearch schedules a search for the current input. Ticks that arrive
// after a newer keystroke carry an old sequence number and are dropped.
func (b *statefulBubble) debounceSearch() tea.Cmd {
	b.searchSeq++
	seq := b.searchSeq
	return tea.Tick(b.searchDelay, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (b *statefulBubble) runSearch(seq int, q string) tea.Cmd {
	client := b.options.Client
	return func() tea.Msg {
		if client == nil {
			return catalog.ErrNoAPIKey
		}

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return searchResultMsg{seq: seq, titles: catalog.Search(ctx, client, q)}
	}
}

func (b *statefulBubble) loadTrending() tea.Cmd {
	client := b.options.Client
	if client == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		titles, err := client.Trending(ctx)
		if err != nil {
			log.Warnf("trending: %s", err)
			return trendingMsg{}
		}
		return trendingMsg(titles)
	}
}

func (b *statefulBubble) loadSeasons(title catalog.Title) tea.Cmd {
	client := b.options.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		seasons, err := client.TVDetails(ctx, title.ID)
		if err != nil {
			return err
		}
		return seasonsMsg(seasons)
	}
}

func (b *statefulBubble) resolveStreams(title catalog.Title, season, episode int) tea.Cmd {
	client := b.options.Client
	providers := b.options.providers()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), stream.Timeout())
		defer cancel()

		imdbID, err := client.ExternalID(ctx, title.ID, title.Kind)
		if err != nil {
			return err
		}
		if imdbID == "" {
			return fmt.Errorf("%w: %s has no IMDb id", stream.ErrNoSources, title.Name)
		}

		streams, err := stream.Resolve(ctx, stream.Request{
			IMDbID:  imdbID,
			Kind:    title.Kind,
			Season:  season,
			Episode: episode,
		}, providers)
		if err != nil {
			return err
		}
		return streamsMsg(streams)
	}
}

func (b *statefulBubble) selectTitle(title catalog.Title) tea.Cmd {
	if b.options.Client == nil {
		b.raiseError(catalog.ErrNoAPIKey)
		return nil
	}

	b.selectedTitle = title
	b.selectedSeason = catalog.Season{}
	b.selectedEp = episodeItem{}

	if title.Kind == catalog.TV {
		return tea.Batch(b.startLoading("Fetching seasons of "+title.Name), b.loadSeasons(title))
	}
	return tea.Batch(b.startLoading("Looking for sources of "+title.Name), b.resolveStreams(title, 0, 0))
}

func (b *statefulBubble) setTitles(l *list.Model, titles []catalog.Title) tea.Cmd {
	return l.SetItems(lo.Map(titles, func(t catalog.Title, _ int) list.Item {
		return &listItem{internal: t}
	}))
}

func (b *statefulBubble) setStreams() tea.Cmd {
	filtered := stream.Filter(b.streams, b.filter)
	b.streamsC.Title = fmt.Sprintf("Sources · %s · %s", b.filter, util.Quantify(len(filtered), "stream", "streams"))
	return b.streamsC.SetItems(lo.Map(filtered, func(s stream.Stream, _ int) list.Item {
		return &listItem{internal: s}
	}))
}

func (b *statefulBubble) setEpisodes(season catalog.Season) tea.Cmd {
	b.selectedSeason = season
	items := make([]list.Item, season.Episodes)
	for i := range items {
		items[i] = &listItem{internal: episodeItem{season: season.Number, number: i + 1}}
	}
	b.episodesC.Title = fmt.Sprintf("%s · %s", b.selectedTitle.Name, season.Name)
	return b.episodesC.SetItems(items)
}

func (b *statefulBubble) loadHistory() tea.Cmd {
	entries, err := history.Get()
	if err != nil {
		b.raiseError(err)
		return nil
	}

	return b.historyC.SetItems(lo.Map(entries, func(e *history.Entry, _ int) list.Item {
		return &listItem{internal: e}
	}))
}

func (b *statefulBubble) loadFavorites() tea.Cmd {
	titles, err := favorites.List()
	if err != nil {
		b.raiseError(err)
		return nil
	}
	return b.setTitles(&b.favoritesC, titles)
}

// itemID identifies the selected title or episode across sessions.
func (b *statefulBubble) itemID() string {
	if b.selectedTitle.Kind == catalog.TV {
		return fmt.Sprintf("%s:%d:%d", b.selectedTitle.Key(), b.selectedEp.season, b.selectedEp.number)
	}
	return b.selectedTitle.Key()
}

func (b *statefulBubble) playStream(s stream.Stream) tea.Cmd {
	entry := &history.Entry{
		ID:       b.itemID(),
		Title:    b.selectedTitle.Name,
		URL:      s.Playable(),
		Provider: s.Origin,
		TitleID:  b.selectedTitle.ID,
		Kind:     string(b.selectedTitle.Kind),
		Season:   b.selectedEp.season,
		Episode:  b.selectedEp.number,
	}
	return b.play(entry)
}

// play starts a player session for entry, resuming where it stopped last time.
func (b *statefulBubble) play(entry *history.Entry) tea.Cmd {
	item := player.Item{
		ID:       entry.ID,
		Title:    entry.String(),
		VideoURL: entry.URL,
		Provider: entry.Provider,
	}

	resume := history.ResumePoint(item.ID)
	if err := history.Save(entry); err != nil {
		log.Warnf("save history: %s", err)
	}

	opts := player.OptionsFromConfig(item)
	opts.InitialTime = resume
	opts.OnProgress = func(snap player.Snapshot) {
		if err := history.SaveProgress(item.ID, snap.Time, snap.Duration); err != nil {
			log.Warnf("save progress: %s", err)
		}
	}

	native, embedded := b.options.backends()
	session, err := player.NewSession(opts, native, embedded)
	if err != nil {
		b.raiseError(err)
		return nil
	}

	b.session = session
	b.session.Update(tea.WindowSizeMsg{Width: b.width, Height: b.height})
	b.newState(playState)
	return session.Init()
}
