package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/favorites"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/internal/ui"
	"github.com/lumina-cli/lumina/open"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/query"
	"github.com/lumina-cli/lumina/stream"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notifyCmd := b.notifier.Update(msg)

	if b.state == playState && b.session != nil {
		return b, tea.Batch(notifyCmd, b.updatePlay(msg))
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, notifyCmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case searchResultMsg:
		if msg.seq != b.searchSeq {
			return b, notifyCmd
		}
		b.results = msg.titles
		return b, tea.Batch(notifyCmd, b.setTitles(&b.resultsC, msg.titles))
	case trendingMsg:
		b.trending = msg
		if strings.TrimSpace(b.inputC.Value()) == "" {
			b.results = msg
			return b, tea.Batch(notifyCmd, b.setTitles(&b.resultsC, msg))
		}
		return b, notifyCmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.state == searchState {
				b.inputC.SetValue("")
				b.searchSuggestion = mo.None[string]()
				return b, tea.Batch(notifyCmd, b.debounceSearch())
			}

			b.previousState()
			b.stopLoading()
			return b, notifyCmd
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		cmd = b.updateLoading(msg)
	case searchState:
		cmd = b.updateSearch(msg)
	case resultsState:
		cmd = b.updateTitles(msg, false)
	case favoritesState:
		cmd = b.updateTitles(msg, true)
	case seasonsState:
		cmd = b.updateSeasons(msg)
	case episodesState:
		cmd = b.updateEpisodes(msg)
	case streamsState:
		cmd = b.updateStreams(msg)
	case historyState:
		cmd = b.updateHistory(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(notifyCmd, cmd)
}

func (b *statefulBubble) updatePlay(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case player.ClosedMsg:
		b.session = nil
		b.previousState()
		if b.state == historyState {
			return b.loadHistory()
		}
		return nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	}

	_, cmd := b.session.Update(msg)
	return cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case seasonsMsg:
		b.stopLoading()
		if len(msg) == 0 {
			b.raiseError(stream.ErrNoSources)
			return nil
		}

		items := make([]*listItem, len(msg))
		for i, s := range msg {
			items[i] = &listItem{internal: s}
		}
		b.seasonsC.Title = b.selectedTitle.Name
		b.newState(seasonsState)
		return b.seasonsC.SetItems(toListItems(items))
	case streamsMsg:
		b.stopLoading()
		b.streams = msg
		b.newState(streamsState)
		cmd := b.setStreams()
		if len(stream.Filter(b.streams, b.filter)) == 0 {
			return tea.Batch(cmd, ui.Notify("No sources match the "+b.filter+" filter"))
		}
		return cmd
	}

	return nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.seq != b.searchSeq {
			return nil
		}

		q := strings.TrimSpace(b.inputC.Value())
		if q == "" {
			b.results = b.trending
			return b.setTitles(&b.resultsC, b.trending)
		}
		return b.runSearch(msg.seq, q)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.showHistory):
			b.newState(historyState)
			return b.loadHistory()
		case bubblesKey.Matches(msg, b.keymap.showFavorites):
			b.newState(favoritesState)
			return b.loadFavorites()
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				return b.debounceSearch()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := strings.TrimSpace(b.inputC.Value())
			b.newState(resultsState)
			if q == "" {
				return nil
			}
			b.searchSeq++
			return b.runSearch(b.searchSeq, q)
		}
	}

	before := b.inputC.Value()

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != before {
		b.searchSuggestion = query.Suggest(value)
		return tea.Batch(cmd, b.debounceSearch())
	}

	return cmd
}

func (b *statefulBubble) updateTitles(msg tea.Msg, isFavorites bool) tea.Cmd {
	l := &b.resultsC
	if isFavorites {
		l = &b.favoritesC
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		item, selected := l.SelectedItem().(*listItem)
		var title catalog.Title
		if selected {
			title, selected = item.internal.(catalog.Title)
		}

		switch {
		case selected && bubblesKey.Matches(msg, b.keymap.confirm):
			return b.selectTitle(title)
		case selected && bubblesKey.Matches(msg, b.keymap.favorite),
			selected && isFavorites && bubblesKey.Matches(msg, b.keymap.remove):
			on, err := favorites.Toggle(title)
			if err != nil {
				b.raiseError(err)
				return nil
			}

			text := icon.Get(icon.Star) + " added " + title.Name
			if !on {
				text = "removed " + title.Name
			}

			refresh := b.setTitles(&b.resultsC, b.results)
			if isFavorites {
				refresh = b.loadFavorites()
			}
			return tea.Batch(refresh, ui.Notify(text))
		case selected && bubblesKey.Matches(msg, b.keymap.openURL):
			if poster := title.PosterURL(); poster != "" {
				if err := open.Start(poster); err != nil {
					return ui.Notify(err.Error())
				}
			}
			return nil
		}
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSeasons(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		if item, ok := b.seasonsC.SelectedItem().(*listItem); ok {
			season := item.internal.(catalog.Season)
			b.newState(episodesState)
			return b.setEpisodes(season)
		}
	}

	var cmd tea.Cmd
	b.seasonsC, cmd = b.seasonsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		if item, ok := b.episodesC.SelectedItem().(*listItem); ok {
			b.selectedEp = item.internal.(episodeItem)
			return tea.Batch(
				b.startLoading("Looking for sources of "+b.selectedTitle.Name),
				b.resolveStreams(b.selectedTitle, b.selectedEp.season, b.selectedEp.number),
			)
		}
	}

	var cmd tea.Cmd
	b.episodesC, cmd = b.episodesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateStreams(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.cycleFilter):
			b.filter = stream.NextFilter(b.filter)
			b.streamsC.ResetSelected()
			return b.setStreams()
		case bubblesKey.Matches(msg, b.keymap.play):
			if item, ok := b.streamsC.SelectedItem().(*listItem); ok {
				return b.playStream(item.internal.(stream.Stream))
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.streamsC, cmd = b.streamsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		item, selected := b.historyC.SelectedItem().(*listItem)
		if selected {
			entry := *item.internal.(*history.Entry)

			switch {
			case bubblesKey.Matches(msg, b.keymap.play):
				b.selectedTitle = catalog.Title{ID: entry.TitleID, Kind: catalog.Kind(entry.Kind), Name: entry.Title}
				b.selectedEp = episodeItem{season: entry.Season, number: entry.Episode}
				return b.play(&entry)
			case bubblesKey.Matches(msg, b.keymap.remove):
				if err := history.Remove(entry.ID); err != nil {
					b.raiseError(err)
					return nil
				}
				return b.loadHistory()
			}
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
