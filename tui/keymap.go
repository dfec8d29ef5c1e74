package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, play, back,
	acceptSearchSuggestion,
	remove, favorite, openURL,
	showHistory, showFavorites,
	cycleFilter,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

// bind uses the first key as the help label.
func bind(desc string, keys ...string) key.Binding {
	return bindAs(keys[0], desc, keys...)
}

func bindAs(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit:                   bind("quit", "q"),
		forceQuit:              bind("quit", "ctrl+c", "ctrl+d"),
		confirm:                bind("confirm", "enter"),
		play:                   bindAs(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play"), "enter"),
		back:                   bind("back", "esc"),
		acceptSearchSuggestion: bind("accept suggestion", "tab"),
		remove:                 bind("remove", "d"),
		favorite:               bind("favorite", "f"),
		openURL:                bind("open poster", "o"),
		showHistory:            bind("history", "ctrl+r"),
		showFavorites:          bind("favorites", "ctrl+f"),
		cycleFilter:            bind("filter", "tab"),
		up:                     bindAs("↑", "up", "up", "k"),
		down:                   bindAs("↓", "down", "down", "j"),
		left:                   bindAs("←", "left", "left", "h"),
		right:                  bindAs("→", "right", "right", "l"),
		top:                    bind("top", "g"),
		bottom:                 bind("bottom", "G"),
		showHelp:               bind("help", "?"),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case searchState:
		return h(k.confirm, k.acceptSearchSuggestion, k.showHistory, k.showFavorites),
			h(k.confirm, k.acceptSearchSuggestion, k.showHistory, k.showFavorites, k.forceQuit)
	case resultsState:
		return h(k.confirm, k.favorite, k.back), h(k.confirm, k.favorite, k.openURL, k.back)
	case favoritesState:
		return to2(h(k.confirm, k.remove, k.back))
	case seasonsState, episodesState:
		return to2(h(k.confirm, k.back))
	case streamsState:
		return to2(h(k.play, k.cycleFilter, k.back))
	case historyState:
		return to2(h(k.play, k.remove, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}
