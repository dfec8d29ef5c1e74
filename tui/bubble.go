package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/internal/ui"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	spinnerC    spinner.Model
	inputC      textinput.Model
	resultsC    list.Model
	seasonsC    list.Model
	episodesC   list.Model
	streamsC    list.Model
	historyC    list.Model
	favoritesC  list.Model
	helpC       help.Model
	notifier    *ui.Model
	searchDelay time.Duration

	// searchSeq tags debounce ticks and results so a newer query wins.
	searchSeq int
	query     string
	results   []catalog.Title
	trending  []catalog.Title

	selectedTitle  catalog.Title
	selectedSeason catalog.Season
	selectedEp     episodeItem
	streams        []stream.Stream
	filter         string

	session *player.Session

	progressStatus   string
	lastError        error
	searchSuggestion mo.Option[string]
	width, height    int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState, playState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if prev, ok := b.statesHistory.Pop().Get(); ok {
		b.setState(prev)
	}
}

func (b *statefulBubble) lists() []*list.Model {
	return []*list.Model{&b.resultsC, &b.seasonsC, &b.episodesC, &b.streamsC, &b.historyC, &b.favoritesC}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range b.lists() {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading(status string) tea.Cmd {
	b.loading = true
	b.progressStatus = status
	b.newState(loadingState)
	return b.spinnerC.Tick
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.progressStatus = ""
}

func (b *statefulBubble) closeSession() {
	if b.session == nil {
		return
	}
	if err := b.session.Close(); err != nil {
		log.Warnf("close player session: %s", err)
	}
	b.session = nil
}

// newList builds the list shared by every browsing state.
func newList(keymap *statefulKeymap, title string, titleColor lipgloss.Color, singular, plural string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
	delegate.Styles.SelectedTitle = style.New().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.ActiveBorderColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = style.New().Foreground(style.Base).Background(titleColor).Padding(0, 1)
	l.Styles.NoItems = paddingStyle
	l.KeyMap = keymap.forList()
	l.AdditionalShortHelpKeys = keymap.ShortHelp
	l.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	l.StatusMessageLifetime = 24 * time.Hour
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName(singular, plural)

	return l
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		notifier:      &ui.Model{},
		filter:        viper.GetString(key.StreamsFilter),
		searchDelay:   time.Duration(viper.GetInt(key.CatalogSearchDebounce)) * time.Millisecond,
		options:       options,
	}

	if bubble.filter == "" {
		bubble.filter = stream.FilterAll
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search movies and series (v%s)", constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.resultsC = newList(keymap, "Results", style.Lavender, "title", "titles")
	bubble.seasonsC = newList(keymap, "Seasons", style.Blue, "season", "seasons")
	bubble.episodesC = newList(keymap, "Episodes", style.Peach, "episode", "episodes")
	bubble.streamsC = newList(keymap, "Sources", style.Mauve, "source", "sources")
	bubble.historyC = newList(keymap, "History", style.Yellow, "entry", "entries")
	bubble.favoritesC = newList(keymap, "Favorites", style.Yellow, "title", "titles")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	if options.Continue {
		bubble.setState(historyState)
	} else {
		bubble.setState(searchState)
	}

	return &bubble
}
