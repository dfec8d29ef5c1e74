package player

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/lumina-cli/lumina/controls"
	"github.com/lumina-cli/lumina/display"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/settings"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/subtitle"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options configures a player session.
type Options struct {
	Item        Item
	InitialTime mo.Option[float64]

	// OnProgress receives snapshots during native playback and once at teardown.
	OnProgress func(Snapshot)

	// OnClose is called once when the user dismisses the player.
	OnClose func()

	HideDelay      time.Duration
	ReportInterval int
	SeekStep       float64
	Appearance     subtitle.Appearance

	// SubtitlePath is loaded as soon as the session starts.
	SubtitlePath string

	// WatchSubtitles reloads a loaded subtitle file whenever it changes on disk.
	WatchSubtitles bool

	// Standalone quits the program when the player is dismissed.
	Standalone bool
}

// OptionsFromConfig fills the timing and appearance options from the configuration.
func OptionsFromConfig(item Item) Options {
	return Options{
		Item:           item,
		InitialTime:    mo.None[float64](),
		HideDelay:      time.Duration(viper.GetInt(key.PlayerAutohideDelay)) * time.Second,
		ReportInterval: viper.GetInt(key.PlayerProgressInterval),
		SeekStep:       float64(viper.GetInt(key.PlayerSeekStep)),
		WatchSubtitles: viper.GetBool(key.SubtitlesWatch),
		Appearance: subtitle.ParseAppearance(
			viper.GetString(key.SubtitlesSize),
			viper.GetString(key.SubtitlesColor),
			viper.GetString(key.SubtitlesFont),
		),
	}
}

// ClosedMsg is emitted once the user dismissed the player.
type ClosedMsg struct{}

type (
	openedMsg struct{ err error }
	eventMsg  struct{ event Event }

	// backendGoneMsg reports the end of the event stream, with the process
	// exit error when the backend crashed.
	backendGoneMsg struct{ err error }

	tickMsg struct{ gen int }

	subtitleLoadedMsg struct {
		track  *subtitle.Track
		source string
		reload bool
		err    error
	}
)

// Session is the player as a Bubble Tea model. It owns one engine, one
// visibility router, one settings panel and one subtitle slot.
type Session struct {
	id   string
	opts Options

	engine   *Engine
	router   *controls.Router
	overlay  settings.Model
	store    *subtitle.Store
	slot     subtitle.Slot
	watcher  *subtitle.Watcher
	reporter *Reporter

	spinner  spinner.Model
	progress progress.Model
	help     help.Model

	width, height int
	status        string

	tickGen  int
	closed   bool
	notified bool
}

// NewSession validates the item and prepares a session playing it.
func NewSession(opts Options, native, embedded Backend) (*Session, error) {
	if opts.SeekStep <= 0 {
		opts.SeekStep = 10
	}
	if opts.Appearance == (subtitle.Appearance{}) {
		opts.Appearance = subtitle.DefaultAppearance()
	}

	engine := NewEngine(native, embedded)
	if err := engine.Load(opts.Item, opts.InitialTime); err != nil {
		return nil, err
	}

	s := &Session{
		id:       uuid.NewString(),
		opts:     opts,
		engine:   engine,
		router:   controls.New(opts.HideDelay),
		overlay:  settings.New(display.New(), opts.Appearance),
		store:    subtitle.NewStore(),
		reporter: NewReporter(opts.ReportInterval, opts.OnProgress),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style.New().Foreground(style.AccentColor))),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
	}

	log.WithFields(log.Fields{"session": s.id, "mode": engine.Mode().String()}).Infof("player session for %q", opts.Item.Title)
	return s, nil
}

// WithStore replaces the subtitle store. Intended for tests.
func (s *Session) WithStore(store *subtitle.Store) *Session {
	s.store = store
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Engine exposes the playback engine for inspection.
func (s *Session) Engine() *Engine { return s.engine }

// Router exposes the control visibility state.
func (s *Session) Router() *controls.Router { return s.router }

// Overlay returns the settings panel.
func (s *Session) Overlay() settings.Model { return s.overlay }

// Subtitle returns the active subtitle track.
func (s *Session) Subtitle() *subtitle.Track { return s.slot.Current() }

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool { return s.closed }

// Init implements tea.Model.
func (s *Session) Init() tea.Cmd {
	cmds := []tea.Cmd{s.launch(), s.router.Arm()}

	if s.engine.Mode() == ModeNative {
		cmds = append(cmds, s.spinner.Tick, s.tick())
	}

	if s.opts.SubtitlePath != "" {
		cmds = append(cmds, s.loadSubtitle(s.opts.SubtitlePath, false))
	}

	return tea.Batch(cmds...)
}

func (s *Session) launch() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		return openedMsg{err: engine.Launch()}
	}
}

func (s *Session) tick() tea.Cmd {
	gen := s.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *Session) waitForEvent() tea.Cmd {
	events := s.engine.Events()
	if events == nil {
		return nil
	}
	exitErr := s.engine.exitErr()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			var err error
			if exitErr != nil {
				err = exitErr()
			}
			return backendGoneMsg{err: err}
		}
		return eventMsg{event: event}
	}
}

func (s *Session) loadSubtitle(path string, reload bool) tea.Cmd {
	store := s.store
	return func() tea.Msg {
		track, err := store.Load(path)
		return subtitleLoadedMsg{track: track, source: path, reload: reload, err: err}
	}
}

// Update implements tea.Model.
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.closed {
		if loaded, ok := msg.(subtitleLoadedMsg); ok && loaded.track != nil {
			_ = loaded.track.Release()
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.progress.Width = max(msg.Width-40, 10)
		s.help.Width = msg.Width
		s.overlay = s.overlay.WithWidth(msg.Width)
		var cmd tea.Cmd
		s.overlay, cmd = s.overlay.Update(msg)
		return s, cmd

	case openedMsg:
		if msg.err != nil {
			s.engine.Fail(msg.err)
			return s, nil
		}
		if s.engine.Mode() != ModeNative {
			return s, nil
		}
		s.applyPresentation()
		return s, s.waitForEvent()

	case eventMsg:
		s.engine.Handle(msg.event)
		state := s.engine.State()
		s.overlay = s.overlay.WithAudio(state.Volume, state.Muted)
		return s, s.waitForEvent()

	case backendGoneMsg:
		if msg.err != nil {
			s.engine.Handle(FailureEvent{Err: fmt.Errorf("%w: %s", ErrPlayback, msg.err)})
			return s, nil
		}
		// a clean quit means the user closed the media window, which ends
		// playback like the close key
		return s, s.dismiss()

	case tickMsg:
		if msg.gen != s.tickGen {
			return s, nil
		}
		snap, ok := s.engine.Snapshot()
		s.reporter.Tick(s.engine.Active(), snap, ok)
		return s, s.tick()

	case controls.HideMsg:
		s.router.Hide(msg)
		return s, nil

	case spinner.TickMsg:
		if !s.engine.State().Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseMsg:
		return s, s.handleMouse(msg)

	case tea.KeyMsg:
		return s, s.handleKey(msg)

	case settings.TabChanged:
		s.router.OpenMenu(msg.Menu)
		return s, nil

	case settings.Dismissed:
		return s, s.router.CloseMenu()

	case settings.GeometryChanged:
		s.warn(s.engine.ApplyDisplay(msg.Geometry))
		return s, nil

	case settings.AppearanceChanged:
		s.warn(s.engine.ApplyAppearance(msg.Appearance))
		return s, nil

	case settings.DelayChanged:
		s.warn(s.engine.ApplyDelay(msg.Delay))
		return s, nil

	case settings.SubtitlePicked:
		return s, s.loadSubtitle(msg.Path, false)

	case subtitleLoadedMsg:
		return s, s.installSubtitle(msg)

	case subtitle.ChangedMsg:
		if s.watcher == nil || msg.Path != s.watcher.Path() {
			return s, nil
		}
		return s, tea.Batch(s.loadSubtitle(msg.Path, true), s.watcher.Next())
	}

	var cmd tea.Cmd
	s.overlay, cmd = s.overlay.Update(msg)
	return s, cmd
}

func (s *Session) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionMotion:
		return s.router.PointerMoved()
	case tea.MouseActionPress:
		cmds := []tea.Cmd{s.router.PointerMoved()}
		if s.overlay.IsOpen() && msg.Button == tea.MouseButtonLeft && !s.insideOverlay(msg.Y) {
			var cmd tea.Cmd
			s.overlay, cmd = s.overlay.Close()
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// insideOverlay reports whether row y is covered by the settings panel,
// which is always drawn at the bottom of the window.
func (s *Session) insideOverlay(y int) bool {
	if s.height == 0 {
		return true
	}
	return y >= s.height-s.overlay.Height()
}

func (s *Session) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return s.dismiss()
	}

	if s.overlay.IsOpen() {
		var cmd tea.Cmd
		s.overlay, cmd = s.overlay.Update(msg)
		return cmd
	}

	action, cmd := s.router.Route(msg)
	return tea.Batch(cmd, s.perform(action))
}

func (s *Session) perform(action controls.Action) tea.Cmd {
	state := s.engine.State()

	switch action {
	case controls.ActionTogglePlay:
		s.warn(s.engine.TogglePlay())
	case controls.ActionToggleFullscreen:
		s.warn(s.engine.ToggleFullscreen())
	case controls.ActionToggleMute:
		s.warn(s.engine.ToggleMute())
	case controls.ActionSeekForward:
		s.warn(s.engine.SeekBy(s.opts.SeekStep))
	case controls.ActionSeekBackward:
		s.warn(s.engine.SeekBy(-s.opts.SeekStep))
	case controls.ActionVolumeUp:
		s.warn(s.engine.SetVolume(roundTenth(state.Volume + 0.1)))
	case controls.ActionVolumeDown:
		s.warn(s.engine.SetVolume(roundTenth(state.Volume - 0.1)))
	case controls.ActionRateUp:
		s.warn(s.engine.SetRate(min(state.Rate+0.25, 4)))
	case controls.ActionRateDown:
		s.warn(s.engine.SetRate(max(state.Rate-0.25, 0.25)))
	case controls.ActionOpenSettings:
		var cmd tea.Cmd
		s.router.OpenMenu(controls.MenuVideo)
		s.overlay, cmd = s.overlay.Open(controls.MenuVideo)
		return cmd
	case controls.ActionToggleMinimized:
		return s.router.SetMinimized(!s.router.Minimized())
	case controls.ActionClose:
		return s.dismiss()
	}

	return nil
}

func (s *Session) applyPresentation() {
	if !s.engine.Controllable() {
		return
	}
	s.warn(s.engine.ApplyDisplay(s.overlay.Geometry()))
	s.warn(s.engine.ApplyAppearance(s.overlay.Appearance()))
	if track := s.slot.Current(); track != nil {
		s.warn(s.engine.ApplySubtitle(track))
	}
}

func (s *Session) installSubtitle(msg subtitleLoadedMsg) tea.Cmd {
	if msg.err != nil {
		s.status = "could not load subtitles: " + msg.err.Error()
		log.Warnf("load subtitles %s: %s", msg.source, msg.err)
		return nil
	}

	if err := s.slot.Replace(msg.track); err != nil {
		log.Warnf("release previous subtitles: %s", err)
	}
	s.overlay = s.overlay.WithSubtitleName(msg.track.Name())
	s.status = ""
	s.warn(s.engine.ApplySubtitle(msg.track))

	if msg.reload || !s.opts.WatchSubtitles {
		return nil
	}

	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}

	watcher, err := subtitle.Watch(msg.source)
	if err != nil {
		log.Warnf("watch subtitles %s: %s", msg.source, err)
		return nil
	}
	s.watcher = watcher
	return watcher.Next()
}

func (s *Session) warn(err error) {
	if err == nil || errors.Is(err, ErrNotControllable) {
		return
	}
	log.WithFields(log.Fields{"session": s.id}).Warn(err)
}

// dismiss tears the session down and notifies the caller exactly once.
func (s *Session) dismiss() tea.Cmd {
	if s.notified {
		return nil
	}
	s.notified = true

	if err := s.Close(); err != nil {
		log.Warnf("close player session: %s", err)
	}

	if s.opts.OnClose != nil {
		s.opts.OnClose()
	}

	closed := func() tea.Msg { return ClosedMsg{} }
	if s.opts.Standalone {
		return tea.Sequence(closed, tea.Quit)
	}
	return closed
}

// Close releases everything the session holds: timers first, then the final
// progress snapshot, the subtitle track, the listeners and finally the backend.
// It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.router.Stop()

	snap, ok := s.engine.Snapshot()
	s.reporter.Flush(snap, ok)
	s.tickGen++

	var errs []error
	errs = append(errs, s.slot.Release())

	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}

	errs = append(errs, s.engine.Close())

	log.WithFields(log.Fields{"session": s.id}).Info("player session closed")
	return errors.Join(errs...)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
