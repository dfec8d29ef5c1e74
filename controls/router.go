// Package controls decides when the player transport controls are shown and
// turns keyboard input into playback actions.
//
// All methods are meant to be called from a single Bubble Tea Update loop.
// Timers are plain tea.Tick commands tagged with a generation number:
// disarming a timer only bumps the generation so the late tick is ignored.
package controls

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHideDelay is the inactivity period after which controls are hidden.
const DefaultHideDelay = 3 * time.Second

// Menu is the settings submenu currently open.
type Menu int

const (
	MenuNone Menu = iota
	MenuSubtitles
	MenuVideo
	MenuAudio
)

func (m Menu) String() string {
	switch m {
	case MenuSubtitles:
		return "subtitles"
	case MenuVideo:
		return "video"
	case MenuAudio:
		return "audio"
	default:
		return "none"
	}
}

// Action is a routed playback intent.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePlay
	ActionToggleFullscreen
	ActionToggleMute
	ActionSeekForward
	ActionSeekBackward
	ActionVolumeUp
	ActionVolumeDown
	ActionRateUp
	ActionRateDown
	ActionOpenSettings
	ActionToggleMinimized
	ActionClose
)

// HideMsg is delivered when an auto-hide timer fires.
type HideMsg struct {
	Gen int
}

// Router is the control visibility state machine.
type Router struct {
	keys  KeyMap
	delay time.Duration

	visible   bool
	menu      Menu
	minimized bool
	closed    bool
	gen       int
}

// New returns a router with visible controls. Call Arm to start the timer.
func New(delay time.Duration) *Router {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &Router{
		keys:    DefaultKeyMap(),
		delay:   delay,
		visible: true,
	}
}

// Visible reports whether the controls overlay is shown.
func (r *Router) Visible() bool { return r.visible && !r.minimized }

// Menu returns the open submenu.
func (r *Router) Menu() Menu { return r.menu }

// Minimized reports whether the player is minimized.
func (r *Router) Minimized() bool { return r.minimized }

// Keys returns the bindings used for routing.
func (r *Router) Keys() KeyMap { return r.keys }

// Arm restarts the inactivity timer. Earlier timers become stale.
func (r *Router) Arm() tea.Cmd {
	r.gen++
	if r.minimized || r.closed {
		return nil
	}

	gen := r.gen
	return tea.Tick(r.delay, func(time.Time) tea.Msg {
		return HideMsg{Gen: gen}
	})
}

// PointerMoved shows the controls and re-arms the timer.
func (r *Router) PointerMoved() tea.Cmd {
	if r.minimized || r.closed {
		return nil
	}
	r.visible = true
	return r.Arm()
}

// Hide applies a timer firing.
// Stale firings and firings while minimized or while a menu is open are ignored.
func (r *Router) Hide(msg HideMsg) {
	if msg.Gen != r.gen || r.closed || r.minimized || r.menu != MenuNone {
		return
	}
	r.visible = false
}

// OpenMenu opens a submenu. The controls stay visible until it closes.
func (r *Router) OpenMenu(m Menu) {
	if m == MenuNone {
		return
	}
	r.menu = m
	r.visible = true
}

// CloseMenu closes the open submenu and re-arms the timer.
func (r *Router) CloseMenu() tea.Cmd {
	if r.menu == MenuNone {
		return nil
	}
	r.menu = MenuNone
	return r.PointerMoved()
}

// SetMinimized enters or leaves minimized mode.
func (r *Router) SetMinimized(minimized bool) tea.Cmd {
	if minimized == r.minimized {
		return nil
	}

	r.minimized = minimized
	if minimized {
		r.menu = MenuNone
		r.visible = false
		r.gen++
		return nil
	}

	r.visible = true
	return r.Arm()
}

// Stop disarms every timer permanently.
func (r *Router) Stop() {
	r.closed = true
	r.gen++
}

// Route maps a key press to an action. Keys only count while no menu is open.
// A routed key also counts as activity and re-arms the timer.
func (r *Router) Route(msg tea.KeyMsg) (Action, tea.Cmd) {
	if r.menu != MenuNone || r.closed {
		return ActionNone, nil
	}

	var action Action
	switch {
	case key.Matches(msg, r.keys.PlayPause):
		action = ActionTogglePlay
	case key.Matches(msg, r.keys.Fullscreen):
		action = ActionToggleFullscreen
	case key.Matches(msg, r.keys.Mute):
		action = ActionToggleMute
	case key.Matches(msg, r.keys.SeekForward):
		action = ActionSeekForward
	case key.Matches(msg, r.keys.SeekBackward):
		action = ActionSeekBackward
	case key.Matches(msg, r.keys.VolumeUp):
		action = ActionVolumeUp
	case key.Matches(msg, r.keys.VolumeDown):
		action = ActionVolumeDown
	case key.Matches(msg, r.keys.RateUp):
		action = ActionRateUp
	case key.Matches(msg, r.keys.RateDown):
		action = ActionRateDown
	case key.Matches(msg, r.keys.Settings):
		action = ActionOpenSettings
	case key.Matches(msg, r.keys.Minimize):
		action = ActionToggleMinimized
	case key.Matches(msg, r.keys.Close):
		action = ActionClose
	default:
		return ActionNone, nil
	}

	return action, r.PointerMoved()
}
