// Package settings implements the tabbed player settings panel.
//
// The panel owns the presentation choices of a session (geometry, subtitle
// appearance and delay) and reports every change as a message. It never
// talks to the media backend itself.
package settings

import (
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/controls"
	"github.com/lumina-cli/lumina/display"
	"github.com/lumina-cli/lumina/subtitle"
)

var tabs = []controls.Menu{controls.MenuVideo, controls.MenuSubtitles, controls.MenuAudio}

type row int

const (
	rowAspect row = iota
	rowZoom
	rowResetZoom
)

const (
	rowLoad row = iota
	rowDelay
	rowResetDelay
	rowSize
	rowColor
	rowFont
)

var rowCount = [4]int{
	controls.MenuVideo:     3,
	controls.MenuSubtitles: 6,
	controls.MenuAudio:     0,
}

// Model is the settings panel.
type Model struct {
	open    bool
	tab     controls.Menu
	cursor  [4]row
	picking bool
	picker  filepicker.Model
	keys    keyMap
	help    help.Model
	width   int

	geometry     display.Geometry
	appearance   subtitle.Appearance
	delay        subtitle.Delay
	subtitleName string

	volume float64
	muted  bool
}

// New returns a closed panel holding the given presentation state.
func New(geometry display.Geometry, appearance subtitle.Appearance) Model {
	picker := filepicker.New()
	picker.AllowedTypes = []string{".srt", ".vtt"}
	if wd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = wd
	}

	return Model{
		tab:        controls.MenuVideo,
		picker:     picker,
		keys:       newKeyMap(),
		help:       help.New(),
		geometry:   geometry,
		appearance: appearance,
		volume:     1,
	}
}

// IsOpen reports whether the panel is shown.
func (m Model) IsOpen() bool { return m.open }

// Tab returns the selected tab.
func (m Model) Tab() controls.Menu { return m.tab }

// Picking reports whether the subtitle file picker is shown.
func (m Model) Picking() bool { return m.picking }

// Geometry returns the chosen geometry.
func (m Model) Geometry() display.Geometry { return m.geometry }

// Appearance returns the chosen subtitle appearance.
func (m Model) Appearance() subtitle.Appearance { return m.appearance }

// Delay returns the chosen subtitle delay.
func (m Model) Delay() subtitle.Delay { return m.delay }

// SubtitleName returns the name of the loaded subtitle file.
func (m Model) SubtitleName() string { return m.subtitleName }

// WithSubtitleName records the name of the loaded subtitle file.
func (m Model) WithSubtitleName(name string) Model {
	m.subtitleName = name
	return m
}

// WithAudio updates the read-only audio information.
func (m Model) WithAudio(volume float64, muted bool) Model {
	m.volume = volume
	m.muted = muted
	return m
}

// WithWidth sets the rendering width.
func (m Model) WithWidth(width int) Model {
	m.width = width
	m.help.Width = width
	return m
}

// WithDirectory sets the directory the file picker starts in.
func (m Model) WithDirectory(dir string) Model {
	m.picker.CurrentDirectory = dir
	return m
}

// Open shows the panel on tab.
func (m Model) Open(tab controls.Menu) (Model, tea.Cmd) {
	if !slices.Contains(tabs, tab) {
		tab = controls.MenuVideo
	}
	m.open = true
	m.tab = tab
	return m, emit(TabChanged{Menu: tab})
}

// Close hides the panel.
func (m Model) Close() (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	m.open = false
	m.picking = false
	return m, emit(Dismissed{})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles input while the panel is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.dismiss):
		return m.Close()
	case key.Matches(keyMsg, m.keys.nextTab):
		return m.selectTab(tabs[(slices.Index(tabs, m.tab)+1)%len(tabs)])
	case key.Matches(keyMsg, m.keys.prevTab):
		return m.selectTab(tabs[(slices.Index(tabs, m.tab)+len(tabs)-1)%len(tabs)])
	case key.Matches(keyMsg, m.keys.video):
		return m.selectTab(controls.MenuVideo)
	case key.Matches(keyMsg, m.keys.subtitles):
		return m.selectTab(controls.MenuSubtitles)
	case key.Matches(keyMsg, m.keys.audio):
		return m.selectTab(controls.MenuAudio)
	case key.Matches(keyMsg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(keyMsg, m.keys.decrease):
		return m.adjust(-1)
	case key.Matches(keyMsg, m.keys.increase):
		return m.adjust(1)
	case key.Matches(keyMsg, m.keys.activate):
		return m.activate()
	}

	return m, nil
}

func (m Model) selectTab(tab controls.Menu) (Model, tea.Cmd) {
	if tab == m.tab {
		return m, nil
	}
	m.tab = tab
	return m, emit(TabChanged{Menu: tab})
}

func (m *Model) moveCursor(delta int) {
	n := rowCount[m.tab]
	if n == 0 {
		return
	}
	m.cursor[m.tab] = row((int(m.cursor[m.tab]) + delta + n) % n)
}

func (m Model) adjust(delta int) (Model, tea.Cmd) {
	r := m.cursor[m.tab]

	switch m.tab {
	case controls.MenuVideo:
		switch r {
		case rowAspect:
			m.geometry = m.geometry.WithMode(cycle(display.Modes, m.geometry.Mode(), delta))
		case rowZoom:
			if delta > 0 {
				m.geometry = m.geometry.ZoomIn()
			} else {
				m.geometry = m.geometry.ZoomOut()
			}
		default:
			return m, nil
		}
		return m, emit(GeometryChanged{Geometry: m.geometry})

	case controls.MenuSubtitles:
		switch r {
		case rowDelay:
			if delta > 0 {
				m.delay = m.delay.Increase()
			} else {
				m.delay = m.delay.Decrease()
			}
			return m, emit(DelayChanged{Delay: m.delay})
		case rowSize:
			m.appearance.Size = cycle(subtitle.Sizes, m.appearance.Size, delta)
		case rowColor:
			m.appearance.Color = cycle(subtitle.Colors, m.appearance.Color, delta)
		case rowFont:
			m.appearance.Font = cycle(subtitle.Fonts, m.appearance.Font, delta)
		default:
			return m, nil
		}
		return m, emit(AppearanceChanged{Appearance: m.appearance})
	}

	return m, nil
}

func (m Model) activate() (Model, tea.Cmd) {
	r := m.cursor[m.tab]

	switch {
	case m.tab == controls.MenuVideo && r == rowResetZoom:
		m.geometry = m.geometry.ResetZoom()
		return m, emit(GeometryChanged{Geometry: m.geometry})
	case m.tab == controls.MenuSubtitles && r == rowResetDelay:
		m.delay = 0
		return m, emit(DelayChanged{Delay: m.delay})
	case m.tab == controls.MenuSubtitles && r == rowLoad:
		m.picking = true
		return m, m.picker.Init()
	case m.tab == controls.MenuVideo || m.tab == controls.MenuSubtitles:
		return m.adjust(1)
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEscape {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.picking = false
		return m, tea.Batch(cmd, emit(SubtitlePicked{Path: path}))
	}

	return m, cmd
}

// cycle returns the option delta steps away from current, wrapping around.
func cycle[T comparable](options []T, current T, delta int) T {
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+delta)%n+n)%n]
}
