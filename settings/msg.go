package settings

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/controls"
	"github.com/lumina-cli/lumina/display"
	"github.com/lumina-cli/lumina/subtitle"
)

// GeometryChanged is emitted when the aspect mode or zoom changes.
type GeometryChanged struct {
	Geometry display.Geometry
}

// AppearanceChanged is emitted when a subtitle size, color or font is picked.
type AppearanceChanged struct {
	Appearance subtitle.Appearance
}

// DelayChanged is emitted when the subtitle delay changes.
type DelayChanged struct {
	Delay subtitle.Delay
}

// SubtitlePicked is emitted when a subtitle file is chosen.
type SubtitlePicked struct {
	Path string
}

// TabChanged is emitted when another tab is selected.
type TabChanged struct {
	Menu controls.Menu
}

// Dismissed is emitted when the overlay closes.
type Dismissed struct{}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
