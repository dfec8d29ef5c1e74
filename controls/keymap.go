package controls

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists the transport bindings honored while no menu is open.
type KeyMap struct {
	PlayPause, Fullscreen, Mute,
	SeekForward, SeekBackward,
	VolumeUp, VolumeDown,
	RateUp, RateDown,
	Settings, Minimize, Close key.Binding
}

// DefaultKeyMap returns the standard transport bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "play/pause"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "+10s"),
		),
		SeekBackward: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "-10s"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "faster"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "slower"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "minimize"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.SeekBackward, k.SeekForward, k.Settings, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.SeekBackward, k.SeekForward, k.Fullscreen},
		{k.Mute, k.VolumeUp, k.VolumeDown},
		{k.RateDown, k.RateUp},
		{k.Settings, k.Minimize, k.Close},
	}
}
