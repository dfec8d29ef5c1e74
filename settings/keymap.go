package settings

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	nextTab, prevTab,
	video, subtitles, audio,
	up, down, decrease, increase,
	activate, dismiss key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		video: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "video"),
		),
		subtitles: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "subtitles"),
		),
		audio: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "audio"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "close"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.decrease, k.increase, k.activate, k.dismiss}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab, k.video, k.subtitles, k.audio},
		{k.up, k.down, k.decrease, k.increase},
		{k.activate, k.dismiss},
	}
}
