package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/favorites"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/style"
	"github.com/spf13/viper"
)

type episodeItem struct {
	season, number int
}

// listItem adapts the browsed values to list.Item.
type listItem struct {
	internal any
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case catalog.Title:
		title := e.String()
		if favorites.Has(e) {
			title += " " + lipgloss.NewStyle().Foreground(style.Yellow).Render(icon.Get(icon.Star))
		}
		return title
	case catalog.Season:
		if e.Name != "" {
			return e.Name
		}
		return fmt.Sprintf("Season %d", e.Number)
	case episodeItem:
		return fmt.Sprintf("Episode %d", e.number)
	case stream.Stream:
		return e.Heading()
	case *history.Entry:
		return e.String()
	case string:
		return e
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case catalog.Title:
		var parts []string
		if e.Kind == catalog.TV {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Blue).Render("Series"))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Peach).Render("Movie"))
		}
		if e.Rating > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", e.Rating)))
		}
		if viper.GetBool(key.TUIShowURLs) && e.PosterURL() != "" {
			parts = append(parts, style.Faint(e.PosterURL()))
		}
		return strings.Join(parts, " • ")
	case catalog.Season:
		return fmt.Sprintf("%d episodes", e.Episodes)
	case episodeItem:
		return fmt.Sprintf("S%02dE%02d", e.season, e.number)
	case stream.Stream:
		tags := strings.Join(e.Labels(), " ")
		color := style.Blue
		if e.Dubbed() {
			color = style.Green
		}
		desc := lipgloss.NewStyle().Foreground(color).Render(e.Origin) + " • " + tags
		if viper.GetBool(key.TUIShowURLs) {
			desc += " • " + style.Faint(e.Playable())
		}
		return desc
	case *history.Entry:
		desc := e.Position()
		if e.Resumable() {
			desc = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%s (%.0f%%)", desc, e.Progress()*100))
		} else if e.Progress() >= 0.95 {
			desc = lipgloss.NewStyle().Foreground(style.Green).Render(desc + " (Watched)")
		}
		return desc
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case catalog.Title:
		return e.Name
	case catalog.Season:
		return e.Name
	case episodeItem:
		return fmt.Sprint(e.number)
	case stream.Stream:
		return e.Title
	case *history.Entry:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
