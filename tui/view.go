package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/style"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case searchState:
		output = b.viewSearch()
	case errorState:
		output = b.viewError()
	case playState:
		if b.session != nil {
			output = paddingStyle.Render(b.session.View())
		}
	default:
		if l := b.listFor(b.state); l != nil {
			output = listExtraPaddingStyle.Render(l.View())
		}
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) listFor(s state) *list.Model {
	switch s {
	case resultsState:
		return &b.resultsC
	case seasonsState:
		return &b.seasonsC
	case episodesState:
		return &b.episodesC
	case streamsState:
		return &b.streamsC
	case historyState:
		return &b.historyC
	case favoritesState:
		return &b.favoritesC
	}
	return nil
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != strings.ToLower(strings.TrimSpace(b.inputC.Value())) {
		lines = append(lines, style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	heading := "Trending this week"
	if strings.TrimSpace(b.inputC.Value()) != "" {
		heading = "Results"
	}

	lines = append(lines, "", style.Fg(color.Purple)(heading))

	preview := b.results
	if limit := b.height - len(lines) - 4; limit >= 0 && len(preview) > limit {
		preview = preview[:limit]
	}
	for _, t := range preview {
		lines = append(lines, style.Truncate(b.width)(fmt.Sprintf("  %s", t)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	lines := []string{
		style.ErrorTitle("Error"),
		"",
		wrap.String(style.New().Bold(true).Foreground(style.HiRed).Render(icon.Get(icon.Fail)+" "+b.lastError.Error()), b.width),
	}

	if errors.Is(b.lastError, catalog.ErrNoAPIKey) {
		lines = append(lines, "", style.Faint("Set a TMDb key with "+constant.Lumina+" auth"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
