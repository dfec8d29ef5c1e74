package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/util"
	"github.com/muesli/reflow/wordwrap"
)

// View implements tea.Model.
func (s *Session) View() string {
	if s.closed {
		return ""
	}

	state := s.engine.State()

	if s.router.Minimized() {
		return s.viewMinimized(state)
	}

	lines := []string{s.viewTitle(), ""}

	switch {
	case state.Failed():
		lines = append(lines,
			style.ErrorTitle("Playback error"),
			style.Fg(color.Red)(wrap(state.Err.Error(), s.width)),
		)
	case s.engine.Mode() == ModeEmbedded:
		lines = append(lines,
			fmt.Sprintf("%s Playing in the browser", icon.Get(icon.Link)),
			style.Faint(wrap(s.engine.Target(), s.width)),
			style.Faint("Embedded players cannot be controlled from here."),
		)
	case state.Loading:
		lines = append(lines, s.spinner.View()+" Loading...")
	}

	if s.router.Visible() && s.engine.Mode() == ModeNative && !state.Failed() {
		lines = append(lines, "", s.viewTransport(state), "", s.help.View(s.router.Keys()))
	}

	if s.status != "" {
		lines = append(lines, "", style.Fg(color.Yellow)(s.status))
	}

	body := strings.Join(lines, "\n")

	if !s.overlay.IsOpen() {
		return body
	}

	panel := s.overlay.View()
	if s.height > 0 {
		gap := s.height - lipgloss.Height(body) - lipgloss.Height(panel)
		if gap > 0 {
			body += strings.Repeat("\n", gap)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, panel)
}

func (s *Session) viewTitle() string {
	item := s.engine.Item()
	title := style.Title(item.Title)
	if item.Provider != "" {
		title += " " + style.Faint(item.Provider)
	}
	return title
}

func (s *Session) viewTransport(state State) string {
	play := icon.Get(icon.Pause)
	if state.Playing {
		play = icon.Get(icon.Play)
	}

	var percent float64
	if state.Duration > 0 {
		percent = state.CurrentTime / state.Duration
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(state.Volume*100+0.5))
	if state.MutedIcon() {
		volume = icon.Get(icon.Muted) + " muted"
	}

	parts := []string{
		play,
		fmt.Sprintf("%s / %s", util.FormatDuration(state.CurrentTime), util.FormatDuration(state.Duration)),
		s.progress.ViewAs(percent),
		volume,
		fmt.Sprintf("%.2gx", state.Rate),
	}

	if track := s.slot.Current(); track != nil {
		parts = append(parts, icon.Get(icon.Subtitle))
	}

	return strings.Join(parts, "  ")
}

func (s *Session) viewMinimized(state State) string {
	play := icon.Get(icon.Pause)
	if state.Playing {
		play = icon.Get(icon.Play)
	}
	return fmt.Sprintf("%s %s %s %s",
		play,
		s.engine.Item().Title,
		style.Faint(util.FormatDuration(state.CurrentTime)),
		style.Faint("(i to expand)"),
	)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
