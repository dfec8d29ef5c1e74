package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/controls"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/util"
)

var (
	panelStyle = style.New().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.ActiveBorderColor).
			Padding(0, 1)
	activeTab   = style.New().Bold(true).Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	inactiveTab = style.New().Foreground(style.Subtext).Padding(0, 1)
	selected    = style.New().Foreground(style.AccentColor).Bold(true)
)

var tabTitles = [4]string{
	controls.MenuVideo:     "Video",
	controls.MenuSubtitles: "Subtitles",
	controls.MenuAudio:     "Audio",
}

// View renders the panel, or nothing when it is closed.
func (m Model) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder

	titles := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab == m.tab {
			titles = append(titles, activeTab.Render(tabTitles[tab]))
		} else {
			titles = append(titles, inactiveTab.Render(tabTitles[tab]))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, titles...))
	b.WriteString("\n\n")

	switch {
	case m.picking:
		b.WriteString(style.Faint("Choose a subtitle file (.srt, .vtt), esc to cancel"))
		b.WriteString("\n")
		b.WriteString(m.picker.View())
	case m.tab == controls.MenuVideo:
		b.WriteString(m.rows([]string{
			m.field("Aspect ratio", m.geometry.Mode().String()),
			m.field("Zoom", fmt.Sprintf("%.1fx", m.geometry.Zoom())),
			"Reset zoom",
		}))
	case m.tab == controls.MenuSubtitles:
		name := m.subtitleName
		if name == "" {
			name = style.Faint("none")
		}
		b.WriteString(m.rows([]string{
			m.field("File", name),
			m.field("Delay", m.delay.String()),
			"Reset delay",
			m.field("Size", m.appearance.Size.String()),
			m.field("Color", style.New().Foreground(lipgloss.Color(string(m.appearance.Color))).Render(m.appearance.Color.String())),
			m.field("Font", m.appearance.Font.String()),
		}))
	case m.tab == controls.MenuAudio:
		state := fmt.Sprintf("%d%%", int(m.volume*100+0.5))
		if m.muted {
			state += " (muted)"
		}
		b.WriteString(m.field("Volume", state))
		b.WriteString("\n")
		b.WriteString(style.Faint("Audio tracks and channels depend on the source file\nand cannot be switched from here."))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	panel := panelStyle
	if m.width > 0 {
		panel = panel.Width(util.Max(m.width-2, 20))
	}
	return panel.Render(b.String())
}

// Height returns the number of lines the panel occupies.
func (m Model) Height() int {
	if !m.open {
		return 0
	}
	return lipgloss.Height(m.View())
}

func (m Model) field(name, value string) string {
	return fmt.Sprintf("%-13s %s", name, value)
}

func (m Model) rows(lines []string) string {
	cursor := int(m.cursor[m.tab])
	for i, line := range lines {
		if i == cursor {
			lines[i] = selected.Render("› " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
