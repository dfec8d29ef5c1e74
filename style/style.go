// Package style renders text for the TUI and the command output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer with the foreground set to c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string {
		return New().Foreground(c).Render(s)
	}
}

// Truncate cuts the rendered text at width cells.
func Truncate(width int) func(string) string {
	return func(s string) string {
		return New().MaxWidth(width).Render(s)
	}
}

func Faint(s string) string {
	return New().Faint(true).Render(s)
}

func Bold(s string) string {
	return New().Bold(true).Render(s)
}

// Title is a padded badge in the accent color.
func Title(s string) string {
	return badge(AccentColor).Render(s)
}

// ErrorTitle is Title for failures.
func ErrorTitle(s string) string {
	return badge(ErrorColor).Render(s)
}

func badge(bg lipgloss.Color) lipgloss.Style {
	return New().Bold(true).Foreground(Base).Background(bg).Padding(0, 1)
}
