// Package color holds the ANSI colors used by command output.
//
// The TUI uses the truecolor palette in the style package instead; these
// follow the user's terminal theme.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")

	HiBlue   = New("12")
	HiPurple = New("13")

	// Orange marks key bindings in help lines.
	Orange = New("#ffb703")
)
