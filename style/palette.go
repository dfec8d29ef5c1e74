package style

import "github.com/charmbracelet/lipgloss"

// Truecolor palette of the interface, dark variant.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Subtext = lipgloss.Color("#a6adc8")
	Text    = lipgloss.Color("#cdd6f4")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	AccentColor = Mauve
	ErrorColor  = Red
	HiRed       = Red

	ActiveBorderColor = AccentColor
)
