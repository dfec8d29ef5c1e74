// Package ui shows short-lived notifications at the bottom of a view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// NotificationMsg asks the model to show Text.
type NotificationMsg struct {
	Text string
}

type clearMsg struct{ gen int }

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// Model holds the current notification. A newer notification restarts the timer.
type Model struct {
	notification string
	gen          int
}

// Text returns the notification currently shown.
func (m *Model) Text() string {
	return m.notification
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.gen++
		gen := m.gen
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return clearMsg{gen: gen}
		})
	case clearMsg:
		if msg.gen == m.gen {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
