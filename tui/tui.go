// Package tui is the interactive catalog browser that hands playback to the player.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/stream/custom"
	"github.com/spf13/viper"
)

// Options configures the interface.
type Options struct {
	// Continue opens the history instead of the search.
	Continue bool

	// Client is the catalog client. Nil means no API key is available.
	Client *catalog.Client

	// Providers resolve streams. Nil means the configured ones.
	Providers []stream.Provider

	// Backends builds the player backends for one session. Nil means mpv and the browser.
	Backends func() (native, embedded player.Backend)
}

func (o *Options) providers() []stream.Provider {
	if o.Providers == nil {
		o.Providers = custom.Enabled()
	}
	return o.Providers
}

func (o *Options) backends() (player.Backend, player.Backend) {
	if o.Backends != nil {
		return o.Backends()
	}
	return player.NativeBackend(), player.NewEmbed(viper.GetString(key.PlayerBrowser))
}

// Run starts the interface and blocks until it exits.
func Run(options *Options) error {
	bubble := newBubble(options)

	programOptions := []tea.ProgramOption{tea.WithAltScreen()}
	if viper.GetBool(key.TUIMouse) {
		programOptions = append(programOptions, tea.WithMouseAllMotion())
	}

	_, err := tea.NewProgram(bubble, programOptions...).Run()
	bubble.closeSession()
	return err
}
