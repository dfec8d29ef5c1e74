// Package icon renders symbols in the variant picked by the icons.variant key.
package icon

import (
	"github.com/lumina-cli/lumina/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type glyphs struct {
	emoji, nerd, plain, kaomoji, squares string
}

func (g glyphs) in(variant string) string {
	switch variant {
	case emoji:
		return g.emoji
	case nerd:
		return g.nerd
	case plain:
		return g.plain
	case kaomoji:
		return g.kaomoji
	case squares:
		return g.squares
	}
	return ""
}

// Get renders i, or nothing for an unknown variant.
func Get(i Icon) string {
	return icons[i].in(viper.GetString(key.IconsVariant))
}
