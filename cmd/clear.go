package cmd

import (
	"fmt"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/favorites"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/query"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is something the user may wipe.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), clearCache},
	{"watch history", "history", mo.Some("s"), history.Clear},
	{"favorites", "favorites", mo.Some("f"), favorites.Clear},
	{"queries history", "queries", mo.Some("q"), query.Clear},
}

// clearCache drops the in-memory caches before removing their files.
func clearCache() error {
	if err := catalog.ClearCache(); err != nil {
		return err
	}
	if err := query.Clear(); err != nil {
		return err
	}
	return filesystem.API().RemoveAll(where.Cache())
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd wipes cached and persisted data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached data, the watch history, favorites or past queries",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := target.clear()
			e()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
