package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	flag  string
	short string
	path  func() string
	// listed without a flag
	visible bool
}

var locations = []location{
	{"config", "c", where.Config, true},
	{"addons", "a", where.Addons, true},
	{"logs", "l", where.Logs, true},
	{"cache", "", where.Cache, false},
	{"temp", "", where.Temp, false},
	{"subtitles", "", where.Subtitles, false},
	{"history", "", where.History, false},
	{"favorites", "", where.Favorites, false},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short, false, fmt.Sprintf("Print the %s path", l.flag))
		if !l.visible {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}
	flags.BoolP("json", "j", false, "Print every path as json")

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths lumina reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				fmt.Println(l.path())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(locations, func(l location) (string, string) {
				return l.flag, l.path()
			})
			handleErr(json.NewEncoder(os.Stdout).Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, l := range lo.Filter(locations, func(l location, _ int) bool { return l.visible }) {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s %s\n%s\n", header(util.Capitalize(l.flag)+"?"), style.Fg(color.Yellow)("--"+l.flag), l.path())
		}
	},
}
