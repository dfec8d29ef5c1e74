// Package cmd implements the command-line interface for lumina.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/stream/custom"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/tui"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/version"
	"github.com/lumina-cli/lumina/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist playback progress to the watch history")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringSliceP("provider", "P", []string{}, "Stream providers to query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", completionProviders))
	lo.Must0(viper.BindPFlag(key.StreamsProviders, rootCmd.PersistentFlags().Lookup("provider")))

	rootCmd.Flags().BoolP("continue", "c", false, "Open the watch history instead of the search")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// leftovers of a previous run; subtitles are converted into it later
	_ = util.Delete(where.Temp())
}

func completionProviders(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	ids := lo.Keys(stream.Builtins())
	slices.Sort(ids)

	paths, err := custom.Paths()
	if err != nil {
		return ids, cobra.ShellCompDirectiveNoFileComp
	}

	for _, path := range paths {
		ids = append(ids, custom.IDfromName(util.FileStem(path)))
	}

	return ids, cobra.ShellCompDirectiveNoFileComp
}

// rootCmd opens the interactive browser.
var rootCmd = &cobra.Command{
	Use:   constant.Lumina,
	Short: "A terminal front-end for browsing movies and series and watching them",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - A terminal front-end for browsing movies and series and watching them"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
		}

		client, err := catalog.FromConfig()
		switch {
		case err == nil:
			options.Client = client
		case errors.Is(err, catalog.ErrNoAPIKey):
			// browsing reports the missing key itself, history works without it
			log.Warn(err)
		default:
			handleErr(err)
		}

		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
