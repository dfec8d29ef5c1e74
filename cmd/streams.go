package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/inline"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/stream/custom"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(streamsCmd)

	streamsCmd.Flags().StringP("kind", "k", "", "movie or tv, defaults to tv when --season is set")
	streamsCmd.Flags().IntP("season", "s", 0, "Season number")
	streamsCmd.Flags().IntP("episode", "e", 1, "Episode number")
	streamsCmd.Flags().StringP("filter", "f", "", "Stream filter: "+strings.Join(stream.Filters, ", "))
	streamsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	lo.Must0(streamsCmd.RegisterFlagCompletionFunc("filter", completionFilters))
	lo.Must0(streamsCmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(catalog.Movie), string(catalog.TV)}, cobra.ShellCompDirectiveNoFileComp
	}))
}

// streamsCmd resolves sources for an IMDb id.
var streamsCmd = &cobra.Command{
	Use:     "streams [imdb-id]",
	Short:   "List the streams every enabled provider offers for an IMDb id",
	Args:    cobra.ExactArgs(1),
	Example: "  lumina streams tt0944947 --season 1 --episode 3 --filter leg",
	Run: func(cmd *cobra.Command, args []string) {
		req := stream.Request{
			IMDbID: args[0],
			Kind:   catalog.Kind(lo.Must(cmd.Flags().GetString("kind"))),
		}
		if !strings.HasPrefix(req.IMDbID, "tt") {
			handleErr(fmt.Errorf("invalid IMDb id: %s", req.IMDbID))
		}

		season := lo.Must(cmd.Flags().GetInt("season"))
		if req.Kind == "" {
			req.Kind = lo.Ternary(season > 0, catalog.TV, catalog.Movie)
		}

		switch req.Kind {
		case catalog.Movie:
		case catalog.TV:
			req.Season = lo.Max([]int{season, 1})
			req.Episode = lo.Max([]int{lo.Must(cmd.Flags().GetInt("episode")), 1})
		default:
			handleErr(fmt.Errorf("unknown kind %q, expected movie or tv", req.Kind))
		}

		filter := lo.Must(cmd.Flags().GetString("filter"))
		if filter == "" {
			filter = viper.GetString(key.StreamsFilter)
		}
		if !lo.Contains(stream.Filters, filter) {
			handleErr(fmt.Errorf("unknown filter %q, expected one of %s", filter, strings.Join(stream.Filters, ", ")))
		}

		ctx, cancel := context.WithTimeout(context.Background(), stream.Timeout())
		defer cancel()

		asJson := lo.Must(cmd.Flags().GetBool("json"))
		handleErr(inline.Streams(ctx, os.Stdout, req, custom.Enabled(), filter, asJson))
	},
}
