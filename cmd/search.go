package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/inline"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/query"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/stream/custom"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	searchCmd.Flags().BoolP("first", "1", false, "Keep only the title closest to the query")
	searchCmd.Flags().StringP("pick", "p", "", "Keep a single title: first, last, closest or an index")
	searchCmd.Flags().BoolP("streams", "s", false, "Resolve streams for the selected titles")
	searchCmd.Flags().StringP("filter", "f", "", "Stream filter: "+strings.Join(stream.Filters, ", "))
	searchCmd.Flags().Int("season", 1, "Season resolved for series")
	searchCmd.Flags().Int("episode", 1, "Episode resolved for series")
	searchCmd.Flags().StringP("output", "o", "", "Write the output to a file")
	searchCmd.Flags().Bool("schema", false, "Print the JSON schema of the output and exit")

	searchCmd.MarkFlagsMutuallyExclusive("first", "pick")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("filter", completionFilters))

	searchCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func completionFilters(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return stream.Filters, cobra.ShellCompDirectiveNoFileComp
}

func schemaReflector() *jsonschema.Reflector {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "title", "stream", "request", "output", "result":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}
	return reflector
}

// searchCmd runs a catalog search without the interface.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog and print the results",
	Long: `Search movies and series and print them, optionally with their streams.

Selectors for --pick:
  first - first title in the results
  last - last title in the results
  closest - title whose name is closest to the query
  [number] - title by index (starting from 0)`,
	Example: "  lumina search dune --first --streams --filter 4k --json",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(schemaReflector().Reflect(&inline.Output{})))
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		q := args[0]
		client, err := catalog.FromConfig()
		handleErr(err)

		picker := mo.None[inline.Picker]()
		selector := lo.Must(cmd.Flags().GetString("pick"))
		if lo.Must(cmd.Flags().GetBool("first")) {
			selector = "closest"
		}
		if selector != "" {
			fn, err := inline.ParsePicker(selector, q)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:     os.Stdout,
			Client:  client,
			Query:   q,
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Picker:  picker,
			Streams: lo.Must(cmd.Flags().GetBool("streams")),
			Filter:  lo.Must(cmd.Flags().GetString("filter")),
			Season:  lo.Must(cmd.Flags().GetInt("season")),
			Episode: lo.Must(cmd.Flags().GetInt("episode")),
		}

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer f.Close()
			options.Out = f
		}

		if options.Filter == "" {
			options.Filter = viper.GetString(key.StreamsFilter)
		}

		if options.Streams {
			options.Providers = custom.Enabled()
		}

		ctx, cancel := context.WithTimeout(context.Background(), stream.Timeout())
		defer cancel()

		handleErr(inline.Run(ctx, options))

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}
	},
}
