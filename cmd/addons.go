package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/internal/scraper"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/stream/custom"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(addonsCmd)
}

// addonsCmd manages stream providers.
var addonsCmd = &cobra.Command{
	Use:     "addons",
	Aliases: []string{"providers"},
	Short:   "Manage built-in stream providers and Lua addons",
}

func completionAddonNames(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	paths, err := custom.Paths()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(paths, func(p string, _ int) string {
		return util.FileStem(p)
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	addonsCmd.AddCommand(addonsListCmd)

	addonsListCmd.Flags().BoolP("raw", "r", false, "Suppress headers in the output")
	addonsListCmd.Flags().BoolP("custom", "c", false, "Display only Lua addons")
	addonsListCmd.Flags().BoolP("builtin", "b", false, "Display only built-in providers")

	addonsListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	addonsListCmd.SetOut(os.Stdout)
}

// addonsListCmd prints every known provider id.
var addonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display every available stream provider",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			builtins := stream.Builtins()
			ids := lo.Keys(builtins)
			slices.Sort(ids)
			for _, id := range ids {
				if printHeader {
					cmd.Printf("%s %s\n", id, style.Faint(builtins[id].Name()))
				} else {
					cmd.Println(id)
				}
			}
		}

		printCustom := func() {
			h("Custom:")
			paths, err := custom.Paths()
			handleErr(err)
			for _, p := range paths {
				cmd.Println(custom.IDfromName(util.FileStem(p)))
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	addonsCmd.AddCommand(addonsRemoveCmd)

	addonsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the addon(s) to remove")
	lo.Must0(addonsRemoveCmd.RegisterFlagCompletionFunc("name", completionAddonNames))
	lo.Must0(addonsRemoveCmd.MarkFlagRequired("name"))
}

// addonsRemoveCmd deletes Lua addons.
var addonsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove installed Lua addons",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			target := filepath.Join(where.Addons(), name+custom.Extension)
			handleErr(filesystem.API().Remove(target))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	addonsCmd.AddCommand(addonsInstallCmd)

	addonsInstallCmd.Flags().StringP("name", "n", "", "Name to install the addon as, defaults to the file name in the url")
}

// addonsInstallCmd downloads a Lua addon and checks that it loads.
var addonsInstallCmd = &cobra.Command{
	Use:     "install [url]",
	Short:   "Download a Lua addon",
	Args:    cobra.ExactArgs(1),
	Example: "  lumina addons install https://example.com/addons/mirror.lua",
	Run: func(cmd *cobra.Command, args []string) {
		remote := args[0]
		u, err := url.Parse(remote)
		handleErr(err)

		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = strings.TrimSuffix(path.Base(u.Path), custom.Extension)
		}
		name = util.SanitizeFilename(name)
		if name == "" {
			handleErr(fmt.Errorf("cannot derive an addon name from %s, use --name", remote))
		}

		target := filepath.Join(where.Addons(), name+custom.Extension)

		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), name))
		changed, err := scraper.Install(context.Background(), remote, target)
		erase()
		handleErr(err)

		addon, err := custom.Load(target)
		if err != nil {
			_ = filesystem.API().Remove(target)
			handleErr(err)
		}
		addon.Close()

		if changed {
			fmt.Printf("%s installed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(addon.ID()))
		} else {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), style.Fg(color.Yellow)(addon.ID()))
		}
	},
}

func init() {
	addonsCmd.AddCommand(addonsGenCmd)

	addonsGenCmd.Flags().StringP("name", "n", "", "Name of the new addon")
	addonsGenCmd.Flags().StringP("url", "u", "", "Base URL of the site the addon reads from")

	lo.Must0(addonsGenCmd.MarkFlagRequired("name"))
	lo.Must0(addonsGenCmd.MarkFlagRequired("url"))
}

// addonsGenCmd scaffolds a Lua addon.
var addonsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a new Lua addon from a template",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name      string
			URL       string
			StreamsFn string
			Author    string
		}{
			Name:      lo.Must(cmd.Flags().GetString("name")),
			URL:       lo.Must(cmd.Flags().GetString("url")),
			StreamsFn: constant.AddonStreamsFn,
			Author:    author,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("addon").Funcs(funcMap).Parse(constant.AddonTemplate)
		handleErr(err)

		target := filepath.Join(where.Addons(), util.SanitizeFilename(s.Name)+custom.Extension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}
