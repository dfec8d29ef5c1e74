package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/config"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/style"
	"github.com/lumina-cli/lumina/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// completionConfigValues offers the options of enumerated keys once the key is given.
func completionConfigValues(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return completionConfigKeys(nil, args, "")
	}

	field, err := config.Lookup(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	if _, ok := field.Value.(bool); ok {
		return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
	}

	return field.Options, cobra.ShellCompDirectiveNoFileComp
}

// lookupKey is config.Lookup with the suggestion colored.
func lookupKey(key string) config.Field {
	field, err := config.Lookup(key)

	var unknown *config.UnknownKeyError
	if errors.As(err, &unknown) {
		handleErr(fmt.Errorf(
			"unknown key %s, did you mean %s?",
			style.Fg(color.Red)(unknown.Key),
			style.Fg(color.Yellow)(unknown.Closest),
		))
	}

	return field
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Lumina+".toml")
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only show these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Output as json")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show config fields with their values and descriptions",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		if len(keys) == 0 {
			keys = lo.Keys(config.Default)
			sort.Strings(keys)
		}

		fields := lo.Map(keys, func(key string, _ int) *config.Field {
			field := lookupKey(key)
			return &field
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(field.Pretty())
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Set a config value",
	Long:              "Set a config value.\nList values take several arguments or a single comma separated one.",
	Example:           "  lumina config set streams.filter 4k\n  lumina config set streams.providers torrentio,brazuca",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigValues,
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		lookupKey(key)

		value, err := config.Parse(key, args[1:])
		handleErr(err)

		viper.Set(key, value)
		handleErr(config.Write())

		success("set %s to %s", style.Fg(color.Purple)(key), config.Highlight(value))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print a config value",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		lookupKey(args[0])
		fmt.Println(viper.Get(args[0]))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite the existing file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current config to a file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, _ := filesystem.API().Exists(path); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		success("deleted config")
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringSliceP("key", "k", nil, "Keys to reset")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore config values to their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		for _, key := range keys {
			lookupKey(key)
		}

		handleErr(config.Restore(keys...))

		if len(keys) == 0 {
			success("reset all config values")
			return
		}

		for _, key := range keys {
			success("reset %s to %s", style.Fg(color.Purple)(key), config.Highlight(config.Default[key].Value))
		}
	},
}
