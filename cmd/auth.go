package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lumina-cli/lumina/auth"
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/icon"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().BoolP("delete", "d", false, "Remove the stored TMDb API key")
	authCmd.Flags().Bool("skip-check", false, "Store the key without checking it against TMDb")
}

// authCmd stores the TMDb API key in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store the TMDb API key used for browsing the catalog",
	Long: `Prompt for a TMDb API key and store it in the system keyring.
A key set in the configuration or through LUMINA_CATALOG_API_KEY takes precedence.
Keys can be created at https://www.themoviedb.org/settings/api`,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("delete")) {
			err := auth.DeleteAPIKey()
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Printf("%s no key stored\n", icon.Get(icon.Success))
				return
			}
			handleErr(err)
			fmt.Printf("%s key removed\n", icon.Get(icon.Success))
			return
		}

		if _, err := auth.GetAPIKey(); err == nil {
			confirm := survey.Confirm{
				Message: "A key is already stored. Replace it?",
				Default: false,
			}
			var replace bool
			handleErr(survey.AskOne(&confirm, &replace))
			if !replace {
				return
			}
		}

		prompt := survey.Password{
			Message: "TMDb API key:",
			Help:    "The v3 API key from https://www.themoviedb.org/settings/api",
		}
		var response string
		handleErr(survey.AskOne(&prompt, &response, survey.WithValidator(survey.Required)))
		response = strings.TrimSpace(response)

		if !lo.Must(cmd.Flags().GetBool("skip-check")) {
			if _, err := catalog.New(response).SearchMulti(context.Background(), "a"); err != nil {
				handleErr(fmt.Errorf("TMDb rejected the key: %w", err))
			}
		}

		handleErr(auth.SetAPIKey(response))
		fmt.Printf("%s key stored\n", icon.Get(icon.Success))
	},
}
