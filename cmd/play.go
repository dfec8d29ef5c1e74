package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumina-cli/lumina/history"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("title", "t", "", "Title shown by the player")
	playCmd.Flags().Float64P("start", "s", 0, "Start position in seconds, defaults to the saved progress")
	playCmd.Flags().String("sub", "", "Subtitle file (.srt or .vtt) to load on start")
}

// urlID derives a stable history id for a bare url.
func urlID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "url-" + hex.EncodeToString(sum[:6])
}

// playCmd plays any url without going through the catalog.
var playCmd = &cobra.Command{
	Use:     "play [url]",
	Short:   "Play a url in the player",
	Long:    "Open the player on a direct video url, a magnet link or an embeddable page.",
	Args:    cobra.ExactArgs(1),
	Example: "  lumina play https://example.com/video.mp4 --title Example --sub ./example.srt",
	Run: func(cmd *cobra.Command, args []string) {
		url := args[0]
		title := lo.Must(cmd.Flags().GetString("title"))
		if title == "" {
			title = url
		}

		item := player.Item{
			ID:       urlID(url),
			Title:    title,
			VideoURL: url,
		}
		handleErr(item.Validate())

		if !player.IsEmbedded(item) {
			CheckDependencies()
		}

		opts := player.OptionsFromConfig(item)
		opts.Standalone = true
		opts.SubtitlePath = lo.Must(cmd.Flags().GetString("sub"))

		if cmd.Flags().Changed("start") {
			opts.InitialTime = mo.Some(lo.Must(cmd.Flags().GetFloat64("start")))
		} else {
			opts.InitialTime = history.ResumePoint(item.ID)
		}

		entry := &history.Entry{ID: item.ID, Title: title, URL: url}
		if err := history.Save(entry); err != nil {
			log.Warnf("save history: %s", err)
		}

		opts.OnProgress = func(snap player.Snapshot) {
			if err := history.SaveProgress(item.ID, snap.Time, snap.Duration); err != nil {
				log.Warnf("save progress: %s", err)
			}
		}

		session, err := player.NewSession(opts, player.NativeBackend(), player.NewEmbed(viper.GetString(key.PlayerBrowser)))
		handleErr(err)
		defer util.Ignore(session.Close)

		programOptions := []tea.ProgramOption{tea.WithAltScreen()}
		if viper.GetBool(key.TUIMouse) {
			programOptions = append(programOptions, tea.WithMouseAllMotion())
		}

		_, err = tea.NewProgram(session, programOptions...).Run()
		handleErr(err)

		if snap, ok := session.Engine().Snapshot(); ok {
			fmt.Printf("stopped at %s\n", util.FormatDuration(snap.Time))
		}
	},
}
