package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/lumina-cli/lumina/color"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered config key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string

	// Options, when set, are the only accepted values of a string field.
	Options []string
}

func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable overriding the field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Lumina + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Default holds every known field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func register(k string, v any, desc string, options ...string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	if len(options) > 0 {
		desc += "\nAvailable options are: " + strings.Join(options, ", ")
	}

	Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.CatalogAPIKey, "", "TMDb API key (v3).\nFalls back to the system keyring, see \"lumina auth\"")
	register(key.CatalogLanguage, "en-US", "Language used for titles and overviews returned by TMDb")
	register(key.CatalogSearchDebounce, 600, "Milliseconds to wait after the last keystroke before searching")
	register(key.CatalogIncludeAdult, false, "Include adult titles in search results")

	register(key.StreamsProviders, []string{"torrentio", "brazuca"}, "Enabled stream addons.\nBuilt-ins: torrentio, brazuca. Lua addons are referenced by file name")
	register(key.StreamsTimeout, 15, "Seconds to wait for a single addon before giving up on it")
	register(key.StreamsFilter, "all", "Initial stream filter", "all", "dub", "leg", "4k")

	register(key.HistorySave, true, "Save titles to the watch history when played")
	register(key.HistoryLimit, 30, "Maximum number of entries kept in the watch history")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")

	register(key.IconsVariant, "plain", "Icons variant, nerd requires a nerd font", "emoji", "kaomoji", "plain", "squares", "nerd")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "From less to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsKeep, 7, "Days to keep old log files.\n0 keeps them forever")

	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIShowURLs, false, "Show stream URLs under list items")
	register(key.TUIMouse, true, "Report mouse motion to the player so controls reappear on movement")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")

	register(key.Player, "mpv", "Native media player backend, iina is macOS only", "mpv", "iina")
	register(key.PlayerBrowser, "", "Application used to open embedded players.\nEmpty means the system default browser")
	register(key.PlayerAutohideDelay, 3, "Seconds of inactivity before the player controls are hidden")
	register(key.PlayerProgressInterval, 5, "Seconds of active playback between progress snapshots")
	register(key.PlayerSeekStep, 10, "Seconds skipped by the seek keys")
	register(key.PlayerResume, true, "Resume titles from the last saved position")

	register(key.SubtitlesSize, "medium", "Initial subtitle size", "small", "medium", "large", "extra")
	register(key.SubtitlesColor, "white", "Initial subtitle color", "white", "yellow", "green", "cyan")
	register(key.SubtitlesFont, "sans", "Initial subtitle font", "sans", "mono", "serif")
	register(key.SubtitlesWatch, true, "Reload an uploaded subtitle file when it changes on disk")
}

// Highlight colors a value the way config output shows it.
func Highlight(v any) string {
	switch value := v.(type) {
	case bool:
		b := strconv.FormatBool(value)
		if value {
			return style.Fg(color.Green)(b)
		}
		return style.Fg(color.Red)(b)
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return style.Fg(color.Yellow)(fmt.Sprint(value))
	}
}

var prettyTemplate = template.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"purple": style.Fg(color.Purple),
	"blue":   style.Fg(color.Blue),
	"value":  viper.Get,
	"hl":     Highlight,
	"typename": func(f *Field) string {
		return f.typeName()
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ typename . }}`))
