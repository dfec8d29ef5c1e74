// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Configuration - these keys govern the retrieval of title metadata from TMDb.
const (
	CatalogAPIKey         = "catalog.api_key"
	CatalogLanguage       = "catalog.language"
	CatalogSearchDebounce = "catalog.search_debounce"
	CatalogIncludeAdult   = "catalog.include_adult"
)

// Stream Resolution - these keys select the addon endpoints queried for stream candidates.
const (
	StreamsProviders = "streams.providers"
	StreamsTimeout   = "streams.timeout"
	StreamsFilter    = "streams.default_filter"
)

// History Tracking - these keys configure the persistence of media consumption state.
const (
	HistorySave  = "history.save"
	HistoryLimit = "history.limit"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
	TUIMouse              = "tui.mouse"
)

// Media Playback - these keys maintain the state and configuration for the player session.
const (
	Player                 = "player.default"
	PlayerBrowser          = "player.browser"
	PlayerAutohideDelay    = "player.autohide_delay"
	PlayerProgressInterval = "player.progress_interval"
	PlayerSeekStep         = "player.seek_step"
	PlayerResume           = "player.resume"
)

// Subtitle Appearance - these keys hold the initial appearance of rendered cues.
const (
	SubtitlesSize  = "subtitles.size"
	SubtitlesColor = "subtitles.color"
	SubtitlesFont  = "subtitles.font"
	SubtitlesWatch = "subtitles.watch"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
	LogsKeep  = "logs.keep_days"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
