// Package where resolves the directories and files lumina uses.
//
// Directory functions create the directory when it is missing, file
// functions only create their parent.
package where

import (
	"os"
	"path/filepath"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "LUMINA_CONFIG_PATH"

func mkdir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

func userDir(resolve func() (string, error), fallback string) string {
	if base, err := resolve(); err == nil {
		return base
	}
	return fallback
}

// Config is the user config directory, usually ~/.config/lumina.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return mkdir(custom)
	}
	return mkdir(userDir(os.UserConfigDir, "."), constant.Lumina)
}

func Cache() string {
	return mkdir(userDir(os.UserCacheDir, "cache"), constant.Lumina)
}

func Logs() string {
	return mkdir(Config(), "logs")
}

// Addons holds the Lua stream addons.
func Addons() string {
	return mkdir(Config(), "addons")
}

func History() string {
	return filepath.Join(Config(), "history.json")
}

func Favorites() string {
	return filepath.Join(Config(), "favorites.json")
}

// Queries keeps past searches for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

func Trending() string {
	return filepath.Join(Cache(), "trending.json")
}

// Temp is cleared on every start.
func Temp() string {
	return mkdir(os.TempDir(), constant.Lumina)
}

// Subtitles holds the tracks converted for the current playback.
func Subtitles() string {
	return mkdir(Temp(), "subtitles")
}
