// Package custom runs user-provided Lua stream addons.
package custom

import (
	"fmt"
	"path/filepath"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/internal/scraper"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/stream"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/where"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

// Extension of addon scripts.
const Extension = ".lua"

// IDfromName returns the provider id of the addon stored as name.lua.
func IDfromName(name string) string {
	return name + " custom"
}

// Load compiles the script at path and checks it defines Streams.
func Load(path string) (*Addon, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)
	if state.GetGlobal(constant.AddonStreamsFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.AddonStreamsFn, name)
	}

	return newAddon(name, state), nil
}

// Paths lists the addon scripts installed in the addons directory.
func Paths() ([]string, error) {
	files, err := filesystem.API().ReadDir(where.Addons())
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != Extension {
			continue
		}
		paths = append(paths, filepath.Join(where.Addons(), f.Name()))
	}

	return paths, nil
}

// Addons loads every installed addon. Broken scripts are logged and skipped.
func Addons() []stream.Provider {
	paths, err := Paths()
	if err != nil {
		log.Warnf("could not list addons: %s", err)
		return nil
	}

	var providers []stream.Provider
	for _, path := range paths {
		addon, err := Load(path)
		if err != nil {
			log.Warnf("skipping addon %s: %s", path, err)
			continue
		}
		providers = append(providers, addon)
	}

	return providers
}

// Enabled returns the configured built-in providers followed by every Lua addon.
func Enabled() []stream.Provider {
	return append(stream.Enabled(viper.GetStringSlice(key.StreamsProviders)), Addons()...)
}
