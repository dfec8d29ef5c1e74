// Package config registers every setting lumina knows with its default and
// loads the user's values from the config file, the environment and dotenv files.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads the configuration. Precedence, from highest:
// flags, environment, .env files, lumina.toml, defaults.
func Setup() error {
	// godotenv never overrides variables that are already set
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(where.Config(), ".env"))

	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.Lumina)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Lumina)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
		viper.SetDefault(k, Default[k].Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}
