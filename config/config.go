// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// DotEnv is the file consulted for environment overrides before bindings are resolved.
const DotEnv = ".env"

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	if err := LoadDotEnv(DotEnv); err != nil {
		return err
	}

	viper.SetConfigName(constant.Watchroom)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.Watchroom)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// LoadDotEnv exports the variables of the given dotenv files into the process environment.
// Variables already present in the environment win. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
