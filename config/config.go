// Package config wires viper to the djecho key registry, the TOML config file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/where"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// legacyEnv maps keys to the variable names older .env files used.
var legacyEnv = map[string]string{
	key.SubsonicURL:  "NAVIDROME_URL",
	key.SubsonicUser: "NAVIDROME_USER",
}

// LegacyEnv lists the older variable names still honoured, sorted.
func LegacyEnv() []string {
	names := lo.Values(legacyEnv)
	sort.Strings(names)
	return names
}

// Setup loads .env files, binds environment variables, registers defaults and reads the config file.
func Setup() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}
	for k, legacy := range legacyEnv {
		field := Default[k]
		viper.MustBindEnv(k, field.Env(), legacy)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// loadDotEnv reads .env from the working directory and then from the config directory.
// Variables already present in the environment are never overwritten.
func loadDotEnv() error {
	for _, path := range []string{".env", filepath.Join(where.Config(), ".env")} {
		exists, err := filesystem.API().Exists(path)
		if err != nil || !exists {
			continue
		}

		f, err := filesystem.API().Open(path)
		if err != nil {
			return err
		}

		vars, err := godotenv.Parse(f)
		_ = f.Close()
		if err != nil {
			return &fs.PathError{Op: "parse", Path: path, Err: err}
		}

		for k, v := range vars {
			if _, set := os.LookupEnv(k); !set {
				_ = os.Setenv(k, v)
			}
		}
	}

	return nil
}
