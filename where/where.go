// Package where resolves the directories and files djecho keeps on disk.
package where

import (
	"os"
	"path/filepath"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "DJECHO_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory. DJECHO_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.App))
}

// Cache falls back to ./cache when the platform has no user cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.App))
}

func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Selectors holds user Lua track selectors.
func Selectors() string {
	return mkdir(filepath.Join(Config(), "selectors"))
}

// Queries is the vibe request history used for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp holds synthesized speech clips. It is wiped by `djecho clear --temp`.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.App))
}
