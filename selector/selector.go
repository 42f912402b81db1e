// Package selector picks the next track for a listener's request.
package selector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/util"
	"github.com/djecho/djecho/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Track is a playable target and the title shown while it plays.
type Track struct {
	URI   string
	Title string
}

// Selector chooses a track for a vibe such as "something mellow".
type Selector interface {
	Name() string
	Select(ctx context.Context, vibe string) (Track, error)
}

// ErrNoTrack means the selector had nothing to offer.
var ErrNoTrack = errors.New("no track found")

const (
	LocalName    = "local"
	SubsonicName = "subsonic"
)

// New returns the selector called name: local, subsonic or a Lua script in where.Selectors.
func New(name string) (Selector, error) {
	switch name {
	case LocalName:
		return NewLocal(util.ExpandHome(viper.GetString(key.SelectorMusicDir))), nil
	case SubsonicName:
		return NewSubsonicFromConfig()
	}

	path := filepath.Join(where.Selectors(), name+".lua")
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("unknown selector %q, available: %s", name, strings.Join(Available(), ", "))
	}

	return NewLua(path)
}

// Default returns the selector named by selector.default.
func Default() (Selector, error) {
	return New(viper.GetString(key.SelectorDefault))
}

// Available lists built-in selectors followed by installed Lua scripts.
func Available() []string {
	return append([]string{LocalName, SubsonicName}, Scripts()...)
}

// Scripts lists the Lua selectors installed in where.Selectors, sorted by name.
func Scripts() []string {
	files, err := filesystem.API().ReadDir(where.Selectors())
	if err != nil {
		return nil
	}

	names := lo.FilterMap(files, func(f os.FileInfo, _ int) (string, bool) {
		return util.FileStem(f.Name()), !f.IsDir() && filepath.Ext(f.Name()) == ".lua"
	})
	sort.Strings(names)
	return names
}
