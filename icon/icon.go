// Package icon renders status symbols in the variant picked by icons.variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares.
package icon

import (
	"github.com/djecho/djecho/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Play
	Pause
	Stop
	Volume
	Mic
	Lua
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "🟨"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・・)", squares: "🟦"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(♪◠‿◠)", squares: "🟩"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(￣o￣)", squares: "🟨"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(－_－)", squares: "⬛"},
	Volume:   {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "(°o°)", squares: "🟪"},
	Mic:      {emoji: "🎙️", nerd: "", plain: "dj", kaomoji: "(^o^)/", squares: "🟧"},
	Lua:      {emoji: "🌙", nerd: "", plain: "lua", kaomoji: "(◕‿◕)", squares: "🟦"},
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
