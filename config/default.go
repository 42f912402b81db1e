package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/djecho/djecho/color"
	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a single registered configuration key.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field with its current and default value for `djecho config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerCandidates, []string{"mpv", "ffplay", "vlc"}, "Player executables probed in order at startup.\nThe first one found in PATH is used for the whole session")
	register(key.PlayerVolume, 70, "Launch volume passed to the player, from 0 to 100")
	register(key.PlayerStopTimeout, 3, "Seconds to wait for the player to exit after a stop request before killing it")
	register(key.PlayerTickInterval, 1, "Seconds between status monitor ticks")
	register(key.PlayerIPCControl, false, "Forward pause and volume changes to mpv over its IPC socket.\nWhen disabled pause is logical only and the track keeps playing")
	register(key.SelectorDefault, "local", "Track selector to use.\nAvailable options are: local, subsonic, or the name of a Lua selector script")
	register(key.SelectorMusicDir, filepath.Join("~", "Music"), "Directory scanned by the local selector")
	register(key.SubsonicURL, "", "Base URL of the Subsonic/Navidrome server, e.g. http://localhost:4533")
	register(key.SubsonicUser, "", "Subsonic username. The password is stored in the system keyring")
	register(key.SubsonicClient, constant.App, "Client name reported to the Subsonic server")
	register(key.CommentaryCommand, "ollama", "Command used to generate DJ commentary. Invoked as <command> run <model> <prompt>")
	register(key.CommentaryModel, "gemma3:4b", "Model passed to the commentary command")
	register(key.CommentaryTimeout, 30, "Seconds before commentary generation is abandoned")
	register(key.SpeechEnable, true, "Speak commentary through ElevenLabs when an API key is available")
	register(key.SpeechVoiceID, "21m00Tcm4TlvDq8ikWAM", "ElevenLabs voice ID")
	register(key.SpeechModel, "eleven_multilingual_v2", "ElevenLabs model ID")
	register(key.BroadcastAddress, "", "Listen address of the websocket status feed, e.g. 127.0.0.1:7033.\nEmpty disables it")
	register(key.SearchShowQuerySuggestions, true, "Suggest previous vibes while typing")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, squares")
	register(key.TUIShowSourceDetails, true, "Show source details (server, location, type) under the track title")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for new releases when printing help")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"legacy":   func(k string) string { return legacyEnv[k] },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}{{ with legacy .Key }} {{ faint (printf "or %s" .) }}{{ end }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
