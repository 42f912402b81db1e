// Package key defines the canonical set of configuration identifiers.
package key

// Player process settings.
const (
	PlayerCandidates   = "player.candidates"
	PlayerVolume       = "player.volume"
	PlayerStopTimeout  = "player.stop_timeout"
	PlayerTickInterval = "player.tick_interval"
	PlayerIPCControl   = "player.ipc_control"
)

// Track selection.
const (
	SelectorDefault  = "selector.default"
	SelectorMusicDir = "selector.music_dir"
)

// Subsonic / Navidrome server used by the subsonic selector.
const (
	SubsonicURL    = "subsonic.url"
	SubsonicUser   = "subsonic.user"
	SubsonicClient = "subsonic.client"
)

// Commentary generator.
const (
	CommentaryCommand = "commentary.command"
	CommentaryModel   = "commentary.model"
	CommentaryTimeout = "commentary.timeout"
)

// Text-to-speech.
const (
	SpeechEnable  = "speech.enable"
	SpeechVoiceID = "speech.voice_id"
	SpeechModel   = "speech.model"
)

// Websocket status feed.
const (
	BroadcastAddress = "broadcast.address"
)

const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

const (
	IconsVariant = "icons.variant"
)

const (
	TUIShowSourceDetails = "tui.show_source_details"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
