package source

import (
	"fmt"
	"strings"

	"github.com/djecho/djecho/util"
)

// Player describes a supported external player binary.
type Player struct {
	Name        string
	Icon        string
	Description string
	Features    []string
}

var players = map[string]Player{
	"mpv": {
		Name:        "MPV Media Player",
		Icon:        "🎬",
		Description: "Free, open source, and cross-platform media player",
		Features:    []string{"Hardware acceleration", "Extensive format support", "Command-line control"},
	},
	"vlc": {
		Name:        "VLC Media Player",
		Icon:        "🔶",
		Description: "Free and open source cross-platform multimedia player",
		Features:    []string{"Universal codec support", "Streaming capabilities", "Cross-platform"},
	},
	"ffplay": {
		Name:        "FFplay",
		Icon:        "⚡",
		Description: "Simple media player using FFmpeg libraries",
		Features:    []string{"Lightweight", "Part of FFmpeg suite", "Command-line based"},
	},
}

// PlayerInfo looks up a player by executable name or path.
// Unlisted players get a generic entry.
func PlayerInfo(executable string) Player {
	name := strings.TrimSuffix(lastSegment(executable), ".exe")
	if p, ok := players[name]; ok {
		return p
	}

	return Player{
		Name:        util.Capitalize(name) + " Player",
		Icon:        "🎵",
		Description: "Media player: " + name,
		Features:    []string{"Audio playback"},
	}
}

// Format renders "<icon> <name> via <player icon> <player name>", followed by
// provenance details in parentheses when withDetails is set.
func (d Descriptor) Format(withDetails bool) string {
	player := PlayerInfo(d.Player)
	line := fmt.Sprintf("%s %s via %s %s", d.Icon, d.DisplayName, player.Icon, player.Name)
	if !withDetails {
		return line
	}

	var details []string
	add := func(label, attr string, transform func(string) string) {
		if v, ok := d.Attr(attr); ok && v != "" {
			details = append(details, fmt.Sprintf("%s: %s", label, transform(v)))
		}
	}
	same := func(s string) string { return s }

	switch {
	case d.Provider == "navidrome":
		add("Server", "hostname", same)
		add("API", "api_version", same)
	case d.Kind == LocalFile, d.Kind == PlaylistFile:
		add("Location", "directory", func(dir string) string {
			return lastSegment(dir)
		})
		add("Type", "file_type", util.Capitalize)
	case d.Kind == GenericStream && d.Provider == "":
		add("Host", "hostname", same)
	}

	if len(details) == 0 {
		return line
	}
	return fmt.Sprintf("%s (%s)", line, strings.Join(details, ", "))
}

func lastSegment(p string) string {
	segments := splitSegments(p)
	if len(segments) == 0 {
		return p
	}
	return segments[len(segments)-1]
}
