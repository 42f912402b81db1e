package source

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/djecho/djecho/filesystem"
	"github.com/samber/lo"
)

var (
	audioExtensions    = []string{".mp3", ".flac", ".wav", ".ogg", ".m4a", ".aac", ".wma", ".opus"}
	playlistExtensions = []string{".m3u", ".m3u8", ".pls", ".xspf"}
	libraryIndicators  = []string{"music", "audio", "songs", "tracks", "library", "collection"}

	driveLetter = regexp.MustCompile(`^[A-Za-z]:`)
)

// Classify maps a URI or filesystem path to a Descriptor. It never fails.
func Classify(target, player string) Descriptor {
	target = strings.TrimSpace(target)

	switch {
	case target == "":
		return newDescriptor(Unknown, "", "Unknown Source", player, "❓", nil)
	case hasPrefixFold(target, "http://"), hasPrefixFold(target, "https://"):
		return classifyURL(target, player)
	case looksLikePath(target):
		return classifyPath(target, player)
	default:
		return newDescriptor(Unknown, "", "Unknown Source", player, "❓", map[string]string{
			"path": target,
		})
	}
}

func classifyURL(raw, player string) Descriptor {
	var hostname, port string
	u, err := url.Parse(raw)
	if err == nil {
		hostname, port = u.Hostname(), u.Port()
	}
	if port == "" {
		port = "default"
	}

	for _, r := range rules {
		if !r.matches(raw) {
			continue
		}

		attrs := map[string]string{
			"url":      raw,
			"hostname": hostname,
			"port":     port,
		}
		if r.Provider == "navidrome" && u != nil {
			subsonicDetails(u, attrs)
		}

		return newDescriptor(r.Kind, r.Provider, r.DisplayName, player, r.Icon, attrs)
	}

	return newDescriptor(GenericStream, "", fmt.Sprintf("Stream (%s)", hostname), player, "🌐", map[string]string{
		"url":      raw,
		"hostname": hostname,
	})
}

func subsonicDetails(u *url.URL, attrs map[string]string) {
	q := u.Query()
	for param, attr := range map[string]string{"id": "track_id", "u": "username", "c": "client"} {
		if q.Has(param) {
			attrs[attr] = q.Get(param)
		}
	}

	switch {
	case strings.Contains(u.Path, "/rest/"):
		attrs["api_version"] = "Subsonic API"
	case strings.Contains(u.Path, "/api/"):
		attrs["api_version"] = "Native API"
	}
}

func looksLikePath(target string) bool {
	for _, prefix := range []string{"/", "./", "../", "~/", `\`} {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	if driveLetter.MatchString(target) {
		return true
	}

	exists, err := filesystem.API().Exists(target)
	return err == nil && exists
}

func classifyPath(target, player string) Descriptor {
	segments := splitSegments(target)
	filename := lo.LastOr(segments, "")
	directory := directoryOf(target)

	exists, err := filesystem.API().Exists(target)
	exists = exists && err == nil

	kind, fileType, icon := LocalFile, "unknown", "📄"
	switch ext := strings.ToLower(path.Ext(filename)); {
	case lo.Contains(audioExtensions, ext):
		fileType, icon = "audio", "🎵"
	case lo.Contains(playlistExtensions, ext):
		kind, fileType, icon = PlaylistFile, "playlist", "📋"
	}

	hint := locationHint(segments)
	return newDescriptor(kind, "", hint, player, icon, map[string]string{
		"path":      target,
		"filename":  filename,
		"directory": directory,
		"exists":    strconv.FormatBool(exists),
		"file_type": fileType,
		"location":  hint,
	})
}

// splitSegments splits on both separators so Windows paths classify the same on every OS.
func splitSegments(p string) []string {
	return lo.Filter(strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	}), func(s string, _ int) bool {
		return s != ""
	})
}

func directoryOf(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	switch {
	case i < 0:
		return "."
	case i == 0:
		return p[:1]
	default:
		return p[:i]
	}
}

func locationHint(segments []string) string {
	for i, segment := range segments {
		lower := strings.ToLower(segment)
		indicator := lo.SomeBy(libraryIndicators, func(s string) bool {
			return strings.Contains(lower, s)
		})
		if indicator && i < len(segments)-1 {
			return fmt.Sprintf("Local Music (%s)", segments[i+1])
		}
	}

	if lo.Contains(segments, "Users") || lo.Contains(segments, "home") {
		return "Personal Music Library"
	}

	if len(segments) > 0 && driveLetter.MatchString(segments[0]) {
		return fmt.Sprintf("Local Files (%s)", segments[0][:2])
	}

	return "Local File"
}

// AudioFile reports whether name has one of the audio extensions the classifier knows.
func AudioFile(name string) bool {
	return lo.Contains(audioExtensions, strings.ToLower(path.Ext(name)))
}
