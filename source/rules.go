package source

import (
	"regexp"

	"github.com/samber/lo"
)

// Rule maps URL patterns to a provider. Rules are tried in order and the first
// rule with any matching pattern wins.
type Rule struct {
	Provider    string
	Kind        Kind
	DisplayName string
	Icon        string
	Patterns    []string

	compiled []*regexp.Regexp
}

func (r *Rule) matches(url string) bool {
	return lo.SomeBy(r.compiled, func(re *regexp.Regexp) bool {
		return re.MatchString(url)
	})
}

func rule(provider string, kind Kind, name, icon string, patterns ...string) *Rule {
	return &Rule{
		Provider:    provider,
		Kind:        kind,
		DisplayName: name,
		Icon:        icon,
		Patterns:    patterns,
		compiled: lo.Map(patterns, func(p string, _ int) *regexp.Regexp {
			return regexp.MustCompile("(?i)" + p)
		}),
	}
}

// Media servers come before streaming sites, which come before generic radio streams.
var rules = []*Rule{
	rule("navidrome", Streaming, "Navidrome Server", "🎵",
		`navidrome`, `/rest/stream`, `/api/stream`, `:4533`),
	rule("spotify", Streaming, "Spotify", "🎧",
		`spotify\.com`),
	rule("youtube", Streaming, "YouTube", "📺",
		`youtube\.com`, `youtu\.be`, `youtube-nocookie\.com`),
	rule("soundcloud", Streaming, "SoundCloud", "☁️",
		`soundcloud\.com`),
	rule("radio", GenericStream, "Radio Stream", "📻",
		`\.m3u8?$`, `\.pls$`, `radio`, `stream`),
}

// Rules returns the URL rule table in match order.
func Rules() []Rule {
	return lo.Map(rules, func(r *Rule, _ int) Rule {
		return Rule{
			Provider:    r.Provider,
			Kind:        r.Kind,
			DisplayName: r.DisplayName,
			Icon:        r.Icon,
			Patterns:    append([]string(nil), r.Patterns...),
		}
	})
}
