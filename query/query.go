// Package query keeps the vibes a listener asked for and suggests them back while typing.
package query

import (
	"strings"
	"sync"

	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/key"
	"github.com/djecho/djecho/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type vibeRecord struct {
	Rank int    `json:"rank"`
	Vibe string `json:"vibe"`
}

var cacher = gache.New[map[string]*vibeRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	mu          sync.Mutex
	suggestions = make(map[string][]*vibeRecord)
)

// Remember records a vibe or raises its rank by weight.
func Remember(vibe string, weight int) error {
	vibe = sanitize(vibe)
	if vibe == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*vibeRecord)
	}

	if record, ok := cached[vibe]; ok {
		record.Rank += weight
	} else {
		cached[vibe] = &vibeRecord{Rank: weight, Vibe: vibe}
	}

	clear(suggestions)
	return cacher.Set(cached)
}

// Forget drops every remembered vibe.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()

	clear(suggestions)
	return cacher.Set(make(map[string]*vibeRecord))
}

// Suggest returns the best ranked previous vibe matching the partial input.
func Suggest(partial string) mo.Option[string] {
	many := SuggestMany(partial)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns previous vibes fuzzily matching the partial input, highest rank first.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	partial = sanitize(partial)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestions[partial]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		records = lo.Filter(lo.Values(cached), func(r *vibeRecord, _ int) bool {
			return fuzzy.Match(partial, r.Vibe)
		})

		slices.SortFunc(records, func(a, b *vibeRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Vibe, b.Vibe)
		})

		suggestions[partial] = records
	}

	return lo.Map(records, func(r *vibeRecord, _ int) string {
		return r.Vibe
	})
}

func sanitize(vibe string) string {
	return strings.Join(strings.Fields(strings.ToLower(vibe)), " ")
}
