package selector

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Local picks audio files from a directory tree, preferring paths that match the vibe.
type Local struct {
	Dir  string
	pick func(n int) int
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir, pick: rand.IntN}
}

func (*Local) Name() string {
	return LocalName
}

// Tracks lists every audio file below Dir.
func (l *Local) Tracks() ([]string, error) {
	var tracks []string
	err := filesystem.API().Walk(l.Dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && source.AudioFile(path) {
			tracks = append(tracks, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.Dir, err)
	}
	return tracks, nil
}

func (l *Local) Select(ctx context.Context, vibe string) (Track, error) {
	if err := ctx.Err(); err != nil {
		return Track{}, err
	}

	tracks, err := l.Tracks()
	if err != nil {
		return Track{}, err
	}
	if len(tracks) == 0 {
		return Track{}, fmt.Errorf("%w in %s", ErrNoTrack, l.Dir)
	}

	candidates := l.match(vibe, tracks)
	path := candidates[l.pick(len(candidates))]

	return Track{URI: path, Title: readTitle(path)}, nil
}

// match keeps the best scoring tracks, or all of them when nothing scores.
func (l *Local) match(vibe string, tracks []string) []string {
	words := lo.Filter(strings.Fields(strings.ToLower(vibe)), func(w string, _ int) bool {
		return len(w) >= 3
	})
	if len(words) == 0 {
		return tracks
	}

	scores := lo.SliceToMap(tracks, func(track string) (string, int) {
		rel, err := filepath.Rel(l.Dir, track)
		if err != nil {
			rel = track
		}
		return track, score(words, strings.TrimSuffix(rel, filepath.Ext(rel)))
	})

	best := lo.Max(lo.Values(scores))
	if best == 0 {
		return tracks
	}

	return lo.Filter(tracks, func(track string, _ int) bool {
		return scores[track] == best
	})
}

// score counts substring hits twice and fuzzy hits within a single path segment once.
func score(words []string, rel string) int {
	lower := strings.ToLower(rel)
	segments := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '\\' || r == ' ' || r == '-' || r == '_'
	})

	total := 0
	for _, w := range words {
		switch {
		case strings.Contains(lower, w):
			total += 2
		case len(fuzzy.FindNormalizedFold(w, segments)) > 0:
			total++
		}
	}
	return total
}

// minTagSize is the size of an ID3v1 trailer, the smallest block tag.ReadFrom seeks over.
const minTagSize = 128

// readTitle prefers "Artist - Title" from the file's tags over its name.
func readTitle(path string) (title string) {
	fallback := util.FileStem(path)

	f, err := filesystem.API().Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || info.Size() < minTagSize {
		return fallback
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warnf("reading tags of %s: %v", path, r)
			title = fallback
		}
	}()

	m, err := tag.ReadFrom(f)
	if err != nil {
		log.Debugf("no tags in %s: %s", path, err)
		return fallback
	}

	switch {
	case m.Title() == "":
		return fallback
	case m.Artist() == "":
		return m.Title()
	default:
		return m.Artist() + " - " + m.Title()
	}
}
