// Package history keeps the in-memory ledger of sources played in this session.
// Nothing is written to disk; the ledger dies with the process.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/source"
	"github.com/samber/lo"
)

// Entry is one registered track.
type Entry struct {
	Target     string
	Title      string
	Source     source.Descriptor
	FirstSeen  time.Time
	LastPlayed time.Time
	Plays      int
}

// Ledger records every distinct target played. It is safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	entries  map[string]*Entry
	excluded map[string]struct{}
	now      func() time.Time
}

func New() *Ledger {
	return &Ledger{
		entries:  make(map[string]*Entry),
		excluded: make(map[string]struct{}),
		now:      time.Now,
	}
}

// Exclude keeps the next play of target out of the ledger, as for spoken
// commentary. The exclusion ends when that play stops or finishes, or when
// cancel is called.
func (l *Ledger) Exclude(target string) (cancel func()) {
	l.mu.Lock()
	l.excluded[target] = struct{}{}
	l.mu.Unlock()

	return func() { l.include(target) }
}

func (l *Ledger) include(target string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.excluded, target)
}

func (l *Ledger) isExcluded(target string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.excluded[target]
	return ok
}

// Register records a play of target. Playing the same target again updates its entry.
func (l *Ledger) Register(target, title string, d source.Descriptor) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[target]
	if !ok {
		entry = &Entry{Target: target, FirstSeen: now}
		l.entries[target] = entry
	}

	entry.Title = title
	entry.Source = d
	entry.LastPlayed = now
	entry.Plays++

	log.Infof("registered music source: %s", d.Format(false))
}

// Observe is a player subscriber. Resuming a paused track is not a new play,
// and excluded targets are never registered.
func (l *Ledger) Observe() func(player.Event) {
	var (
		current string
		paused  bool
	)

	return func(e player.Event) {
		switch e := e.(type) {
		case player.Playing:
			if paused && e.URI == current {
				paused = false
				return
			}
			current, paused = e.URI, false
			if l.isExcluded(e.URI) {
				log.Debugf("not registering %s", e.URI)
				return
			}
			l.Register(e.URI, e.Title, e.Source)
		case player.Paused:
			paused = true
		case player.Stopped, player.Finished:
			if current != "" {
				l.include(current)
			}
			current, paused = "", false
		}
	}
}

// Statistics counts distinct targets per source kind. Every kind is present.
func (l *Ledger) Statistics() map[source.Kind]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := lo.SliceToMap(source.Kinds(), func(k source.Kind) (source.Kind, int) {
		return k, 0
	})
	for _, entry := range l.entries {
		stats[entry.Source.Kind]++
	}
	return stats
}

// Recent returns up to n entries, most recently played first.
func (l *Ledger) Recent(n int) []Entry {
	l.mu.RLock()
	entries := lo.Map(lo.Values(l.entries), func(e *Entry, _ int) Entry { return *e })
	l.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastPlayed.After(entries[j].LastPlayed)
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
