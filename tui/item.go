package tui

import (
	"fmt"
	"strings"

	"github.com/djecho/djecho/history"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/style"
	"github.com/dustin/go-humanize"
)

// listItem is one entry of the played list.
type listItem struct {
	entry history.Entry
}

func (t *listItem) Title() string {
	title := t.entry.Source.Icon + " " + t.entry.Title
	if t.entry.Plays > 1 {
		title += " " + style.Faint(fmt.Sprintf("×%d", t.entry.Plays))
	}
	return title
}

func (t *listItem) Description() string {
	return strings.Join([]string{
		style.KindTag(string(t.entry.Source.Kind)),
		t.entry.Source.Format(true),
		style.Faint(humanize.Time(t.entry.LastPlayed)),
	}, " ")
}

func (t *listItem) FilterValue() string {
	return t.entry.Title
}

// statsLine renders per-kind counts, skipping kinds never played.
func statsLine(stats map[source.Kind]int) string {
	var parts []string
	for _, kind := range source.Kinds() {
		if n := stats[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", kind.Label(), n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
