package dj

import (
	"fmt"
	"time"

	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/source"
	"github.com/djecho/djecho/util"
	"github.com/dustin/go-humanize"
)

// Field is a labelled line of a report.
type Field struct {
	Label string
	Value string
}

// StatusReport describes a snapshot the way the status command prints it.
func StatusReport(st player.State, now time.Time) []Field {
	fields := []Field{
		{"Status", util.Capitalize(string(st.Status))},
		{"Track", st.TrackTitle.OrElse("None")},
		{"Volume", fmt.Sprintf("%d%%", st.Volume)},
		{"Position", Position(st)},
	}

	if started, ok := st.StartedAt.Get(); ok && st.Status.Active() {
		fields = append(fields, Field{"Started", humanize.RelTime(started, now, "ago", "from now")})
	}

	if d, ok := st.Source.Get(); ok {
		fields = append(fields, Field{"Source", d.Format(true)})
	} else if st.Player != "" {
		p := source.PlayerInfo(st.Player)
		fields = append(fields, Field{"Player", p.Icon + " " + p.Name})
	}

	return fields
}

// Position renders "m:ss" or "m:ss / m:ss" when the duration is known.
func Position(st player.State) string {
	if st.DurationSeconds > 0 {
		return util.FormatSeconds(st.PositionSeconds) + " / " + util.FormatSeconds(st.DurationSeconds)
	}
	return util.FormatSeconds(st.PositionSeconds)
}

// StatsReport lists the distinct tracks played per source kind, skipping empty kinds.
func StatsReport(stats map[source.Kind]int) []Field {
	var fields []Field
	total := 0
	for _, kind := range source.Kinds() {
		n := stats[kind]
		total += n
		if n == 0 {
			continue
		}
		fields = append(fields, Field{kind.Label(), util.Quantify(n, "track", "tracks")})
	}
	return append(fields, Field{"Total", util.Quantify(total, "track", "tracks")})
}
