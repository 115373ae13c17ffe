package format

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/animetown/franky/internal/anilist"
)

// NoUpcomingEpisodes is the reply for an empty airing list.
const NoUpcomingEpisodes = "No upcoming episodes found."

const (
	airingTimeLayout = "Jan 2, 2006 3:04 PM"
	airingDayLayout  = "Mon, Jan 2"
)

// AiringOptions configures AiringList.
type AiringOptions struct {
	Limit      int    // default 5
	TZ         string // IANA zone name, default UTC
	Header     string
	GroupByDay bool
	MaxChars   int       // default DefaultMaxChars
	Now        time.Time // default time.Now()
}

// AiringList renders upcoming episodes as bullet lines, optionally grouped
// under one day header per calendar date in the target zone. Days keep the
// order they first appear in items. The result never exceeds the budget;
// overflow is replaced by the "…and more" marker.
func AiringList(items []anilist.AiringItem, opts AiringOptions) string {
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := locationOrLocal(opts.TZ)

	if len(items) == 0 {
		if opts.Header != "" {
			return opts.Header + "\n" + NoUpcomingEpisodes
		}
		return NoUpcomingEpisodes
	}

	shown := items
	overflow := false
	if len(items) > limit {
		shown = items[:limit]
		overflow = true
	}

	var sections []string
	if opts.GroupByDay {
		var order []string
		groups := make(map[string][]string)
		for _, item := range shown {
			airTime := time.Unix(item.AiringAt, 0).In(loc)
			day := airTime.Format(airingDayLayout)
			if _, seen := groups[day]; !seen {
				order = append(order, day)
			}
			groups[day] = append(groups[day], airingLine(item, airTime, now))
		}
		for _, day := range order {
			sections = append(sections, "📅 "+day+"\n"+strings.Join(groups[day], "\n"))
		}
	} else {
		for _, item := range shown {
			airTime := time.Unix(item.AiringAt, 0).In(loc)
			sections = append(sections, airingLine(item, airTime, now))
		}
	}

	var parts []string
	if opts.Header != "" {
		parts = append(parts, opts.Header)
	}
	parts = appendWithinBudget(parts, sections, "\n", maxChars)
	result := strings.Join(parts, "\n")

	if overflow && !strings.HasSuffix(result, moreMarker) {
		if candidate := result + "\n" + moreMarker; runeLen(candidate) <= maxChars {
			result = candidate
		}
	}
	return result
}

func airingLine(item anilist.AiringItem, airTime, now time.Time) string {
	return fmt.Sprintf("• %s — Ep %d 🕒 %s (%s)",
		item.Title, item.Episode, airTime.Format(airingTimeLayout),
		RelTimeStarted(item.AiringAt, now))
}

// locationOrLocal resolves a zone name, falling back to local time for
// unknown zones rather than failing the whole render.
func locationOrLocal(tz string) *time.Location {
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("unknown time zone, rendering in local time", "tz", tz)
		return time.Local
	}
	return loc
}
