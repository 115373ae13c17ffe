// Package format renders bot replies as plain UTF-8 text. Every renderer
// stays inside a character budget so messages never exceed the platform's
// send limit.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMaxChars is the character budget a rendered message must fit in.
const DefaultMaxChars = 900

const moreMarker = "…and more"

// Truncate cuts s to at most n characters, ellipsis included. For n <= 1 it
// returns just the ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// RelTime labels a unix timestamp relative to now: "ended" for times at
// least a minute in the past, "now" within a minute either way, otherwise
// "in 40m", "in 2h 5m", "in 3d". Sub-minute precision is rounded away before
// bucketing and zero sub-units are suppressed.
func RelTime(targetUnix int64, now time.Time) string {
	return relativeLabel(targetUnix, now, "ended")
}

// RelTimeStarted is RelTime with "started" as the past label, for schedule
// entries that began rather than finished.
func RelTimeStarted(targetUnix int64, now time.Time) string {
	return relativeLabel(targetUnix, now, "started")
}

func relativeLabel(targetUnix int64, now time.Time, pastLabel string) string {
	diff := time.Unix(targetUnix, 0).Sub(now)
	if diff <= -time.Minute {
		return pastLabel
	}
	if diff < time.Minute {
		return "now"
	}

	minutes := int((diff + 30*time.Second) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("in %dm", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		if m := minutes % 60; m > 0 {
			return fmt.Sprintf("in %dh %dm", hours, m)
		}
		return fmt.Sprintf("in %dh", hours)
	}
	days := hours / 24
	if h := hours % 24; h > 0 {
		return fmt.Sprintf("in %dd %dh", days, h)
	}
	return fmt.Sprintf("in %dd", days)
}

// ETA renders a duration in seconds as a compact countdown: "2d 3h", "~2h",
// "~5m", or "soon" when under a minute.
func ETA(seconds int64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	if days > 0 {
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		return fmt.Sprintf("~%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("~%dm", minutes)
	}
	return "soon"
}

// BulletListOptions configures BulletList.
type BulletListOptions struct {
	Header   string
	MaxChars int    // default DefaultMaxChars
	Joiner   string // default "\n\n"
}

// BulletList joins items under an optional header, within the budget. A
// header with zero items renders as the empty string; callers that always
// want a header must prepend it themselves.
func BulletList(items []string, opts BulletListOptions) string {
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	sep := opts.Joiner
	if sep == "" {
		sep = "\n\n"
	}

	var parts []string
	if opts.Header != "" {
		parts = append(parts, opts.Header)
	}
	contentStart := len(parts)
	parts = appendWithinBudget(parts, items, sep, maxChars)
	if len(parts) == contentStart && opts.Header != "" {
		return ""
	}
	return strings.Join(parts, sep)
}

// appendWithinBudget appends sections to parts one at a time. The moment a
// section would push the joined text past maxChars, that section is replaced
// with the "…and more" marker; if the marker itself still overflows, real
// sections are dropped newest-first (keeping the marker) until it fits or
// only one remains.
func appendWithinBudget(parts, sections []string, sep string, maxChars int) []string {
	contentStart := len(parts)
	for _, section := range sections {
		parts = append(parts, section)
		if runeLen(strings.Join(parts, sep)) <= maxChars {
			continue
		}
		parts = parts[:len(parts)-1]
		if len(parts) > contentStart {
			parts = append(parts, moreMarker)
			for len(parts) > contentStart+1 && runeLen(strings.Join(parts, sep)) > maxChars {
				parts = append(parts[:len(parts)-2], parts[len(parts)-1])
			}
		} else {
			parts = append(parts, moreMarker)
		}
		return parts
	}
	return parts
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
