package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/animetown/franky/internal/recommend"
)

// Recommendations renders a numbered recommendation list. An empty list
// echoes the user's query back in a "nothing found" sentence.
func Recommendations(recs []recommend.Recommendation, query string) string {
	if len(recs) == 0 {
		return fmt.Sprintf("No recommendations found for %q. Try a different query!", query)
	}

	plural := ""
	if len(recs) > 1 {
		plural = "s"
	}
	lines := []string{fmt.Sprintf("🎯 **%d Recommendation%s**", len(recs), plural), ""}

	for i, rec := range recs {
		lines = append(lines, fmt.Sprintf("%d. **%s**", i+1, rec.Title))
		lines = append(lines, fmt.Sprintf("   %s eps • %s/10 • %s",
			episodeCount(rec.Episodes), scoreLabel(rec.Score), themeLabel(rec.Themes)))
		if rec.Description != "" {
			desc := rec.Description
			if runeLen(desc) > 120 {
				desc = string([]rune(desc)[:120]) + "..."
			}
			lines = append(lines, "   "+desc)
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func episodeCount(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}

func scoreLabel(score *int) string {
	if score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(*score)/10)
}

func themeLabel(themes []string) string {
	if len(themes) == 0 {
		return "—"
	}
	if len(themes) > 4 {
		themes = themes[:4]
	}
	return strings.Join(themes, ", ")
}
