package recommend

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityReplacements are applied in order after tag removal. A fixed table,
// not a full HTML parser; AniList descriptions are trusted markup and only
// ever use these entities.
var entityReplacements = [][2]string{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// stripHTML removes tags and unescapes the common entities from an AniList
// description.
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	for _, r := range entityReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return strings.TrimSpace(s)
}
