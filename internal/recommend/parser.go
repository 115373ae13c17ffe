package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultEpisodeWindow is the tolerance applied around an explicit episode
// count ("24 episodes" matches 19 through 29).
const DefaultEpisodeWindow = 5

var (
	similarPattern    = regexp.MustCompile(`(?i)^(?:like|similar to|if you liked|recommend|based on)\s+(.+)$`)
	genreNamePattern  = regexp.MustCompile(`\b(?:shonen|shoujo|seinen|josei|action|romance|comedy|drama|fantasy|horror|mystery|thriller|slice of life|sol|sports|supernatural|mecha|isekai|scifi|sci-fi)\b`)
	episodePattern    = regexp.MustCompile(`(\d+)\s*episodes?`)
	shortPattern      = regexp.MustCompile(`\b(?:short|quick)\b`)
	longPattern       = regexp.MustCompile(`\b(?:long[- ]?running|long series)\b`)
	underratedPattern = regexp.MustCompile(`\b(?:underrated|hidden gem|sleeper)\b`)
)

// filterKeywords are the words that mark input as a filter request rather
// than a title lookup.
var filterKeywords = []string{
	"dark", "light", "short", "long", "underrated", "emotional", "chill",
	"slow", "fast", "intense", "relaxing", "sad", "happy", "funny", "serious",
}

type keywordEntry struct {
	keyword   string
	canonical string
}

// genreTable maps loose genre spellings to AniList genre names. Matching is
// by substring, in table order, so output is deterministic.
var genreTable = []keywordEntry{
	{"shonen", "Shounen"},
	{"shoujo", "Shoujo"},
	{"seinen", "Seinen"},
	{"josei", "Josei"},
	{"action", "Action"},
	{"romance", "Romance"},
	{"comedy", "Comedy"},
	{"drama", "Drama"},
	{"fantasy", "Fantasy"},
	{"sci-fi", "Sci-Fi"},
	{"scifi", "Sci-Fi"},
	{"sci fi", "Sci-Fi"},
	{"horror", "Horror"},
	{"mystery", "Mystery"},
	{"thriller", "Thriller"},
	{"slice of life", "Slice of Life"},
	{"sol", "Slice of Life"},
	{"sports", "Sports"},
	{"supernatural", "Supernatural"},
	{"mecha", "Mecha"},
	{"isekai", "Isekai"},
}

// moodTable maps mood words to the genre or tag that best carries them.
var moodTable = []keywordEntry{
	{"dark", "Dark"},
	{"light", "Light"},
	{"emotional", "Drama"},
	{"chill", "Slice of Life"},
	{"slow", "Slice of Life"},
	{"fast", "Action"},
	{"intense", "Action"},
	{"relaxing", "Slice of Life"},
	{"sad", "Drama"},
	{"happy", "Comedy"},
	{"funny", "Comedy"},
	{"serious", "Drama"},
}

// Parser classifies free-text recommendation requests. The zero value is
// ready to use.
type Parser struct {
	// EpisodeWindow overrides DefaultEpisodeWindow.
	EpisodeWindow int
}

// Parse turns free text into a Query. It is pure and deterministic.
// Precedence: an explicit similarity phrase wins, then a short phrase with no
// filter vocabulary is treated as a title, everything else becomes a filter
// query. Best effort, not a grammar.
func (p *Parser) Parse(text string) Query {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if m := similarPattern.FindStringSubmatch(trimmed); m != nil {
		return Query{Type: TypeSimilarTo, SimilarTo: strings.TrimSpace(m[1])}
	}

	if !containsFilterVocabulary(lower) && len(strings.Fields(trimmed)) <= 3 && len(trimmed) > 2 {
		return Query{Type: TypeSimilarTo, SimilarTo: trimmed}
	}

	q := Query{Type: TypeFiltered, SortBy: SortPopularity}

	window := p.EpisodeWindow
	if window <= 0 {
		window = DefaultEpisodeWindow
	}
	if m := episodePattern.FindStringSubmatch(lower); m != nil {
		count, _ := strconv.Atoi(m[1])
		min, max := count-window, count+window
		q.EpisodeMin, q.EpisodeMax = &min, &max
	} else if shortPattern.MatchString(lower) {
		max := 13
		q.EpisodeMax = &max
	} else if longPattern.MatchString(lower) {
		min := 50
		q.EpisodeMin = &min
	}

	if underratedPattern.MatchString(lower) {
		q.SortBy = SortScore
		q.Underrated = true
	}

	for _, e := range genreTable {
		if strings.Contains(lower, e.keyword) && !contains(q.Genres, e.canonical) {
			q.Genres = append(q.Genres, e.canonical)
		}
	}
	// A mood that duplicates a matched genre is dropped.
	for _, e := range moodTable {
		if strings.Contains(lower, e.keyword) && !contains(q.Genres, e.canonical) && !contains(q.Moods, e.canonical) {
			q.Moods = append(q.Moods, e.canonical)
		}
	}

	if len(q.Genres) == 0 && len(q.Moods) == 0 && lower != "" {
		q.Genres = []string{"Action"}
	}
	return q
}

func containsFilterVocabulary(lower string) bool {
	for _, kw := range filterKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return genreNamePattern.MatchString(lower)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
