// Package recommend turns free-text requests ("like naruto", "short action",
// "underrated isekai") into structured AniList queries and fetches matching
// titles.
package recommend

// QueryType selects the fetch strategy for a parsed query.
type QueryType string

const (
	// TypeSimilarTo looks up a title and follows its curated
	// recommendations relation.
	TypeSimilarTo QueryType = "similar_to"
	// TypeFiltered searches by genre, mood, episode count and popularity.
	TypeFiltered QueryType = "filtered"
)

// SortBy orders filtered results.
type SortBy string

const (
	SortPopularity SortBy = "popularity"
	SortScore      SortBy = "score"
	SortTrending   SortBy = "trending"
)

// Query is the structured form of a user's recommendation request.
type Query struct {
	Type       QueryType
	SimilarTo  string
	Genres     []string
	Moods      []string
	EpisodeMin *int
	EpisodeMax *int
	SortBy     SortBy
	Underrated bool
}

// Recommendation is one suggested title with its display metadata.
type Recommendation struct {
	Title       string
	Episodes    *int
	Score       *int // AniList average score, 0-100
	SiteURL     string
	Themes      []string // up to 3 genres plus 2 tags
	Description string
}
