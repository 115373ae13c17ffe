package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/animetown/franky/internal/anilist"
)

// DefaultUnderratedPopularityCap filters "underrated" queries to titles with
// fewer AniList list entries than this.
const DefaultUnderratedPopularityCap = 50000

// DefaultLimit is how many recommendations a fetch returns when the caller
// does not say.
const DefaultLimit = 10

const similarQuery = `
  query ($search: String, $limit: Int) {
    Media(search: $search, type: ANIME) {
      genres
      recommendations(perPage: $limit, sort: RATING_DESC) {
        nodes {
          mediaRecommendation {
            title { english romaji }
            episodes
            averageScore
            siteUrl
            genres
            tags { name }
            description(asHtml: false)
          }
        }
      }
    }
  }
`

// The media filter arguments are baked into the query text because AniList
// treats an explicitly null argument differently from an absent one.
const filteredQueryFormat = `
  query ($page: Int, $perPage: Int) {
    Page(page: $page, perPage: $perPage) {
      media(%s) {
        title { english romaji }
        episodes
        averageScore
        siteUrl
        genres
        tags { name }
        description(asHtml: false)
      }
    }
  }
`

type recTitle struct {
	English *string `json:"english"`
	Romaji  *string `json:"romaji"`
}

func (t *recTitle) pick() string {
	if t != nil {
		for _, s := range []*string{t.English, t.Romaji} {
			if s != nil && *s != "" {
				return *s
			}
		}
	}
	return "Unknown"
}

type recMedia struct {
	Title        *recTitle `json:"title"`
	Episodes     *int      `json:"episodes"`
	AverageScore *int      `json:"averageScore"`
	SiteURL      string    `json:"siteUrl"`
	Genres       []string  `json:"genres"`
	Tags         []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Description *string `json:"description"`
}

type similarPayload struct {
	Data *struct {
		Media *struct {
			Genres          []string `json:"genres"`
			Recommendations *struct {
				Nodes []struct {
					MediaRecommendation *recMedia `json:"mediaRecommendation"`
				} `json:"nodes"`
			} `json:"recommendations"`
		} `json:"Media"`
	} `json:"data"`
}

type filteredPayload struct {
	Data *struct {
		Page *struct {
			Media []recMedia `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	Client *anilist.Client
	// UnderratedPopularityCap overrides DefaultUnderratedPopularityCap.
	UnderratedPopularityCap int
}

// Fetcher resolves parsed queries against AniList.
type Fetcher struct {
	client        *anilist.Client
	popularityCap int
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	cap := opts.UnderratedPopularityCap
	if cap <= 0 {
		cap = DefaultUnderratedPopularityCap
	}
	return &Fetcher{client: opts.Client, popularityCap: cap}
}

// Fetch returns up to limit recommendations for q. It never fails: internal
// errors are logged and yield nil, which callers render as "no results".
func (f *Fetcher) Fetch(ctx context.Context, q Query, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if q.Type == TypeSimilarTo && q.SimilarTo != "" {
		return f.fetchSimilar(ctx, q.SimilarTo, limit)
	}
	return f.fetchFiltered(ctx, q, limit)
}

func (f *Fetcher) fetchSimilar(ctx context.Context, title string, limit int) []Recommendation {
	var payload similarPayload
	vars := map[string]any{"search": title, "limit": limit}
	if err := f.client.Do(ctx, similarQuery, vars, &payload); err != nil {
		slog.Error("fetching similar anime failed", "title", title, "error", err)
		return nil
	}
	if payload.Data == nil || payload.Data.Media == nil {
		return nil
	}
	media := payload.Data.Media

	var nodes []struct {
		MediaRecommendation *recMedia `json:"mediaRecommendation"`
	}
	if media.Recommendations != nil {
		nodes = media.Recommendations.Nodes
	}
	if len(nodes) == 0 {
		// No curated recommendations. Fall back to the title's own
		// genres rather than coming back empty-handed.
		if len(media.Genres) == 0 {
			return nil
		}
		genres := media.Genres
		if len(genres) > 2 {
			genres = genres[:2]
		}
		return f.fetchFiltered(ctx, Query{Type: TypeFiltered, Genres: genres, SortBy: SortPopularity}, limit)
	}

	recs := make([]Recommendation, 0, len(nodes))
	for _, n := range nodes {
		if n.MediaRecommendation == nil {
			continue
		}
		recs = append(recs, mapMedia(*n.MediaRecommendation))
		if len(recs) == limit {
			break
		}
	}
	return recs
}

func (f *Fetcher) fetchFiltered(ctx context.Context, q Query, limit int) []Recommendation {
	all := make([]string, 0, len(q.Genres)+len(q.Moods))
	all = append(all, q.Genres...)
	all = append(all, q.Moods...)

	parts := make([]string, 0, 7)
	if len(all) > 0 {
		quoted := make([]string, len(all))
		for i, g := range all {
			quoted[i] = strconv.Quote(g)
		}
		parts = append(parts, "genre_in: ["+strings.Join(quoted, ", ")+"]")
	}
	if q.EpisodeMin != nil {
		parts = append(parts, fmt.Sprintf("episodes_greater: %d", *q.EpisodeMin))
	}
	if q.EpisodeMax != nil {
		parts = append(parts, fmt.Sprintf("episodes_lesser: %d", *q.EpisodeMax))
	}
	if q.Underrated {
		parts = append(parts, fmt.Sprintf("popularity_lesser: %d", f.popularityCap))
	}
	parts = append(parts, "type: ANIME", "status: FINISHED", "sort: "+sortField(q.SortBy))

	query := fmt.Sprintf(filteredQueryFormat, strings.Join(parts, ", "))
	vars := map[string]any{"page": 1, "perPage": limit}

	var payload filteredPayload
	if err := f.client.Do(ctx, query, vars, &payload); err != nil {
		slog.Error("fetching filtered anime failed", "error", err)
		return nil
	}
	if payload.Data == nil || payload.Data.Page == nil {
		return nil
	}

	media := payload.Data.Page.Media
	recs := make([]Recommendation, 0, len(media))
	for _, m := range media {
		recs = append(recs, mapMedia(m))
		if len(recs) == limit {
			break
		}
	}
	return recs
}

func sortField(s SortBy) string {
	switch s {
	case SortScore:
		return "SCORE_DESC"
	case SortTrending:
		return "TRENDING_DESC"
	default:
		return "POPULARITY_DESC"
	}
}

func mapMedia(m recMedia) Recommendation {
	themes := make([]string, 0, 5)
	for i, g := range m.Genres {
		if i == 3 {
			break
		}
		themes = append(themes, g)
	}
	for i, tag := range m.Tags {
		if i == 2 {
			break
		}
		themes = append(themes, tag.Name)
	}

	rec := Recommendation{
		Title:    m.Title.pick(),
		Episodes: m.Episodes,
		Score:    m.AverageScore,
		SiteURL:  m.SiteURL,
		Themes:   themes,
	}
	if m.Description != nil {
		rec.Description = clip(stripHTML(*m.Description), 150)
	}
	return rec
}

// clip cuts s to at most n runes, with no ellipsis.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
