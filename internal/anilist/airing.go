package anilist

import (
	"context"
	"sort"
)

// AiringItem is one not-yet-aired episode with its scheduled broadcast time.
type AiringItem struct {
	Title    string
	Episode  int
	AiringAt int64 // unix seconds
}

// AiringOptions selects what FetchUpcoming retrieves. A non-empty Query
// switches from the global schedule to a title search.
type AiringOptions struct {
	Query   string
	Page    int // defaults to 1
	PerPage int // defaults to 10
}

// AiringInfo describes a single title's airing state.
type AiringInfo struct {
	Title       string
	NextEpisode *int
	TimeUntil   *int64 // seconds until the next episode airs
	SiteURL     string
	Status      string
	Episodes    *int
}

const generalAiringQuery = `
  query ($page: Int!, $perPage: Int!) {
    Page(page: $page, perPage: $perPage) {
      airingSchedules(notYetAired: true, sort: TIME) {
        airingAt
        episode
        media {
          title {
            english
            romaji
            native
          }
        }
      }
    }
  }
`

const searchAiringQuery = `
  query ($search: String!, $page: Int!, $perPage: Int!) {
    Page(page: $page, perPage: $perPage) {
      media(search: $search, type: ANIME) {
        title {
          english
          romaji
          native
        }
        nextAiringEpisode {
          airingAt
          episode
        }
      }
    }
  }
`

const lookupQuery = `
  query ($search: String) {
    Media (search: $search, type: ANIME) {
      title { romaji english native }
      nextAiringEpisode { episode timeUntilAiring }
      siteUrl
      status
      episodes
    }
  }
`

type mediaTitle struct {
	English *string `json:"english"`
	Romaji  *string `json:"romaji"`
	Native  *string `json:"native"`
}

// pick returns the preferred display title: english, romaji, native, "Unknown".
func (t *mediaTitle) pick() string {
	if t == nil {
		return "Unknown"
	}
	for _, s := range []*string{t.English, t.Romaji, t.Native} {
		if s != nil && *s != "" {
			return *s
		}
	}
	return "Unknown"
}

type airingPayload struct {
	Data *struct {
		Page *struct {
			AiringSchedules []struct {
				AiringAt *int64 `json:"airingAt"`
				Episode  *int   `json:"episode"`
				Media    *struct {
					Title *mediaTitle `json:"title"`
				} `json:"media"`
			} `json:"airingSchedules"`
			Media []struct {
				Title             *mediaTitle `json:"title"`
				NextAiringEpisode *struct {
					AiringAt *int64 `json:"airingAt"`
					Episode  *int   `json:"episode"`
				} `json:"nextAiringEpisode"`
			} `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

type lookupPayload struct {
	Data *struct {
		Media *struct {
			Title             *mediaTitle `json:"title"`
			NextAiringEpisode *struct {
				Episode         *int   `json:"episode"`
				TimeUntilAiring *int64 `json:"timeUntilAiring"`
			} `json:"nextAiringEpisode"`
			SiteURL  string  `json:"siteUrl"`
			Status   *string `json:"status"`
			Episodes *int    `json:"episodes"`
		} `json:"Media"`
	} `json:"data"`
}

// FetchUpcoming returns upcoming episodes, sorted ascending by airing time.
// With an empty Query it returns the global not-yet-aired schedule; with a
// Query it returns the next airing episode of matching titles. Results are
// cached per query shape; records without a positive episode number and
// airing timestamp are dropped. Network and status failures propagate to the
// caller unretried.
func (c *Client) FetchUpcoming(ctx context.Context, opts AiringOptions) ([]AiringItem, error) {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 10
	}

	kind := kindGeneral
	if opts.Query != "" {
		kind = kindSearch
	}
	key := cacheKey(kind, opts.Query, page, perPage)
	if items, ok := c.cache.get(kind, key); ok {
		return items, nil
	}

	var payload airingPayload
	if kind == kindSearch {
		vars := map[string]any{"search": opts.Query, "page": page, "perPage": perPage}
		if err := c.Do(ctx, searchAiringQuery, vars, &payload); err != nil {
			return nil, err
		}
	} else {
		vars := map[string]any{"page": page, "perPage": perPage}
		if err := c.Do(ctx, generalAiringQuery, vars, &payload); err != nil {
			return nil, err
		}
	}

	items := collectAiring(kind, &payload)
	sort.Slice(items, func(i, j int) bool { return items[i].AiringAt < items[j].AiringAt })
	c.cache.set(kind, key, items)
	return items, nil
}

func collectAiring(kind cacheKind, payload *airingPayload) []AiringItem {
	items := []AiringItem{}
	if payload.Data == nil || payload.Data.Page == nil {
		return items
	}
	page := payload.Data.Page

	if kind == kindSearch {
		for _, m := range page.Media {
			item := AiringItem{Title: m.Title.pick()}
			if next := m.NextAiringEpisode; next != nil {
				if next.Episode != nil {
					item.Episode = *next.Episode
				}
				if next.AiringAt != nil {
					item.AiringAt = *next.AiringAt
				}
			}
			if item.Episode > 0 && item.AiringAt > 0 {
				items = append(items, item)
			}
		}
		return items
	}

	for _, s := range page.AiringSchedules {
		item := AiringItem{Title: "Unknown"}
		if s.Media != nil {
			item.Title = s.Media.Title.pick()
		}
		if s.Episode != nil {
			item.Episode = *s.Episode
		}
		if s.AiringAt != nil {
			item.AiringAt = *s.AiringAt
		}
		if item.Episode > 0 && item.AiringAt > 0 {
			items = append(items, item)
		}
	}
	return items
}

// LookupAiring fetches the airing state of a single title. It returns nil
// (no error) when AniList has no matching media.
func (c *Client) LookupAiring(ctx context.Context, title string) (*AiringInfo, error) {
	var payload lookupPayload
	if err := c.Do(ctx, lookupQuery, map[string]any{"search": title}, &payload); err != nil {
		return nil, err
	}

	if payload.Data == nil || payload.Data.Media == nil {
		return nil, nil
	}
	media := payload.Data.Media

	info := &AiringInfo{
		Title:    media.Title.pick(),
		SiteURL:  media.SiteURL,
		Episodes: media.Episodes,
	}
	if media.Status != nil {
		info.Status = *media.Status
	}
	if next := media.NextAiringEpisode; next != nil {
		info.NextEpisode = next.Episode
		info.TimeUntil = next.TimeUntilAiring
	}
	return info, nil
}
