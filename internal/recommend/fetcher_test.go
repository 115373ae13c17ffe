package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/animetown/franky/internal/anilist"
)

// graphqlServer answers each request by matching substrings of the query text
// against responses, and records the queries it saw.
type graphqlServer struct {
	t         *testing.T
	responses map[string]string // query substring -> response body
	queries   []string
}

func (g *graphqlServer) handler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		g.t.Errorf("bad request body: %v", err)
	}
	g.queries = append(g.queries, body.Query)
	for substr, resp := range g.responses {
		if strings.Contains(body.Query, substr) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(resp))
			return
		}
	}
	g.t.Errorf("no canned response for query: %s", body.Query)
	http.Error(w, "unexpected query", http.StatusBadRequest)
}

func newTestFetcher(t *testing.T, responses map[string]string) (*Fetcher, *graphqlServer) {
	t.Helper()
	gs := &graphqlServer{t: t, responses: responses}
	srv := httptest.NewServer(http.HandlerFunc(gs.handler))
	t.Cleanup(srv.Close)
	client := anilist.NewClient(anilist.Options{
		BaseURL:           srv.URL,
		HTTPClient:        srv.Client(),
		RequestsPerMinute: -1,
	})
	return NewFetcher(FetcherOptions{Client: client}), gs
}

func TestFetch_SimilarMapsRecommendations(t *testing.T) {
	f, _ := newTestFetcher(t, map[string]string{
		"recommendations": `{"data":{"Media":{
			"genres":["Action"],
			"recommendations":{"nodes":[
				{"mediaRecommendation":{
					"title":{"english":"Hunter x Hunter","romaji":"HxH"},
					"episodes":148,
					"averageScore":89,
					"siteUrl":"https://anilist.co/anime/11061",
					"genres":["Action","Adventure","Fantasy","Comedy"],
					"tags":[{"name":"Shounen"},{"name":"Tournament"},{"name":"Nen"}],
					"description":"<p>Gon &amp; friends take the <i>Hunter</i> exam.</p>"
				}},
				{"mediaRecommendation":null},
				{"mediaRecommendation":{
					"title":{"english":null,"romaji":"Yu Yu Hakusho"},
					"episodes":null,
					"averageScore":null,
					"siteUrl":"https://anilist.co/anime/392",
					"genres":[],
					"tags":[],
					"description":null
				}}
			]}
		}}}`,
	})

	recs := f.Fetch(context.Background(), Query{Type: TypeSimilarTo, SimilarTo: "naruto"}, 10)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2 (null node skipped)", len(recs))
	}

	first := recs[0]
	if first.Title != "Hunter x Hunter" {
		t.Errorf("Title = %q, want Hunter x Hunter", first.Title)
	}
	if first.Episodes == nil || *first.Episodes != 148 {
		t.Errorf("Episodes = %v, want 148", first.Episodes)
	}
	if first.Score == nil || *first.Score != 89 {
		t.Errorf("Score = %v, want 89", first.Score)
	}
	wantThemes := []string{"Action", "Adventure", "Fantasy", "Shounen", "Tournament"}
	if len(first.Themes) != 5 {
		t.Fatalf("Themes = %v, want %v", first.Themes, wantThemes)
	}
	for i, w := range wantThemes {
		if first.Themes[i] != w {
			t.Errorf("Themes[%d] = %q, want %q", i, first.Themes[i], w)
		}
	}
	if first.Description != "Gon & friends take the Hunter exam." {
		t.Errorf("Description = %q, want stripped text", first.Description)
	}

	second := recs[1]
	if second.Title != "Yu Yu Hakusho" {
		t.Errorf("Title = %q, want romaji fallback", second.Title)
	}
	if second.Episodes != nil || second.Score != nil {
		t.Errorf("missing fields should stay nil: %+v", second)
	}
	if second.Description != "" {
		t.Errorf("Description = %q, want empty", second.Description)
	}
}

func TestFetch_SimilarFallsBackToGenres(t *testing.T) {
	f, gs := newTestFetcher(t, map[string]string{
		"recommendations": `{"data":{"Media":{
			"genres":["Mystery","Thriller","Horror"],
			"recommendations":{"nodes":[]}
		}}}`,
		"Page(page:": `{"data":{"Page":{"media":[
			{"title":{"english":"Monster"},"episodes":74,"averageScore":88,
			 "siteUrl":"https://anilist.co/anime/19","genres":["Mystery"],"tags":[],
			 "description":null}
		]}}}`,
	})

	recs := f.Fetch(context.Background(), Query{Type: TypeSimilarTo, SimilarTo: "obscure title"}, 5)
	if len(recs) != 1 || recs[0].Title != "Monster" {
		t.Fatalf("got %+v, want the genre-fallback result", recs)
	}
	if len(gs.queries) != 2 {
		t.Fatalf("made %d queries, want 2 (lookup then fallback)", len(gs.queries))
	}
	// Only the first two genres carry over to the fallback filter.
	fallback := gs.queries[1]
	if !strings.Contains(fallback, `genre_in: ["Mystery", "Thriller"]`) {
		t.Errorf("fallback filter missing first two genres: %s", fallback)
	}
	if strings.Contains(fallback, "Horror") {
		t.Errorf("fallback filter should not carry the third genre: %s", fallback)
	}
}

func TestFetch_SimilarUnknownTitle(t *testing.T) {
	f, _ := newTestFetcher(t, map[string]string{
		"recommendations": `{"data":{"Media":null}}`,
	})
	recs := f.Fetch(context.Background(), Query{Type: TypeSimilarTo, SimilarTo: "no such anime"}, 5)
	if recs != nil {
		t.Fatalf("got %+v, want nil for unknown title", recs)
	}
}

func TestFetch_FilteredBuildsServerSideFilter(t *testing.T) {
	f, gs := newTestFetcher(t, map[string]string{
		"Page(page:": `{"data":{"Page":{"media":[]}}}`,
	})

	min, max := 19, 29
	f.Fetch(context.Background(), Query{
		Type:       TypeFiltered,
		Genres:     []string{"Action"},
		Moods:      []string{"Dark"},
		EpisodeMin: &min,
		EpisodeMax: &max,
		SortBy:     SortScore,
		Underrated: true,
	}, 10)

	if len(gs.queries) != 1 {
		t.Fatalf("made %d queries, want 1", len(gs.queries))
	}
	q := gs.queries[0]
	for _, want := range []string{
		`genre_in: ["Action", "Dark"]`,
		"episodes_greater: 19",
		"episodes_lesser: 29",
		"popularity_lesser: 50000",
		"type: ANIME",
		"status: FINISHED",
		"sort: SCORE_DESC",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("filter query missing %q:\n%s", want, q)
		}
	}
}

func TestFetch_FilteredDefaultSortOmitsOptionalFilters(t *testing.T) {
	f, gs := newTestFetcher(t, map[string]string{
		"Page(page:": `{"data":{"Page":{"media":[]}}}`,
	})

	f.Fetch(context.Background(), Query{Type: TypeFiltered, Genres: []string{"Comedy"}}, 10)

	q := gs.queries[0]
	if !strings.Contains(q, "sort: POPULARITY_DESC") {
		t.Errorf("want default popularity sort:\n%s", q)
	}
	for _, absent := range []string{"episodes_greater", "episodes_lesser", "popularity_lesser"} {
		if strings.Contains(q, absent) {
			t.Errorf("filter query should not contain %q:\n%s", absent, q)
		}
	}
}

func TestFetch_NetworkFailureYieldsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := anilist.NewClient(anilist.Options{
		BaseURL: srv.URL, HTTPClient: srv.Client(), RequestsPerMinute: -1,
	})
	f := NewFetcher(FetcherOptions{Client: client})

	if recs := f.Fetch(context.Background(), Query{Type: TypeFiltered, Genres: []string{"Action"}}, 5); recs != nil {
		t.Fatalf("got %+v, want nil on server failure", recs)
	}
	if recs := f.Fetch(context.Background(), Query{Type: TypeSimilarTo, SimilarTo: "naruto"}, 5); recs != nil {
		t.Fatalf("got %+v, want nil on server failure", recs)
	}
}

func TestFetch_LimitCapsResults(t *testing.T) {
	f, _ := newTestFetcher(t, map[string]string{
		"recommendations": `{"data":{"Media":{
			"genres":[],
			"recommendations":{"nodes":[
				{"mediaRecommendation":{"title":{"english":"A"},"siteUrl":"u","genres":[],"tags":[]}},
				{"mediaRecommendation":{"title":{"english":"B"},"siteUrl":"u","genres":[],"tags":[]}},
				{"mediaRecommendation":{"title":{"english":"C"},"siteUrl":"u","genres":[],"tags":[]}}
			]}
		}}}`,
	})

	recs := f.Fetch(context.Background(), Query{Type: TypeSimilarTo, SimilarTo: "x"}, 2)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want limit of 2", len(recs))
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>plain</p>", "plain"},
		{"a&nbsp;b", "a b"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"&lt;spoiler&gt;", "<spoiler>"},
		{"&quot;quoted&quot; &#39;single&#39;", `"quoted" 'single'`},
		{"  <br><b>bold</b> text  ", "bold text"},
		{"no markup", "no markup"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
