// Package anilist is a client for the AniList GraphQL API. It covers the
// query shapes the bot needs (upcoming airing schedules and per-title
// lookups) and memoizes airing results for a short TTL.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public AniList GraphQL endpoint.
const DefaultBaseURL = "https://graphql.anilist.co"

// DefaultRequestsPerMinute matches AniList's documented rate budget.
const DefaultRequestsPerMinute = 60

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("anilist returned status %d: %s", e.Code, e.Status)
}

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides the HTTP client. The default client carries no
	// request timeout; callers bound requests through ctx.
	HTTPClient *http.Client
	// RequestsPerMinute throttles outbound calls. Defaults to
	// DefaultRequestsPerMinute; negative disables throttling.
	RequestsPerMinute int
	// CacheTTL overrides the airing cache TTL. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration
	// Clock overrides the time source, for tests.
	Clock Clock
}

// Client queries the AniList API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	clock   Clock
	cache   *responseCache
}

func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	rpm := opts.RequestsPerMinute
	if rpm == 0 {
		rpm = DefaultRequestsPerMinute
	}
	var limiter *rate.Limiter
	if rpm > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm)
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		limiter: limiter,
		clock:   clock,
		cache:   newResponseCache(opts.CacheTTL, clock),
	}
}

// Do executes a GraphQL query and decodes the response envelope into out.
// A non-2xx response is returned as *StatusError. Absent or null fields in
// the envelope are the caller's concern; out should use pointer fields for
// anything the API may omit.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encoding anilist request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building anilist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling anilist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding anilist response: %w", err)
	}
	return nil
}
