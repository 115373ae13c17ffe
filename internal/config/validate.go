package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

func Validate(cfg *Config) error {
	var errs []error

	// Server validation
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535"))
	}
	if cfg.Server.PublicURL != "" {
		if _, err := url.Parse(cfg.Server.PublicURL); err != nil {
			errs = append(errs, fmt.Errorf("server.public_url is not a valid URL: %w", err))
		}
	}
	for i, origin := range cfg.Server.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("server.allowed_origins[%d] %q is not a valid URL with scheme", i, origin))
		}
	}

	// Bot validation
	if cfg.Bot.Name == "" {
		errs = append(errs, fmt.Errorf("bot.name is required"))
	}

	// Log validation
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn, or error"))
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json"))
	}

	// AniList validation
	if cfg.AniList.BaseURL == "" {
		errs = append(errs, fmt.Errorf("anilist.base_url is required"))
	} else if u, err := url.Parse(cfg.AniList.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("anilist.base_url %q is not a valid URL with scheme", cfg.AniList.BaseURL))
	}
	if cfg.AniList.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("anilist.cache_ttl must not be negative"))
	}

	// Recommend validation
	if cfg.Recommend.UnderratedPopularityCap < 1 {
		errs = append(errs, fmt.Errorf("recommend.underrated_popularity_cap must be at least 1"))
	}
	if cfg.Recommend.EpisodeWindow < 0 {
		errs = append(errs, fmt.Errorf("recommend.episode_window must not be negative"))
	}
	if cfg.Recommend.DefaultLimit < 1 || cfg.Recommend.DefaultLimit > 50 {
		errs = append(errs, fmt.Errorf("recommend.default_limit must be between 1 and 50"))
	}

	// Format validation
	if cfg.Format.MaxChars < 100 {
		errs = append(errs, fmt.Errorf("format.max_chars must be at least 100"))
	}
	if cfg.Format.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Format.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("format.timezone %q is not a valid IANA zone", cfg.Format.Timezone))
		}
	}
	if cfg.Format.AiringLimit < 1 || cfg.Format.AiringLimit > 50 {
		errs = append(errs, fmt.Errorf("format.airing_limit must be between 1 and 50"))
	}

	// Trivia validation
	if cfg.Trivia.RoundDuration < time.Second {
		errs = append(errs, fmt.Errorf("trivia.round_duration must be at least 1s"))
	}

	// Rate limit validation (only when enabled)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Command.Limit < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.command.limit must be at least 1"))
		}
		if cfg.RateLimit.Command.Window < time.Second {
			errs = append(errs, fmt.Errorf("rate_limit.command.window must be at least 1s"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
