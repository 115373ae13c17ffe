package config

import "time"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Bot       BotConfig       `koanf:"bot"`
	Log       LogConfig       `koanf:"log"`
	AniList   AniListConfig   `koanf:"anilist"`
	Recommend RecommendConfig `koanf:"recommend"`
	Format    FormatConfig    `koanf:"format"`
	Trivia    TriviaConfig    `koanf:"trivia"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Host           string   `koanf:"host"`
	Port           int      `koanf:"port"`
	PublicURL      string   `koanf:"public_url"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type BotConfig struct {
	Name string `koanf:"name"`
	ID   string `koanf:"id"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text or json
}

type AniListConfig struct {
	BaseURL           string        `koanf:"base_url"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

type RecommendConfig struct {
	UnderratedPopularityCap int `koanf:"underrated_popularity_cap"`
	EpisodeWindow           int `koanf:"episode_window"`
	DefaultLimit            int `koanf:"default_limit"`
}

type FormatConfig struct {
	MaxChars    int    `koanf:"max_chars"`
	Timezone    string `koanf:"timezone"`
	AiringLimit int    `koanf:"airing_limit"`
}

type TriviaConfig struct {
	RoundDuration time.Duration `koanf:"round_duration"`
}

type RateLimitConfig struct {
	Enabled bool              `koanf:"enabled"`
	Command RateLimitEndpoint `koanf:"command"`
}

type RateLimitEndpoint struct {
	Limit  int           `koanf:"limit"`
	Window time.Duration `koanf:"window"`
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			PublicURL: "http://localhost:8080",
		},
		Bot: BotConfig{
			Name: "franky",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		AniList: AniListConfig{
			BaseURL:           "https://graphql.anilist.co",
			CacheTTL:          90 * time.Second,
			RequestsPerMinute: 60,
		},
		Recommend: RecommendConfig{
			UnderratedPopularityCap: 50000,
			EpisodeWindow:           5,
			DefaultLimit:            10,
		},
		Format: FormatConfig{
			MaxChars:    900,
			Timezone:    "UTC",
			AiringLimit: 5,
		},
		Trivia: TriviaConfig{
			RoundDuration: 60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Command: RateLimitEndpoint{Limit: 10, Window: time.Minute},
		},
	}
}
