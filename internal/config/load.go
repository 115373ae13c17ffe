package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	defaults := Defaults()
	if err := k.Load(defaultsProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load from config file if it exists
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
		}
	} else {
		// Try default config paths
		for _, path := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
					return nil, fmt.Errorf("loading config file: %w", err)
				}
				break
			}
		}
	}

	// 3. Load from environment variables (FRANKY_ prefix)
	if err := k.Load(env.Provider("FRANKY_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// 4. Load from CLI flags
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	// 5. Unmarshal into struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
	}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// 6. Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Section names ordered so that multi-word sections match before their
// single-word prefixes could.
var envSections = []string{
	"rate_limit", "server", "bot", "log", "anilist", "recommend", "format", "trivia",
}

// envTransform maps FRANKY_SECTION_LEAF_NAME to "section.leaf_name". Leaf
// keys keep their underscores; only the section boundary (and the command
// subsection of rate_limit) becomes a dot.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "FRANKY_"))
	for _, section := range envSections {
		prefix := section + "_"
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if section == "rate_limit" && strings.HasPrefix(rest, "command_") {
			return "rate_limit.command." + strings.TrimPrefix(rest, "command_")
		}
		return section + "." + rest
	}
	return strings.ReplaceAll(key, "_", ".")
}

type defaultsProviderStruct struct {
	defaults *Config
}

func defaultsProvider(defaults *Config) *defaultsProviderStruct {
	return &defaultsProviderStruct{defaults: defaults}
}

func (d *defaultsProviderStruct) ReadBytes() ([]byte, error) {
	return nil, nil
}

func (d *defaultsProviderStruct) Read() (map[string]interface{}, error) {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"host":            d.defaults.Server.Host,
			"port":            d.defaults.Server.Port,
			"public_url":      d.defaults.Server.PublicURL,
			"allowed_origins": d.defaults.Server.AllowedOrigins,
		},
		"bot": map[string]interface{}{
			"name": d.defaults.Bot.Name,
			"id":   d.defaults.Bot.ID,
		},
		"log": map[string]interface{}{
			"level":  d.defaults.Log.Level,
			"format": d.defaults.Log.Format,
		},
		"anilist": map[string]interface{}{
			"base_url":            d.defaults.AniList.BaseURL,
			"cache_ttl":           d.defaults.AniList.CacheTTL.String(),
			"requests_per_minute": d.defaults.AniList.RequestsPerMinute,
		},
		"recommend": map[string]interface{}{
			"underrated_popularity_cap": d.defaults.Recommend.UnderratedPopularityCap,
			"episode_window":            d.defaults.Recommend.EpisodeWindow,
			"default_limit":             d.defaults.Recommend.DefaultLimit,
		},
		"format": map[string]interface{}{
			"max_chars":    d.defaults.Format.MaxChars,
			"timezone":     d.defaults.Format.Timezone,
			"airing_limit": d.defaults.Format.AiringLimit,
		},
		"trivia": map[string]interface{}{
			"round_duration": d.defaults.Trivia.RoundDuration.String(),
		},
		"rate_limit": map[string]interface{}{
			"enabled": d.defaults.RateLimit.Enabled,
			"command": map[string]interface{}{
				"limit":  d.defaults.RateLimit.Command.Limit,
				"window": d.defaults.RateLimit.Command.Window.String(),
			},
		},
	}, nil
}

func SetupFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("franky", pflag.ContinueOnError)
	flags.String("config", "", "Path to config file")
	flags.String("server.host", "", "Server host")
	flags.Int("server.port", 0, "Server port")
	flags.String("server.public_url", "", "Public URL")
	flags.StringSlice("server.allowed_origins", nil, "Allowed CORS origins")
	flags.String("bot.name", "", "Bot display name")
	flags.String("bot.id", "", "Bot user id on the platform")
	flags.String("log.level", "", "Log level: debug, info, warn, or error")
	flags.String("log.format", "", "Log format: text or json")
	flags.String("anilist.base_url", "", "AniList GraphQL endpoint")
	flags.Duration("anilist.cache_ttl", 0, "Airing cache TTL")
	flags.Int("anilist.requests_per_minute", 0, "Outbound AniList request budget")
	flags.String("format.timezone", "", "Timezone for airing times")
	flags.Int("format.max_chars", 0, "Message character budget")
	flags.Duration("trivia.round_duration", 0, "Trivia round duration")
	flags.Bool("rate_limit.enabled", false, "Enable per-channel command rate limiting")
	return flags
}
