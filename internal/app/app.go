// Package app wires the bot's components together and runs them.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/animetown/franky/internal/anilist"
	"github.com/animetown/franky/internal/bot"
	"github.com/animetown/franky/internal/config"
	"github.com/animetown/franky/internal/ratelimit"
	"github.com/animetown/franky/internal/recommend"
	"github.com/animetown/franky/internal/registry"
	"github.com/animetown/franky/internal/server"
	"github.com/animetown/franky/internal/trivia"
)

// Options carries the platform bindings. The chat SDK lives outside this
// module; the process that embeds the bot supplies its hooks here.
type Options struct {
	// Messenger delivers replies and permission checks. Nil selects a
	// log-only messenger, useful for local runs without a platform.
	Messenger bot.Messenger
	// Webhook handles platform callbacks on POST /webhook. Nil keeps the
	// route answering 200 while the connection is still coming up.
	Webhook http.Handler
	// Registrar registers the slash commands with the platform on start.
	// Nil skips registration.
	Registrar registry.Registrar
}

type App struct {
	Config     *config.Config
	Server     *server.Server
	Dispatcher *bot.Dispatcher
	AniList    *anilist.Client
	Limiter    *ratelimit.Limiter

	registrar registry.Registrar
}

func New(cfg *config.Config, opts Options) (*App, error) {
	client := anilist.NewClient(anilist.Options{
		BaseURL:           cfg.AniList.BaseURL,
		RequestsPerMinute: cfg.AniList.RequestsPerMinute,
		CacheTTL:          cfg.AniList.CacheTTL,
	})

	fetcher := recommend.NewFetcher(recommend.FetcherOptions{
		Client:                  client,
		UnderratedPopularityCap: cfg.Recommend.UnderratedPopularityCap,
	})

	triviaManager := trivia.NewManager(trivia.Options{
		RoundDuration: cfg.Trivia.RoundDuration,
	})

	// Build rate limiter (nil if disabled)
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter(ratelimit.Rule{
			Limit:  cfg.RateLimit.Command.Limit,
			Window: cfg.RateLimit.Command.Window,
		})
	}

	messenger := opts.Messenger
	if messenger == nil {
		slog.Info("no platform messenger configured, replies go to the log")
		messenger = logMessenger{}
	}

	dispatcher := bot.New(bot.Dependencies{
		Messenger:      messenger,
		AniList:        client,
		Parser:         recommend.Parser{EpisodeWindow: cfg.Recommend.EpisodeWindow},
		Fetcher:        fetcher,
		Trivia:         triviaManager,
		Limiter:        limiter,
		BotID:          cfg.Bot.ID,
		BotName:        cfg.Bot.Name,
		TZ:             cfg.Format.Timezone,
		AiringLimit:    cfg.Format.AiringLimit,
		MaxChars:       cfg.Format.MaxChars,
		RecommendLimit: cfg.Recommend.DefaultLimit,
	})

	router := server.NewRouter(server.RouterOptions{
		Webhook:        opts.Webhook,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StartedAt:      time.Now(),
	})

	srv := server.New(cfg.Server.Host, cfg.Server.Port, router)

	return &App{
		Config:     cfg,
		Server:     srv,
		Dispatcher: dispatcher,
		AniList:    client,
		Limiter:    limiter,
		registrar:  opts.Registrar,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	// Register slash commands with the platform
	if a.registrar != nil {
		go func() {
			if err := registry.Register(ctx, a.registrar, a.Dispatcher.CommandSpecs()); err != nil {
				slog.Error("slash command registration failed", "error", err)
			}
		}()
	}

	// Start rate limiter cleanup
	if a.Limiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					a.Limiter.Cleanup()
				}
			}
		}()
	}

	slog.Info("starting franky",
		"addr", a.Server.Addr(),
		"bot", a.Config.Bot.Name,
		"anilist", a.Config.AniList.BaseURL,
		"rate_limit", a.Config.RateLimit.Enabled,
	)

	return a.Server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}

// logMessenger satisfies bot.Messenger without a platform connection. Sends
// are logged; permission checks answer conservatively.
type logMessenger struct{}

func (logMessenger) SendMessage(_ context.Context, channelID, text string) error {
	slog.Info("reply", "channel", channelID, "text", text)
	return nil
}

func (logMessenger) HasAdminPermission(context.Context, string, string) (bool, error) {
	return false, nil
}

func (logMessenger) CanRedact(context.Context, string) (bool, error) {
	return false, nil
}

func (logMessenger) RemoveEvent(context.Context, string, string) error {
	return nil
}

func (logMessenger) Ban(context.Context, string, string) error {
	return nil
}
