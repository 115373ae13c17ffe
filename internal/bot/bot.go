// Package bot dispatches inbound chat events to slash command handlers and
// the message pipeline (trivia answers, mentions, moderation).
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/animetown/franky/internal/anilist"
	"github.com/animetown/franky/internal/format"
	"github.com/animetown/franky/internal/ratelimit"
	"github.com/animetown/franky/internal/recommend"
	"github.com/animetown/franky/internal/trivia"
)

// Event is one inbound chat event: a message or the context of a slash
// command.
type Event struct {
	ChannelID   string
	SpaceID     string
	UserID      string
	EventID     string
	Message     string
	Args        []string
	Mentions    []string // mentioned user ids, in order
	IsMentioned bool
}

// Messenger is the chat platform surface the dispatcher talks to. The real
// implementation wraps the platform SDK; tests substitute a fake.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, text string) error
	HasAdminPermission(ctx context.Context, userID, spaceID string) (bool, error)
	CanRedact(ctx context.Context, channelID string) (bool, error)
	RemoveEvent(ctx context.Context, channelID, eventID string) error
	Ban(ctx context.Context, userID, spaceID string) error
}

// Dispatcher routes events to handlers.
type Dispatcher struct {
	messenger Messenger
	anilist   *anilist.Client
	parser    recommend.Parser
	fetcher   *recommend.Fetcher
	trivia    *trivia.Manager
	limiter   *ratelimit.Limiter

	botID          string
	botName        string
	tz             string
	airingLimit    int
	maxChars       int
	recommendLimit int
	startedAt      time.Time
}

// Dependencies holds all dependencies for the Dispatcher.
type Dependencies struct {
	Messenger Messenger
	AniList   *anilist.Client
	Parser    recommend.Parser
	Fetcher   *recommend.Fetcher
	Trivia    *trivia.Manager
	Limiter   *ratelimit.Limiter // nil disables command rate limiting

	BotID          string
	BotName        string // default "franky"
	TZ             string
	AiringLimit    int // default 5
	MaxChars       int // default format.DefaultMaxChars
	RecommendLimit int // default recommend.DefaultLimit
}

// New creates a Dispatcher with all dependencies.
func New(deps Dependencies) *Dispatcher {
	botName := deps.BotName
	if botName == "" {
		botName = "franky"
	}
	airingLimit := deps.AiringLimit
	if airingLimit <= 0 {
		airingLimit = 5
	}
	maxChars := deps.MaxChars
	if maxChars <= 0 {
		maxChars = format.DefaultMaxChars
	}
	recommendLimit := deps.RecommendLimit
	if recommendLimit <= 0 {
		recommendLimit = recommend.DefaultLimit
	}
	return &Dispatcher{
		messenger:      deps.Messenger,
		anilist:        deps.AniList,
		parser:         deps.Parser,
		fetcher:        deps.Fetcher,
		trivia:         deps.Trivia,
		limiter:        deps.Limiter,
		botID:          deps.BotID,
		botName:        botName,
		tz:             deps.TZ,
		airingLimit:    airingLimit,
		maxChars:       maxChars,
		recommendLimit: recommendLimit,
		startedAt:      time.Now(),
	}
}

// send delivers a reply, logging failures instead of propagating them; a
// dropped reply should not take down event handling.
func (d *Dispatcher) send(ctx context.Context, log *slog.Logger, channelID, text string) {
	log.Info("sending reply", "preview", format.Truncate(text, 80))
	if err := d.messenger.SendMessage(ctx, channelID, text); err != nil {
		log.Error("sending message failed", "error", err)
	}
}
