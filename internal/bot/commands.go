package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/animetown/franky/internal/anilist"
	"github.com/animetown/franky/internal/format"
	"github.com/animetown/franky/internal/quotes"
	"github.com/animetown/franky/internal/registry"
	"github.com/animetown/franky/internal/trivia"
)

const serviceUnavailableReply = "AniList is not responding right now. Please try again later."

const helpText = "Franky — Commands\n\n" +
	"• /airing <title>\n" +
	"• /schedule [title]\n" +
	"• /calendar\n" +
	"• /recommend <vibe>\n" +
	"• /quote\n" +
	"• /guess_anime\n" +
	"• /news\n" +
	"• /ping\n" +
	"• /diag\n\n" +
	"Moderation (admins):\n\n" +
	"• /ban @user • /mute @user 10m • /purge 25"

type command struct {
	name        string
	description string
	handler     func(*Dispatcher, context.Context, *slog.Logger, Event)
}

var commandTable = []command{
	{"help", "Show available commands", (*Dispatcher).cmdHelp},
	{"airing", "Check next airing episode for an anime", (*Dispatcher).cmdAiring},
	{"schedule", "Show upcoming episodes, optionally for one title", (*Dispatcher).cmdSchedule},
	{"calendar", "Show the weekly airing calendar", (*Dispatcher).cmdCalendar},
	{"recommend", "Get anime recommendations for a vibe", (*Dispatcher).cmdRecommend},
	{"quote", "Send a random anime quote", (*Dispatcher).cmdQuote},
	{"guess_anime", "Start a guess-the-anime trivia game (admins only)", (*Dispatcher).cmdGuessAnime},
	{"news", "Show latest anime news (coming soon)", (*Dispatcher).cmdNews},
	{"ping", "Check if Franky is responsive", (*Dispatcher).cmdPing},
	{"diag", "Show diagnostic information", (*Dispatcher).cmdDiag},
	{"ban", "Ban a user (admins only)", (*Dispatcher).cmdBan},
	{"mute", "Mute a user (admins only, placeholder)", (*Dispatcher).cmdMute},
	{"purge", "Purge recent messages (admins only, placeholder)", (*Dispatcher).cmdPurge},
}

// CommandSpecs lists the commands to register with the platform.
func (d *Dispatcher) CommandSpecs() []registry.CommandSpec {
	specs := make([]registry.CommandSpec, len(commandTable))
	for i, c := range commandTable {
		specs[i] = registry.CommandSpec{Name: c.name, Description: c.description}
	}
	return specs
}

// HandleCommand routes a slash command to its handler. Unknown names are
// logged and dropped.
func (d *Dispatcher) HandleCommand(ctx context.Context, name string, ev Event) {
	log := slog.With(
		"correlation_id", ulid.Make().String(),
		"command", name,
		"channel", ev.ChannelID,
		"user", ev.UserID,
	)
	// guess-anime is the deprecated spelling kept for old clients.
	if name == "guess-anime" {
		log.Info("deprecated alias, routing to guess_anime")
		name = "guess_anime"
	}
	log.Info("handling slash command", "args", strings.Join(ev.Args, " "))

	if d.limiter != nil {
		if res, ok := d.limiter.Allow(ev.ChannelID, name); !ok {
			log.Warn("command rate limited", "retry_in", res.RetryIn)
			d.send(ctx, log, ev.ChannelID, "⏳ Easy there! That command was used here too recently. Try again soon.")
			return
		}
	}

	for _, c := range commandTable {
		if c.name == name {
			c.handler(d, ctx, log, ev)
			return
		}
	}
	log.Warn("unknown slash command")
}

func (d *Dispatcher) cmdHelp(ctx context.Context, log *slog.Logger, ev Event) {
	d.send(ctx, log, ev.ChannelID, helpText)
}

func (d *Dispatcher) cmdAiring(ctx context.Context, log *slog.Logger, ev Event) {
	title := strings.TrimSpace(strings.Join(ev.Args, " "))
	if title == "" {
		d.send(ctx, log, ev.ChannelID, "Usage: `/airing <title>`\nExample: `/airing One Piece`")
		return
	}

	info, err := d.anilist.LookupAiring(ctx, title)
	if err != nil {
		log.Error("anilist lookup failed", "title", title, "error", err)
		d.send(ctx, log, ev.ChannelID, serviceUnavailableReply)
		return
	}
	if info == nil {
		d.send(ctx, log, ev.ChannelID, "Not found. Try a different title.")
		return
	}

	if info.NextEpisode != nil && info.TimeUntil != nil {
		d.send(ctx, log, ev.ChannelID, fmt.Sprintf("📺 %s\nNext ep: ~%s | #%d\n%s",
			info.Title, format.ETA(*info.TimeUntil), *info.NextEpisode, info.SiteURL))
		return
	}
	d.send(ctx, log, ev.ChannelID, fmt.Sprintf("📺 %s\nNo upcoming episode info.\n%s",
		info.Title, info.SiteURL))
}

func (d *Dispatcher) cmdSchedule(ctx context.Context, log *slog.Logger, ev Event) {
	query := strings.TrimSpace(strings.Join(ev.Args, " "))
	items, err := d.anilist.FetchUpcoming(ctx, anilist.AiringOptions{Query: query})
	if err != nil {
		log.Error("fetching airing schedule failed", "query", query, "error", err)
		d.send(ctx, log, ev.ChannelID, serviceUnavailableReply)
		return
	}

	header := "📺 Upcoming episodes"
	if query != "" {
		header = "📺 Upcoming: " + query
	}
	d.send(ctx, log, ev.ChannelID, format.AiringList(items, format.AiringOptions{
		Limit:    d.airingLimit,
		TZ:       d.tz,
		Header:   header,
		MaxChars: d.maxChars,
	}))
}

func (d *Dispatcher) cmdCalendar(ctx context.Context, log *slog.Logger, ev Event) {
	items, err := d.anilist.FetchUpcoming(ctx, anilist.AiringOptions{PerPage: 25})
	if err != nil {
		log.Error("fetching airing calendar failed", "error", err)
		d.send(ctx, log, ev.ChannelID, serviceUnavailableReply)
		return
	}
	d.send(ctx, log, ev.ChannelID, format.AiringList(items, format.AiringOptions{
		Limit:      25,
		TZ:         d.tz,
		Header:     "🗓️ Weekly airing calendar",
		GroupByDay: true,
		MaxChars:   d.maxChars,
	}))
}

func (d *Dispatcher) cmdRecommend(ctx context.Context, log *slog.Logger, ev Event) {
	vibe := strings.TrimSpace(strings.Join(ev.Args, " "))
	if vibe == "" {
		vibe = "action"
	}
	q := d.parser.Parse(vibe)
	log.Info("parsed recommendation query", "type", q.Type, "genres", q.Genres, "moods", q.Moods)
	recs := d.fetcher.Fetch(ctx, q, d.recommendLimit)
	d.send(ctx, log, ev.ChannelID, format.Recommendations(recs, vibe))
}

func (d *Dispatcher) cmdQuote(ctx context.Context, log *slog.Logger, ev Event) {
	q := quotes.Random()
	d.send(ctx, log, ev.ChannelID, fmt.Sprintf("💬 \"%s\" — %s", q.Text, q.Character))
}

func (d *Dispatcher) cmdGuessAnime(ctx context.Context, log *slog.Logger, ev Event) {
	if !d.isAdmin(ctx, log, ev) {
		d.send(ctx, log, ev.ChannelID, "❌ Admin only.")
		return
	}

	q, err := d.trivia.Start(ev.ChannelID, func(q trivia.Question) {
		// The round outlives the command's request context.
		d.send(context.Background(), log, ev.ChannelID,
			fmt.Sprintf("⏰ Time's up! Answer: **%s**", q.Answer))
	})
	if errors.Is(err, trivia.ErrGameActive) {
		d.send(ctx, log, ev.ChannelID, "❌ Game already active. Wait for it to finish.")
		return
	}
	if err != nil {
		log.Error("starting trivia round failed", "error", err)
		return
	}
	d.send(ctx, log, ev.ChannelID,
		fmt.Sprintf("**🎮 Guess the Anime**\n\n%s\n\n*60 seconds to answer!*", q.Clue))
}

func (d *Dispatcher) cmdNews(ctx context.Context, log *slog.Logger, ev Event) {
	d.send(ctx, log, ev.ChannelID, "📰 Anime news (coming soon).")
}

func (d *Dispatcher) cmdPing(ctx context.Context, log *slog.Logger, ev Event) {
	d.send(ctx, log, ev.ChannelID, "🏓 Pong! Franky is online.")
}

func (d *Dispatcher) cmdDiag(ctx context.Context, log *slog.Logger, ev Event) {
	args := strings.Join(ev.Args, " ")
	if args == "" {
		args = "(none)"
	}
	d.send(ctx, log, ev.ChannelID, strings.Join([]string{
		"Franky diagnostics",
		fmt.Sprintf("• Uptime: %ds", int(time.Since(d.startedAt).Seconds())),
		"• Channel: " + ev.ChannelID,
		"• User: " + ev.UserID,
		"• Args: " + args,
	}, "\n"))
}

func (d *Dispatcher) cmdBan(ctx context.Context, log *slog.Logger, ev Event) {
	if !d.isAdmin(ctx, log, ev) {
		d.send(ctx, log, ev.ChannelID, "❌ Admin only.")
		return
	}

	target := firstTarget(ev)
	if target == "" || !strings.HasPrefix(target, "0x") || len(target) != 42 {
		d.send(ctx, log, ev.ChannelID, "❌ Usage: `/ban @user` or `/ban <userId>`")
		return
	}
	if err := d.messenger.Ban(ctx, target, ev.SpaceID); err != nil {
		d.send(ctx, log, ev.ChannelID, fmt.Sprintf("❌ Failed: %s", err))
		return
	}
	log.Info("banned user", "target", target)
	d.send(ctx, log, ev.ChannelID, fmt.Sprintf("✅ Banned <@%s>", target))
}

func (d *Dispatcher) cmdMute(ctx context.Context, log *slog.Logger, ev Event) {
	if !d.isAdmin(ctx, log, ev) {
		d.send(ctx, log, ev.ChannelID, "❌ Admin only.")
		return
	}

	target := firstTarget(ev)
	if target == "" {
		d.send(ctx, log, ev.ChannelID, "❌ Usage: `/mute @user`")
		return
	}
	log.Info("muted user", "target", target)
	d.send(ctx, log, ev.ChannelID,
		fmt.Sprintf("🔇 Muted <@%s>\nNote: Actual muting coming soon.", target))
}

func (d *Dispatcher) cmdPurge(ctx context.Context, log *slog.Logger, ev Event) {
	if !d.isAdmin(ctx, log, ev) {
		d.send(ctx, log, ev.ChannelID, "❌ Admin only.")
		return
	}

	var count int
	if len(ev.Args) > 0 {
		count, _ = strconv.Atoi(ev.Args[0])
	}
	if count < 1 || count > 100 {
		d.send(ctx, log, ev.ChannelID, "❌ Usage: `/purge 25` (1-100)")
		return
	}
	log.Info("purge requested", "count", count)
	d.send(ctx, log, ev.ChannelID,
		fmt.Sprintf("🗑️ Purge %d messages...\nNote: Implementation coming soon.", count))
}

// isAdmin treats a failed permission lookup as non-admin.
func (d *Dispatcher) isAdmin(ctx context.Context, log *slog.Logger, ev Event) bool {
	admin, err := d.messenger.HasAdminPermission(ctx, ev.UserID, ev.SpaceID)
	if err != nil {
		log.Error("admin permission check failed", "error", err)
		return false
	}
	return admin
}

func firstTarget(ev Event) string {
	if len(ev.Mentions) > 0 {
		return ev.Mentions[0]
	}
	if len(ev.Args) > 0 {
		return ev.Args[0]
	}
	return ""
}
