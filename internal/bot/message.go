package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/animetown/franky/internal/format"
	"github.com/animetown/franky/internal/moderation"
)

// HandleMessage runs the message pipeline: ignore the bot's own messages,
// check open trivia rounds, answer name mentions, then moderate.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev Event) {
	log := slog.With(
		"correlation_id", ulid.Make().String(),
		"channel", ev.ChannelID,
		"user", ev.UserID,
	)
	log.Info("handling message", "preview", format.Truncate(ev.Message, 80))

	if ev.UserID == d.botID {
		log.Debug("ignoring self message")
		return
	}

	if q, won := d.trivia.Answer(ev.ChannelID, ev.Message); won {
		d.send(ctx, log, ev.ChannelID, fmt.Sprintf("✅ Correct, <@%s>! Answer: %s", ev.UserID, q.Answer))
		return
	}

	lower := strings.ToLower(ev.Message)
	mentioned := ev.IsMentioned ||
		strings.Contains(lower, "@"+d.botName) ||
		strings.Contains(lower, d.botName)
	if mentioned {
		if reply, ok := d.smallTalk(lower); ok {
			d.send(ctx, log, ev.ChannelID, reply)
			return
		}
	}

	if moderation.IsScamOrSpam(ev.Message) {
		d.moderate(ctx, log, ev)
	}
}

// smallTalk answers a few canned phrases when the bot is addressed.
func (d *Dispatcher) smallTalk(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "hi"), strings.Contains(lower, "hello"):
		return "Hi there 👋", true
	case strings.Contains(lower, "who are you "+d.botName):
		return "I'm Franky, the super cyborg of AnimeTown!🌸", true
	case strings.Contains(lower, "bye "+d.botName):
		return "See ya later!", true
	case strings.Contains(lower, "thanks "+d.botName), strings.Contains(lower, "thank you "+d.botName):
		return "Anytime, nakama! 🙌", true
	}
	return "", false
}

// moderate removes a scam message unless its author is an admin. Admins are
// exempt; everyone else gets the message redacted when the bot has the
// power to do so.
func (d *Dispatcher) moderate(ctx context.Context, log *slog.Logger, ev Event) {
	admin, err := d.messenger.HasAdminPermission(ctx, ev.UserID, ev.SpaceID)
	if err != nil {
		log.Error("admin permission check failed", "error", err)
	}
	if admin {
		return
	}

	canRedact, err := d.messenger.CanRedact(ctx, ev.ChannelID)
	if err != nil {
		// If the permission lookup itself fails, attempt the removal
		// anyway; the platform rejects it when the power is missing.
		log.Error("redact permission check failed", "error", err)
		canRedact = true
	}
	if !canRedact {
		return
	}

	if err := d.messenger.RemoveEvent(ctx, ev.ChannelID, ev.EventID); err != nil {
		log.Error("removing scam message failed", "event_id", ev.EventID, "error", err)
		return
	}
	log.Info("removed scam message", "event_id", ev.EventID)
}
