package bot

import (
	"context"
	"strings"
	"testing"
)

func messageEvent(user, text string) Event {
	return Event{
		ChannelID: "ch",
		SpaceID:   "space",
		UserID:    user,
		EventID:   "ev1",
		Message:   text,
	}
}

func TestHandleMessage_IgnoresOwnMessages(t *testing.T) {
	env := newTestEnv(t, "")
	env.disp.HandleMessage(context.Background(), messageEvent("bot", "free nitro for everyone"))
	if len(env.msgr.sent) != 0 || len(env.msgr.removed) != 0 {
		t.Errorf("self message triggered activity: sent=%v removed=%v", env.msgr.sent, env.msgr.removed)
	}
}

func TestHandleMessage_TriviaWin(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.disp.HandleCommand(ctx, "guess_anime", event("ch", "admin"))

	env.disp.HandleMessage(ctx, messageEvent("player", "is it naruto?"))
	if got := env.msgr.lastText(t); got != "✅ Correct, <@player>! Answer: Naruto" {
		t.Errorf("got %q", got)
	}

	// The won round is closed; the timer firing later stays silent.
	before := len(env.msgr.sent)
	env.sched.fns[0]()
	if len(env.msgr.sent) != before {
		t.Errorf("timeout fired after win: %q", env.msgr.lastText(t))
	}
}

func TestHandleMessage_TriviaWrongGuessKeepsRoundOpen(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	env.disp.HandleCommand(ctx, "guess_anime", event("ch", "admin"))
	before := len(env.msgr.sent)

	env.disp.HandleMessage(ctx, messageEvent("player", "bleach"))
	if len(env.msgr.sent) != before {
		t.Errorf("wrong guess got a reply: %q", env.msgr.lastText(t))
	}

	env.sched.fns[0]()
	if got := env.msgr.lastText(t); got != "⏰ Time's up! Answer: **Naruto**" {
		t.Errorf("got %q", got)
	}
}

func TestHandleMessage_SmallTalk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"greeting", "hi franky", "Hi there 👋"},
		{"identity", "who are you franky?", "I'm Franky, the super cyborg of AnimeTown!🌸"},
		{"farewell", "ok bye franky", "See ya later!"},
		{"thanks", "thanks franky!", "Anytime, nakama! 🙌"},
		{"mention prefix", "hello @franky", "Hi there 👋"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.disp.HandleMessage(context.Background(), messageEvent("u", tt.text))
			if got := env.msgr.lastText(t); got != tt.want {
				t.Errorf("%q: got %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHandleMessage_NoReplyWithoutMention(t *testing.T) {
	env := newTestEnv(t, "")
	env.disp.HandleMessage(context.Background(), messageEvent("u", "hello everyone"))
	if len(env.msgr.sent) != 0 {
		t.Errorf("unaddressed message got a reply: %q", env.msgr.lastText(t))
	}
}

func TestHandleMessage_MentionFlagTriggersSmallTalk(t *testing.T) {
	env := newTestEnv(t, "")
	ev := messageEvent("u", "hello there")
	ev.IsMentioned = true
	env.disp.HandleMessage(context.Background(), ev)
	if got := env.msgr.lastText(t); got != "Hi there 👋" {
		t.Errorf("got %q", got)
	}
}

func TestHandleMessage_RemovesScamMessage(t *testing.T) {
	env := newTestEnv(t, "")
	env.disp.HandleMessage(context.Background(), messageEvent("u", "FREE NITRO, claim your prize now"))
	if len(env.msgr.removed) != 1 || env.msgr.removed[0] != "ev1" {
		t.Errorf("removed = %v, want [ev1]", env.msgr.removed)
	}
}

func TestHandleMessage_AdminsExemptFromModeration(t *testing.T) {
	env := newTestEnv(t, "")
	env.disp.HandleMessage(context.Background(), messageEvent("admin", "free nitro giveaway"))
	if len(env.msgr.removed) != 0 {
		t.Errorf("admin message was removed: %v", env.msgr.removed)
	}
}

func TestHandleMessage_NoRedactPowerLeavesMessage(t *testing.T) {
	env := newTestEnv(t, "")
	env.msgr.redact = false
	env.disp.HandleMessage(context.Background(), messageEvent("u", "free nitro giveaway"))
	if len(env.msgr.removed) != 0 {
		t.Errorf("message removed without redact power: %v", env.msgr.removed)
	}
}

func TestHandleMessage_CleanMessageUntouched(t *testing.T) {
	env := newTestEnv(t, "")
	env.disp.HandleMessage(context.Background(), messageEvent("u", "frieren was great this week"))
	if len(env.msgr.removed) != 0 {
		t.Errorf("clean message removed: %v", env.msgr.removed)
	}
	for _, s := range env.msgr.sent {
		if strings.Contains(s.text, "Correct") {
			t.Errorf("clean message won trivia: %q", s.text)
		}
	}
}
