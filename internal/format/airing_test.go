package format

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/animetown/franky/internal/anilist"
)

var airingNow = time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

func TestAiringList_EmptyInput(t *testing.T) {
	got := AiringList(nil, AiringOptions{Now: airingNow})
	if got != "No upcoming episodes found." {
		t.Errorf("got %q", got)
	}

	got = AiringList(nil, AiringOptions{Header: "This week", Now: airingNow})
	want := "This week\nNo upcoming episodes found."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAiringList_FlatLines(t *testing.T) {
	items := []anilist.AiringItem{
		{Title: "Frieren", Episode: 12, AiringAt: airingNow.Add(2 * time.Hour).Unix()},
		{Title: "One Piece", Episode: 1100, AiringAt: airingNow.Add(26 * time.Hour).Unix()},
	}
	got := AiringList(items, AiringOptions{TZ: "UTC", Now: airingNow})
	want := strings.Join([]string{
		"• Frieren — Ep 12 🕒 Jan 10, 2026 2:00 PM (in 2h)",
		"• One Piece — Ep 1100 🕒 Jan 11, 2026 2:00 PM (in 1d 2h)",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAiringList_HeaderAndLimit(t *testing.T) {
	items := []anilist.AiringItem{
		{Title: "A", Episode: 1, AiringAt: airingNow.Add(1 * time.Hour).Unix()},
		{Title: "B", Episode: 2, AiringAt: airingNow.Add(2 * time.Hour).Unix()},
		{Title: "C", Episode: 3, AiringAt: airingNow.Add(3 * time.Hour).Unix()},
	}
	got := AiringList(items, AiringOptions{Header: "Upcoming", Limit: 2, TZ: "UTC", Now: airingNow})
	if !strings.HasPrefix(got, "Upcoming\n") {
		t.Errorf("missing header: %q", got)
	}
	if strings.Contains(got, "• C") {
		t.Errorf("limit not applied: %q", got)
	}
	if !strings.HasSuffix(got, "…and more") {
		t.Errorf("missing overflow marker after limit cut: %q", got)
	}
}

func TestAiringList_GroupsByCalendarDay(t *testing.T) {
	items := []anilist.AiringItem{
		{Title: "A", Episode: 1, AiringAt: airingNow.Add(1 * time.Hour).Unix()},
		{Title: "B", Episode: 2, AiringAt: airingNow.Add(3 * time.Hour).Unix()},
		{Title: "C", Episode: 3, AiringAt: airingNow.Add(25 * time.Hour).Unix()},
	}
	got := AiringList(items, AiringOptions{TZ: "UTC", GroupByDay: true, Now: airingNow})

	lines := strings.Split(got, "\n")
	wantOrder := []string{
		"📅 Sat, Jan 10",
		"• A — Ep 1 🕒 Jan 10, 2026 1:00 PM (in 1h)",
		"• B — Ep 2 🕒 Jan 10, 2026 3:00 PM (in 3h)",
		"📅 Sun, Jan 11",
		"• C — Ep 3 🕒 Jan 11, 2026 1:00 PM (in 1d 1h)",
	}
	if len(lines) != len(wantOrder) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantOrder), got)
	}
	for i, want := range wantOrder {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestAiringList_GroupedDayKeysUseTargetZone(t *testing.T) {
	// 23:30 UTC on Jan 10 is already Jan 11 in Tokyo.
	at := time.Date(2026, time.January, 10, 23, 30, 0, 0, time.UTC)
	items := []anilist.AiringItem{{Title: "A", Episode: 1, AiringAt: at.Unix()}}

	got := AiringList(items, AiringOptions{TZ: "Asia/Tokyo", GroupByDay: true, Now: airingNow})
	if !strings.Contains(got, "📅 Sun, Jan 11") {
		t.Errorf("day key not in target zone: %q", got)
	}
}

func TestAiringList_InvalidZoneStillRenders(t *testing.T) {
	items := []anilist.AiringItem{
		{Title: "A", Episode: 1, AiringAt: airingNow.Add(time.Hour).Unix()},
	}
	got := AiringList(items, AiringOptions{TZ: "Not/AZone", Now: airingNow})
	if !strings.Contains(got, "• A — Ep 1") {
		t.Errorf("render failed for unknown zone: %q", got)
	}
}

func TestAiringList_BudgetEnforced(t *testing.T) {
	items := make([]anilist.AiringItem, 6)
	for i := range items {
		items[i] = anilist.AiringItem{
			Title:    strings.Repeat("x", 30),
			Episode:  i + 1,
			AiringAt: airingNow.Add(time.Duration(i+1) * time.Hour).Unix(),
		}
	}
	got := AiringList(items, AiringOptions{Limit: 6, TZ: "UTC", MaxChars: 150, Now: airingNow})
	if utf8.RuneCountInString(got) > 150 {
		t.Errorf("result has %d characters, budget is 150:\n%s", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "…and more") {
		t.Errorf("missing overflow marker: %q", got)
	}
}
