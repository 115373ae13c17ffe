// Package ratelimit throttles command usage per channel with fixed windows.
package ratelimit

import (
	"sync"
	"time"
)

// Clock abstracts time for testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Rule defines how many command invocations a channel gets per window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Result contains rate limit status for an invocation.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	RetryIn   time.Duration
}

type entry struct {
	count    int
	windowAt time.Time
}

// Limiter implements fixed-window rate limiting per channel+command.
type Limiter struct {
	mu      sync.Mutex
	rule    Rule
	entries map[string]*entry
	clock   Clock
}

// NewLimiter creates a Limiter with the given rule. A rule with Limit <= 0
// allows everything.
func NewLimiter(rule Rule) *Limiter {
	return &Limiter{
		rule:    rule,
		entries: make(map[string]*entry),
		clock:   realClock{},
	}
}

// Allow checks whether the channel may run the command now.
func (l *Limiter) Allow(channelID, command string) (Result, bool) {
	if l.rule.Limit <= 0 {
		return Result{}, true
	}

	now := l.clock.Now()
	key := channelID + ":" + command

	l.mu.Lock()
	defer l.mu.Unlock()

	e, exists := l.entries[key]
	if !exists || now.Sub(e.windowAt) >= l.rule.Window {
		// New window
		l.entries[key] = &entry{count: 1, windowAt: now}
		return Result{Limit: l.rule.Limit, Remaining: l.rule.Limit - 1, ResetAt: now.Add(l.rule.Window)}, true
	}

	resetAt := e.windowAt.Add(l.rule.Window)

	if e.count >= l.rule.Limit {
		retryIn := l.rule.Window - now.Sub(e.windowAt)
		return Result{Limit: l.rule.Limit, Remaining: 0, ResetAt: resetAt, RetryIn: retryIn}, false
	}

	e.count++
	return Result{Limit: l.rule.Limit, Remaining: l.rule.Limit - e.count, ResetAt: resetAt}, true
}

// Cleanup removes expired entries. Call periodically to prevent unbounded growth.
func (l *Limiter) Cleanup() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.Sub(e.windowAt) >= l.rule.Window {
			delete(l.entries, key)
		}
	}
}
