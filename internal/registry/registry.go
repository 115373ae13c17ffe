// Package registry registers the bot's slash commands with the chat
// platform at startup.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// backoffDelays is the retry schedule after a failed registration attempt.
// Registration runs once at startup, so the schedule stays short; a platform
// that is still down after the last delay fails the boot.
var backoffDelays = []time.Duration{
	200 * time.Millisecond,
	800 * time.Millisecond,
	2400 * time.Millisecond,
}

// CommandSpec describes one slash command to the platform.
type CommandSpec struct {
	Name        string
	Description string
}

// Registrar is the platform API that accepts the command set.
type Registrar interface {
	RegisterCommands(ctx context.Context, specs []CommandSpec) error
}

// Register pushes specs through the registrar, retrying failed attempts on
// the backoff schedule. An empty spec list is logged and skipped, not an
// error. After the schedule is exhausted the last attempt's error is
// returned wrapped.
func Register(ctx context.Context, r Registrar, specs []CommandSpec) error {
	if len(specs) == 0 {
		slog.Warn("no slash commands to register, skipping")
		return nil
	}

	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	slog.Info("registering slash commands", "commands", names)

	err := retry.Do(ctx, scheduleBackoff(backoffDelays), func(ctx context.Context) error {
		if err := r.RegisterCommands(ctx, specs); err != nil {
			slog.Error("slash command registration attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("registering slash commands: %w", err)
	}

	slog.Info("slash commands registered", "commands", names)
	return nil
}

// scheduleBackoff yields each delay in order, then stops.
func scheduleBackoff(delays []time.Duration) retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= len(delays) {
			return 0, true
		}
		d := delays[attempt]
		attempt++
		return d, false
	})
}
