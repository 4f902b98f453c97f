package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// ErrNotConfigured marks a channel whose credentials are absent. The
// dispatcher records it as a skip, not a failure.
var ErrNotConfigured = errors.New("channel not configured")

// Channel names a delivery channel.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

// Notifier delivers alerts about changed odds over one channel.
type Notifier interface {
	Channel() Channel
	// Configured reports whether the channel has everything it needs to send.
	Configured() bool
	// Send delivers an alert for the given changes. Returns ErrNotConfigured
	// when credentials are absent.
	Send(ctx context.Context, changes []models.ChangeEntry, now time.Time) error
	// SendTest delivers a plain test message for checking credentials.
	SendTest(ctx context.Context, message string) error
}

// SendStatus is the outcome of one delivery attempt.
type SendStatus int

const (
	SendStatusSent SendStatus = iota
	SendStatusSkipped
	SendStatusFailed
)

func (s SendStatus) String() string {
	switch s {
	case SendStatusSent:
		return "sent"
	case SendStatusSkipped:
		return "skipped"
	case SendStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type SendResult struct {
	Channel Channel
	Status  SendStatus
	Err     error
}

// Dispatch attempts delivery on every channel. Channels are independent: a
// failure or missing configuration on one never stops the others, and
// failures are logged rather than returned as errors.
func Dispatch(ctx context.Context, notifiers []Notifier, changes []models.ChangeEntry, now time.Time) []SendResult {
	results := make([]SendResult, 0, len(notifiers))
	for _, notifier := range notifiers {
		result := SendResult{Channel: notifier.Channel()}
		err := notifier.Send(ctx, changes, now)
		switch {
		case err == nil:
			result.Status = SendStatusSent
			slog.Info("Alert delivered", "channel", notifier.Channel(), "changes", len(changes))
		case errors.Is(err, ErrNotConfigured):
			result.Status = SendStatusSkipped
			result.Err = err
			slog.Info("Channel not configured, skipping", "channel", notifier.Channel())
		default:
			result.Status = SendStatusFailed
			result.Err = err
			slog.Error("Alert delivery failed", "channel", notifier.Channel(), "error", err)
		}
		results = append(results, result)
	}
	return results
}

// SummarizeResults renders per-channel outcomes for the run summary log,
// e.g. "email=sent telegram=skipped".
func SummarizeResults(results []SendResult) string {
	if len(results) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("%s=%s", result.Channel, result.Status))
	}
	return strings.Join(parts, " ")
}
