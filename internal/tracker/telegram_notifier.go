package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// Telegram caps messages at 4096 characters; stay under it with room for the
// truncation marker.
const telegramMaxLen = 4000

// TelegramNotifier sends alerts to a Telegram chat. The bot connection is
// established lazily on first send, so an unconfigured channel costs nothing
// and a network problem surfaces as a delivery error instead of breaking
// pipeline construction.
type TelegramNotifier struct {
	cfg config.TelegramConfig
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{cfg: cfg}
}

func (n *TelegramNotifier) Channel() Channel {
	return ChannelTelegram
}

func (n *TelegramNotifier) Configured() bool {
	return n.cfg.BotToken != "" && n.cfg.ChatID != 0
}

func (n *TelegramNotifier) Send(ctx context.Context, changes []models.ChangeEntry, now time.Time) error {
	return n.send(ctx, FormatTelegram(changes, now))
}

func (n *TelegramNotifier) SendTest(ctx context.Context, message string) error {
	text := fmt.Sprintf("🧪 *Test Alert*\n\n%s\n\n_Time: %s_",
		escapeMarkdown(message), time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	return n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.connect(); err != nil {
		return err
	}

	if len(text) > telegramMaxLen {
		slog.Warn("Telegram message truncated", "length", len(text), "max", telegramMaxLen)
		text = truncateString(text, telegramMaxLen)
	}

	msg := tgbotapi.NewMessage(n.cfg.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func (n *TelegramNotifier) connect() error {
	if n.bot != nil {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(n.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = false

	// Test bot connection
	if _, err := bot.GetMe(); err != nil {
		return fmt.Errorf("get bot info: %w", err)
	}

	n.bot = bot
	slog.Info("Telegram notifier connected", "chat_id", n.cfg.ChatID)
	return nil
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
