package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// EmailNotifier sends alerts over SMTP with implicit SSL, the way Gmail app
// passwords on port 465 expect. The message carries the plain-text body with
// the HTML table as an alternative part.
type EmailNotifier struct {
	cfg config.EmailConfig
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Channel() Channel {
	return ChannelEmail
}

func (n *EmailNotifier) Configured() bool {
	cfg := n.cfg
	return cfg.Host != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != "" && cfg.To != ""
}

func (n *EmailNotifier) Send(ctx context.Context, changes []models.ChangeEntry, now time.Time) error {
	subject := fmt.Sprintf("⚽ Bet9ja Odds Alert - %d Changes Detected", len(changes))
	return n.send(ctx, subject, FormatText(changes, now), FormatHTML(changes, now))
}

func (n *EmailNotifier) SendTest(ctx context.Context, message string) error {
	body := fmt.Sprintf("Test alert\n\n%s\n\nTime: %s\n",
		message, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	return n.send(ctx, "Odds tracker test alert", body, "")
}

func (n *EmailNotifier) send(ctx context.Context, subject, textBody, htmlBody string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	// Comma-separated list of receivers is accepted.
	if err := msg.ToFromString(n.cfg.To); err != nil {
		return fmt.Errorf("invalid receiver address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	if htmlBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)
	}

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
