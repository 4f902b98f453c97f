package tracker

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// FormatText renders changes as a plain-text alert body: a summary line with
// the count and timestamp, then one block per match with a line per outcome.
func FormatText(changes []models.ChangeEntry, now time.Time) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Bet9ja Odds Alert - %d changes\n", len(changes)))
	builder.WriteString(fmt.Sprintf("Date: %s\n", now.Format("2006-01-02 15:04")))
	for _, change := range changes {
		builder.WriteString("\n" + change.Match + "\n")
		for _, outcome := range change.OutcomeChanges() {
			builder.WriteString(fmt.Sprintf("  %s: %.2f → %.2f (%s)\n",
				outcome.Label, outcome.Change.Previous, outcome.Change.Current, formatPct(outcome.Change)))
		}
	}
	return builder.String()
}

// FormatTelegram renders changes as a Telegram Markdown message.
func FormatTelegram(changes []models.ChangeEntry, now time.Time) string {
	var builder strings.Builder
	builder.WriteString("⚽ *Bet9ja Odds Alert*\n")
	builder.WriteString(fmt.Sprintf("📅 %s\n\n", now.Format("2006-01-02 15:04")))
	builder.WriteString(fmt.Sprintf("Found %d significant changes:\n\n", len(changes)))
	for _, change := range changes {
		builder.WriteString(fmt.Sprintf("🎯 *%s*\n", escapeMarkdown(change.Match)))
		for _, outcome := range change.OutcomeChanges() {
			emoji := "📈"
			if outcome.Change.ChangePct < 0 {
				emoji = "📉"
			}
			builder.WriteString(fmt.Sprintf("  %s %s: %.2f → %.2f (%s)\n",
				emoji, outcome.Label, outcome.Change.Previous, outcome.Change.Current, formatPct(outcome.Change)))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatHTML renders changes as an HTML email body: one table row per
// outcome, increases in green and decreases in red.
func FormatHTML(changes []models.ChangeEntry, now time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; }
h2 { color: #2c3e50; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th { background-color: #3498db; color: white; padding: 12px; text-align: left; }
td { padding: 10px; border-bottom: 1px solid #ddd; }
.increase { color: #27ae60; font-weight: bold; }
.decrease { color: #e74c3c; font-weight: bold; }
</style>
</head>
<body>
`)
	builder.WriteString(fmt.Sprintf("<h2>⚽ Bet9ja Odds Changes - %s</h2>\n", now.Format("2006-01-02 15:04")))
	builder.WriteString("<p>The following matches have significant odds changes:</p>\n")
	builder.WriteString("<table>\n")
	builder.WriteString("<tr><th>Match</th><th>Bet Type</th><th>Previous</th><th>Current</th><th>Change</th></tr>\n")
	for _, change := range changes {
		for _, outcome := range change.OutcomeChanges() {
			builder.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%.2f</td><td>%.2f</td><td class=\"%s\">%s</td></tr>\n",
				html.EscapeString(change.Match),
				outcome.Label,
				outcome.Change.Previous,
				outcome.Change.Current,
				changeClass(outcome.Change),
				formatPct(outcome.Change)))
		}
	}
	builder.WriteString("</table>\n")
	builder.WriteString("<p style=\"margin-top: 20px; color: #7f8c8d;\"><em>This is an automated alert from the odds tracker.</em></p>\n")
	builder.WriteString("</body>\n</html>\n")
	return builder.String()
}

func formatPct(change models.OutcomeChange) string {
	if change.Undefined {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", change.ChangePct)
}

func changeClass(change models.OutcomeChange) string {
	if change.ChangePct > 0 {
		return "increase"
	}
	return "decrease"
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
