package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

func sampleChanges() []models.ChangeEntry {
	return []models.ChangeEntry{
		{
			Match:    "Arsenal vs Chelsea",
			HomeOdds: models.OutcomeChange{Previous: 2.00, Current: 2.30, ChangePct: 15.00},
			DrawOdds: models.OutcomeChange{Previous: 3.30, Current: 3.30, ChangePct: 0.00},
			AwayOdds: models.OutcomeChange{Previous: 3.50, Current: 3.40, ChangePct: -2.86},
		},
	}
}

func TestFormatText(t *testing.T) {
	now := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

	text := FormatText(sampleChanges(), now)

	for _, want := range []string{
		"Bet9ja Odds Alert - 1 changes",
		"Date: 2026-08-23 09:30",
		"Arsenal vs Chelsea",
		"Home: 2.00 → 2.30 (+15.00%)",
		"Draw: 3.30 → 3.30 (+0.00%)",
		"Away: 3.50 → 3.40 (-2.86%)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text alert missing %q:\n%s", want, text)
		}
	}
}

func TestFormatTelegram(t *testing.T) {
	now := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

	text := FormatTelegram(sampleChanges(), now)

	for _, want := range []string{
		"⚽ *Bet9ja Odds Alert*",
		"📅 2026-08-23 09:30",
		"Found 1 significant changes:",
		"🎯 *Arsenal vs Chelsea*",
		"📈 Home: 2.00 → 2.30 (+15.00%)",
		"📉 Away: 3.50 → 3.40 (-2.86%)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("telegram alert missing %q:\n%s", want, text)
		}
	}
}

func TestFormatTelegram_EscapesMatchName(t *testing.T) {
	changes := []models.ChangeEntry{{
		Match:    "FC Dag_Team vs [B] United",
		HomeOdds: models.OutcomeChange{Previous: 2.00, Current: 2.50, ChangePct: 25.00},
	}}

	text := FormatTelegram(changes, time.Now())
	if !strings.Contains(text, `FC Dag\_Team vs \[B\] United`) {
		t.Errorf("markdown special characters not escaped:\n%s", text)
	}
}

func TestFormatHTML(t *testing.T) {
	now := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

	htmlBody := FormatHTML(sampleChanges(), now)

	for _, want := range []string{
		"<h2>⚽ Bet9ja Odds Changes - 2026-08-23 09:30</h2>",
		"<tr><th>Match</th><th>Bet Type</th><th>Previous</th><th>Current</th><th>Change</th></tr>",
		`<td class="increase">+15.00%</td>`,
		`<td class="decrease">-2.86%</td>`,
		"<td>Arsenal vs Chelsea</td>",
		"This is an automated alert",
	} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("html alert missing %q", want)
		}
	}
}

func TestFormatHTML_EscapesMatchName(t *testing.T) {
	changes := []models.ChangeEntry{{
		Match:    "Real <CF> vs B&W",
		HomeOdds: models.OutcomeChange{Previous: 2.00, Current: 2.50, ChangePct: 25.00},
	}}

	htmlBody := FormatHTML(changes, time.Now())
	if strings.Contains(htmlBody, "<CF>") {
		t.Error("match name not HTML-escaped")
	}
	if !strings.Contains(htmlBody, "Real &lt;CF&gt; vs B&amp;W") {
		t.Errorf("escaped match name missing:\n%s", htmlBody)
	}
}

func TestFormatPct_Undefined(t *testing.T) {
	changes := []models.ChangeEntry{{
		Match:    "Milan vs Inter",
		HomeOdds: models.OutcomeChange{Previous: 0, Current: 2.50, Undefined: true},
		DrawOdds: models.OutcomeChange{Previous: 3.00, Current: 3.60, ChangePct: 20.00},
	}}

	text := FormatText(changes, time.Now())
	if !strings.Contains(text, "Home: 0.00 → 2.50 (n/a)") {
		t.Errorf("undefined change not rendered as n/a:\n%s", text)
	}
}
