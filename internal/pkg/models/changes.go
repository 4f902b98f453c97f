package models

// OutcomeChange is one outcome's movement between two snapshots.
// ChangePct is (current-previous)/previous*100 rounded to 2 decimals.
// Undefined marks a zero/missing previous value; such an outcome never
// triggers an alert and ChangePct is not meaningful.
type OutcomeChange struct {
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	ChangePct float64 `json:"change_pct"`
	Undefined bool    `json:"undefined,omitempty"`
}

// ChangeEntry is one match whose odds moved past the alert threshold.
// All three outcomes are included even when only one of them triggered.
type ChangeEntry struct {
	Match    string        `json:"match"`
	HomeOdds OutcomeChange `json:"home_odds"`
	DrawOdds OutcomeChange `json:"draw_odds"`
	AwayOdds OutcomeChange `json:"away_odds"`
}

// LabeledOutcome pairs an outcome's display label with its movement.
type LabeledOutcome struct {
	Label  string
	Change OutcomeChange
}

// OutcomeChanges returns the three outcome movements in display order.
func (e ChangeEntry) OutcomeChanges() []LabeledOutcome {
	return []LabeledOutcome{
		{Label: "Home", Change: e.HomeOdds},
		{Label: "Draw", Change: e.DrawOdds},
		{Label: "Away", Change: e.AwayOdds},
	}
}
