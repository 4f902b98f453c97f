package tracker

import (
	"github.com/shopspring/decimal"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeChanges compares the current snapshot against the previous one and
// returns the matches where at least one outcome moved strictly more than
// thresholdPct percent in either direction. Entries carry all three outcomes
// and follow the current snapshot's order. Matches present in only one
// snapshot are ignored.
//
// Percentages are computed with decimal arithmetic and rounded to two
// decimals before the threshold test, so 2.00 -> 2.20 at a 10% threshold is
// exactly +10.00% and does not alert, while 2.00 -> 2.30 does.
func ComputeChanges(current, previous models.Snapshot, thresholdPct float64) []models.ChangeEntry {
	if current.Empty() || previous.Empty() {
		return nil
	}

	threshold := decimal.NewFromFloat(thresholdPct)
	prevByMatch := previous.ByMatch()

	var changes []models.ChangeEntry
	for _, cur := range current {
		prev, ok := prevByMatch[models.NormalizeMatch(cur.Match)]
		if !ok {
			continue
		}

		home, homeTriggered := outcomeChange(prev.HomeOdds, cur.HomeOdds, threshold)
		draw, drawTriggered := outcomeChange(prev.DrawOdds, cur.DrawOdds, threshold)
		away, awayTriggered := outcomeChange(prev.AwayOdds, cur.AwayOdds, threshold)

		if !homeTriggered && !drawTriggered && !awayTriggered {
			continue
		}

		changes = append(changes, models.ChangeEntry{
			Match:    cur.Match,
			HomeOdds: home,
			DrawOdds: draw,
			AwayOdds: away,
		})
	}
	return changes
}

// outcomeChange computes one outcome's movement and whether it crossed the
// threshold. A zero or negative previous price makes the change undefined,
// and an undefined change never triggers.
func outcomeChange(prevOdds, curOdds float64, threshold decimal.Decimal) (models.OutcomeChange, bool) {
	if prevOdds <= 0 {
		return models.OutcomeChange{Previous: prevOdds, Current: curOdds, Undefined: true}, false
	}

	prev := decimal.NewFromFloat(prevOdds)
	cur := decimal.NewFromFloat(curOdds)
	pct := cur.Sub(prev).Mul(oneHundred).Div(prev).Round(2)

	change := models.OutcomeChange{
		Previous:  prevOdds,
		Current:   curOdds,
		ChangePct: pct.InexactFloat64(),
	}
	return change, pct.Abs().GreaterThan(threshold)
}
