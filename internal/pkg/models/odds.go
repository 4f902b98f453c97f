package models

import (
	"strings"
	"time"
)

// OddsRecord is one match's 1X2 prices as captured from the odds page.
type OddsRecord struct {
	Match     string    `json:"match"`
	HomeOdds  float64   `json:"home_odds"`
	DrawOdds  float64   `json:"draw_odds"`
	AwayOdds  float64   `json:"away_odds"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is one full capture of the tracked odds. The persisted form is a
// plain JSON array of records.
type Snapshot []OddsRecord

func (s Snapshot) Empty() bool {
	return len(s) == 0
}

// ByMatch builds a match-keyed lookup for comparison. Later records win on
// duplicate match names, which is what the comparison step assumes.
func (s Snapshot) ByMatch() map[string]OddsRecord {
	m := make(map[string]OddsRecord, len(s))
	for _, r := range s {
		m[NormalizeMatch(r.Match)] = r
	}
	return m
}

// NormalizeMatch trims and collapses internal whitespace. Match identity is
// otherwise the exact page string; renamed matches are treated as new ones.
func NormalizeMatch(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
