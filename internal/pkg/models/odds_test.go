package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeMatch(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Arsenal vs Chelsea", "Arsenal vs Chelsea"},
		{"  Arsenal vs Chelsea  ", "Arsenal vs Chelsea"},
		{"Arsenal  vs   Chelsea", "Arsenal vs Chelsea"},
		{"arsenal vs chelsea", "arsenal vs chelsea"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		result := NormalizeMatch(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizeMatch(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestSnapshotByMatch_LastWriteWins(t *testing.T) {
	s := Snapshot{
		{Match: "Arsenal vs Chelsea", HomeOdds: 2.00},
		{Match: "Liverpool vs Man United", HomeOdds: 1.85},
		{Match: "Arsenal vs Chelsea", HomeOdds: 2.10},
	}

	m := s.ByMatch()
	if len(m) != 2 {
		t.Fatalf("ByMatch returned %d entries, want 2", len(m))
	}
	if got := m["Arsenal vs Chelsea"].HomeOdds; got != 2.10 {
		t.Errorf("duplicate match: got home odds %.2f, want 2.10 (last record wins)", got)
	}
}

func TestSnapshotByMatch_NormalizesKeys(t *testing.T) {
	s := Snapshot{{Match: "  Arsenal  vs Chelsea ", HomeOdds: 2.00}}

	if _, ok := s.ByMatch()["Arsenal vs Chelsea"]; !ok {
		t.Error("ByMatch should key records by the normalized match name")
	}
}

func TestSnapshotEmpty(t *testing.T) {
	if !(Snapshot{}).Empty() {
		t.Error("empty snapshot should report Empty")
	}
	if (Snapshot{{Match: "A vs B"}}).Empty() {
		t.Error("non-empty snapshot should not report Empty")
	}
}

func TestOddsRecordJSONShape(t *testing.T) {
	r := OddsRecord{
		Match:     "Arsenal vs Chelsea",
		HomeOdds:  2.10,
		DrawOdds:  3.40,
		AwayOdds:  3.20,
		Timestamp: time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"match", "home_odds", "draw_odds", "away_odds", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized record missing %q field", key)
		}
	}
}
