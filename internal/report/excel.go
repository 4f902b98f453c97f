package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

const (
	oddsSheet    = "Odds"
	changesSheet = "Changes"
)

var (
	oddsHeader    = []interface{}{"Date", "Time", "Match", "Market Type", "Option", "Odds", "Snapshot Type", "Timestamp"}
	changesHeader = []interface{}{"Match", "Bet Type", "Previous", "Current", "Change %"}
)

// ExcelReporter writes one workbook per run: an Odds sheet with every price
// from the current and previous snapshots, one row per (match, option), and
// a Changes sheet when the comparison produced alerts.
type ExcelReporter struct {
	dir string
}

func NewExcelReporter(dir string) *ExcelReporter {
	return &ExcelReporter{dir: dir}
}

// Write creates the workbook and returns its path. The filename derives from
// the run timestamp, e.g. odds_report_2026-08-23_093000.xlsx.
func (r *ExcelReporter) Write(current, previous models.Snapshot, changes []models.ChangeEntry, now time.Time) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", oddsSheet)
	if err := writeOddsSheet(f, current, previous); err != nil {
		return "", fmt.Errorf("write odds sheet: %w", err)
	}
	if len(changes) > 0 {
		if err := writeChangesSheet(f, changes); err != nil {
			return "", fmt.Errorf("write changes sheet: %w", err)
		}
	}

	path := filepath.Join(r.dir, fmt.Sprintf("odds_report_%s.xlsx", now.Format("2006-01-02_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

func writeOddsSheet(f *excelize.File, current, previous models.Snapshot) error {
	if err := writeHeader(f, oddsSheet, oddsHeader); err != nil {
		return err
	}
	f.SetColWidth(oddsSheet, "C", "C", 32)
	f.SetColWidth(oddsSheet, "G", "H", 20)

	row := 2
	for _, rec := range current {
		var err error
		if row, err = writeRecordRows(f, row, rec, "Current"); err != nil {
			return err
		}
	}
	for _, rec := range previous {
		var err error
		if row, err = writeRecordRows(f, row, rec, "Previous"); err != nil {
			return err
		}
	}
	return nil
}

// writeRecordRows emits three rows per record, one per 1X2 option.
func writeRecordRows(f *excelize.File, row int, rec models.OddsRecord, snapshotType string) (int, error) {
	options := []struct {
		name string
		odds float64
	}{
		{"1", rec.HomeOdds},
		{"X", rec.DrawOdds},
		{"2", rec.AwayOdds},
	}

	for _, option := range options {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return row, err
		}
		values := []interface{}{
			rec.Timestamp.Format("2006-01-02"),
			rec.Timestamp.Format("15:04:05"),
			rec.Match,
			"1X2",
			option.name,
			option.odds,
			snapshotType,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(oddsSheet, cell, &values); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

func writeChangesSheet(f *excelize.File, changes []models.ChangeEntry) error {
	if _, err := f.NewSheet(changesSheet); err != nil {
		return err
	}
	if err := writeHeader(f, changesSheet, changesHeader); err != nil {
		return err
	}
	f.SetColWidth(changesSheet, "A", "A", 32)

	row := 2
	for _, change := range changes {
		for _, outcome := range change.OutcomeChanges() {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			var pct interface{} = outcome.Change.ChangePct
			if outcome.Change.Undefined {
				pct = "n/a"
			}
			values := []interface{}{change.Match, outcome.Label, outcome.Change.Previous, outcome.Change.Current, pct}
			if err := f.SetSheetRow(changesSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	endCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", endCell, style)
}
