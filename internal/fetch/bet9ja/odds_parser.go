package bet9ja

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// Market and option names as they appear on the odds page.
const (
	market1X2  = "1X2"
	optionHome = "1"
	optionDraw = "X"
	optionAway = "2"
)

// ParseOddsPage extracts 1X2 records from the odds page HTML. Each div.evento
// block is one match: the evento-head carries "name | kick-off", each
// blocco-mercati section is one market with opzione entries holding a
// nome/quota pair. Blocks without a complete 1X2 market are skipped.
func ParseOddsPage(html []byte, capturedAt time.Time) (models.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse odds page: %w", err)
	}

	var snapshot models.Snapshot
	doc.Find("div.evento").Each(func(_ int, event *goquery.Selection) {
		record, ok := parseEventBlock(event, capturedAt)
		if !ok {
			return
		}
		snapshot = append(snapshot, record)
	})
	return snapshot, nil
}

func parseEventBlock(event *goquery.Selection, capturedAt time.Time) (models.OddsRecord, bool) {
	header := event.Find("div.evento-head").First()
	matchName := models.NormalizeMatch(headerMatchName(header))
	if matchName == "" {
		return models.OddsRecord{}, false
	}

	record := models.OddsRecord{Match: matchName, Timestamp: capturedAt}
	found := 0
	event.Find("div.blocco-mercati").EachWithBreak(func(_ int, market *goquery.Selection) bool {
		name := strings.TrimSpace(market.Find("div.intestazione").First().Text())
		if !strings.EqualFold(name, market1X2) {
			return true
		}

		market.Find("div.opzione").Each(func(_ int, option *goquery.Selection) {
			outcome := strings.TrimSpace(option.Find("div.nome").First().Text())
			quota := strings.TrimSpace(option.Find("div.quota").First().Text())
			odds, err := strconv.ParseFloat(quota, 64)
			if err != nil {
				return
			}
			switch outcome {
			case optionHome:
				record.HomeOdds = odds
				found++
			case optionDraw:
				record.DrawOdds = odds
				found++
			case optionAway:
				record.AwayOdds = odds
				found++
			}
		})
		// First 1X2 market wins
		return false
	})

	if found < 3 {
		slog.Debug("skipping match without full 1X2 market", "match", matchName, "outcomes", found)
		return models.OddsRecord{}, false
	}
	return record, true
}

// headerMatchName pulls the match name out of the header. The header mixes
// the name and the kick-off time in separate child nodes; the name comes
// first, sometimes followed by a literal "|" separator.
func headerMatchName(header *goquery.Selection) string {
	var parts []string
	header.Contents().Each(func(_ int, node *goquery.Selection) {
		if text := strings.TrimSpace(node.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return ""
	}
	return strings.SplitN(parts[0], "|", 2)[0]
}
