package bet9ja

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

const bookmakerName = "bet9ja"

// pageClient abstracts the plain HTTP and the headless-Chrome page loaders.
type pageClient interface {
	GetOddsPage(ctx context.Context) ([]byte, error)
}

// Parser fetches the bet9ja odds page and turns it into a snapshot.
type Parser struct {
	client pageClient
}

// NewParser builds the bet9ja fetcher. With renderJS the page is loaded
// through headless Chrome instead of a plain GET.
func NewParser(cfg *config.Config, renderJS bool) *Parser {
	f := cfg.Fetch
	var client pageClient
	if renderJS {
		client = NewChromeClient(f.BaseURL, f.OddsPath, f.UserAgent, f.Timeout)
	} else {
		client = NewClient(f.BaseURL, f.OddsPath, f.UserAgent, f.Timeout)
	}
	return &Parser{client: client}
}

func (p *Parser) GetName() string {
	return bookmakerName
}

func (p *Parser) Fetch(ctx context.Context) (models.Snapshot, error) {
	start := time.Now()

	html, err := p.client.GetOddsPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("get odds page: %w", err)
	}

	snapshot, err := ParseOddsPage(html, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	slog.Info("odds page parsed",
		"bookmaker", bookmakerName,
		"matches", len(snapshot),
		"duration", time.Since(start))
	return snapshot, nil
}
