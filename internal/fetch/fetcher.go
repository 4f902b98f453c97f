package fetch

import (
	"context"
	"fmt"

	"github.com/oddswatch/oddswatch/internal/fetch/bet9ja"
	"github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// Fetcher collects one snapshot of current odds. A fetch error is not fatal
// to the pipeline: the driver treats it like an empty snapshot and leaves the
// stored slots untouched.
type Fetcher interface {
	GetName() string
	Fetch(ctx context.Context) (models.Snapshot, error)
}

// New builds the fetcher selected by fetch.source.
func New(cfg *config.Config) (Fetcher, error) {
	switch cfg.Fetch.Source {
	case "bet9ja":
		return bet9ja.NewParser(cfg, false), nil
	case "bet9ja-chrome":
		return bet9ja.NewParser(cfg, true), nil
	case "static":
		return NewStaticFetcher(cfg.Fetch.StaticFile), nil
	default:
		return nil, fmt.Errorf("unknown fetch source %q (available: bet9ja, bet9ja-chrome, static)", cfg.Fetch.Source)
	}
}
