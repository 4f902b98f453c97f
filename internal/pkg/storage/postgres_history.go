package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/oddswatch/oddswatch/internal/pkg/config"
	"github.com/oddswatch/oddswatch/internal/pkg/models"
)

// Ensure PostgresHistoryStore implements HistoryStore
var _ HistoryStore = (*PostgresHistoryStore)(nil)

// PostgresHistoryStore appends every captured snapshot to an odds_history
// table, one row per match.
type PostgresHistoryStore struct {
	db *sql.DB
}

// NewPostgresHistoryStore opens the connection and creates the schema.
func NewPostgresHistoryStore(cfg *config.HistoryConfig) (*PostgresHistoryStore, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresHistoryStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL history store initialized")
	return s, nil
}

func (s *PostgresHistoryStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS odds_history (
		id SERIAL PRIMARY KEY,
		match_name VARCHAR(500) NOT NULL,
		home_odds DECIMAL(10, 4) NOT NULL,
		draw_odds DECIMAL(10, 4) NOT NULL,
		away_odds DECIMAL(10, 4) NOT NULL,
		recorded_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_odds_history_match ON odds_history(match_name);
	CREATE INDEX IF NOT EXISTS idx_odds_history_recorded_at ON odds_history(recorded_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// AppendSnapshot inserts one row per record in a single transaction.
func (s *PostgresHistoryStore) AppendSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	if snapshot.Empty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO odds_history (match_name, home_odds, draw_odds, away_odds, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range snapshot {
		if _, err := stmt.ExecContext(ctx, r.Match, r.HomeOdds, r.DrawOdds, r.AwayOdds, r.Timestamp.UTC()); err != nil {
			return fmt.Errorf("insert history row for %s: %w", r.Match, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

func (s *PostgresHistoryStore) Close() error {
	return s.db.Close()
}
