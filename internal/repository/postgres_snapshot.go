package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
)

// PostgresSnapshotStore keeps the state document in a single keyed row.
// The table mirrors the one-key layout of the Redis backend:
//
//	CREATE TABLE IF NOT EXISTS state_snapshots (
//	    key        TEXT PRIMARY KEY,
//	    document   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
type PostgresSnapshotStore struct {
	db     *sql.DB
	key    string
	logger *slog.Logger
}

// NewPostgresSnapshotStore creates a Postgres-backed snapshot store and
// ensures the snapshot table exists.
func NewPostgresSnapshotStore(ctx context.Context, db *sql.DB, key string, logger *slog.Logger) (*PostgresSnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ddl := `
		CREATE TABLE IF NOT EXISTS state_snapshots (
			key        TEXT PRIMARY KEY,
			document   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &PostgresSnapshotStore{
		db:     db,
		key:    key,
		logger: logger,
	}, nil
}

// Load retrieves the raw document
func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte

	query := `SELECT document FROM state_snapshots WHERE key = $1`
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		s.logger.Error("failed to load state snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	return data, nil
}

// Save overwrites the document in full
func (s *PostgresSnapshotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO state_snapshots (key, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, s.key, data); err != nil {
		s.logger.Error("failed to save state snapshot",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *PostgresSnapshotStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresSnapshotStore) Close() error {
	return s.db.Close()
}
