package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	postgresStateTable = "inmo_state"
	postgresStateKey   = "default"
)

// PostgresBackend stores the document snapshot in a single-row table,
// upserted on every save.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects a pgx pool, ensures the snapshot table
// exists, and verifies connectivity.
func NewPostgresBackend(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Second
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	b := &PostgresBackend{pool: pool}
	if err := b.ensureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *PostgresBackend) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			state_key TEXT PRIMARY KEY,
			snapshot JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, postgresStateTable)
	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure state table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf("SELECT snapshot FROM %s WHERE state_key = $1", postgresStateTable)
	var snapshot []byte
	err := b.pool.QueryRow(ctx, query, postgresStateKey).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (b *PostgresBackend) Save(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (state_key, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (state_key)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()`, postgresStateTable)
	_, err := b.pool.Exec(ctx, query, postgresStateKey, data)
	return err
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
