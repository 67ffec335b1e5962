package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteStateKey = "default"

// SQLiteBackend stores the document snapshot in an embedded SQLite
// database, mirroring the postgres backend's single-row table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database file and ensures the
// snapshot table exists.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// The document write path is serialized anyway; a single connection
	// avoids SQLITE_BUSY on concurrent readers.
	db.SetMaxOpenConns(1)

	query := `
		CREATE TABLE IF NOT EXISTS inmo_state (
			state_key TEXT PRIMARY KEY,
			snapshot BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure state table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, error) {
	var snapshot []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT snapshot FROM inmo_state WHERE state_key = ?", sqliteStateKey,
	).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO inmo_state (state_key, snapshot, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (state_key)
		DO UPDATE SET snapshot = excluded.snapshot, updated_at = datetime('now')`,
		sqliteStateKey, data)
	return err
}

func (b *SQLiteBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
