package store

import (
	"context"
	"fmt"

	"github.com/pcabrera/inmo/api/internal/config"
)

// Open constructs the backend selected by configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendFile:
		return NewFileBackend(cfg.FilePath), nil
	case config.BackendPostgres:
		return NewPostgresBackend(ctx, cfg.DatabaseURL)
	case config.BackendSQLite:
		return NewSQLiteBackend(ctx, cfg.SQLitePath)
	case config.BackendS3:
		return NewS3Backend(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Key:       cfg.S3Key,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
