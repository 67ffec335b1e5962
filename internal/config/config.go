package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backend names accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Sync   SyncConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig selects and configures the document storage backend.
type StoreConfig struct {
	Backend     string
	FilePath    string
	DatabaseURL string
	SQLitePath  string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3Key       string
}

// SyncConfig controls the sync-job completion simulator.
type SyncConfig struct {
	Simulate      bool
	CompleteAfter time.Duration
	Tick          time.Duration
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_BACKEND", BackendFile)
	v.SetDefault("STORE_FILE", "inmo-state.json")
	v.SetDefault("SQLITE_PATH", "inmo-state.db")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_KEY", "inmo/state.json")
	v.SetDefault("SYNC_SIMULATE", false)
	v.SetDefault("SYNC_COMPLETE_AFTER", "30s")
	v.SetDefault("SYNC_TICK", "5s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(v.GetString("STORE_BACKEND")),
			FilePath:    v.GetString("STORE_FILE"),
			DatabaseURL: v.GetString("DATABASE_URL"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3Region:    v.GetString("S3_REGION"),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3PathStyle: v.GetBool("S3_PATH_STYLE"),
			S3Key:       v.GetString("S3_KEY"),
		},
		Sync: SyncConfig{
			Simulate:      v.GetBool("SYNC_SIMULATE"),
			CompleteAfter: v.GetDuration("SYNC_COMPLETE_AFTER"),
			Tick:          v.GetDuration("SYNC_TICK"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE is required for the file backend")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendS3:
		if c.Store.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
		if c.Store.S3Key == "" {
			return fmt.Errorf("S3_KEY is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Sync.Simulate {
		if c.Sync.CompleteAfter <= 0 {
			return fmt.Errorf("SYNC_COMPLETE_AFTER must be positive")
		}
		if c.Sync.Tick <= 0 {
			return fmt.Errorf("SYNC_TICK must be positive")
		}
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
