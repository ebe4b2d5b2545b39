package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Environment string // "development" or "production"
	LogLevel    string

	// Storage
	DataDir     string
	StorageType string
	SQLitePath  string
	PostgresDSN string

	// Search index, disabled when URL is empty
	ElasticsearchURL         string
	ElasticsearchUsername    string
	ElasticsearchPassword    string
	ElasticsearchIndexPrefix string

	// Discord webhook for import notifications, disabled when empty
	DiscordWebhookID    string
	DiscordWebhookToken string

	// Import
	InboxDir         string
	QuarantinePath   string
	QuarantineMaxAge time.Duration // zero keeps rejected hands forever
	ImportWorkers    int
	WatchInterval    time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment
func FromEnv() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	workers, err := getEnvInt("IMPORT_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	interval, err := getEnvDuration("WATCH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxAge, err := getEnvDuration("QUARANTINE_MAX_AGE", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:              getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:                 getEnvWithDefault("LOG_LEVEL", "info"),
		DataDir:                  dataDir,
		StorageType:              getEnvWithDefault("STORAGE_TYPE", StorageSQLite),
		SQLitePath:               getEnvWithDefault("SQLITE_PATH", filepath.Join(dataDir, "handtracker.db")),
		PostgresDSN:              os.Getenv("POSTGRES_DSN"),
		ElasticsearchURL:         os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername:    os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword:    os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndexPrefix: getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "handtracker"),
		DiscordWebhookID:         os.Getenv("DISCORD_WEBHOOK_ID"),
		DiscordWebhookToken:      os.Getenv("DISCORD_WEBHOOK_TOKEN"),
		InboxDir:                 getEnvWithDefault("INBOX_DIR", filepath.Join(dataDir, "inbox")),
		QuarantinePath:           getEnvWithDefault("QUARANTINE_PATH", filepath.Join(dataDir, "quarantine.json")),
		QuarantineMaxAge:         maxAge,
		ImportWorkers:            workers,
		WatchInterval:            interval,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q (supported: %s, %s, %s)",
			c.StorageType, StorageSQLite, StoragePostgres, StorageMemory)
	}
	if c.ImportWorkers < 1 {
		return fmt.Errorf("IMPORT_WORKERS must be at least 1")
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("WATCH_INTERVAL must be positive")
	}
	if c.QuarantineMaxAge < 0 {
		return fmt.Errorf("QUARANTINE_MAX_AGE must not be negative")
	}
	if (c.DiscordWebhookID == "") != (c.DiscordWebhookToken == "") {
		return fmt.Errorf("DISCORD_WEBHOOK_ID and DISCORD_WEBHOOK_TOKEN must be set together")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SearchEnabled reports whether hand summaries are indexed in Elasticsearch
func (c *Config) SearchEnabled() bool {
	return c.ElasticsearchURL != ""
}

// NotificationsEnabled reports whether a Discord webhook is configured
func (c *Config) NotificationsEnabled() bool {
	return c.DiscordWebhookID != ""
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
