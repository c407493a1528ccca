// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogPretty      bool
	DevMode        bool   // Disables response compression
	APIBasePath    string // Route prefix for the API
	DataDir        string // Directory for the journal database (always absolute)
	RatesFile      string // Optional TOML rate table
	RequestTimeout time.Duration
	Journal        JournalConfig
}

// JournalConfig holds calculation journal settings
type JournalConfig struct {
	Enabled       bool
	Retention     time.Duration
	PruneSchedule string // cron spec, seconds field optional
}

// DatabasePath returns the path of the journal database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "journal.db")
}

// Load reads configuration from the environment, after loading .env if present
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	cfg := &Config{
		Port:           getEnvAsInt("PORT", 5477),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", true),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		APIBasePath:    getEnv("API_BASE_PATH", "/blackrock/challenge/v1"),
		DataDir:        absDataDir,
		RatesFile:      getEnv("RATES_FILE", ""),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		Journal: JournalConfig{
			Enabled:       getEnvAsBool("JOURNAL_ENABLED", true),
			Retention:     getEnvAsDuration("JOURNAL_RETENTION", 720*time.Hour),
			PruneSchedule: getEnv("JOURNAL_PRUNE_SCHEDULE", "@every 1h"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Only create the data directory when something will be stored in it
	if cfg.Journal.Enabled {
		if err := os.MkdirAll(absDataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks every setting and reports all problems at once
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}

	if c.APIBasePath != "" && !strings.HasPrefix(c.APIBasePath, "/") {
		errs = append(errs, fmt.Errorf("API_BASE_PATH must start with /, got %q", c.APIBasePath))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive"))
	}

	if c.RatesFile != "" {
		if _, err := os.Stat(c.RatesFile); err != nil {
			errs = append(errs, fmt.Errorf("RATES_FILE: %w", err))
		}
	}

	if c.Journal.Enabled {
		if c.Journal.Retention <= 0 {
			errs = append(errs, fmt.Errorf("JOURNAL_RETENTION must be positive"))
		}
		if _, err := scheduler.ParseSchedule(c.Journal.PruneSchedule); err != nil {
			errs = append(errs, fmt.Errorf("JOURNAL_PRUNE_SCHEDULE: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
