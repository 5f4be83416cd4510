// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// GuildDataPath is the JSON feed of guilds and day entries.
	GuildDataPath string

	// RockDataPath is the monthly Honorable Rock leaderboard feed.
	// Empty disables the Rock tab's data source.
	RockDataPath string

	// DatabasePath is the sqlite standings archive.
	DatabasePath string

	// TrendWindowWeeks bounds how old the earlier trend reference may
	// be before per-day averages are discarded.
	TrendWindowWeeks int

	// RefreshInterval drives the periodic UI tick.
	RefreshInterval time.Duration

	// NotifyLeadChange enables desktop notifications when the top
	// guild changes.
	NotifyLeadChange bool
}

// Default values
const (
	defaultTrendWindowWeeks = 6
	defaultRefreshInterval  = 30 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		GuildDataPath:    getEnvString("GUILD_DATA_PATH", getDefaultGuildDataPath()),
		RockDataPath:     getEnvString("ROCK_DATA_PATH", getDefaultRockDataPath()),
		DatabasePath:     getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		TrendWindowWeeks: getEnvInt("TREND_WINDOW_WEEKS", defaultTrendWindowWeeks),
		RefreshInterval:  getEnvDuration("REFRESH_INTERVAL", defaultRefreshInterval),
		NotifyLeadChange: getEnvBool("NOTIFY_LEAD_CHANGE", true),
	}

	if cfg.TrendWindowWeeks <= 0 {
		return nil, fmt.Errorf("TREND_WINDOW_WEEKS must be positive, got %d", cfg.TrendWindowWeeks)
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "guildwatch", ".env"),
			filepath.Join(home, ".guildwatch", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getDefaultGuildDataPath returns the default path for the guild data feed.
func getDefaultGuildDataPath() string {
	return filepath.Join("data", "guildData.json")
}

// getDefaultRockDataPath returns the default path for the Honorable Rock feed.
func getDefaultRockDataPath() string {
	return filepath.Join("data", "honorableRockData.json")
}

// getDefaultDatabasePath returns the default path for the SQLite archive.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "guildwatch.db"
	}
	return filepath.Join(home, ".config", "guildwatch", "guildwatch.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
