package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "test_value")

	if got := getEnvString("TEST_ENV_STRING", "default"); got != "test_value" {
		t.Errorf("getEnvString() = %q, want %q", got, "test_value")
	}
	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   int
	}{
		{"valid", "9", 9},
		{"invalid", "nine", 6},
		{"empty", "", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tt.envVal)
			if got := getEnvInt("TEST_ENV_INT", 6); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		envVal string
		want   bool
	}{
		{"false", false},
		{"1", true},
		{"nope", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Setenv("TEST_ENV_BOOL", tt.envVal)
		if got := getEnvBool("TEST_ENV_BOOL", true); got != tt.want {
			t.Errorf("getEnvBool(%q) = %v, want %v", tt.envVal, got, tt.want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   time.Duration
	}{
		{"with unit", "45s", 45 * time.Second},
		{"bare seconds", "90", 90 * time.Second},
		{"invalid", "soon", 30 * time.Second},
		{"empty", "", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_DURATION", tt.envVal)
			if got := getEnvDuration("TEST_ENV_DURATION", 30*time.Second); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GUILD_DATA_PATH", "")
	t.Setenv("ROCK_DATA_PATH", "")
	t.Setenv("DATABASE_PATH", t.TempDir()+"/archive.db")
	t.Setenv("TREND_WINDOW_WEEKS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TrendWindowWeeks != defaultTrendWindowWeeks {
		t.Errorf("TrendWindowWeeks = %d, want %d", cfg.TrendWindowWeeks, defaultTrendWindowWeeks)
	}
	if cfg.GuildDataPath == "" || cfg.RockDataPath == "" {
		t.Error("data paths should have defaults")
	}
	if !cfg.NotifyLeadChange {
		t.Error("lead-change notify should default on")
	}
}

func TestLoadRejectsBadTrendWindow(t *testing.T) {
	t.Setenv("DATABASE_PATH", t.TempDir()+"/archive.db")
	t.Setenv("TREND_WINDOW_WEEKS", "-2")

	if _, err := Load(); err == nil {
		t.Fatal("want error for non-positive trend window")
	}
}
