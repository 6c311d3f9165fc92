package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"miftah/internal/platform/config"
)

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".miftah")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIFTAH_LOG_LEVEL", "")
	t.Setenv("MIFTAH_TIMEZONE", "")
	cfg, err := config.New(home)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Storage.Driver != config.DriverSQLite || cfg.DailyGoal != 10 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join(home, ".miftah", "miftah.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local zone, got %v (%v)", loc, err)
	}
}

func TestNewRequiresHome(t *testing.T) {
	t.Parallel()
	if _, err := config.New(" "); err == nil {
		t.Fatalf("blank home should fail")
	}
}

func TestNewOverlaysFileThenEnv(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "storage:\n  driver: file\ndaily_goal: 25\ntimezone: UTC\nlog_level: debug\n")
	t.Setenv("MIFTAH_LOG_LEVEL", "warn")
	t.Setenv("MIFTAH_TIMEZONE", "")
	cfg, err := config.New(home)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Storage.Driver != config.DriverFile || cfg.DailyGoal != 25 || cfg.Timezone != "UTC" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env should override log level, got %s", cfg.LogLevel)
	}
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Setenv("MIFTAH_LOG_LEVEL", "")
	t.Setenv("MIFTAH_TIMEZONE", "")
	cases := map[string]string{
		"driver":   "storage:\n  driver: redis\n",
		"goal":     "daily_goal: 101\n",
		"level":    "log_level: chatty\n",
		"timezone": "timezone: Mars/Olympus\n",
		"yaml":     "daily_goal: [\n",
	}
	for name, body := range cases {
		home := t.TempDir()
		writeConfig(t, home, body)
		if _, err := config.New(home); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
