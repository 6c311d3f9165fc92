package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"miftah/internal/platform/logging"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"

	// Goal bounds mirror the progress domain's; bootstrap tests keep them equal.
	DefaultDailyGoal = 10
	MinDailyGoal     = 1
	MaxDailyGoal     = 100

	dataDirName = ".miftah"
	fileName    = "config.yaml"

	envLogLevel = "MIFTAH_LOG_LEVEL"
	envTimezone = "MIFTAH_TIMEZONE"
)

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type Config struct {
	HomePath string `yaml:"-"`
	DataDir  string `yaml:"-"`
	DBPath   string `yaml:"-"`

	Storage   StorageConfig `yaml:"storage"`
	DailyGoal int           `yaml:"daily_goal"`
	Timezone  string        `yaml:"timezone"`
	LogLevel  string        `yaml:"log_level"`
}

// New resolves configuration for the given home path: defaults, then
// <home>/.miftah/config.yaml when present, then environment overrides.
func New(homePath string) (Config, error) {
	if strings.TrimSpace(homePath) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	dataDir := filepath.Join(homePath, dataDirName)
	cfg := Config{
		HomePath:  homePath,
		DataDir:   dataDir,
		DBPath:    filepath.Join(dataDir, "miftah.db"),
		Storage:   StorageConfig{Driver: DriverSQLite},
		DailyGoal: DefaultDailyGoal,
		LogLevel:  "info",
	}
	if err := cfg.loadFile(filepath.Join(dataDir, fileName)); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envTimezone); ok && strings.TrimSpace(v) != "" {
		cfg.Timezone = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.DailyGoal < MinDailyGoal || c.DailyGoal > MaxDailyGoal {
		return fmt.Errorf("daily_goal must be between %d and %d, got %d", MinDailyGoal, MaxDailyGoal, c.DailyGoal)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the zone that defines calendar days. Empty means the host's
// local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
