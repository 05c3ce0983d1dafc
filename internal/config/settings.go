package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the user-editable configuration stored next to the record files.
type Settings struct {
	// DataDir overrides the directory holding the JSON state files.
	DataDir string `yaml:"data_dir,omitempty"`

	// Language is an ISO 639-1 code matching a locale file.
	Language string `yaml:"language"`

	// GateEvents applies the once-per-day marker to events as well as birthdays.
	GateEvents bool `yaml:"gate_events"`

	// StartupDelay postpones the first reminder check after launch.
	StartupDelay time.Duration `yaml:"startup_delay"`

	Feed FeedSettings `yaml:"feed"`
}

// FeedSettings controls the localhost iCalendar feed.
type FeedSettings struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Language:     DefaultLanguage,
		StartupDelay: DefaultStartupDelay,
		Feed: FeedSettings{
			Port: DefaultPort,
		},
	}
}

// DefaultDataDir returns <UserConfigDir>/PetReminder.
func DefaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, DataDirName), nil
}

// LoadSettings reads a YAML settings file. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSettings(), fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	// Set defaults
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.StartupDelay < 0 {
		cfg.StartupDelay = DefaultStartupDelay
	}
	if cfg.Feed.Port == "" {
		cfg.Feed.Port = DefaultPort
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompConfig,
		LogKeyPath, path,
	)
	return cfg, nil
}

// SaveSettings writes the settings file, creating its directory if needed.
func SaveSettings(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.WriteFile(path, data, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	return nil
}
