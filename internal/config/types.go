package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config represents the complete .logchecker.yaml configuration file.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Refresh RefreshConfig `yaml:"refresh" mapstructure:"refresh"`
	Files   FilesConfig   `yaml:"files" mapstructure:"files"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
}

// StoreConfig points at the relational store the hosts report into.
type StoreConfig struct {
	// Path is the SQLite database file holding the hosts and client_logs tables.
	Path string `yaml:"path" mapstructure:"path"`

	// Timeout bounds every individual query.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RefreshConfig controls the auto-refresh session.
type RefreshConfig struct {
	// Period between auto-refresh ticks. The first tick fires one period
	// after auto-refresh is switched on.
	Period time.Duration `yaml:"period" mapstructure:"period"`
}

// FilesConfig controls the static log file browser.
type FilesConfig struct {
	// Dir is the root directory scanned for log files.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Extensions lists the file extensions shown in the browser.
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
}

// LogConfig controls the dashboard's own diagnostic log.
type LogConfig struct {
	// File receives log output. The terminal is owned by the dashboard.
	File string `yaml:"file" mapstructure:"file"`

	// Debug enables debug-level entries.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// Theme is one of auto, dark, light.
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// Theme names accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:    "logs.db",
			Timeout: 5 * time.Second,
		},
		Refresh: RefreshConfig{
			Period: 5 * time.Second,
		},
		Files: FilesConfig{
			Dir:        "logs",
			Extensions: []string{".jsonl", ".ndjson", ".json", ".log"},
		},
		Log: LogConfig{
			File:  DefaultLogFile(),
			Debug: false,
		},
		UI: UIConfig{
			Theme: ThemeAuto,
		},
	}
}

// DefaultLogFile returns the default location of the diagnostic log.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "logchecker.log")
}
