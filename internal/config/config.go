package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds persistent defaults loaded from config files.
type Config struct {
	View     ViewConfig     `yaml:"view"`
	Export   ExportConfig   `yaml:"export"`
	Recent   RecentConfig   `yaml:"recent"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ViewConfig holds parsing and display defaults.
type ViewConfig struct {
	MaxLines    int    `yaml:"max_lines"`
	GroupWindow string `yaml:"group_window"`
	Context     int    `yaml:"context"`
}

// Window parses GroupWindow, zero when unset or invalid.
func (v ViewConfig) Window() time.Duration {
	if v.GroupWindow == "" {
		return 0
	}
	d, err := time.ParseDuration(v.GroupWindow)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format string `yaml:"format"`
}

// RecentConfig holds recent-files list settings.
type RecentConfig struct {
	Max int `yaml:"max"`
}

// DefaultsConfig holds global defaults.
type DefaultsConfig struct {
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
}

// Load reads config from ~/.loupe/config.yaml then CWD .loupe.yaml.
// CWD config values override home config. Missing files are not errors.
// Environment variables (LOUPE_*) override config file values.
func Load() *Config {
	cfg := &Config{}

	// home config
	if home, err := os.UserHomeDir(); err == nil {
		_ = loadFile(filepath.Join(home, ".loupe", "config.yaml"), cfg)
	}

	// CWD config overrides
	_ = loadFile(".loupe.yaml", cfg)

	// env overrides
	applyEnv(cfg)

	return cfg
}

// LoadFrom reads config from a specific path. Used for testing.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOUPE_VIEW_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.MaxLines = n
		}
	}
	if v := os.Getenv("LOUPE_VIEW_GROUP_WINDOW"); v != "" {
		cfg.View.GroupWindow = v
	}
	if v := os.Getenv("LOUPE_VIEW_CONTEXT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.View.Context = n
		}
	}
	if v := os.Getenv("LOUPE_EXPORT_FORMAT"); v != "" {
		cfg.Export.Format = v
	}
	if v := os.Getenv("LOUPE_RECENT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Recent.Max = n
		}
	}
	if v := os.Getenv("LOUPE_JSON"); v != "" {
		cfg.Defaults.JSON = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("LOUPE_VERBOSE"); v != "" {
		cfg.Defaults.Verbose = strings.EqualFold(v, "true") || v == "1"
	}
}
