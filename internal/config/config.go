package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andy/invoiceflow/internal/common"
)

type Config struct {
	// Session seed settings
	Session SessionConfig `yaml:"session"`

	// Review policy
	Review ReviewConfig `yaml:"review"`

	// Dashboard display
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Logging output
	Logging LoggingConfig `yaml:"logging"`
}

type SessionConfig struct {
	SeedFile string `yaml:"seed_file"` // YAML seed file; empty uses the built-in seed
}

type ReviewConfig struct {
	HoldUnverified bool `yaml:"hold_unverified"` // Refuse to approve suspicious or flagged invoices
}

type DashboardConfig struct {
	RecentCount int `yaml:"recent_count"` // Invoices shown in the recent list
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // Log file; empty discards logs while the TUI runs
}

// DefaultConfigPath returns ~/.config/invoiceflow/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoiceflow", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoiceflow", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Review: ReviewConfig{
			HoldUnverified: false,
		},
		Dashboard: DashboardConfig{
			RecentCount: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that yaml cannot
func (c *Config) Validate() error {
	if c.Dashboard.RecentCount < 0 {
		return fmt.Errorf("%w: dashboard.recent_count must not be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json", common.ErrInvalidConfig)
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
