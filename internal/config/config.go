// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "futures-journal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Data        DataConfig  `mapstructure:"data"`
	AI          AIConfig    `mapstructure:"ai"`
	UI          UIConfig    `mapstructure:"ui"`
	Credentials Credentials `mapstructure:"-" json:"-"` // Loaded separately, never serialized
}

// DataConfig holds data location configuration.
type DataConfig struct {
	Dir          string `mapstructure:"dir"`           // CSV drop folder
	DatabasePath string `mapstructure:"database_path"` // SQLite file
	ChartDir     string `mapstructure:"chart_dir"`     // series artifacts
}

// AIConfig holds text-generation configuration.
type AIConfig struct {
	Model       string `mapstructure:"model"`
	DefaultTone string `mapstructure:"default_tone"`
	MaxTrades   int    `mapstructure:"max_trades"` // trades serialized per analysis
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/futures-journal"
	}
	return filepath.Join(home, ".config", "futures-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("data.dir", filepath.Join(configDir, "data"))
	v.SetDefault("data.database_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("data.chart_dir", filepath.Join(configDir, "charts"))
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.default_tone", "analytical")
	v.SetDefault("ai.max_trades", 20)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// Config file not found, write the template and continue with
		// defaults.
		if err := createTemplateConfig(configDir); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}
	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("JOURNAL_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Data.DatabasePath = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("%w: data.dir must not be empty", apperrors.ErrConfigInvalid)
	}
	if c.Data.DatabasePath == "" {
		return fmt.Errorf("%w: data.database_path must not be empty", apperrors.ErrConfigInvalid)
	}
	switch c.AI.DefaultTone {
	case "", "analytical", "supportive", "blunt":
	default:
		return fmt.Errorf("%w: ai.default_tone %q", apperrors.ErrConfigInvalid, c.AI.DefaultTone)
	}
	if c.AI.MaxTrades < 0 {
		return fmt.Errorf("%w: ai.max_trades must be non-negative", apperrors.ErrConfigInvalid)
	}
	return nil
}
