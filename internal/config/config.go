// Package config loads leadscope configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leadscope/internal/assessment"
	"leadscope/internal/wizard"

	"gopkg.in/yaml.v3"
)

// Config holds all leadscope configuration.
type Config struct {
	// Assessment provider
	API APIConfig `yaml:"api"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Wizard defaults
	Wizard WizardConfig `yaml:"wizard"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WizardConfig holds the values a new wizard starts with.
type WizardConfig struct {
	DefaultAnswers wizard.UserAnswers `yaml:"default_answers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: assessment.DefaultBaseURL,
		},
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Wizard: WizardConfig{
			DefaultAnswers: wizard.DefaultAnswers(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   filepath.Join(DefaultConfigDir(), "leadscope.log"),
		},
	}
}

// DefaultConfigDir returns ~/.leadscope, or .leadscope when the home
// directory cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".leadscope"
	}
	return filepath.Join(home, ".leadscope")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("LEADSCOPE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout := os.Getenv("LEADSCOPE_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}
	if dir := os.Getenv("LEADSCOPE_FIXTURE_DIR"); dir != "" {
		c.API.FixtureDir = dir
	}
	if theme := os.Getenv("LEADSCOPE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if debug := os.Getenv("LEADSCOPE_DEBUG"); debug == "1" || debug == "true" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// GetAPITimeout returns the provider request timeout, zero for none.
func (c *Config) GetAPITimeout() time.Duration {
	return c.API.GetTimeout()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.UI.Validate(); err != nil {
		return err
	}
	if err := c.Wizard.DefaultAnswers.Validate(); err != nil {
		return fmt.Errorf("invalid wizard.default_answers: %w", err)
	}
	return c.Logging.Validate()
}
