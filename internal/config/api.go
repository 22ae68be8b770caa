package config

import (
	"fmt"
	"net/url"
	"time"
)

// APIConfig configures the assessment provider.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration; empty means requests never time out.
	Timeout string `yaml:"timeout,omitempty"`
	// FixtureDir serves assessments from <dir>/<TICKER>.json instead of HTTP.
	FixtureDir string `yaml:"fixture_dir,omitempty"`
}

// GetTimeout returns the parsed request timeout, zero when unset.
func (c APIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks the base URL and timeout.
func (c APIConfig) Validate() error {
	if c.FixtureDir == "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid api.base_url %q: must be an http(s) URL", c.BaseURL)
		}
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api.timeout %q: %w", c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid api.timeout %q: must not be negative", c.Timeout)
		}
	}
	return nil
}
