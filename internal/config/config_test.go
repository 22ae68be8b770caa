package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"leadscope/internal/assessment"
	"leadscope/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable applyEnvOverrides reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LEADSCOPE_API_URL", "LEADSCOPE_API_TIMEOUT", "LEADSCOPE_FIXTURE_DIR", "LEADSCOPE_THEME", "LEADSCOPE_DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, assessment.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, ThemeAuto, cfg.UI.Theme)
	assert.Equal(t, wizard.DefaultAnswers(), cfg.Wizard.DefaultAnswers)
	assert.False(t, cfg.Logging.DebugMode)
	assert.Zero(t, cfg.GetAPITimeout())
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://scope.example.com"
	cfg.API.Timeout = "15s"
	cfg.UI.Theme = ThemeDark
	cfg.Wizard.DefaultAnswers.IsSAP = wizard.AnswerNo
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://scope.example.com", loaded.API.BaseURL)
	assert.Equal(t, 15*time.Second, loaded.API.GetTimeout())
	assert.Equal(t, ThemeDark, loaded.UI.Theme)
	assert.Equal(t, wizard.AnswerNo, loaded.Wizard.DefaultAnswers.IsSAP)
	assert.Equal(t, wizard.GeoUSOnly, loaded.Wizard.DefaultAnswers.GeoScope)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: light\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.UI.Theme)
	assert.Equal(t, assessment.DefaultBaseURL, cfg.API.BaseURL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"relative url", func(c *Config) { c.API.BaseURL = "localhost:8000" }, "api.base_url"},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://host" }, "api.base_url"},
		{"fixture dir skips url check", func(c *Config) { c.API.BaseURL = ""; c.API.FixtureDir = "testdata" }, ""},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }, "api.timeout"},
		{"negative timeout", func(c *Config) { c.API.Timeout = "-1s" }, "api.timeout"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad answer", func(c *Config) { c.Wizard.DefaultAnswers.IsOnPrem = "Maybe" }, "wizard.default_answers"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoggingConfig_Options(t *testing.T) {
	lc := LoggingConfig{
		Level:      "debug",
		Format:     "json",
		File:       "/tmp/x.log",
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	}
	opts := lc.Options()
	assert.True(t, opts.DebugMode)
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, "/tmp/x.log", opts.File)
	assert.Equal(t, map[string]bool{"api": false}, opts.Categories)
}

func TestDefaultConfigPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultConfigPath()))
	assert.Equal(t, ".leadscope", filepath.Base(DefaultConfigDir()))
}
