// Package main provides the leadscope CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"leadscope/cmd/leadscope/tui"
	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/config"
	"leadscope/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	fixtureDir string
	theme      string
	timeout    time.Duration

	// Root flags
	ticker string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "leadscope",
	Short: "Lead-Scope - CFO pain points and transformation scope for a company",
	Long: `leadscope turns a stock ticker into CFO-level pain points and a proposed
Phase 1 transformation scope.

Run without arguments to start the interactive wizard:
  1. Enter a ticker
  2. Review and select pain cards (two pages)
  3. Answer three scoping questions
  4. Read the transformation scope dashboard`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The wizard owns the terminal; it logs to file only.
		if cmd.Use == "leadscope" && cmd.CalledAs() == "leadscope" {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runWizard,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to the log file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.leadscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Assessment API base URL (or set LEADSCOPE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&fixtureDir, "fixtures", "", "Serve assessments from <dir>/<TICKER>.json instead of the API")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Color theme: auto, light or dark")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (0 = none)")

	rootCmd.Flags().StringVarP(&ticker, "ticker", "t", "", "Fetch this ticker as soon as the wizard starts")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig resolves configuration: file, then environment, then flags.
func loadConfig() (*config.Config, error) {
	path := resolvedConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Initialize(cfg.Logging.Options()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Get(logging.CategoryBoot).Info("config resolved from %s (api=%s fixtures=%q)", path, cfg.API.BaseURL, cfg.API.FixtureDir)
	return cfg, nil
}

// applyFlagOverrides applies command-line flags, which beat file and env.
func applyFlagOverrides(cfg *config.Config) {
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if fixtureDir != "" {
		cfg.API.FixtureDir = fixtureDir
	}
	if theme != "" {
		cfg.UI.Theme = theme
	}
	if timeout > 0 {
		cfg.API.Timeout = timeout.String()
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
}

// newProvider picks the fixture provider when a fixture dir is configured,
// the HTTP client otherwise.
func newProvider(cfg *config.Config) assessment.Provider {
	if cfg.API.FixtureDir != "" {
		return assessment.NewFileProvider(cfg.API.FixtureDir)
	}
	return assessment.NewHTTPClient(cfg.API.BaseURL, assessment.WithTimeout(cfg.GetAPITimeout()))
}

// reloadSettings returns the config watcher callback. Flags are re-applied,
// logging is re-initialized (active is restored if that fails) and the new
// styles and provider are sent to the running wizard.
func reloadSettings(send func(tea.Msg), active logging.Options) func(*config.Config) {
	return func(c *config.Config) {
		applyFlagOverrides(c)
		next := c.Logging.Options()
		if err := logging.Initialize(next); err != nil {
			_ = logging.Initialize(active)
			logging.Get(logging.CategoryConfig).Warn("keeping previous logging settings: %v", err)
		} else {
			active = next
		}
		send(tui.SettingsMsg{
			Styles:   ui.NewStyles(ui.ThemeByName(c.UI.Theme)),
			Provider: newProvider(c),
		})
	}
}

// runWizard launches the interactive wizard. Edits to the config file while
// it runs restyle the wizard and switch the provider.
func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Get(logging.CategoryBoot)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tui.NewProgram(ctx, tui.Config{
		Provider:   newProvider(cfg),
		Styles:     ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		Answers:    cfg.Wizard.DefaultAnswers,
		Ticker:     ticker,
		AutoSubmit: ticker != "",
	})

	w, err := config.NewWatcher(resolvedConfigPath(), reloadSettings(p.Send, cfg.Logging.Options()))
	if err == nil {
		if err := w.Start(ctx); err != nil {
			log.Warn("config reload disabled: %v", err)
		}
		defer w.Stop()
	} else {
		log.Warn("config reload disabled: %v", err)
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wizard: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		log.Info("wizard exited on step %s", m.Controller().Step())
	}
	return nil
}
