// Package logging provides categorized, file-backed logging for leadscope.
// Each category is a named zap logger sharing one core. Logging is a silent
// no-op until Initialize is called with DebugMode enabled, so the terminal
// owned by the TUI is never written to.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryConfig Category = "config" // Config load/save
	CategoryAPI    Category = "api"    // Assessment provider calls
	CategoryWizard Category = "wizard" // Wizard step transitions
	CategoryUI     Category = "ui"     // TUI events
)

// Options mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string // debug, info, warn, error
	Format     string // json, console
	File       string
	Categories map[string]bool
}

// Logger is a category logger with printf-style methods. Loggers returned by
// Get follow later calls to Initialize.
type Logger struct {
	category Category
	sugar    atomic.Pointer[zap.SugaredLogger]
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	opts    Options
	file    *os.File
	loggers = make(map[Category]*Logger)
)

// Initialize configures the shared core. With DebugMode off it resets
// logging to a no-op. Safe to call more than once.
func Initialize(o Options) error {
	CloseAll()

	mu.Lock()
	defer mu.Unlock()
	defer rebindLocked()

	opts = o
	if !o.DebugMode {
		return nil
	}
	if o.File == "" {
		return fmt.Errorf("log file path required in debug mode")
	}

	level := zapcore.InfoLevel
	if o.Level != "" {
		parsed, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.Level, err)
		}
		level = parsed
	}

	if err := os.MkdirAll(filepath.Dir(o.File), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	file = f

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	base = zap.New(zapcore.NewCore(enc, zapcore.AddSync(f), level))
	base.Named(string(CategoryBoot)).Sugar().Infof("logging initialized: level=%s file=%s", level, o.File)
	return nil
}

// IsCategoryEnabled reports whether a category writes anything.
// Categories missing from the filter are enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	enabled, ok := opts.Categories[string(category)]
	return !ok || enabled
}

// Get returns (or creates) the logger for a category.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	l := &Logger{category: category}
	l.bindLocked()
	loggers[category] = l
	return l
}

func (l *Logger) bindLocked() {
	z := zap.NewNop()
	if categoryEnabledLocked(l.category) {
		z = base.Named(string(l.category))
	}
	l.sugar.Store(z.Sugar())
}

func rebindLocked() {
	for _, l := range loggers {
		l.bindLocked()
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Load().Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Load().Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Load().Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Load().Errorf(format, args...)
}

// With returns a child logger carrying key/value context. The child is bound
// to the configuration current at the time of the call.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	child := &Logger{category: l.category}
	child.sugar.Store(l.sugar.Load().With(keysAndValues...))
	return child
}

// CloseAll flushes and closes the log file.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	if file != nil {
		_ = file.Close()
		file = nil
	}
	base = zap.NewNop()
	rebindLocked()
}

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	category  Category
	operation string
	start     time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, operation: operation, start: time.Now()}
}

// Stop logs the elapsed time at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.operation, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning when the operation exceeded threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s slow: %v (threshold %v)", t.operation, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.operation, elapsed)
	}
	return elapsed
}
