// Package logging builds the taxassist loggers. The chat TUI owns
// stdout, so its logger writes to a file under the user config
// directory; one-shot CLI commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCLILogger returns a stderr logger for one-shot commands.
func NewCLILogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFileLogger returns a debug-level logger appending to path,
// creating parent directories. Used by the interactive chat view.
func NewFileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return nil, fmt.Errorf("log path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file logger: %w", err)
	}
	return logger, nil
}
