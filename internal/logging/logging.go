// Package logging builds the shared zap logger and hands out named
// sub-loggers per subsystem.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Subsystem names used with Named.
const (
	CategorySession = "session"
	CategoryCLI     = "cli"
	CategoryKB      = "kb"
)

// New builds a production zap logger. With verbose set the level drops to
// debug. Interactive commands keep the console clean by logging to a file
// instead of stderr when logFile is non-empty.
func New(verbose bool, logFile string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Named returns a subsystem logger. A nil base yields a no-op logger so
// library code never has to nil-check.
func Named(base *zap.Logger, category string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(category)
}
