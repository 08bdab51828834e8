// Package logger wraps zap logger construction for the application.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger holds the shared zap logger instance.
type Logger struct {
	// Log is the underlying zap logger.
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger until Init is called.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error") and swaps it in.
func (l *Logger) Init(level string) error {
	parsed, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = parsed

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = built
	return nil
}
