// Package logger builds the zap loggers used by the engine, the snapshot
// store and the command line.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger at info level tagged with service. It
// falls back to a no-op logger if zap cannot be built.
func New(service string) *zap.SugaredLogger {
	log, err := NewWithLevel(service, "info", false)
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log
}

// NewWithLevel returns a logger at the named level ("debug", "info", "warn",
// "error"). Development loggers write human-readable console output.
func NewWithLevel(service, level string, development bool) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": service}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error building logger: %w", err)
	}

	return log.Sugar(), nil
}
