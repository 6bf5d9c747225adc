// Package logging builds the debug logger for the verdant client. The TUI
// owns the terminal, so zap writes to <config dir>/logs/verdant.log instead
// of stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created under the config logs directory.
const FileName = "verdant.log"

// New returns a logger writing to logsDir/verdant.log. With debug false the
// logger records info and above; debug true lowers the threshold and adds
// caller info.
func New(logsDir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logsDir, FileName)}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.DisableCaller = true
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}
