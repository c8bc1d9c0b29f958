package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(level string) (*zap.Logger, error) {
	return build(level, []string{"stderr"})
}

// NewFile logs to path instead of stderr. The terminal UI owns the screen,
// so it cannot share stderr with the logger.
func NewFile(level, path string) (*zap.Logger, error) {
	return build(level, []string{path})
}

func build(level string, outputs []string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
