package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"alpha-digest/internal/config"
)

// New builds the process logger from the log level and encoding in cfg.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := cfg.LogEncoding
	if encoding != "console" {
		encoding = "json"
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.AppEnv == "dev",
		Encoding:          encoding,
		DisableStacktrace: cfg.AppEnv != "dev",
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("agent", cfg.AgentName)), nil
}
