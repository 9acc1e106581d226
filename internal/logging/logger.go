package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Development environments get a
// colored console encoder, everything else structured JSON.
func New(environment, level string) *zap.Logger {
	parsed := parseLevel(level)

	var logger *zap.Logger
	var err error
	if isDev(environment) {
		logger, err = buildDev(parsed)
	} else {
		logger, err = buildProd(parsed)
	}
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func buildDev(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func buildProd(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func isDev(environment string) bool {
	switch strings.ToLower(environment) {
	case "production", "prod", "staging":
		return false
	}
	return true
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
