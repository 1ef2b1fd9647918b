package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Package logging builds the zap loggers used by the orchestrator and the
// store. The analyzer core takes no logger: per the analysis contract it is
// pure computation, and anything worth logging is the caller's business.

// Config represents logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format selects the encoder: "json" or "console".
	Format string

	// Path is the log file path. Empty means stderr only.
	Path string

	// MaxSizeMB is the maximum size in megabytes before rotation.
	MaxSizeMB int

	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int

	// MaxAgeDays is the maximum number of days to retain rotated files.
	MaxAgeDays int
}

// DefaultConfig returns default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "json",
		Path:       "logs/analysisd.log",
		MaxSizeMB:  100,
		MaxBackups: 10,
		MaxAgeDays: 30,
	}
}

// New creates a zap logger with lumberjack rotation per the configuration.
func New(config *Config) (*zap.Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch config.Format {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	sink := zapcore.AddSync(os.Stderr)
	if config.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   config.Path,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   true,
		}
		sink = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stderr), zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
