// Package logging builds the zap loggers used by the decadog CLI.
package logging

import (
	"fmt"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

const (
	defaultLogLevel  = LogLevelWarn
	defaultLogFormat = LogFormatConsole
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: "json",
	LogFormatConsole:    "console",
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	outputPaths []string
}

// NewLoggerFactory constructs a logger factory writing to stderr.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{outputPaths: []string{"stderr"}}
}

// ParseLogLevel validates a level string. An empty string yields the default.
func ParseLogLevel(value string) (LogLevel, error) {
	if value == "" {
		return defaultLogLevel, nil
	}

	level := LogLevel(value)
	if _, ok := logLevelMapping[level]; !ok {
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidLogLevel, value)
	}

	return level, nil
}

// ParseLogFormat validates a format string. An empty string yields the default.
func ParseLogFormat(value string) (LogFormat, error) {
	if value == "" {
		return defaultLogFormat, nil
	}

	format := LogFormat(value)
	if _, ok := logFormatEncodingMapping[format]; !ok {
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidLogFormat, value)
	}

	return format, nil
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(level LogLevel, format LogFormat) (*zap.Logger, error) {
	zapLevel, ok := logLevelMapping[level]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidLogLevel, level)
	}

	encoding, ok := logFormatEncodingMapping[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidLogFormat, format)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLevel)
	configuration.Encoding = encoding
	configuration.OutputPaths = factory.outputPaths
	configuration.ErrorOutputPaths = factory.outputPaths
	configuration.DisableStacktrace = true

	if format == LogFormatConsole {
		configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := configuration.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
