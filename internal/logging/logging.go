// Package logging builds the zap loggers used for diagnostics. Diagnostics go to
// stderr so that stdout carries only the rendered report.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel names a diagnostic verbosity.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat names a log encoding.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// Defaults used when configuration leaves the fields empty.
const (
	DefaultLevel  = LogLevelWarn
	DefaultFormat = LogFormatConsole
)

// Common field names shared by packages that log.
const (
	FieldRunID       = "run_id"
	FieldSuite       = "suite"
	FieldEnvironment = "environment"
	FieldFilter      = "filter"
	FieldCommand     = "command"
	FieldArguments   = "arguments"
	FieldDirectory   = "working_directory"
	FieldExitCode    = "exit_code"
	FieldDuration    = "duration"
	FieldTimeout     = "timeout"
	FieldPath        = "path"
)

// ParseLevel converts a level name to a zap level.
func ParseLevel(level LogLevel) (zapcore.Level, error) {
	switch LogLevel(strings.ToLower(string(level))) {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo, "":
		return zapcore.InfoLevel, nil
	case LogLevelWarn, "warning":
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level %q", level)
	}
}

// ParseFormat normalizes a format name; "json" is accepted for structured and
// an empty name means console.
func ParseFormat(format LogFormat) (LogFormat, error) {
	switch LogFormat(strings.ToLower(string(format))) {
	case LogFormatStructured, "json":
		return LogFormatStructured, nil
	case LogFormatConsole, "":
		return LogFormatConsole, nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}

// New creates a logger writing to w in the given level and format.
func New(level LogLevel, format LogFormat, w io.Writer) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	canonical, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if canonical == LogFormatStructured {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapLevel)
	return zap.New(core), nil
}

// OrNop returns logger, or a no-op logger when logger is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
