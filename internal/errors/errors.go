// Package errors provides structured error types and exit codes for suiterun.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI. Mirrored publicly in pkg/suiterun.
const (
	ExitSuccess          = 0 // Every suite process exited cleanly
	ExitRuntimeError     = 1 // A suite, build or check failed
	ExitConfigError      = 2 // Invalid configuration
	ExitEnvironmentError = 3 // Missing project root, unusable working directory, etc.
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	default:
		return "runtime"
	}
}

// Error is the base error type for suiterun.
type Error struct {
	Kind    ErrorKind
	Message string
	Suite   string // Suite name if applicable
	Command string // Command name if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Suite != "" && e.Command != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Suite, e.Command, e.Message)
	}
	if e.Suite != "" {
		return fmt.Sprintf("[%s] %s", e.Suite, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// ConfigWrap wraps a configuration loading or validation failure.
func ConfigWrap(err error, message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// Validation wraps a configuration that parsed but failed semantic checks.
func Validation(err error) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid configuration: %v", err),
		Cause:   err,
	}
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// SuiteError creates an error for a specific suite.
func SuiteError(suite, command, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Suite:   suite,
		Command: command,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
// Wrapped *Error values are found with errors.As.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *Error
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitRuntimeError
}
