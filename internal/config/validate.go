package config

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/suiterun/internal/build"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
	"github.com/AndreyAkinshin/suiterun/internal/suite"
	"github.com/AndreyAkinshin/suiterun/internal/testparser"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for
// non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	runnerWarnings, err := validateRunner(cfg.Runner)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, runnerWarnings...)

	if err := validateSuites(cfg.Suites); err != nil {
		return nil, err
	}

	buildWarnings, err := validateBuild(cfg.Build)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, buildWarnings...)

	if err := validateLint(cfg.Lint); err != nil {
		return nil, err
	}

	if err := validateLog(cfg.Log); err != nil {
		return nil, err
	}

	return warnings, nil
}

func validateRunner(r RunnerConfig) ([]string, error) {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return nil, &ValidationError{Field: "runner.command", Message: "is required"}
	}
	if r.Timeout <= 0 {
		return nil, &ValidationError{Field: "runner.timeout", Message: "must be positive"}
	}
	if testparser.NewRegistry().GetParser(r.Parser) == nil {
		return nil, &ValidationError{
			Field:   "runner.parser",
			Message: fmt.Sprintf("unknown parser %q (available: %s)", r.Parser, strings.Join(testparser.NewRegistry().Names(), ", ")),
		}
	}

	var warnings []string
	if !containsPlaceholder(r.Command, suite.PlaceholderEnvironment) {
		warnings = append(warnings, fmt.Sprintf("runner.command does not reference %s; every suite runs in the same environment", suite.PlaceholderEnvironment))
	}
	if len(r.FilterArgs) > 0 && !containsPlaceholder(r.FilterArgs, suite.PlaceholderFilter) {
		warnings = append(warnings, fmt.Sprintf("runner.filter_args does not reference %s", suite.PlaceholderFilter))
	}
	return warnings, nil
}

func validateSuites(suites []SuiteConfig) error {
	seen := make(map[string]int, len(suites))
	for i, s := range suites {
		field := fmt.Sprintf("suites[%d]", i)
		if strings.TrimSpace(s.Environment) == "" {
			return &ValidationError{Field: field + ".environment", Message: "is required"}
		}
		if s.Timeout < 0 {
			return &ValidationError{Field: field + ".timeout", Message: "must not be negative"}
		}

		name := s.Filter
		if name == "" {
			name = s.Environment
		}
		if prev, ok := seen[name]; ok {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate suite name %q (also suites[%d])", name, prev),
			}
		}
		seen[name] = i
	}
	return nil
}

func validateBuild(b BuildConfig) ([]string, error) {
	if len(b.Command) == 0 || strings.TrimSpace(b.Command[0]) == "" {
		return nil, &ValidationError{Field: "build.command", Message: "is required"}
	}
	for i, p := range b.Platforms {
		if strings.TrimSpace(p) == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("build.platforms[%d]", i), Message: "must not be empty"}
		}
	}
	if b.Timeout <= 0 {
		return nil, &ValidationError{Field: "build.timeout", Message: "must be positive"}
	}
	if len(b.CoverageCommand) == 0 || strings.TrimSpace(b.CoverageCommand[0]) == "" {
		return nil, &ValidationError{Field: "build.coverage_command", Message: "is required"}
	}
	if len(b.AnalysisCommand) == 0 || strings.TrimSpace(b.AnalysisCommand[0]) == "" {
		return nil, &ValidationError{Field: "build.analysis_command", Message: "is required"}
	}
	if !containsPlaceholder(b.Command, build.PlaceholderPlatform) {
		return []string{fmt.Sprintf("build.command does not reference %s; every platform runs the same command", build.PlaceholderPlatform)}, nil
	}
	return nil, nil
}

func validateLint(l LintConfig) error {
	if l.MaxLineLength <= 0 {
		return &ValidationError{Field: "lint.max_line_length", Message: "must be positive"}
	}
	if l.MaxFindings < 0 {
		return &ValidationError{Field: "lint.max_findings", Message: "must not be negative"}
	}
	return nil
}

func validateLog(l LogConfig) error {
	if _, err := logging.ParseLevel(logging.LogLevel(l.Level)); err != nil {
		return &ValidationError{Field: "log.level", Message: err.Error()}
	}
	if _, err := logging.ParseFormat(logging.LogFormat(l.Format)); err != nil {
		return &ValidationError{Field: "log.format", Message: err.Error()}
	}
	return nil
}

func containsPlaceholder(args []string, placeholder string) bool {
	for _, arg := range args {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}
