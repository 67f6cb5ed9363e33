// Package config loads, defaults and validates .suiterun.yaml.
package config

import "time"

// Config represents the complete .suiterun.yaml configuration.
type Config struct {
	Schema   string         `mapstructure:"$schema" yaml:"$schema,omitempty"`
	Runner   RunnerConfig   `mapstructure:"runner" yaml:"runner"`
	Suites   []SuiteConfig  `mapstructure:"suites" yaml:"suites"`
	Build    BuildConfig    `mapstructure:"build" yaml:"build"`
	Lint     LintConfig     `mapstructure:"lint" yaml:"lint"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Docs     DocsConfig     `mapstructure:"docs" yaml:"docs"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// RunnerConfig describes how a suite is invoked.
type RunnerConfig struct {
	// Command is the argv template; {environment} and {filter} are substituted.
	Command []string `mapstructure:"command" yaml:"command,flow"`
	// FilterArgs are appended only for suites with a filter.
	FilterArgs       []string          `mapstructure:"filter_args" yaml:"filter_args,flow"`
	Timeout          time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	Parser           string            `mapstructure:"parser" yaml:"parser"`
	WorkingDirectory string            `mapstructure:"working_directory" yaml:"working_directory,omitempty"`
	Env              map[string]string `mapstructure:"env" yaml:"env,omitempty"`
}

// SuiteConfig is one entry of the ordered suite list.
type SuiteConfig struct {
	Environment string        `mapstructure:"environment" yaml:"environment"`
	Filter      string        `mapstructure:"filter" yaml:"filter,omitempty"`
	Description string        `mapstructure:"description" yaml:"description,omitempty"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// BuildConfig describes platform builds.
type BuildConfig struct {
	// Command is the argv template; {platform} is substituted.
	Command   []string      `mapstructure:"command" yaml:"command,flow"`
	Platforms []string      `mapstructure:"platforms" yaml:"platforms,flow"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// CoverageCommand runs the coverage test environment.
	CoverageCommand []string `mapstructure:"coverage_command" yaml:"coverage_command,flow"`
	// AnalysisCommand runs the static analyser; it is skipped when the
	// executable is not installed.
	AnalysisCommand []string `mapstructure:"analysis_command" yaml:"analysis_command,flow"`
}

// LintConfig configures source style and naming checks.
type LintConfig struct {
	SourceDirs             []string `mapstructure:"source_dirs" yaml:"source_dirs,flow"`
	Extensions             []string `mapstructure:"extensions" yaml:"extensions,flow"`
	MaxLineLength          int      `mapstructure:"max_line_length" yaml:"max_line_length"`
	MaxFindings            int      `mapstructure:"max_findings" yaml:"max_findings"`
	ClassNameExceptions    []string `mapstructure:"class_name_exceptions" yaml:"class_name_exceptions,flow"`
	ConstantNameExceptions []string `mapstructure:"constant_name_exceptions" yaml:"constant_name_exceptions,flow"`
}

// ManifestConfig configures library manifest validation.
type ManifestConfig struct {
	Path           string   `mapstructure:"path" yaml:"path"`
	RequiredFields []string `mapstructure:"required_fields" yaml:"required_fields,flow"`
}

// DocsConfig configures documentation listing.
type DocsConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Pattern   string `mapstructure:"pattern" yaml:"pattern"`
}

// ReportConfig tunes the summary.
type ReportConfig struct {
	Title         string `mapstructure:"title" yaml:"title,omitempty"`
	ShowDurations bool   `mapstructure:"show_durations" yaml:"show_durations"`
	MetricsFile   string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
