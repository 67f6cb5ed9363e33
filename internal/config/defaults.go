package config

import (
	"time"

	"github.com/AndreyAkinshin/suiterun/internal/executor"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
	"github.com/AndreyAkinshin/suiterun/internal/testparser"
)

// Default configuration values.
const (
	DefaultFileName         = ".suiterun.yaml"
	DefaultEnvPrefix        = "SUITERUN"
	DefaultMaxLineLength    = 120
	DefaultMaxFindings      = 10
	DefaultManifestPath     = "library.json"
	DefaultDocsDirectory    = "docs"
	DefaultDocsPattern      = "*.md"
	DefaultTimeout          = executor.DefaultTimeout
	DefaultBuildTimeout     = 10 * time.Minute
	DefaultSuiteEnvironment = "test_runner_embedded_unity"
)

// Slice defaults are built fresh on every call.

func DefaultRunnerCommand() []string { return []string{"pio", "test", "-e", "{environment}"} }

func DefaultFilterArgs() []string { return []string{"--filter", "{filter}"} }

func DefaultBuildCommand() []string { return []string{"pio", "run", "-e", "{platform}"} }

func DefaultCoverageCommand() []string { return []string{"pio", "test", "-e", "coverage"} }

func DefaultAnalysisCommand() []string {
	return []string{"cppcheck", "--enable=all", "--inconclusive", "--std=c++14", "src/"}
}

func DefaultPlatforms() []string { return []string{"esp32", "native", "atmega328p"} }

func DefaultSourceDirs() []string { return []string{"src"} }

func DefaultExtensions() []string { return []string{".cpp", ".hpp"} }

func DefaultRequiredFields() []string {
	return []string{"name", "version", "description", "keywords", "authors"}
}

func DefaultClassNameExceptions() []string {
	return []string{
		"MockSerial", "Path", "Json", "Unity", "Test", "Setup", "Loop",
		"Serial", "String", "Vector", "Array", "List", "Map", "Set",
	}
}

func DefaultConstantNameExceptions() []string {
	return []string{
		"NULL", "TRUE", "FALSE", "MAX", "MIN", "SIZE", "COUNT", "PI",
		"ARDUINO", "ESP32", "NATIVE", "DEBUG", "RELEASE",
	}
}

// DefaultSuites is the suite list used when the configuration has no suites key.
func DefaultSuites() []SuiteConfig {
	suite := func(filter, description string) SuiteConfig {
		return SuiteConfig{Environment: DefaultSuiteEnvironment, Filter: filter, Description: description}
	}
	return []SuiteConfig{
		suite("test_safety", "Safety Tests"),
		suite("test_basic", "Basic Functionality Tests"),
		suite("test_comp_1", "Comprehensive Tests 1"),
		suite("test_comp_2", "Comprehensive Tests 2"),
		suite("test_comp_3", "Statistics & Scoreboard Tests"),
		suite("test_comp_4", "Random Coverage Tests"),
		suite("test_comp_5", "Final Validation Tests"),
		suite("test_conditional_compilation", "Conditional Compilation Tests"),
		suite("test_naming_consistency", "Naming Consistency Tests"),
	}
}

// defaultValues are registered with viper so that every scalar key is known
// and can be overridden from the environment.
func defaultValues() map[string]any {
	return map[string]any{
		"runner.command":                DefaultRunnerCommand(),
		"runner.filter_args":            DefaultFilterArgs(),
		"runner.timeout":                DefaultTimeout.String(),
		"runner.parser":                 testparser.DefaultParserName,
		"runner.working_directory":      "",
		"build.command":                 DefaultBuildCommand(),
		"build.platforms":               DefaultPlatforms(),
		"build.timeout":                 DefaultBuildTimeout.String(),
		"build.coverage_command":        DefaultCoverageCommand(),
		"build.analysis_command":        DefaultAnalysisCommand(),
		"lint.source_dirs":              DefaultSourceDirs(),
		"lint.extensions":               DefaultExtensions(),
		"lint.max_line_length":          DefaultMaxLineLength,
		"lint.max_findings":             DefaultMaxFindings,
		"lint.class_name_exceptions":    DefaultClassNameExceptions(),
		"lint.constant_name_exceptions": DefaultConstantNameExceptions(),
		"manifest.path":                 DefaultManifestPath,
		"manifest.required_fields":      DefaultRequiredFields(),
		"docs.directory":                DefaultDocsDirectory,
		"docs.pattern":                  DefaultDocsPattern,
		"report.title":                  "",
		"report.show_durations":         false,
		"report.metrics_file":           "",
		"log.level":                     string(logging.DefaultLevel),
		"log.format":                    string(logging.DefaultFormat),
	}
}

// applyDefaults fills in values that viper defaults cannot express. Timeouts
// are left alone: an absent key already has its viper default, and an explicit
// zero is rejected by Validate.
func applyDefaults(cfg *Config) {
	if cfg.Suites == nil {
		cfg.Suites = DefaultSuites()
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Runner: RunnerConfig{
			Command:    DefaultRunnerCommand(),
			FilterArgs: DefaultFilterArgs(),
			Timeout:    DefaultTimeout,
			Parser:     testparser.DefaultParserName,
		},
		Build: BuildConfig{
			Command:   DefaultBuildCommand(),
			Platforms: DefaultPlatforms(),
			Timeout:   DefaultBuildTimeout,

			CoverageCommand: DefaultCoverageCommand(),
			AnalysisCommand: DefaultAnalysisCommand(),
		},
		Lint: LintConfig{
			SourceDirs:             DefaultSourceDirs(),
			Extensions:             DefaultExtensions(),
			MaxLineLength:          DefaultMaxLineLength,
			MaxFindings:            DefaultMaxFindings,
			ClassNameExceptions:    DefaultClassNameExceptions(),
			ConstantNameExceptions: DefaultConstantNameExceptions(),
		},
		Manifest: ManifestConfig{
			Path:           DefaultManifestPath,
			RequiredFields: DefaultRequiredFields(),
		},
		Docs: DocsConfig{
			Directory: DefaultDocsDirectory,
			Pattern:   DefaultDocsPattern,
		},
		Log: LogConfig{
			Level:  string(logging.DefaultLevel),
			Format: string(logging.DefaultFormat),
		},
	}
	applyDefaults(cfg)
	return cfg
}
