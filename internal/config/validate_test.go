package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty runner command", func(c *Config) { c.Runner.Command = nil }, "runner.command"},
		{"blank executable", func(c *Config) { c.Runner.Command = []string{" "} }, "runner.command"},
		{"zero timeout", func(c *Config) { c.Runner.Timeout = 0 }, "runner.timeout"},
		{"zero build timeout", func(c *Config) { c.Build.Timeout = 0 }, "build.timeout"},
		{"no suites", func(c *Config) { c.Suites = []SuiteConfig{} }, ""},
		{"unknown parser", func(c *Config) { c.Runner.Parser = "junit" }, "runner.parser"},
		{"parser alias", func(c *Config) { c.Runner.Parser = "PIO" }, ""},
		{"suite without environment", func(c *Config) { c.Suites[0].Environment = "" }, "suites[0].environment"},
		{"negative suite timeout", func(c *Config) { c.Suites[2].Timeout = -time.Second }, "suites[2].timeout"},
		{"duplicate suite", func(c *Config) { c.Suites[3].Filter = c.Suites[0].Filter }, "suites[3]"},
		{"empty build command", func(c *Config) { c.Build.Command = nil }, "build.command"},
		{"empty coverage command", func(c *Config) { c.Build.CoverageCommand = nil }, "build.coverage_command"},
		{"blank analysis executable", func(c *Config) { c.Build.AnalysisCommand = []string{""} }, "build.analysis_command"},
		{"blank platform", func(c *Config) { c.Build.Platforms = []string{"esp32", ""} }, "build.platforms[1]"},
		{"zero line length", func(c *Config) { c.Lint.MaxLineLength = 0 }, "lint.max_line_length"},
		{"negative findings", func(c *Config) { c.Lint.MaxFindings = -1 }, "lint.max_findings"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			_, err := Validate(cfg)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Runner.Command = []string{"make", "test"}
	cfg.Runner.FilterArgs = []string{"--verbose"}
	cfg.Build.Command = []string{"make"}

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "runner.timeout", Message: "must be positive"}
	assert.Equal(t, "runner.timeout: must be positive", err.Error())
}
