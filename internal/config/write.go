package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteStarter when the file already exists.
var ErrConfigExists = errors.New("configuration file already exists")

const starterHeader = `# suiterun configuration.
# Keys may be overridden with SUITERUN_<SECTION>_<KEY> environment variables,
# for example SUITERUN_RUNNER_TIMEOUT=30s.
`

// fileView mirrors Config with durations rendered as strings.
type fileView struct {
	Runner   runnerView     `yaml:"runner"`
	Suites   []suiteView    `yaml:"suites"`
	Build    buildView      `yaml:"build"`
	Lint     LintConfig     `yaml:"lint"`
	Manifest ManifestConfig `yaml:"manifest"`
	Docs     DocsConfig     `yaml:"docs"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

type runnerView struct {
	Command          []string          `yaml:"command,flow"`
	FilterArgs       []string          `yaml:"filter_args,flow"`
	Timeout          string            `yaml:"timeout"`
	Parser           string            `yaml:"parser"`
	WorkingDirectory string            `yaml:"working_directory,omitempty"`
	Env              map[string]string `yaml:"env,omitempty"`
}

type suiteView struct {
	Environment string `yaml:"environment"`
	Filter      string `yaml:"filter,omitempty"`
	Description string `yaml:"description,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

type buildView struct {
	Command   []string `yaml:"command,flow"`
	Platforms []string `yaml:"platforms,flow"`
	Timeout   string   `yaml:"timeout"`

	CoverageCommand []string `yaml:"coverage_command,flow"`
	AnalysisCommand []string `yaml:"analysis_command,flow"`
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func (c *Config) view() fileView {
	suites := make([]suiteView, 0, len(c.Suites))
	for _, s := range c.Suites {
		suites = append(suites, suiteView{
			Environment: s.Environment,
			Filter:      s.Filter,
			Description: s.Description,
			Timeout:     formatDuration(s.Timeout),
		})
	}
	return fileView{
		Runner: runnerView{
			Command:          c.Runner.Command,
			FilterArgs:       c.Runner.FilterArgs,
			Timeout:          formatDuration(c.Runner.Timeout),
			Parser:           c.Runner.Parser,
			WorkingDirectory: c.Runner.WorkingDirectory,
			Env:              c.Runner.Env,
		},
		Suites: suites,
		Build: buildView{
			Command:   c.Build.Command,
			Platforms: c.Build.Platforms,
			Timeout:   formatDuration(c.Build.Timeout),

			CoverageCommand: c.Build.CoverageCommand,
			AnalysisCommand: c.Build.AnalysisCommand,
		},
		Lint:     c.Lint,
		Manifest: c.Manifest,
		Docs:     c.Docs,
		Report:   c.Report,
		Log:      c.Log,
	}
}

// Marshal renders cfg as YAML that Load reads back to an equal Config.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.view()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStarter writes the default configuration to path. An existing file is
// replaced only when force is set.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}

	content := append([]byte(starterHeader), data...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
