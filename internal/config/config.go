package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/suiterun/internal/model"
	"github.com/AndreyAkinshin/suiterun/internal/schema"
)

// Load reads a configuration file and applies default values. An empty path
// yields the defaults, still subject to SUITERUN_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a config file, checks it against the embedded schema,
// applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.ValidateConfigYAML(data); err != nil {
		return nil, nil, err
	}

	unknownWarnings, err := detectUnknownFields(data)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
	return v
}

func decode(data []byte) (*Config, error) {
	v := newViper()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	raw, err := readRaw(data)
	if err != nil {
		return nil, err
	}
	// Viper lowercases map keys; environment variable names are case-sensitive.
	if raw.Runner.Env != nil {
		cfg.Runner.Env = raw.Runner.Env
	}
	// An explicit empty list means no suites; only an absent key gets the defaults.
	if raw.Suites != nil && cfg.Suites == nil {
		cfg.Suites = []SuiteConfig{}
	}

	return &cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToFieldsHook,
	)
}

// stringToFieldsHook splits a string into whitespace-separated fields when a
// slice is expected, so SUITERUN_RUNNER_COMMAND="pio test -e {environment}" works.
func stringToFieldsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	return strings.Fields(data.(string)), nil
}

// rawFile holds the parts of the file that viper cannot report faithfully.
type rawFile struct {
	Runner struct {
		Env map[string]string `yaml:"env"`
	} `yaml:"runner"`
	Suites *[]yaml.Node `yaml:"suites"`
}

func readRaw(data []byte) (rawFile, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("failed to parse config file: %w", err)
	}
	return raw, nil
}

// SuiteSpecs converts the configured suites to run specifications.
func (c *Config) SuiteSpecs() []model.SuiteSpec {
	specs := make([]model.SuiteSpec, 0, len(c.Suites))
	for _, s := range c.Suites {
		specs = append(specs, model.SuiteSpec{
			Environment: s.Environment,
			Filter:      s.Filter,
			Description: s.Description,
			Timeout:     s.Timeout,
		})
	}
	return specs
}
