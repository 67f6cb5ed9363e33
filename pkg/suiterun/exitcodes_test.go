package suiterun_test

import (
	"testing"

	"github.com/AndreyAkinshin/suiterun/internal/errors"
	"github.com/AndreyAkinshin/suiterun/pkg/suiterun"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", suiterun.ExitSuccess, 0},
		{"ExitFailure", suiterun.ExitFailure, 1},
		{"ExitConfigError", suiterun.ExitConfigError, 2},
		{"ExitEnvError", suiterun.ExitEnvError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("suiterun.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in step with the ones the
// CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", suiterun.ExitSuccess, errors.ExitSuccess},
		{"Failure", suiterun.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", suiterun.ExitConfigError, errors.ExitConfigError},
		{"EnvError", suiterun.ExitEnvError, errors.ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: public = %d, internal = %d", tt.public, tt.internal)
			}
		})
	}
}
