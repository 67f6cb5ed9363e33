package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/suiterun/internal/model"
)

func TestInvocation_Build(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inv      Invocation
		spec     model.SuiteSpec
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{
			name:     "default with filter",
			inv:      DefaultInvocation(),
			spec:     model.SuiteSpec{Environment: "test_runner_embedded_unity", Filter: "test_basic"},
			wantName: "pio",
			wantArgs: []string{"test", "-e", "test_runner_embedded_unity", "--filter", "test_basic"},
			wantOK:   true,
		},
		{
			name:     "environment only omits filter args",
			inv:      DefaultInvocation(),
			spec:     model.SuiteSpec{Environment: "native"},
			wantName: "pio",
			wantArgs: []string{"test", "-e", "native"},
			wantOK:   true,
		},
		{
			name:     "placeholder inside argument",
			inv:      Invocation{Command: []string{"platformio", "test", "--environment={environment}"}},
			spec:     model.SuiteSpec{Environment: "esp32"},
			wantName: "platformio",
			wantArgs: []string{"test", "--environment=esp32"},
			wantOK:   true,
		},
		{
			name:   "empty command",
			inv:    Invocation{Command: []string{" "}},
			spec:   model.SuiteSpec{Environment: "native"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, args, ok := tt.inv.Build(tt.spec)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
