package suite

import (
	"strings"

	"github.com/AndreyAkinshin/suiterun/internal/model"
)

// Placeholders substituted in invocation templates.
const (
	PlaceholderEnvironment = "{environment}"
	PlaceholderFilter      = "{filter}"
)

// Invocation is the argv template used to run a suite.
type Invocation struct {
	// Command is the base argv; Command[0] is the executable.
	Command []string
	// FilterArgs are appended only when the suite has a non-empty filter.
	FilterArgs []string
}

// DefaultInvocation runs a PlatformIO test environment, narrowed by filter.
func DefaultInvocation() Invocation {
	return Invocation{
		Command:    []string{"pio", "test", "-e", PlaceholderEnvironment},
		FilterArgs: []string{"--filter", PlaceholderFilter},
	}
}

// Build renders the argv for spec. ok is false when the template has no
// executable.
func (inv Invocation) Build(spec model.SuiteSpec) (name string, args []string, ok bool) {
	if len(inv.Command) == 0 || strings.TrimSpace(inv.Command[0]) == "" {
		return "", nil, false
	}

	r := strings.NewReplacer(
		PlaceholderEnvironment, spec.Environment,
		PlaceholderFilter, spec.Filter,
	)

	args = make([]string, 0, len(inv.Command)-1+len(inv.FilterArgs))
	for _, arg := range inv.Command[1:] {
		args = append(args, r.Replace(arg))
	}
	if spec.Filter != "" {
		for _, arg := range inv.FilterArgs {
			args = append(args, r.Replace(arg))
		}
	}
	return r.Replace(inv.Command[0]), args, true
}
