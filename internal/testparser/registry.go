package testparser

import (
	"sort"
	"strings"
)

// DefaultParserName is the parser used when none is configured.
const DefaultParserName = "platformio"

// Registry maps parser names and aliases to parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a new parser registry with all built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	pioParser := &PlatformIOParser{}
	unityParser := &UnityParser{}

	r.parsers["platformio"] = pioParser
	r.parsers["pio"] = pioParser
	r.parsers["unity"] = unityParser

	return r
}

// GetParser returns the parser registered under name (case-insensitive).
// Returns nil if no parser is found.
func (r *Registry) GetParser(name string) Parser {
	return r.parsers[strings.ToLower(strings.TrimSpace(name))]
}

// RegisterParser adds a custom parser under name.
func (r *Registry) RegisterParser(name string, parser Parser) {
	r.parsers[strings.ToLower(name)] = parser
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
