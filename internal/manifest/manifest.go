// Package manifest validates a PlatformIO library manifest (library.json).
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Problem is one validation failure.
type Problem struct {
	// Field is the offending top-level field, or empty for document-level problems.
	Field   string
	Message string
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// Validator checks manifests for required fields.
type Validator struct {
	required []string
	schema   *jsonschema.Schema
}

// NewValidator compiles a schema requiring every field in required.
func NewValidator(required []string) (*Validator, error) {
	fields := append([]string(nil), required...)

	doc := map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": toAny(fields),
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.schema.json", doc); err != nil {
		return nil, fmt.Errorf("add manifest schema resource: %w", err)
	}
	schema, err := compiler.Compile("manifest.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	return &Validator{required: fields, schema: schema}, nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// ValidateFile reads and validates the manifest at path. Problems describe
// an invalid manifest; err reports a manifest that could not be read.
func (v *Validator) ValidateFile(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return v.Validate(data), nil
}

// Validate checks manifest content. An empty result means the manifest is valid.
func (v *Validator) Validate(data []byte) []Problem {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []Problem{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	if err := v.schema.Validate(doc); err != nil {
		return v.problems(doc, err)
	}
	return nil
}

// problems turns a schema failure into one problem per missing field.
func (v *Validator) problems(doc any, err error) []Problem {
	obj, ok := doc.(map[string]any)
	if !ok {
		return []Problem{{Message: "manifest must be a JSON object"}}
	}

	var problems []Problem
	for _, field := range v.required {
		if _, present := obj[field]; !present {
			problems = append(problems, Problem{Field: field, Message: "missing required field"})
		}
	}
	if len(problems) == 0 {
		problems = append(problems, Problem{Message: strings.TrimSpace(err.Error())})
	}
	return problems
}

// Required returns the required fields in configuration order.
func (v *Validator) Required() []string {
	return append([]string(nil), v.required...)
}
