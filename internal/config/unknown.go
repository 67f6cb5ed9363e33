package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// detectUnknownFields compares the raw document with the known struct fields.
// Unknown keys are reported as warnings, never as errors.
func detectUnknownFields(data []byte) ([]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var warnings []string
	checkStruct(raw, reflect.TypeOf(Config{}), "", &warnings)
	sort.Strings(warnings)
	return warnings, nil
}

func checkStruct(raw map[string]any, t reflect.Type, path string, warnings *[]string) {
	known := getMapstructureFields(t)
	for key, value := range raw {
		field, ok := known[key]
		if !ok {
			*warnings = append(*warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, location(path)))
			continue
		}
		checkValue(value, field.Type, joinPath(path, key), warnings)
	}
}

func checkValue(value any, t reflect.Type, path string, warnings *[]string) {
	switch t.Kind() {
	case reflect.Struct:
		if m, ok := value.(map[string]any); ok {
			checkStruct(m, t, path, warnings)
		}
	case reflect.Slice:
		items, ok := value.([]any)
		if !ok || t.Elem().Kind() != reflect.Struct {
			return
		}
		for i, item := range items {
			if m, ok := item.(map[string]any); ok {
				checkStruct(m, t.Elem(), fmt.Sprintf("%s[%d]", path, i), warnings)
			}
		}
	}
}

func location(path string) string {
	if path == "" {
		return "at root level"
	}
	return "in " + path
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// getMapstructureFields returns the known field names of a struct type.
func getMapstructureFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = field
		}
	}
	return fields
}
