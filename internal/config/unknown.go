package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadWithWarnings decodes config data and returns any unknown field warnings.
func LoadWithWarnings(data []byte) (*Config, []string, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Detect unknown fields
	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares the raw document with known struct fields.
func detectUnknownFields(data []byte) []string {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// Should not happen since Config parsed successfully.
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	knownTopLevel := getYAMLFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	warnings = append(warnings, CheckSectionUnknownFields("comparison", raw["comparison"], ComparisonConfig{})...)
	warnings = append(warnings, CheckSectionUnknownFields("report", raw["report"], ReportConfig{})...)

	return warnings
}

// CheckSectionUnknownFields reports keys of a decoded YAML mapping that are
// not fields of the struct known. Non-mapping values yield no warnings.
func CheckSectionUnknownFields(section string, value any, known any) []string {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	knownFields := getYAMLFields(reflect.TypeOf(known))
	for _, key := range sortedKeys(fields) {
		if !knownFields[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}
	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
