package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AndreyAkinshin/nestunit/internal/schema"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".nestunit.yaml"

// LoadAndValidate reads a config file, validates it against the schema,
// applies defaults, validates semantics, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes configuration data.
func Parse(data []byte) (*Config, []string, error) {
	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	cfg, unknownWarnings, err := LoadWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	// Combine warnings from both sources.
	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}

// Resolve loads the configuration for a run. An empty path looks up
// DefaultFileName in the working directory and falls back to Default when
// it does not exist; an explicit path must exist.
func Resolve(path string) (*Config, []string, error) {
	if path != "" {
		return LoadAndValidate(path)
	}
	cfg, warnings, err := LoadAndValidate(DefaultFileName)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil, nil
	}
	return cfg, warnings, err
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
