// Package schema provides JSON schema validation for nestunit configuration
// and suite files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/AndreyAkinshin/nestunit/schema"
)

var (
	configSchema *jsonschema.Schema
	suiteSchema  *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{"config.schema.json", "suite.schema.json"} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}

		suiteSchema, err = compiler.Compile("suite.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile suite schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates YAML or JSON data against the config schema.
// An empty document is an empty configuration.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := decode(data)
	if err != nil {
		return err
	}
	if v == nil {
		v = map[string]any{}
	}

	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateSuite validates YAML or JSON data against the suite schema.
func ValidateSuite(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := decode(data)
	if err != nil {
		return err
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}

	return nil
}

// decode parses a YAML document (JSON is accepted as YAML) into the value
// model of the schema validator.
func decode(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	js, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("document is not representable as JSON: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(js))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}
