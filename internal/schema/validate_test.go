package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFixture(t *testing.T, parts ...string) []byte {
	t.Helper()
	path := filepath.Join(append([]string{"..", "..", "test", "fixtures"}, parts...)...)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestSchemaValidSuite(t *testing.T) {
	validFixtures := []string{
		"arithmetic.yaml",
		"failing.yaml",
		"strings.json",
	}

	for _, name := range validFixtures {
		t.Run(name, func(t *testing.T) {
			if err := ValidateSuite(readFixture(t, "suites", name)); err != nil {
				t.Errorf("expected valid suite, got error: %v", err)
			}
		})
	}
}

func TestSchemaValidSuiteSemanticErrors(t *testing.T) {
	// Row arity depends on the assert kind, which the schema does not express.
	if err := ValidateSuite(readFixture(t, "invalid", "row-arity.yaml")); err != nil {
		t.Errorf("expected schema-valid suite (semantic error only), got error: %v", err)
	}
}

func TestSchemaInvalidSuite(t *testing.T) {
	tests := []struct {
		fixture string
		want    string
	}{
		{"unknown-assert.yaml", "suite validation failed"},
		{"missing-name.yaml", "suite validation failed"},
		{"malformed.yaml", "invalid YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			err := ValidateSuite(readFixture(t, "invalid", tt.fixture))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSchemaInvalidSuiteEmpty(t *testing.T) {
	if err := ValidateSuite(nil); err == nil {
		t.Error("expected validation error for empty suite, got nil")
	}
}

func TestSchemaInvalidSuiteNestedCase(t *testing.T) {
	data := []byte(`
name: nested
groups:
  - name: outer
    groups:
      - name: inner
        cases:
          - name: no assert
            actual: 1
`)
	if err := ValidateSuite(data); err == nil {
		t.Error("expected validation error for case without assert, got nil")
	}
}

func TestSchemaInvalidSuiteTooManyRowValues(t *testing.T) {
	data := []byte(`{"name": "s", "cases": [{"name": "c", "assert": "equal", "rows": [[1, 2, 3]]}]}`)
	if err := ValidateSuite(data); err == nil {
		t.Error("expected validation error for a row with three values, got nil")
	}
}

func TestSchemaValidConfig(t *testing.T) {
	tests := map[string][]byte{
		"full":           readFixture(t, "config", "full.yaml"),
		"unknown fields": readFixture(t, "config", "unknown-fields.yaml"),
		"empty":          nil,
		"json":           []byte(`{"report": {"format": "console"}}`),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig(data); err != nil {
				t.Errorf("expected valid config, got error: %v", err)
			}
		})
	}
}

func TestSchemaInvalidConfig(t *testing.T) {
	tests := map[string][]byte{
		"invalid mode":       readFixture(t, "config", "invalid-mode.yaml"),
		"negative tolerance": []byte("comparison:\n  float_tolerance: -1\n"),
		"bad format":         []byte("report:\n  format: xml\n"),
		"not object":         []byte("- a\n- b\n"),
		"malformed":          []byte("comparison: [\n"),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig(data); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
