package config

import (
	"fmt"

	"github.com/AndreyAkinshin/nestunit/pkg/compare"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := ValidateComparison("comparison", cfg.Comparison); err != nil {
		return nil, err
	}

	if err := validateReport(cfg.Report); err != nil {
		return nil, err
	}

	if cfg.Comparison != nil && cfg.Comparison.ToleranceMode == compare.ModeULP && cfg.Comparison.FloatTolerance < 1 {
		warnings = append(warnings, "comparison.float_tolerance is below 1 in ulp mode; only exactly equal floats will match")
	}

	return warnings, nil
}

// ValidateComparison checks a comparison block. field is the name used in
// error messages. A nil block is valid.
func ValidateComparison(field string, c *ComparisonConfig) error {
	if c == nil {
		return nil
	}
	if c.FloatTolerance < 0 {
		return &ValidationError{
			Field:   field + ".float_tolerance",
			Message: "must not be negative",
		}
	}
	switch c.ToleranceMode {
	case "", compare.ModeRelative, compare.ModeAbsolute, compare.ModeULP:
	default:
		return &ValidationError{
			Field:   field + ".tolerance_mode",
			Message: `must be "relative", "absolute", or "ulp"`,
		}
	}
	switch c.ArrayOrder {
	case "", compare.OrderStrict, compare.OrderUnordered:
	default:
		return &ValidationError{
			Field:   field + ".array_order",
			Message: `must be "strict" or "unordered"`,
		}
	}
	return nil
}

func validateReport(r *ReportConfig) error {
	if r == nil {
		return nil
	}
	if err := ValidateFormat(r.Format); err != nil {
		return &ValidationError{Field: "report.format", Message: err.Error()}
	}
	switch r.Color {
	case "", "auto", "always", "never":
	default:
		return &ValidationError{
			Field:   "report.color",
			Message: `must be "auto", "always", or "never"`,
		}
	}
	return nil
}

// ValidateFormat checks a report format name.
func ValidateFormat(format string) error {
	switch format {
	case "", "console", "json":
		return nil
	}
	return fmt.Errorf(`must be "console" or "json", got %q`, format)
}
