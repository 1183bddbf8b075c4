// Package config provides configuration loading and validation for .nestunit.yaml.
package config

import "github.com/AndreyAkinshin/nestunit/pkg/compare"

// Config represents the complete .nestunit.yaml configuration.
type Config struct {
	Comparison *ComparisonConfig `yaml:"comparison,omitempty"`
	Report     *ReportConfig     `yaml:"report,omitempty"`
}

// ComparisonConfig configures structural comparison of values.
// The same block may appear in a suite file to override the run-wide settings.
type ComparisonConfig struct {
	FloatTolerance float64 `yaml:"float_tolerance,omitempty"`
	ToleranceMode  string  `yaml:"tolerance_mode,omitempty"` // "relative", "absolute", or "ulp"
	NaNEqualsNaN   *bool   `yaml:"nan_equals_nan,omitempty"`
	ArrayOrder     string  `yaml:"array_order,omitempty"` // "strict" or "unordered"
}

// ReportConfig configures how results are reported.
type ReportConfig struct {
	Format     string `yaml:"format,omitempty"` // "console" or "json"
	Color      string `yaml:"color,omitempty"`  // "auto", "always", or "never"
	ShowPassed *bool  `yaml:"show_passed,omitempty"`
}

// Options converts the comparison settings into compare.Options.
// Unset fields take their default values.
func (c *ComparisonConfig) Options() compare.Options {
	opts := compare.DefaultOptions()
	if c == nil {
		return opts
	}
	if c.FloatTolerance != 0 {
		opts.FloatTolerance = c.FloatTolerance
	}
	if c.ToleranceMode != "" {
		opts.ToleranceMode = c.ToleranceMode
	}
	if c.NaNEqualsNaN != nil {
		opts.NaNEqualsNaN = *c.NaNEqualsNaN
	}
	if c.ArrayOrder != "" {
		opts.ArrayOrder = c.ArrayOrder
	}
	return opts
}

// Merge returns a copy of c with every field set in override replacing the
// corresponding field of c. Neither input is modified.
func (c *ComparisonConfig) Merge(override *ComparisonConfig) *ComparisonConfig {
	merged := &ComparisonConfig{}
	if c != nil {
		*merged = *c
	}
	if override == nil {
		return merged
	}
	if override.FloatTolerance != 0 {
		merged.FloatTolerance = override.FloatTolerance
	}
	if override.ToleranceMode != "" {
		merged.ToleranceMode = override.ToleranceMode
	}
	if override.NaNEqualsNaN != nil {
		merged.NaNEqualsNaN = override.NaNEqualsNaN
	}
	if override.ArrayOrder != "" {
		merged.ArrayOrder = override.ArrayOrder
	}
	return merged
}

// ShowPassedResults reports whether passing tests should be rendered.
func (r *ReportConfig) ShowPassedResults() bool {
	return r == nil || r.ShowPassed == nil || *r.ShowPassed
}
