package config

// Default configuration values.
const (
	DefaultFloatTolerance = 1e-9
	DefaultToleranceMode  = "relative"
	DefaultArrayOrder     = "strict"
	DefaultNaNEqualsNaN   = true
	DefaultReportFormat   = "console"
	DefaultReportColor    = "auto"
	DefaultShowPassed     = true
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyComparisonDefaults(cfg)
	applyReportDefaults(cfg)
}

func applyComparisonDefaults(cfg *Config) {
	if cfg.Comparison == nil {
		cfg.Comparison = &ComparisonConfig{}
	}
	c := cfg.Comparison
	if c.FloatTolerance == 0 {
		c.FloatTolerance = DefaultFloatTolerance
	}
	if c.ToleranceMode == "" {
		c.ToleranceMode = DefaultToleranceMode
	}
	if c.ArrayOrder == "" {
		c.ArrayOrder = DefaultArrayOrder
	}
	if c.NaNEqualsNaN == nil {
		v := DefaultNaNEqualsNaN
		c.NaNEqualsNaN = &v
	}
}

func applyReportDefaults(cfg *Config) {
	if cfg.Report == nil {
		cfg.Report = &ReportConfig{}
	}
	r := cfg.Report
	if r.Format == "" {
		r.Format = DefaultReportFormat
	}
	if r.Color == "" {
		r.Color = DefaultReportColor
	}
	if r.ShowPassed == nil {
		v := DefaultShowPassed
		r.ShowPassed = &v
	}
}
