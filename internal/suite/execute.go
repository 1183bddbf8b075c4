package suite

import (
	"github.com/AndreyAkinshin/nestunit/internal/config"
	"github.com/AndreyAkinshin/nestunit/pkg/unit"
)

// NewEngine creates an engine for s named after the suite. The suite's own
// comparison block overrides base, and the Folded type is registered.
func NewEngine(s *Suite, base *config.ComparisonConfig, opts ...unit.Option) (*unit.Engine, error) {
	merged := base.Merge(s.Comparison)
	opts = append([]unit.Option{unit.WithCompareOptions(merged.Options())}, opts...)
	e, err := unit.New(s.Name, opts...)
	if err != nil {
		return nil, err
	}
	RegisterFold(e)
	return e, nil
}

// Execute runs every case of s on e. Root cases run in the engine's current
// group; each suite group becomes an engine group. Within a group, cases run
// before nested groups.
func Execute(e *unit.Engine, s *Suite) {
	runCases(e, s.Cases)
	runGroups(e, s.Groups)
}

func runGroups(e *unit.Engine, groups []Group) {
	for i := range groups {
		g := &groups[i]
		e.Group(g.Name, func() {
			runCases(e, g.Cases)
			runGroups(e, g.Groups)
		})
	}
}

func runCases(e *unit.Engine, cs []Case) {
	for i := range cs {
		runCase(e, &cs[i])
	}
}

func runCase(e *unit.Engine, c *Case) {
	check := assertion(e, c)

	if c.Rows == nil {
		e.Run(c.Name, func() { check(c.Actual, c.Expected) })
		return
	}

	rows := make([][]any, len(c.Rows))
	for i, row := range c.Rows {
		// Unary rows are padded so every row fits the two-operand check.
		rows[i] = append(append([]any(nil), row...), make([]any, 2-len(row))...)
	}
	e.RunTable(c.Name, check, rows)
}

// assertion returns the check performed by a case on one set of operands.
func assertion(e *unit.Engine, c *Case) func(actual, expected any) {
	var msg []string
	if c.Message != "" {
		msg = []string{c.Message}
	}
	operands := func(actual, expected any) (any, any) {
		if c.Fold {
			return fold(actual), fold(expected)
		}
		return actual, expected
	}

	switch c.Assert {
	case AssertTrue:
		return func(actual, _ any) { e.AssertTrue(actual, msg...) }
	case AssertFalse:
		return func(actual, _ any) { e.AssertFalse(actual, msg...) }
	case AssertEqual:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertEqual(a, b, msg...)
		}
	case AssertNotEqual:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertNotEqual(a, b, msg...)
		}
	case AssertAlmostEqual:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertAlmostEqual(a, b, msg...)
		}
	case AssertNotAlmostEqual:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertNotAlmostEqual(a, b, msg...)
		}
	case AssertSame:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertSame(a, b, msg...)
		}
	case AssertNotSame:
		return func(actual, expected any) {
			a, b := operands(actual, expected)
			e.AssertNotSame(a, b, msg...)
		}
	}
	panic(&unit.UsageError{Op: "Execute", Message: "unknown assert kind " + c.Assert})
}
