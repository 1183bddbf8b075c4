package suite

import (
	"fmt"

	"github.com/AndreyAkinshin/nestunit/internal/config"
)

// ValidationError describes a semantic problem in a suite file.
type ValidationError struct {
	Field   string // Location in the suite, e.g. "groups[0].cases[2].rows[1]"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a decoded suite for errors the schema cannot express.
// It returns the first problem found.
func Validate(s *Suite) error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if err := config.ValidateComparison("comparison", s.Comparison); err != nil {
		return err
	}
	if err := validateCases("", s.Cases); err != nil {
		return err
	}
	return validateGroups("", s.Groups)
}

func validateGroups(prefix string, groups []Group) error {
	for i := range groups {
		g := &groups[i]
		field := fmt.Sprintf("%sgroups[%d]", prefix, i)
		if g.Name == "" {
			return &ValidationError{Field: field + ".name", Message: "is required"}
		}
		if err := validateCases(field+".", g.Cases); err != nil {
			return err
		}
		if err := validateGroups(field+".", g.Groups); err != nil {
			return err
		}
	}
	return nil
}

func validateCases(prefix string, cases []Case) error {
	for i := range cases {
		if err := validateCase(fmt.Sprintf("%scases[%d]", prefix, i), &cases[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateCase(field string, c *Case) error {
	if c.Name == "" {
		return &ValidationError{Field: field + ".name", Message: "is required"}
	}
	if !KnownAssert(c.Assert) {
		return &ValidationError{Field: field + ".assert", Message: fmt.Sprintf("unknown assert kind %q", c.Assert)}
	}

	arity := 1
	if Binary(c.Assert) {
		arity = 2
	}

	if c.Fold && arity == 1 {
		return &ValidationError{Field: field + ".fold", Message: fmt.Sprintf("is not supported by %s", c.Assert)}
	}

	if c.Rows != nil {
		if c.HasActual || c.HasExpected {
			return &ValidationError{Field: field, Message: "rows cannot be combined with actual or expected"}
		}
		if len(c.Rows) == 0 {
			return &ValidationError{Field: field + ".rows", Message: "must not be empty"}
		}
		for j, row := range c.Rows {
			rowField := fmt.Sprintf("%s.rows[%d]", field, j)
			if len(row) != arity {
				return &ValidationError{Field: rowField, Message: fmt.Sprintf("has %d values, %s takes %d", len(row), c.Assert, arity)}
			}
			if c.Fold {
				if err := foldOperands(rowField, row...); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if !c.HasActual {
		return &ValidationError{Field: field + ".actual", Message: "is required"}
	}
	if arity == 2 && !c.HasExpected {
		return &ValidationError{Field: field + ".expected", Message: fmt.Sprintf("is required for %s", c.Assert)}
	}
	if arity == 1 && c.HasExpected {
		return &ValidationError{Field: field + ".expected", Message: fmt.Sprintf("is not used by %s", c.Assert)}
	}
	if c.Fold {
		operands := []any{c.Actual}
		if arity == 2 {
			operands = append(operands, c.Expected)
		}
		return foldOperands(field, operands...)
	}
	return nil
}

func foldOperands(field string, values ...any) error {
	for _, v := range values {
		if _, ok := v.(string); !ok {
			return &ValidationError{Field: field, Message: fmt.Sprintf("fold requires string values, got %T", v)}
		}
	}
	return nil
}
