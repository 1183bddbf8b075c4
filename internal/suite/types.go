// Package suite loads declarative suite files and executes them on a
// unit.Engine.
package suite

import (
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/nestunit/internal/config"
)

// Assert kinds accepted in the assert field of a case.
const (
	AssertTrue           = "true"
	AssertFalse          = "false"
	AssertEqual          = "equal"
	AssertNotEqual       = "not_equal"
	AssertAlmostEqual    = "almost_equal"
	AssertNotAlmostEqual = "not_almost_equal"
	AssertSame           = "same"
	AssertNotSame        = "not_same"
)

// Suite is a decoded suite file.
type Suite struct {
	Name       string                   `yaml:"name"`
	Comparison *config.ComparisonConfig `yaml:"comparison,omitempty"`
	Groups     []Group                  `yaml:"groups,omitempty"`
	Cases      []Case                   `yaml:"cases,omitempty"`

	Path string `yaml:"-"` // File the suite was loaded from
}

// Group is a named group of cases and nested groups.
type Group struct {
	Name   string  `yaml:"name"`
	Groups []Group `yaml:"groups,omitempty"`
	Cases  []Case  `yaml:"cases,omitempty"`
}

// Case is a single assertion, or a parametrized one when Rows is set.
// Each row holds the actual value, followed by the expected value for
// binary assert kinds.
type Case struct {
	Name     string  `yaml:"name"`
	Assert   string  `yaml:"assert"`
	Actual   any     `yaml:"actual,omitempty"`
	Expected any     `yaml:"expected,omitempty"`
	Rows     [][]any `yaml:"rows,omitempty"`
	Fold     bool    `yaml:"fold,omitempty"`
	Message  string  `yaml:"message,omitempty"`

	// HasActual and HasExpected record whether the keys were present, since
	// a null value is a valid operand.
	HasActual   bool `yaml:"-"`
	HasExpected bool `yaml:"-"`
}

// UnmarshalYAML decodes a case and records which operands were given.
func (c *Case) UnmarshalYAML(node *yaml.Node) error {
	type plain Case
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "actual":
			c.HasActual = true
		case "expected":
			c.HasExpected = true
		}
	}
	return nil
}

// Binary reports whether the assert kind takes an expected value.
func Binary(assert string) bool {
	switch assert {
	case AssertTrue, AssertFalse:
		return false
	}
	return true
}

// KnownAssert reports whether assert is a supported assert kind.
func KnownAssert(assert string) bool {
	switch assert {
	case AssertTrue, AssertFalse, AssertEqual, AssertNotEqual,
		AssertAlmostEqual, AssertNotAlmostEqual, AssertSame, AssertNotSame:
		return true
	}
	return false
}

// CountCases returns the number of cases in the suite, nested groups included.
func (s *Suite) CountCases() int {
	n := len(s.Cases)
	for i := range s.Groups {
		n += s.Groups[i].countCases()
	}
	return n
}

func (g *Group) countCases() int {
	n := len(g.Cases)
	for i := range g.Groups {
		n += g.Groups[i].countCases()
	}
	return n
}
