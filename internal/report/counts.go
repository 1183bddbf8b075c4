// Package report provides sinks that render or collect the result tree
// produced by a unit.Engine.
package report

import (
	"strings"

	"github.com/AndreyAkinshin/nestunit/pkg/unit"
)

// PathSeparator joins group and test names in a FailedTest path.
const PathSeparator = " / "

// FailedTest holds information about a single failed test.
type FailedTest struct {
	Path   string `json:"path"`   // Group names and test name (e.g., "math / sums / large")
	Reason string `json:"reason"` // Failure message
}

// Counts holds result counts of one or more result trees.
type Counts struct {
	Groups      int          `json:"groups"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Total       int          `json:"total"`
	FailedTests []FailedTest `json:"failed_tests,omitempty"`
}

// Add adds another Counts to this one, aggregating the counts.
func (c *Counts) Add(other *Counts) {
	if other == nil {
		return
	}
	c.Groups += other.Groups
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Total += other.Total
	c.FailedTests = append(c.FailedTests, other.FailedTests...)
}

// Counter is a sink that accumulates Counts.
// Root groups are counted like any other group.
type Counter struct {
	Counts Counts
	path   []string
}

// BeginGroup implements unit.Sink.
func (c *Counter) BeginGroup(name string, failed bool) {
	c.Counts.Groups++
	c.path = append(c.path, name)
}

// AddLeaf implements unit.Sink.
func (c *Counter) AddLeaf(name string, failed bool, err string) {
	c.Counts.Total++
	if !failed {
		c.Counts.Passed++
		return
	}
	c.Counts.Failed++
	c.Counts.FailedTests = append(c.Counts.FailedTests, FailedTest{
		Path:   strings.Join(append(append([]string(nil), c.path...), name), PathSeparator),
		Reason: err,
	})
}

// EndGroup implements unit.Sink.
func (c *Counter) EndGroup() {
	if len(c.path) > 0 {
		c.path = c.path[:len(c.path)-1]
	}
}

// Summarize returns the counts of the engine's result tree.
func Summarize(e *unit.Engine) Counts {
	c := &Counter{}
	e.WriteReport(c)
	return c.Counts
}

// Tee returns a sink that forwards every event to each of sinks in order.
func Tee(sinks ...unit.Sink) unit.Sink {
	return tee(sinks)
}

type tee []unit.Sink

func (t tee) BeginGroup(name string, failed bool) {
	for _, s := range t {
		s.BeginGroup(name, failed)
	}
}

func (t tee) AddLeaf(name string, failed bool, err string) {
	for _, s := range t {
		s.AddLeaf(name, failed, err)
	}
}

func (t tee) EndGroup() {
	for _, s := range t {
		s.EndGroup()
	}
}
