package report

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
)

// Document is the JSON report of one run.
type Document struct {
	RunID   string  `json:"run_id"`
	Suites  []*Node `json:"suites"`
	Summary Counts  `json:"summary"`
}

// JSONSink collects every pushed result tree and encodes them as one Document.
type JSONSink struct {
	runID   string
	rec     Recorder
	counter Counter
}

// NewJSONSink creates a JSONSink with a fresh run identifier.
func NewJSONSink() *JSONSink {
	return NewJSONSinkWithID(uuid.NewString())
}

// NewJSONSinkWithID creates a JSONSink with the given run identifier.
func NewJSONSinkWithID(runID string) *JSONSink {
	return &JSONSink{runID: runID}
}

// RunID returns the run identifier written into the document.
func (s *JSONSink) RunID() string {
	return s.runID
}

// BeginGroup implements unit.Sink.
func (s *JSONSink) BeginGroup(name string, failed bool) {
	s.rec.BeginGroup(name, failed)
	s.counter.BeginGroup(name, failed)
}

// AddLeaf implements unit.Sink.
func (s *JSONSink) AddLeaf(name string, failed bool, err string) {
	s.rec.AddLeaf(name, failed, err)
	s.counter.AddLeaf(name, failed, err)
}

// EndGroup implements unit.Sink.
func (s *JSONSink) EndGroup() {
	s.rec.EndGroup()
	s.counter.EndGroup()
}

// Document returns the report collected so far.
func (s *JSONSink) Document() Document {
	suites := s.rec.Roots
	if suites == nil {
		suites = []*Node{}
	}
	return Document{
		RunID:   s.runID,
		Suites:  suites,
		Summary: s.counter.Counts,
	}
}

// Encode writes the collected report to w as indented JSON.
func (s *JSONSink) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Document())
}
