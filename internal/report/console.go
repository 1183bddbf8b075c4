package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/AndreyAkinshin/nestunit/internal/output"
)

// DefaultNameWidth is the display width after which group and test names
// are truncated.
const DefaultNameWidth = 80

const indentUnit = "  "

// ConsoleSink renders result trees as an indented outline:
//
//	✓ math
//	  ✓ addition
//	    ✓ small
//	  ✗ division
//	    ✗ by zero
//	        expected 0, got +Inf
//
// Without color the marks are "+" and "x".
type ConsoleSink struct {
	w          *output.Writer
	showPassed bool
	nameWidth  int

	depth int
	skip  int // depth of the passing subtree being hidden, 0 if none
}

// NewConsoleSink creates a console sink writing through w.
// When showPassed is false, passing tests and passing groups are hidden.
func NewConsoleSink(w *output.Writer, showPassed bool) *ConsoleSink {
	return &ConsoleSink{w: w, showPassed: showPassed, nameWidth: DefaultNameWidth}
}

// SetNameWidth sets the display width after which names are truncated.
// Non-positive widths disable truncation.
func (s *ConsoleSink) SetNameWidth(width int) {
	s.nameWidth = width
}

// BeginGroup implements unit.Sink.
func (s *ConsoleSink) BeginGroup(name string, failed bool) {
	s.depth++
	if s.skip > 0 {
		return
	}
	if !failed && !s.showPassed {
		s.skip = s.depth
		return
	}
	s.line(s.depth-1, failed, s.w.Bold(s.name(name)))
}

// AddLeaf implements unit.Sink.
func (s *ConsoleSink) AddLeaf(name string, failed bool, err string) {
	if s.skip > 0 || (!failed && !s.showPassed) {
		return
	}
	s.line(s.depth, failed, s.name(name))
	if !failed || err == "" {
		return
	}
	pad := strings.Repeat(indentUnit, s.depth+2)
	for _, l := range strings.Split(err, "\n") {
		s.w.Println("%s%s", pad, s.w.Muted(l))
	}
}

// EndGroup implements unit.Sink.
func (s *ConsoleSink) EndGroup() {
	if s.skip == s.depth {
		s.skip = 0
	}
	if s.depth > 0 {
		s.depth--
	}
}

func (s *ConsoleSink) line(level int, failed bool, text string) {
	s.w.Println("%s%s %s", strings.Repeat(indentUnit, level), s.mark(failed), text)
}

func (s *ConsoleSink) mark(failed bool) string {
	switch {
	case failed && s.w.Color():
		return s.w.Failed("✗")
	case failed:
		return "x"
	case s.w.Color():
		return s.w.Passed("✓")
	default:
		return "+"
	}
}

func (s *ConsoleSink) name(name string) string {
	if s.nameWidth <= 0 || runewidth.StringWidth(name) <= s.nameWidth {
		return name
	}
	return runewidth.Truncate(name, s.nameWidth, "…")
}

// PrintSummary prints the totals of counts and the list of failed tests,
// followed by a final verdict line.
func PrintSummary(w *output.Writer, counts *Counts, suites int) {
	w.SummaryHeader("Test Summary")
	w.SummaryItem("Suites", strconv.Itoa(suites))
	w.SummaryItem("Groups", strconv.Itoa(counts.Groups))
	w.SummaryPassed("Passed", strconv.Itoa(counts.Passed))
	if counts.Failed > 0 {
		w.SummaryFailed("Failed", strconv.Itoa(counts.Failed))
	}
	w.SummaryItem("Total", strconv.Itoa(counts.Total))

	if len(counts.FailedTests) > 0 {
		w.Println("")
		w.Println("  %s", w.Muted("Failed Tests:"))
		for _, ft := range counts.FailedTests {
			reason, _, _ := strings.Cut(ft.Reason, "\n")
			w.SummaryFailed("  "+ft.Path, reason)
		}
	}

	if counts.Failed == 0 {
		w.FinalSuccess("All %d tests passed.", counts.Total)
	} else {
		w.FinalFailure("%d of %d tests failed.", counts.Failed, counts.Total)
	}
}
