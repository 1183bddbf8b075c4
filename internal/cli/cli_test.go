package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/nestunit/internal/output"
	"github.com/AndreyAkinshin/nestunit/internal/report"
)

// captureOutput redirects the shared writer to buffers for one test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	prev := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = prev })
	return stdout, stderr
}

func fixture(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "test", "fixtures"}, parts...)...)
}

func TestRun_Exit_Codes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args prints help", nil, 0},
		{"help", []string{"--help"}, 0},
		{"version", []string{"version"}, 0},
		{"unknown command", []string{"frobnicate"}, 2},
		{"unknown flag", []string{"run", "--frobnicate", fixture("suites")}, 2},
		{"run without suites", []string{"run"}, 2},
		{"run passing", []string{"run", fixture("suites", "arithmetic.yaml")}, 0},
		{"run failing", []string{"run", fixture("suites", "failing.yaml")}, 1},
		{"run directory", []string{"run", fixture("suites")}, 1},
		{"run invalid suite", []string{"run", fixture("invalid", "unknown-assert.yaml")}, 2},
		{"run missing suite", []string{"run", fixture("suites", "missing.yaml")}, 1},
		{"run bad format", []string{"run", "--format", "xml", fixture("suites")}, 2},
		{"run invalid config", []string{"run", "--config", fixture("config", "invalid-mode.yaml"), fixture("suites", "arithmetic.yaml")}, 2},
		{"run missing config", []string{"run", "--config", fixture("config", "missing.yaml"), fixture("suites", "arithmetic.yaml")}, 3},
		{"validate valid", []string{"validate", fixture("suites")}, 0},
		{"validate invalid", []string{"validate", fixture("invalid")}, 2},
		{"version with args", []string{"version", "extra"}, 2},
		{"summary missing file", []string{"summary", fixture("missing.json")}, 3},
		{"summary not a report", []string{"summary", fixture("suites", "arithmetic.yaml")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			if got := Run(tt.args); got != tt.want {
				t.Errorf("Run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}} {
		stdout, _ := captureOutput(t)
		Run(args)
		if got := stdout.String(); got != "nestunit dev\n" {
			t.Errorf("Run(%v) output = %q, want %q", args, got, "nestunit dev\n")
		}
	}
}

func TestRun_ConsoleReport(t *testing.T) {
	stdout, stderr := captureOutput(t)

	code := Run([]string{"run", fixture("suites", "failing.yaml")})
	if code != 1 {
		t.Fatalf("Run() = %d, want 1", code)
	}

	got := stdout.String()
	for _, want := range []string{
		"x failing\n",
		"  x maps\n",
		"    x different value\n",
		"    + same keys\n",
		"        row must be false\n",
		"  Suites: 1\n",
		"2 of 3 tests failed.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("test failures should not be reported as errors, stderr = %q", stderr.String())
	}
}

func TestRun_QuietHidesPassed(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run([]string{"run", "-q", fixture("suites", "failing.yaml")}); code != 1 {
		t.Fatalf("Run() = %d, want 1", code)
	}
	if strings.Contains(stdout.String(), "same keys") {
		t.Errorf("quiet output shows a passing test:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "different value") {
		t.Errorf("quiet output misses a failing test:\n%s", stdout.String())
	}
}

func TestRun_InvalidSuiteReported(t *testing.T) {
	stdout, stderr := captureOutput(t)

	Run([]string{"run", fixture("invalid", "row-arity.yaml"), fixture("invalid", "unknown-assert.yaml")})

	got := stderr.String()
	if !strings.Contains(got, "row-arity.yaml") || !strings.Contains(got, "unknown-assert.yaml") {
		t.Errorf("every invalid suite should be reported, stderr = %q", got)
	}
	if !strings.Contains(got, "nestunit: 2 of 2 suite files could not be loaded") {
		t.Errorf("stderr = %q, want final error", got)
	}
	if !strings.Contains(stdout.String(), "nestunit validate") {
		t.Errorf("stdout = %q, want a hint", stdout.String())
	}
}

func TestRun_JSONReportToFile(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := filepath.Join(t.TempDir(), "report.json")

	code := Run([]string{"run", "--format", "json", "--output", path, fixture("suites")})
	if code != 1 {
		t.Fatalf("Run() = %d, want 1", code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var doc report.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if len(doc.Suites) != 3 {
		t.Errorf("len(Suites) = %d, want 3", len(doc.Suites))
	}
	if doc.Summary.Failed != 2 {
		t.Errorf("Summary.Failed = %d, want 2", doc.Summary.Failed)
	}
	if doc.RunID == "" {
		t.Error("RunID is empty")
	}
	if !strings.Contains(stdout.String(), "Test Summary") {
		t.Errorf("a summary is printed when the report goes to a file:\n%s", stdout.String())
	}

	// The report can be summarized again.
	stdout.Reset()
	if code := Run([]string{"summary", path}); code != 1 {
		t.Errorf("summary exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "2 of 13 tests failed.") {
		t.Errorf("summary output:\n%s", stdout.String())
	}
}

func TestRun_JSONReportToStdout(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run([]string{"run", "--format", "json", fixture("suites", "arithmetic.yaml")}); code != 0 {
		t.Fatalf("Run() = %d, want 0", code)
	}

	var doc report.Document
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not a single JSON document: %v\n%s", err, stdout.String())
	}
	if doc.Summary.Passed != 7 {
		t.Errorf("Summary.Passed = %d, want 7", doc.Summary.Passed)
	}
}

func TestRun_ConfigFromFlag(t *testing.T) {
	stdout, stderr := captureOutput(t)

	code := Run([]string{"run", "--config", fixture("config", "unknown-fields.yaml"), fixture("suites", "arithmetic.yaml")})
	if code != 0 {
		t.Fatalf("Run() = %d, want 0; stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), `warning: unknown field "colour"`) {
		t.Errorf("stderr = %q, want unknown field warning", stderr.String())
	}
	if !strings.Contains(stdout.String(), "All 7 tests passed.") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_Verbose(t *testing.T) {
	_, stderr := captureOutput(t)

	Run([]string{"run", "-v", fixture("suites", "arithmetic.yaml")})

	if !strings.Contains(stderr.String(), "debug: loaded") {
		t.Errorf("verbose run should print debug messages, stderr = %q", stderr.String())
	}
}

func TestValidate_Output(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run([]string{"validate", fixture("suites")}); code != 0 {
		t.Fatalf("Run() = %d, want 0", code)
	}
	got := stdout.String()
	for _, want := range []string{"=== Suites ===", "All suites are valid.", "Suites: 3", "Cases: 13"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	rows := map[string][]string{}
	for _, line := range strings.Split(got, "\n") {
		if fields := strings.Fields(line); len(fields) == 3 {
			rows[filepath.Base(fields[0])] = fields[1:]
		}
	}
	for file, want := range map[string][]string{
		"arithmetic.yaml": {"arithmetic", "7"},
		"failing.yaml":    {"failing", "3"},
		"strings.json":    {"strings", "3"},
	} {
		if got := rows[file]; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("table row for %s = %v, want %v", file, got, want)
		}
	}
}

func TestValidate_QuietSkipsTable(t *testing.T) {
	stdout, _ := captureOutput(t)

	if code := Run([]string{"validate", "-q", fixture("suites")}); code != 0 {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if strings.Contains(stdout.String(), "=== Suites ===") {
		t.Errorf("quiet validate should not print the table:\n%s", stdout.String())
	}
}

func TestSummary_Stdin(t *testing.T) {
	stdout, _ := captureOutput(t)

	root := newRootCmd()
	root.SetArgs([]string{"summary"})
	root.SetIn(strings.NewReader(`{"run_id": "r", "suites": [{"name": "s"}], "summary": {"groups": 1, "passed": 2, "total": 2}}`))
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "All 2 tests passed.") {
		t.Errorf("output = %q", stdout.String())
	}
}
