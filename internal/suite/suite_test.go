package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/nestunit/internal/config"
	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/report"
	"github.com/AndreyAkinshin/nestunit/pkg/unit"
)

func fixture(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "test", "fixtures"}, parts...)...)
}

// run loads a fixture suite, executes it with default settings and
// returns the engine.
func run(t *testing.T, name string) *unit.Engine {
	t.Helper()
	s, err := Load(fixture("suites", name))
	require.NoError(t, err)
	e, err := NewEngine(s, config.Default().Comparison)
	require.NoError(t, err)
	Execute(e, s)
	return e
}

func parse(t *testing.T, doc string) (*Suite, error) {
	t.Helper()
	return Parse([]byte(doc), t.TempDir())
}

func TestLoad_Arithmetic(t *testing.T) {
	t.Parallel()
	s, err := Load(fixture("suites", "arithmetic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "arithmetic", s.Name)
	assert.Equal(t, fixture("suites", "arithmetic.yaml"), s.Path)
	require.NotNil(t, s.Comparison)
	assert.Equal(t, 1e-12, s.Comparison.FloatTolerance)
	assert.Equal(t, 7, s.CountCases())

	pairs := s.Groups[0].Cases[1]
	assert.Equal(t, AssertEqual, pairs.Assert)
	assert.Len(t, pairs.Rows, 3)
	assert.False(t, pairs.HasActual)
}

func TestExecute_Arithmetic(t *testing.T) {
	t.Parallel()
	e := run(t, "arithmetic.yaml")

	c := report.Summarize(e)
	assert.Zero(t, c.Failed, "%v", c.FailedTests)
	assert.Equal(t, 7, c.Total)
	assert.Equal(t, 4, c.Groups)
	assert.Equal(t, 0, e.Depth()-1, "every group is closed")
}

func TestExecute_Failing(t *testing.T) {
	t.Parallel()
	e := run(t, "failing.yaml")

	c := report.Summarize(e)
	assert.Equal(t, 1, c.Passed)
	assert.Equal(t, 2, c.Failed)
	require.Len(t, c.FailedTests, 2)
	assert.Equal(t, "failing / maps / different value", c.FailedTests[0].Path)
	assert.Contains(t, c.FailedTests[0].Reason, "expected map[")
	assert.Equal(t, "failing / rows / second row fails", c.FailedTests[1].Path)
	assert.Equal(t, "row must be false", c.FailedTests[1].Reason)
}

func TestExecute_Strings(t *testing.T) {
	t.Parallel()
	e := run(t, "strings.json")

	c := report.Summarize(e)
	assert.Zero(t, c.Failed, "%v", c.FailedTests)
	assert.Equal(t, 3, c.Passed)
}

func TestExecute_CaseOrder(t *testing.T) {
	t.Parallel()
	s, err := parse(t, `
name: order
groups:
  - name: g
    groups:
      - name: inner
        cases:
          - {name: c, assert: "true", actual: true}
    cases:
      - {name: a, assert: "true", actual: true}
      - {name: b, assert: "true", actual: true}
cases:
  - {name: root, assert: "false", actual: false}
`)
	require.NoError(t, err)
	e := unit.MustNew("order")
	Execute(e, s)

	root := e.Root()
	require.Len(t, root.Results, 1)
	assert.Equal(t, "root", root.Results[0].Name)
	g := root.Subgroups[0]
	assert.Equal(t, []string{"a", "b"}, []string{g.Results[0].Name, g.Results[1].Name})
	assert.Equal(t, "inner", g.Subgroups[0].Name)
}

func TestExecute_NullOperands(t *testing.T) {
	t.Parallel()
	s, err := parse(t, `
name: nulls
cases:
  - {name: both null, assert: equal, actual: null, expected: null}
  - {name: null vs zero, assert: not_equal, actual: null, expected: 0}
`)
	require.NoError(t, err)
	e := unit.MustNew("nulls")
	Execute(e, s)
	assert.False(t, e.Failed())
}

func TestExecute_SuiteComparisonOverride(t *testing.T) {
	t.Parallel()
	s, err := parse(t, `
name: loose
comparison:
  float_tolerance: 0.1
  tolerance_mode: absolute
cases:
  - {name: close enough, assert: almost_equal, actual: 1.05, expected: 1.0}
`)
	require.NoError(t, err)

	e, err := NewEngine(s, config.Default().Comparison)
	require.NoError(t, err)
	Execute(e, s)
	assert.False(t, e.Failed())

	strict, err := NewEngine(&Suite{Name: "strict"}, config.Default().Comparison)
	require.NoError(t, err)
	Execute(strict, s)
	assert.True(t, strict.Failed(), "without the override the default tolerance applies")
}

func TestFoldedEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, FoldedEqual(Folded{"Straße"}, Folded{"STRASSE"}, false))
	assert.True(t, FoldedEqual(Folded{"ΣΑΣ"}, Folded{"σας"}, false))
	assert.False(t, FoldedEqual(Folded{"a"}, Folded{"b"}, true))

	e := unit.MustNew("fold")
	RegisterFold(e)
	assert.Equal(t, FoldedType, e.DetermineType(Folded{"x"}))
	assert.True(t, e.CompareValues(Folded{"Go"}, Folded{"GO"}, false))
	assert.False(t, e.CompareValues(Folded{"Go"}, "GO", false), "plain strings are not folded")
	assert.Equal(t, "Go", Folded{"Go"}.String())
}

func TestParse_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing actual",
			doc:   `{name: s, cases: [{name: c, assert: "true"}]}`,
			field: "cases[0].actual",
		},
		{
			name:  "missing expected",
			doc:   `{name: s, cases: [{name: c, assert: equal, actual: 1}]}`,
			field: "cases[0].expected",
		},
		{
			name:  "unused expected",
			doc:   `{name: s, cases: [{name: c, assert: "true", actual: true, expected: true}]}`,
			field: "cases[0].expected",
		},
		{
			name:  "rows and actual",
			doc:   `{name: s, cases: [{name: c, assert: equal, actual: 1, rows: [[1, 1]]}]}`,
			field: "cases[0]",
		},
		{
			name:  "empty rows",
			doc:   `{name: s, cases: [{name: c, assert: equal, rows: []}]}`,
			field: "cases[0].rows",
		},
		{
			name:  "row arity",
			doc:   `{name: s, groups: [{name: g, cases: [{name: c, assert: "true", rows: [[true, true]]}]}]}`,
			field: "groups[0].cases[0].rows[0]",
		},
		{
			name:  "fold non-string",
			doc:   `{name: s, cases: [{name: c, assert: equal, fold: true, actual: 1, expected: "1"}]}`,
			field: "cases[0]",
		},
		{
			name:  "fold unary",
			doc:   `{name: s, cases: [{name: c, assert: "true", fold: true, actual: "x"}]}`,
			field: "cases[0].fold",
		},
		{
			name:  "bad comparison",
			doc:   `{name: s, comparison: {array_order: random}}`,
			field: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parse(t, tt.doc)
			require.Error(t, err)
			if tt.field == "" {
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(fixture("suites", "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitEnvironmentError, errors.GetExitCode(err))

	for _, name := range []string{"unknown-assert.yaml", "missing-name.yaml", "row-arity.yaml", "malformed.yaml"} {
		_, err := Load(fixture("invalid", name))
		require.Error(t, err, name)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err), name)
	}
}

func TestLoad_FileRefs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "expected.json"), []byte(`{"a": [1, 2]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "greeting.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs.yaml"), []byte(`
name: refs
cases:
  - name: structured
    assert: equal
    actual: {a: [1, 2]}
    expected: {$file: data/expected.json}
  - name: text
    assert: equal
    actual: hello
    expected: {$file: data/greeting.txt}
`), 0644))

	s, err := Load(filepath.Join(dir, "refs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{1, 2}}, s.Cases[0].Expected)
	assert.Equal(t, "hello", s.Cases[1].Expected)

	e := unit.MustNew("refs")
	Execute(e, s)
	assert.False(t, e.Failed())
}

func TestLoad_FileRefEscape(t *testing.T) {
	t.Parallel()
	_, err := parse(t, `{name: s, cases: [{name: c, assert: equal, actual: 1, expected: {$file: ../secret.json}}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes suite directory")
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "nested/c.yml", "notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0644))
	}

	files, err := Discover([]string{dir, filepath.Join(dir, "b.yaml"), filepath.Join(dir, "notes.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yml"),
		filepath.Join(dir, "notes.txt"),
	}, files)

	_, err = Discover([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestIsSuiteFile(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSuiteFile("a.YAML"))
	assert.True(t, IsSuiteFile("dir/b.json"))
	assert.False(t, IsSuiteFile("c.txt"))
	assert.False(t, IsSuiteFile("yaml"))
}
