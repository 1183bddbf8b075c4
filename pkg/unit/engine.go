// Package unit implements a small unit-testing engine.
//
// An Engine owns a tree of named groups. Group opens a nested group for the
// duration of a body; Run and RunTable execute a test body inside the current
// group, isolate any failure it raises and record a pass/fail TestResult.
// Assertions raise a *Failure when an expectation does not hold. Equality is
// decided by CompareValues, which consults user-registered type classifiers
// and equality strategies before falling back to structural comparison.
//
// Example:
//
//	e := unit.MustNew("math")
//	e.Group("addition", func() {
//	    e.Run("small", func() { e.AssertEqual(1+1, 2) })
//	    e.RunTable("pairs", func(a, b, sum int) {
//	        e.AssertEqual(a+b, sum)
//	    }, [][]any{{1, 2, 3}, {2, 2, 4}})
//	})
//	e.WriteReport(sink)
//
// An Engine is not safe for concurrent use.
package unit

import (
	"reflect"

	"github.com/AndreyAkinshin/nestunit/internal/serialize"
	"github.com/AndreyAkinshin/nestunit/pkg/compare"
)

// Engine runs tests and collects their results.
type Engine struct {
	name      string
	stack     groupStack
	types     []TypeClassifier
	equality  map[string]EqualityStrategy
	opts      compare.Options
	serialize func(any) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompareOptions sets the options used for structural comparison.
func WithCompareOptions(opts compare.Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithSerializer sets the function used to render values in failure messages.
func WithSerializer(fn func(any) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.serialize = fn
		}
	}
}

// New creates an engine whose root group is named name.
// Returns a *UsageError if name is empty or the comparison options are invalid.
func New(name string, opts ...Option) (*Engine, error) {
	if name == "" {
		return nil, usageError("New", "engine name must not be empty")
	}
	e := &Engine{
		name:      name,
		equality:  make(map[string]EqualityStrategy),
		opts:      compare.DefaultOptions(),
		serialize: serialize.Serialize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := compare.ValidateOptions(e.opts); err != nil {
		return nil, usageError("New", "%v", err)
	}
	e.stack.push(name)
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, opts ...Option) *Engine {
	e, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// IsEngine reports whether v is a non-nil *Engine.
func IsEngine(v any) bool {
	e, ok := v.(*Engine)
	return ok && e != nil
}

// Name returns the engine name, which is also the name of the root group.
func (e *Engine) Name() string {
	return e.name
}

// Root returns the root of the result tree.
func (e *Engine) Root() *TestGroup {
	return e.stack.root()
}

// Current returns the innermost open group.
func (e *Engine) Current() *TestGroup {
	return e.stack.peek()
}

// Depth returns the number of open groups, including the root.
func (e *Engine) Depth() int {
	return e.stack.depth()
}

// Failed reports whether any test recorded so far failed.
func (e *Engine) Failed() bool {
	return e.Root().Failed
}

// Group opens a subgroup of the current group, runs body and closes the
// subgroup. Panics raised by body are not isolated.
func (e *Engine) Group(name string, body func()) {
	if body == nil {
		misuse("Group", "body of group %q must not be nil", name)
	}
	e.stack.push(name)
	defer e.stack.pop()
	body()
}

// Run executes fn in isolation and records the outcome in the current group.
// Assertion failures and other panics raised by fn become a failed result;
// usage errors propagate.
func (e *Engine) Run(name string, fn func()) {
	if fn == nil {
		misuse("Run", "test function of %q must not be nil", name)
	}
	msg, failed := e.isolate(fn)
	e.record(name, msg, failed)
}

// RunTable executes fn once per row, passing the row values as positional
// arguments, and stops at the first row that fails. Exactly one result is
// recorded for the whole table. fn must be a function whose parameters accept
// every row; numeric row values are converted to numeric parameter types.
func (e *Engine) RunTable(name string, fn any, rows [][]any) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		misuse("RunTable", "test function of %q must be a non-nil func, got %T", name, fn)
	}

	calls := make([][]reflect.Value, len(rows))
	for i, row := range rows {
		args, reason := callArgs(fv.Type(), row)
		if reason != "" {
			misuse("RunTable", "%q row %d: %s", name, i, reason)
		}
		calls[i] = args
	}

	var (
		msg    string
		failed bool
	)
	for _, args := range calls {
		if msg, failed = e.isolate(func() { fv.Call(args) }); failed {
			break
		}
	}
	e.record(name, msg, failed)
}

// RunCases is the typed form of RunTable: fn runs once per case, stopping at
// the first failure, and one result is recorded.
func RunCases[T any](e *Engine, name string, fn func(T), cases []T) {
	if fn == nil {
		misuse("RunCases", "test function of %q must not be nil", name)
	}
	var (
		msg    string
		failed bool
	)
	for _, c := range cases {
		if msg, failed = e.isolate(func() { fn(c) }); failed {
			break
		}
	}
	e.record(name, msg, failed)
}

// isolate runs call and converts any panic other than a usage error into a
// failure message.
func (e *Engine) isolate(call func()) (msg string, failed bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if u, ok := r.(*UsageError); ok {
			panic(u)
		}
		msg, failed = panicMessage(r), true
	}()
	call()
	return "", false
}

func (e *Engine) record(name, msg string, failed bool) {
	g := e.stack.peek()
	g.Results = append(g.Results, &TestResult{Name: name, Failed: failed, Error: msg})
	if failed {
		e.stack.markFailed()
	}
}

// callArgs converts a table row into call arguments for a function of type t.
// Returns a non-empty reason when the row does not fit.
func callArgs(t reflect.Type, row []any) ([]reflect.Value, string) {
	n := t.NumIn()
	if t.IsVariadic() {
		if len(row) < n-1 {
			return nil, "too few values for variadic function"
		}
	} else if len(row) != n {
		return nil, "value count does not match parameter count"
	}

	args := make([]reflect.Value, len(row))
	for i, v := range row {
		pt := paramType(t, i)
		arg, ok := convertArg(v, pt)
		if !ok {
			return nil, "value " + describeArg(v) + " does not fit parameter of type " + pt.String()
		}
		args[i] = arg
	}
	return args, ""
}

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

func convertArg(v any, pt reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			return reflect.Zero(pt), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(pt) {
		return rv, true
	}
	if isNumericKind(rv.Kind()) && isNumericKind(pt.Kind()) {
		return rv.Convert(pt), true
	}
	return reflect.Value{}, false
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func describeArg(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
