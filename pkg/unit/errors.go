package unit

import (
	"errors"
	"fmt"
)

// Failure is raised by assertions when an expectation does not hold.
// It is recovered by Run and RunTable and recorded as a failed TestResult.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// UsageError reports misuse of the engine API: an empty engine name,
// unbalanced group nesting, invalid registrations or arguments of the wrong
// kind. Usage errors are never isolated by Run; they propagate to the caller.
type UsageError struct {
	Op      string // engine operation that was misused
	Message string
}

func (e *UsageError) Error() string {
	if e.Op == "" {
		return "nestunit: " + e.Message
	}
	return fmt.Sprintf("nestunit: %s: %s", e.Op, e.Message)
}

// IsFailure reports whether err is (or wraps) an assertion failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// IsUsageError reports whether err is (or wraps) a usage error.
func IsUsageError(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

func usageError(op, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// misuse panics with a UsageError.
func misuse(op, format string, args ...any) {
	panic(usageError(op, format, args...))
}

// panicMessage renders a recovered panic value as a failure message.
func panicMessage(r any) string {
	switch v := r.(type) {
	case *Failure:
		return v.Message
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
