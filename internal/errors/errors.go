// Package errors provides structured error types and exit codes for nestunit.
package errors

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/nestunit/pkg/nestunit"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = nestunit.ExitSuccess     // Success
	ExitFailure          = nestunit.ExitFailure     // Tests failed or a runtime error occurred
	ExitConfigError      = nestunit.ExitConfigError // Invalid config or suite file
	ExitEnvironmentError = nestunit.ExitEnvError    // Unreadable input, unwritable output
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
	KindTestFailure
)

// NestunitError is the base error type for nestunit.
type NestunitError struct {
	Kind    ErrorKind
	Message string
	Suite   string // Suite name or file if applicable
	Cause   error  // Underlying error
}

func (e *NestunitError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Suite != "" {
		return fmt.Sprintf("[%s] %s", e.Suite, msg)
	}
	return msg
}

func (e *NestunitError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *NestunitError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitFailure
	}
}

// Config creates a new configuration error.
func Config(message string) *NestunitError {
	return &NestunitError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *NestunitError {
	return Config(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, keeping the kind of a wrapped
// NestunitError.
func Wrap(err error, message string) *NestunitError {
	kind := KindRuntime
	var ne *NestunitError
	if errors.As(err, &ne) {
		kind = ne.Kind
	}
	return &NestunitError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// Validation wraps a validation failure of a suite or config file.
func Validation(suite string, err error) *NestunitError {
	return &NestunitError{
		Kind:    KindValidation,
		Suite:   suite,
		Message: "invalid",
		Cause:   err,
	}
}

// TestFailures reports that a suite finished with failed tests.
func TestFailures(suite string, failed, total int) *NestunitError {
	return &NestunitError{
		Kind:    KindTestFailure,
		Suite:   suite,
		Message: fmt.Sprintf("%d of %d tests failed", failed, total),
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *NestunitError {
	return &NestunitError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ne *NestunitError
	if errors.As(err, &ne) {
		return ne.ExitCode()
	}
	return ExitFailure
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
