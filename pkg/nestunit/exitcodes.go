// Package nestunit provides public constants for external tools integrating
// with the nestunit CLI.
package nestunit

// Exit codes returned by the nestunit CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every suite passed.
	ExitSuccess = 0

	// ExitFailure indicates at least one test failed, or a runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates an invalid config or suite file.
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (unreadable input, unwritable output).
	ExitEnvError = 3
)
