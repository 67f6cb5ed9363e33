// Package suiterun provides public constants for tools that wrap the suiterun CLI.
package suiterun

// Exit codes returned by the suiterun CLI.
//
// A run exits with ExitFailure when at least one suite's external process did not
// exit cleanly (non-zero exit, timeout or launch failure). Failing test counts inside
// a cleanly exiting suite do not change the exit code.
const (
	// ExitSuccess indicates every suite process exited with status zero.
	ExitSuccess = 0

	// ExitFailure indicates at least one suite (or build, or check) failed.
	ExitFailure = 1

	// ExitConfigError indicates an invalid or unreadable configuration.
	ExitConfigError = 2

	// ExitEnvError indicates an environment problem (project root not found, etc.).
	ExitEnvError = 3
)
