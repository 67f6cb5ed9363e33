// Package model provides the record types shared by the runner, aggregator and
// reporter. It exists so that those packages can exchange suite data without
// importing each other.
package model

import "time"

// Transcript sentinels recorded for outcomes that never produced real output.
const (
	TimeoutTranscript     = "TIMEOUT"
	launchErrorTranscript = "ERROR: "
)

// SuiteSpec identifies one suite to run.
type SuiteSpec struct {
	Environment string
	Filter      string
	Description string
	// Timeout overrides the runner's default when non-zero.
	Timeout time.Duration
}

// Name returns the suite name shown in logs and used by --only: the filter when
// set, otherwise the environment.
func (s SuiteSpec) Name() string {
	if s.Filter != "" {
		return s.Filter
	}
	return s.Environment
}

// Label returns the description, falling back to the name.
func (s SuiteSpec) Label() string {
	if s.Description != "" {
		return s.Description
	}
	return s.Name()
}

// OutcomeKind classifies how a suite execution ended.
type OutcomeKind int

const (
	// Completed means the process ran to exit, with any exit code.
	Completed OutcomeKind = iota
	// TimedOut means the process was killed after exceeding its timeout.
	TimedOut
	// LaunchFailed means the process could not be started at all.
	LaunchFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case TimedOut:
		return "timeout"
	case LaunchFailed:
		return "launch failed"
	default:
		return "completed"
	}
}

// SuiteOutcome is the result of running one SuiteSpec once.
// Build it with NewOutcome, TimeoutOutcome or LaunchFailureOutcome.
type SuiteOutcome struct {
	Name        string
	Description string
	Kind        OutcomeKind
	// ExitCode is meaningful only when Kind is Completed.
	ExitCode  int
	Succeeded bool
	Total     int
	Passed    int
	Failed    int
	// Transcript holds the captured standard output, or a sentinel.
	Transcript string
	Stderr     string
	Duration   time.Duration
}

// NewOutcome builds the outcome of a suite whose process ran to completion.
// Failed is always derived as total - passed; counts that are negative or where
// passed exceeds total are treated as unparsable and recorded as zero.
func NewOutcome(spec SuiteSpec, exitCode, total, passed int, stdout, stderr string, duration time.Duration) SuiteOutcome {
	if total < 0 || passed < 0 || passed > total {
		total, passed = 0, 0
	}
	return SuiteOutcome{
		Name:        spec.Name(),
		Description: spec.Label(),
		Kind:        Completed,
		ExitCode:    exitCode,
		Succeeded:   exitCode == 0,
		Total:       total,
		Passed:      passed,
		Failed:      total - passed,
		Transcript:  stdout,
		Stderr:      stderr,
		Duration:    duration,
	}
}

// TimeoutOutcome builds the outcome of a suite killed after its timeout.
func TimeoutOutcome(spec SuiteSpec, duration time.Duration) SuiteOutcome {
	return SuiteOutcome{
		Name:        spec.Name(),
		Description: spec.Label(),
		Kind:        TimedOut,
		ExitCode:    -1,
		Transcript:  TimeoutTranscript,
		Duration:    duration,
	}
}

// LaunchFailureOutcome builds the outcome of a suite whose process never started.
func LaunchFailureOutcome(spec SuiteSpec, err error) SuiteOutcome {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return SuiteOutcome{
		Name:        spec.Name(),
		Description: spec.Label(),
		Kind:        LaunchFailed,
		ExitCode:    -1,
		Transcript:  launchErrorTranscript + msg,
	}
}

// HasTestFailures reports whether the suite reported failing tests, which is
// independent of whether its process succeeded.
func (o SuiteOutcome) HasTestFailures() bool {
	return o.Failed > 0
}

// SuccessRate returns passed/total as a percentage; ok is false when total is 0.
func (o SuiteOutcome) SuccessRate() (rate float64, ok bool) {
	if o.Total == 0 {
		return 0, false
	}
	return float64(o.Passed) / float64(o.Total) * 100, true
}
