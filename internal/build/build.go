// Package build compiles the project for each configured platform.
package build

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/executor"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
)

// PlaceholderPlatform is substituted in the command template.
const PlaceholderPlatform = "{platform}"

// Status classifies a platform build.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusTimedOut
	StatusLaunchFailed
	// StatusSkipped marks platforms not attempted after an earlier failure.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timeout"
	case StatusLaunchFailed:
		return "launch failed"
	default:
		return "skipped"
	}
}

// PlatformResult is the outcome of building one platform.
type PlatformResult struct {
	Platform string
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the build exited cleanly.
func (r PlatformResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// CommandExecutor runs a single command. *executor.Executor satisfies it.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd executor.Command) (executor.Result, error)
}

// Observer receives progress events.
type Observer interface {
	BuildStarted(platform string, cmd executor.Command)
	BuildFinished(result PlatformResult)
}

// Builder runs platform builds sequentially.
type Builder struct {
	exec    CommandExecutor
	command []string
	dir     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewBuilder creates a Builder. command is the argv template.
func NewBuilder(exec CommandExecutor, command []string, dir string, timeout time.Duration, logger *zap.Logger) *Builder {
	return &Builder{
		exec:    exec,
		command: command,
		dir:     dir,
		timeout: timeout,
		logger:  logging.OrNop(logger),
	}
}

// Command renders the command for platform.
func (b *Builder) Command(platform string) executor.Command {
	argv := make([]string, len(b.command))
	for i, arg := range b.command {
		argv[i] = strings.ReplaceAll(arg, PlaceholderPlatform, platform)
	}
	cmd := executor.Command{Dir: b.dir, Timeout: b.timeout}
	if len(argv) > 0 {
		cmd.Name = argv[0]
		cmd.Args = argv[1:]
	}
	return cmd
}

// BuildAll builds platforms in order and stops at the first failure; the
// remaining platforms are reported as skipped. obs may be nil.
func (b *Builder) BuildAll(ctx context.Context, platforms []string, obs Observer) []PlatformResult {
	results := make([]PlatformResult, 0, len(platforms))
	failed := false
	for _, platform := range platforms {
		if failed {
			results = append(results, PlatformResult{Platform: platform, Status: StatusSkipped, ExitCode: -1})
			continue
		}

		cmd := b.Command(platform)
		if obs != nil {
			obs.BuildStarted(platform, cmd)
		}
		result := b.build(ctx, platform, cmd)
		if obs != nil {
			obs.BuildFinished(result)
		}

		results = append(results, result)
		failed = !result.Succeeded()
	}
	return results
}

func (b *Builder) build(ctx context.Context, platform string, cmd executor.Command) PlatformResult {
	log := b.logger.With(zap.String("platform", platform))

	res, err := b.exec.Execute(ctx, cmd)
	result := PlatformResult{
		Platform: platform,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Duration: res.Duration,
	}

	switch {
	case err != nil:
		result.Status = StatusLaunchFailed
		result.ExitCode = -1
		result.Err = err
		var launchErr *executor.LaunchError
		if errors.As(err, &launchErr) {
			result.Err = launchErr.Cause
		}
		log.Error("build could not be launched", zap.Error(err))
	case res.TimedOut:
		result.Status = StatusTimedOut
		log.Warn("build timed out", zap.Duration(logging.FieldTimeout, cmd.Timeout))
	case res.ExitCode != 0:
		result.Status = StatusFailed
		log.Warn("build failed", zap.Int(logging.FieldExitCode, res.ExitCode))
	default:
		result.Status = StatusSucceeded
		log.Info("build succeeded", zap.Duration(logging.FieldDuration, res.Duration))
	}
	return result
}

// AllSucceeded reports whether every platform built.
func AllSucceeded(results []PlatformResult) bool {
	for _, r := range results {
		if !r.Succeeded() {
			return false
		}
	}
	return true
}
