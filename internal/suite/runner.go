// Package suite runs test suites one at a time through an external runner and
// classifies every execution into a model.SuiteOutcome.
package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/executor"
	"github.com/AndreyAkinshin/suiterun/internal/logging"
	"github.com/AndreyAkinshin/suiterun/internal/model"
	"github.com/AndreyAkinshin/suiterun/internal/testparser"
)

// ErrEmptyCommand is reported when the invocation template has no executable.
var ErrEmptyCommand = errors.New("invocation command is empty")

// CommandExecutor runs a single command. *executor.Executor satisfies it.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd executor.Command) (executor.Result, error)
}

// Observer receives progress events while suites run.
type Observer interface {
	SuiteStarted(index, count int, spec model.SuiteSpec, cmd executor.Command)
	SuiteFinished(index, count int, outcome model.SuiteOutcome)
}

// Runner executes suites through a CommandExecutor.
type Runner struct {
	exec       CommandExecutor
	parser     testparser.Parser
	invocation Invocation
	dir        string
	env        map[string]string
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithParser sets the transcript parser. Default: PlatformIO.
func WithParser(p testparser.Parser) Option {
	return func(r *Runner) {
		if p != nil {
			r.parser = p
		}
	}
}

// WithInvocation sets the argv template. Default: DefaultInvocation().
func WithInvocation(inv Invocation) Option {
	return func(r *Runner) { r.invocation = inv }
}

// WithDir sets the working directory for every suite.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv adds environment variables for every suite.
func WithEnv(env map[string]string) Option {
	return func(r *Runner) { r.env = env }
}

// WithTimeout sets the default per-suite timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = logging.OrNop(l) }
}

// NewRunner creates a Runner over exec.
func NewRunner(exec CommandExecutor, opts ...Option) *Runner {
	r := &Runner{
		exec:       exec,
		parser:     &testparser.PlatformIOParser{},
		invocation: DefaultInvocation(),
		timeout:    executor.DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Command returns the command Run would execute for spec.
func (r *Runner) Command(spec model.SuiteSpec) (executor.Command, error) {
	name, args, ok := r.invocation.Build(spec)
	if !ok {
		return executor.Command{}, ErrEmptyCommand
	}
	timeout := r.timeout
	if spec.Timeout > 0 {
		timeout = spec.Timeout
	}
	return executor.Command{
		Name:    name,
		Args:    args,
		Dir:     r.dir,
		Env:     r.env,
		Timeout: timeout,
	}, nil
}

// Run executes spec once and classifies the result. It never returns an error:
// launch failures, timeouts, non-zero exits and unreadable transcripts all
// become outcomes.
func (r *Runner) Run(ctx context.Context, spec model.SuiteSpec) model.SuiteOutcome {
	cmd, err := r.Command(spec)
	if err != nil {
		return r.launchFailed(spec, err)
	}
	return r.run(ctx, spec, cmd)
}

func (r *Runner) run(ctx context.Context, spec model.SuiteSpec, cmd executor.Command) model.SuiteOutcome {
	log := r.logger.With(
		zap.String(logging.FieldSuite, spec.Name()),
		zap.String(logging.FieldEnvironment, spec.Environment),
		zap.String(logging.FieldFilter, spec.Filter),
	)

	res, err := r.exec.Execute(ctx, cmd)
	if err != nil {
		return r.launchFailed(spec, err)
	}
	if res.TimedOut {
		log.Warn("suite timed out", zap.Duration(logging.FieldTimeout, cmd.Timeout))
		return model.TimeoutOutcome(spec, res.Duration)
	}

	counts := r.parser.Parse(res.Stdout)
	switch {
	case counts.Malformed:
		log.Warn("suite summary is inconsistent; counts ignored", zap.String("parser", r.parser.Name()))
	case !counts.Parsed:
		log.Debug("no suite summary found", zap.String("parser", r.parser.Name()))
	}

	outcome := model.NewOutcome(spec, res.ExitCode, counts.Total, counts.Passed, res.Stdout, res.Stderr, res.Duration)
	log.Info("suite finished",
		zap.Int(logging.FieldExitCode, res.ExitCode),
		zap.Int("total", outcome.Total),
		zap.Int("passed", outcome.Passed),
		zap.Duration(logging.FieldDuration, res.Duration),
	)
	return outcome
}

func (r *Runner) launchFailed(spec model.SuiteSpec, err error) model.SuiteOutcome {
	r.logger.Error("suite could not be launched",
		zap.String(logging.FieldSuite, spec.Name()),
		zap.Error(err),
	)
	var launchErr *executor.LaunchError
	if errors.As(err, &launchErr) {
		err = launchErr.Cause
	}
	return model.LaunchFailureOutcome(spec, err)
}

// RunAll runs every spec in order, one at a time, and returns one outcome per
// spec in the same order. obs may be nil.
func (r *Runner) RunAll(ctx context.Context, specs []model.SuiteSpec, obs Observer) []model.SuiteOutcome {
	outcomes := make([]model.SuiteOutcome, 0, len(specs))
	for i, spec := range specs {
		cmd, err := r.Command(spec)
		if obs != nil {
			obs.SuiteStarted(i, len(specs), spec, cmd)
		}

		var outcome model.SuiteOutcome
		if err != nil {
			outcome = r.launchFailed(spec, err)
		} else {
			outcome = r.run(ctx, spec, cmd)
		}

		if obs != nil {
			obs.SuiteFinished(i, len(specs), outcome)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// Select returns the specs whose names are in names, preserving spec order.
// An empty names list selects everything. Unknown names are reported.
func Select(specs []model.SuiteSpec, names []string) ([]model.SuiteSpec, error) {
	if len(names) == 0 {
		return specs, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	selected := make([]model.SuiteSpec, 0, len(names))
	for _, spec := range specs {
		if wanted[spec.Name()] {
			selected = append(selected, spec)
			delete(wanted, spec.Name())
		}
	}

	for _, n := range names {
		if wanted[n] {
			return nil, fmt.Errorf("unknown suite %q", n)
		}
	}
	return selected, nil
}
