// Package executor runs external commands with a bounded wait and captures
// their output.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/suiterun/internal/logging"
)

const (
	// DefaultTimeout bounds a single external command when none is given.
	DefaultTimeout = 5 * time.Minute

	// DefaultWaitDelay bounds how long Wait keeps reading pipes after the
	// process has exited or been killed; descendants that inherited the pipes
	// could otherwise hold Wait open indefinitely.
	DefaultWaitDelay = 5 * time.Second
)

// Command is a fully formed external invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds variables added to (or overriding) the inherited environment.
	Env map[string]string
	// Timeout bounds the run; zero or negative means DefaultTimeout.
	Timeout time.Duration
}

// String renders the command as a shell-like line for display.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Name))
	for _, arg := range c.Args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
		return strconv.Quote(arg)
	}
	return arg
}

// Result captures the observable outcome of a command that was started.
type Result struct {
	// ExitCode is the process exit status, or -1 when the process was killed.
	ExitCode int
	Stdout   string
	Stderr   string
	// TimedOut is true when the process exceeded its timeout and was killed.
	TimedOut bool
	Duration time.Duration
}

// LaunchError reports that a command could not be started at all
// (missing executable, permission denied, invalid working directory).
type LaunchError struct {
	Command Command
	Cause   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Command.Name, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// Executor runs commands one at a time. It is safe for sequential reuse.
type Executor struct {
	logger    *zap.Logger
	echo      io.Writer
	waitDelay time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithEcho streams child output to w while it is being captured.
func WithEcho(w io.Writer) Option {
	return func(e *Executor) {
		if w != nil {
			e.echo = &lockedWriter{w: w}
		}
	}
}

// WithWaitDelay overrides DefaultWaitDelay.
func WithWaitDelay(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.waitDelay = d
		}
	}
}

// New creates an executor. A nil logger disables diagnostics.
func New(logger *zap.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:    logging.OrNop(logger),
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs cmd once and waits for it to exit or time out.
//
// A process that exits, with any status, yields a Result and a nil error.
// A process that exceeds its timeout is killed and yields a Result with
// TimedOut set and a nil error. A process that cannot be started yields a
// *LaunchError. If ctx itself is cancelled the process is killed and ctx.Err()
// is returned alongside the partial Result.
func (e *Executor) Execute(ctx context.Context, cmd Command) (Result, error) {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)
	c.WaitDelay = e.waitDelay
	configureProcessGroup(c)

	var stdout, stderr bytes.Buffer
	if e.echo != nil {
		c.Stdout = io.MultiWriter(&stdout, e.echo)
		c.Stderr = io.MultiWriter(&stderr, e.echo)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	e.logger.Debug("command starting",
		zap.String(logging.FieldCommand, cmd.Name),
		zap.Strings(logging.FieldArguments, cmd.Args),
		zap.String(logging.FieldDirectory, cmd.Dir),
		zap.Duration(logging.FieldTimeout, timeout),
	)

	start := time.Now()
	if err := c.Start(); err != nil {
		e.logger.Error("command could not be launched",
			zap.String(logging.FieldCommand, cmd.Name),
			zap.Error(err),
		)
		return Result{}, &LaunchError{Command: cmd, Cause: err}
	}

	waitErr := c.Wait()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		ExitCode: exitCode(c, waitErr),
	}

	if waitErr != nil && runCtx.Err() != nil {
		result.ExitCode = -1
		if ctx.Err() != nil {
			e.logger.Warn("command interrupted",
				zap.String(logging.FieldCommand, cmd.Name),
				zap.Error(ctx.Err()),
			)
			return result, ctx.Err()
		}
		result.TimedOut = true
		e.logger.Warn("command timed out",
			zap.String(logging.FieldCommand, cmd.Name),
			zap.Duration(logging.FieldTimeout, timeout),
		)
		return result, nil
	}

	if result.ExitCode != 0 {
		e.logger.Warn("command returned non-zero status",
			zap.String(logging.FieldCommand, cmd.Name),
			zap.Int(logging.FieldExitCode, result.ExitCode),
			zap.Duration(logging.FieldDuration, result.Duration),
		)
	} else {
		e.logger.Info("command completed",
			zap.String(logging.FieldCommand, cmd.Name),
			zap.Duration(logging.FieldDuration, result.Duration),
		)
	}
	return result, nil
}

// exitCode extracts the process status after Wait. A process that ran but whose
// pipes outlived the wait delay still reports its real status.
func exitCode(c *exec.Cmd, waitErr error) int {
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if c.ProcessState != nil {
		return c.ProcessState.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}

// mergeEnv overlays extra on base, keeping the output order stable.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := extra[key]; overridden {
			continue
		}
		merged = append(merged, kv)
	}
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		merged = append(merged, key+"="+extra[key])
	}
	return merged
}

// lockedWriter serializes writes from the stdout and stderr copy goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
