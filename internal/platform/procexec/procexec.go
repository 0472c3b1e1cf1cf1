// Package procexec runs external tools with a hard deadline and captures their output.
package procexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// DefaultWaitDelay bounds how long Wait blocks on output pipes after the process was killed.
const DefaultWaitDelay = 2 * time.Second

// Outcome is what a finished process left behind. It is returned for any exit code.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner launches commands without a shell. The zero value is not usable; use New.
type Runner struct {
	dir       string
	env       []string
	waitDelay time.Duration
	logger    logx.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDir sets the working directory of launched processes.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(r *Runner) { r.env = append(r.env, env...) }
}

// WithWaitDelay overrides DefaultWaitDelay.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) { r.waitDelay = d }
}

// New creates a Runner.
func New(logger logx.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logx.NewNop()
	}
	r := &Runner{
		waitDelay: DefaultWaitDelay,
		logger:    logger.With("component", "procexec"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command[0] with the remaining elements as arguments.
//
// A non-zero exit is not an error: callers inspect Outcome.ExitCode. Errors are
// reserved for invalid input (ErrInvalidInput), executables that cannot be
// started (ErrLaunchFailed), an exceeded timeout (ErrTimeout) and parent
// context cancellation (the context error). On timeout or cancellation the
// whole process group is killed before Run returns.
func (r *Runner) Run(ctx context.Context, command []string, timeout time.Duration) (Outcome, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return Outcome{}, errors.Wrap(errors.ErrInvalidInput, "empty command")
	}
	if timeout <= 0 {
		return Outcome{}, errors.Wrapf(errors.ErrInvalidInput, "timeout must be positive, got %s", timeout)
	}

	name := command[0]
	path, err := Lookup(name)
	if err != nil {
		return Outcome{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, command[1:]...)
	configureProcess(cmd)
	cmd.WaitDelay = r.waitDelay
	if r.dir != "" {
		cmd.Dir = r.dir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Outcome{}, errors.Wrap(errors.ErrLaunchFailed, fmt.Sprintf("cannot start %s: %v", name, err))
	}
	r.logger.Debug("process started", "cmd", name, "pid", cmd.Process.Pid, "timeout", timeout)

	waitErr := cmd.Wait()
	out := Outcome{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runCtx.Err() != nil {
		if ctx.Err() != nil {
			r.logger.Debug("process canceled", "cmd", name, "duration", out.Duration)
			return out, ctx.Err()
		}
		r.logger.Warn("process killed after timeout", "cmd", name, "timeout", timeout)
		return out, errors.Wrapf(errors.ErrTimeout, "%s exceeded %s", name, timeout)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return out, errors.Wrapf(waitErr, "wait %s", name)
	}

	r.logger.Debug("process finished", "cmd", name, "exit", out.ExitCode, "duration", out.Duration)
	return out, nil
}

// Lookup resolves an executable name or path, failing with ErrLaunchFailed.
func Lookup(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrLaunchFailed, fmt.Sprintf("%s not found in PATH: %v", name, err))
	}
	return path, nil
}
