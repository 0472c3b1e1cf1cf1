// Package common provides shared helpers for scanners that wrap external CLI tools.
package common

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/procexec"
)

// maxLineSize is the largest single output line ReadLines accepts.
const maxLineSize = 10 * 1024 * 1024

// CLIConfig holds the configuration shared by all CLI-backed scanners.
type CLIConfig struct {
	Name     string        // tool name used in logs and error messages
	ExecPath string        // binary on PATH, absolute path, or a .py script
	Python   string        // interpreter for .py scripts
	Timeout  time.Duration // hard deadline handed to the runner
}

// CLITool builds and executes the fixed command line of one external tool.
// Process lifecycle (deadline, group kill, output capture) is delegated to a
// ports.ProcessRunner.
type CLITool struct {
	name     string
	execPath string
	python   string
	timeout  time.Duration
	runner   ports.ProcessRunner
	logger   logx.Logger
}

// NewCLITool creates a CLITool. A nil runner defaults to procexec.
func NewCLITool(cfg CLIConfig, runner ports.ProcessRunner, logger logx.Logger) *CLITool {
	if logger == nil {
		logger = logx.NewNop()
	}
	if runner == nil {
		runner = procexec.New(logger)
	}
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &CLITool{
		name:     cfg.Name,
		execPath: strings.TrimSpace(cfg.ExecPath),
		python:   cfg.Python,
		timeout:  cfg.Timeout,
		runner:   runner,
		logger:   logger,
	}
}

// IsScript reports whether the exec path is a Python script.
func (c *CLITool) IsScript() bool {
	return strings.HasSuffix(strings.ToLower(c.execPath), ".py")
}

// Command returns the full argv for the given tool arguments.
func (c *CLITool) Command(args ...string) []string {
	cmd := make([]string, 0, len(args)+2)
	if c.IsScript() {
		cmd = append(cmd, c.python)
	}
	cmd = append(cmd, c.execPath)
	return append(cmd, args...)
}

// Execute runs the tool and returns its outcome.
//
// A non-zero exit becomes an error wrapping ErrToolFailed whose message is the
// trimmed stderr, or stdout when stderr is empty. Runner errors (launch,
// timeout, cancellation) are returned untouched.
func (c *CLITool) Execute(ctx context.Context, args ...string) (procexec.Outcome, error) {
	argv := c.Command(args...)
	c.logger.Debug("executing CLI command", "argv", strings.Join(argv, " "), "timeout", c.timeout.String())

	out, err := c.runner.Run(ctx, argv, c.timeout)
	if err != nil {
		return out, err
	}

	if out.ExitCode != 0 {
		msg := strings.TrimSpace(out.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(out.Stdout)
		}
		if msg == "" {
			msg = "no output"
		}
		c.logger.Warn("tool exited with error", "exit_code", out.ExitCode, "duration", out.Duration.String())
		return out, errors.Wrapf(errors.ErrToolFailed, "%s exited with code %d: %s", c.name, out.ExitCode, msg)
	}

	c.logger.Debug("CLI command completed", "duration", out.Duration.String())
	return out, nil
}

// Check verifies that the tool can be launched: the binary resolves on PATH,
// or the configured script file exists.
func (c *CLITool) Check(_ context.Context) error {
	if c.execPath == "" {
		return errors.Wrapf(errors.ErrLaunchFailed, "%s: exec path is empty", c.name)
	}

	if c.IsScript() {
		if _, err := procexec.Lookup(c.python); err != nil {
			return err
		}
		if _, err := os.Stat(c.execPath); err != nil {
			return errors.Wrapf(errors.ErrLaunchFailed, "%s script not found: %v", c.name, err)
		}
		return nil
	}

	_, err := procexec.Lookup(c.execPath)
	return err
}

// Name returns the tool name.
func (c *CLITool) Name() string {
	return c.name
}

// ExecPath returns the configured executable or script.
func (c *CLITool) ExecPath() string {
	return c.execPath
}

// Timeout returns the configured deadline.
func (c *CLITool) Timeout() time.Duration {
	return c.timeout
}

// ReadLines calls fn for every trimmed, non-blank line of r.
func ReadLines(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
