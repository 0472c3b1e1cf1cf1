// cmd/reconforge/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"reconforge/internal/platform/errors"

	// Import tools for auto-registration via init()
	_ "reconforge/internal/sources/harvester"
	_ "reconforge/internal/sources/nmap"
	_ "reconforge/internal/sources/sqlinjection"
	_ "reconforge/internal/sources/subenum"
	_ "reconforge/internal/sources/sublist3r"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the root command and maps its error to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitFailed
	}
	return exitOK
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// usageError marks configuration and input errors (exit code 2).
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUsage, err: err}
}

// rootContextWithSignals creates a root context canceled on SIGINT/SIGTERM.
// The returned cancel function also releases the signal handler.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
