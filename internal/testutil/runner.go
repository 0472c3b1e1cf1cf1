// internal/testutil/runner.go
package testutil

import (
	"context"
	"sync"
	"time"

	"reconforge/internal/platform/procexec"
)

// FixtureTarget es el dominio usado por los tests de las herramientas.
const FixtureTarget = "example.com"

// RunCall registra una invocación de FakeRunner.
type RunCall struct {
	Command []string
	Timeout time.Duration
}

// FakeRunner implementa ports.ProcessRunner sin lanzar procesos.
// Es seguro para uso concurrente.
type FakeRunner struct {
	// Outcome y Err se retornan en cada llamada salvo que OnRun esté definido
	Outcome procexec.Outcome
	Err     error

	// OnRun permite simular efectos (p.ej. escribir el fichero de salida)
	OnRun func(ctx context.Context, command []string) (procexec.Outcome, error)

	mu    sync.Mutex
	calls []RunCall
}

// NewFakeRunner crea un FakeRunner que retorna stdout con código 0.
func NewFakeRunner(stdout string) *FakeRunner {
	return &FakeRunner{Outcome: procexec.Outcome{Stdout: stdout}}
}

// Run implementa ports.ProcessRunner.
func (f *FakeRunner) Run(ctx context.Context, command []string, timeout time.Duration) (procexec.Outcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, RunCall{Command: append([]string(nil), command...), Timeout: timeout})
	onRun := f.OnRun
	f.mu.Unlock()

	if onRun != nil {
		return onRun(ctx, command)
	}
	return f.Outcome, f.Err
}

// Calls retorna una copia de las invocaciones recibidas.
func (f *FakeRunner) Calls() []RunCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RunCall(nil), f.calls...)
}

// LastCall retorna la última invocación (vacía si no hubo ninguna).
func (f *FakeRunner) LastCall() RunCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return RunCall{}
	}
	return f.calls[len(f.calls)-1]
}
