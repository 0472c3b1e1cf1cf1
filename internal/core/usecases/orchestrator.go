// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// notificationTimeout límite de cada notificación a un observer.
const notificationTimeout = 5 * time.Second

// Orchestrator ejecuta las herramientas seleccionadas de forma concurrente
// contra un objetivo y agrega sus resultados.
type Orchestrator struct {
	scanners    map[domain.ToolID]ports.Scanner
	buildErrors map[domain.ToolID]error
	logger      logx.Logger
	observers   []ports.Notifier

	// Configuración
	workRoot   string
	runTimeout time.Duration

	// Control de goroutines
	notifyWg sync.WaitGroup
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	// Scanners disponibles por herramienta (típicamente de registry.Build)
	Scanners map[domain.ToolID]ports.Scanner

	// BuildErrors herramientas que no pudieron construirse y su causa
	BuildErrors map[domain.ToolID]error

	Logger    logx.Logger
	Observers []ports.Notifier

	// WorkRoot directorio bajo el que se crea <run-id>/ para los artefactos
	WorkRoot string

	// RunTimeout límite global de la ejecución (0 = sin límite)
	RunTimeout time.Duration
}

// NewOrchestrator crea una nueva instancia del orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Scanners == nil {
		opts.Scanners = make(map[domain.ToolID]ports.Scanner)
	}
	if opts.WorkRoot == "" {
		opts.WorkRoot = filepath.Join(os.TempDir(), "reconforge")
	}

	return &Orchestrator{
		scanners:    opts.Scanners,
		buildErrors: opts.BuildErrors,
		logger:      opts.Logger.With("component", "orchestrator"),
		observers:   opts.Observers,
		workRoot:    opts.WorkRoot,
		runTimeout:  opts.RunTimeout,
	}
}

// RunScans ejecuta las herramientas seleccionadas contra el objetivo.
//
// Solo retorna error si el objetivo es inválido o la selección está vacía.
// Cada herramienta seleccionada obtiene exactamente una entrada en el
// resultado, tanto si termina bien como si falla, agota su plazo o entra en panic.
func (o *Orchestrator) RunScans(ctx context.Context, target domain.Target, selection []domain.ToolID) (*domain.RunResults, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	tools := dedupeTools(selection)
	if len(tools) == 0 {
		return nil, domain.ErrNoToolsSelected
	}

	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	run := domain.NewRunResults(target)
	workDir := filepath.Join(o.workRoot, run.ID)

	o.logger.Info("starting scan",
		"run_id", run.ID,
		"target", target.Value,
		"tools", len(tools),
		"work_dir", workDir,
	)

	o.notify(ctx, ports.NewEvent(ports.EventRunStarted, run.ID, "", ports.RunStartedEvent{
		Target: target,
		Tools:  tools,
	}))

	var workDirErr error
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		workDirErr = errors.Wrapf(errors.ErrLaunchFailed, "creating work directory: %v", err)
		o.logger.Warn("work directory unavailable", "path", workDir, "error", err.Error())
	}

	req := ports.ScanRequest{RunID: run.ID, Target: target, WorkDir: workDir}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, tool := range tools {
		wg.Add(1)
		go func(tool domain.ToolID) {
			defer wg.Done()

			res := o.executeTool(ctx, tool, req, workDirErr)

			mu.Lock()
			run.Results[tool] = res
			mu.Unlock()
		}(tool)
	}
	wg.Wait()

	run.Duration = time.Since(run.StartedAt)

	o.logger.Info("scan completed",
		"run_id", run.ID,
		"target", target.Value,
		"succeeded", len(run.Succeeded()),
		"failed", len(run.Failed()),
		"duration_ms", run.Duration.Milliseconds(),
	)

	o.notify(ctx, ports.NewEvent(ports.EventRunCompleted, run.ID, "", ports.RunCompletedEvent{
		Target:    target,
		Succeeded: len(run.Succeeded()),
		Failed:    len(run.Failed()),
		Duration:  run.Duration,
	}))

	// Esperar a que todas las notificaciones terminen antes de retornar
	o.notifyWg.Wait()

	return run, nil
}

// executeTool ejecuta una herramienta individual; nunca falla.
func (o *Orchestrator) executeTool(ctx context.Context, tool domain.ToolID, req ports.ScanRequest, workDirErr error) domain.ScanResult {
	o.notify(ctx, ports.NewEvent(ports.EventToolStarted, req.RunID, tool, nil))

	var res domain.ScanResult
	scanner, ok := o.scanners[tool]
	switch {
	case !ok:
		cause := o.buildErrors[tool]
		if cause == nil {
			cause = errors.Errorf("no scanner available for %s", tool)
		}
		res = domain.NewFailure(tool, domain.KindLaunchFailed, cause.Error(), time.Now(), 0)
	case workDirErr != nil && usesWorkDir(scanner):
		res = domain.FailureFromError(tool, workDirErr, time.Now(), 0)
	default:
		if workDirErr != nil {
			req.WorkDir = ""
		}
		o.logger.Debug("executing tool", "tool", tool, "timeout", scanner.Timeout().String())
		res = NewScanTask(scanner, req.Target).Run(ctx, req)
	}

	if res.OK() {
		o.logger.Info("tool completed", "tool", tool, "duration_ms", res.Duration.Milliseconds())
		o.notify(ctx, ports.NewEvent(ports.EventToolCompleted, req.RunID, tool, ports.ToolFinishedEvent{Result: res}))
	} else {
		o.logger.Warn("tool failed",
			"tool", tool,
			"kind", res.Failure.Kind,
			"error", res.Failure.Message,
			"duration_ms", res.Duration.Milliseconds(),
		)
		o.notify(ctx, ports.NewEvent(ports.EventToolFailed, req.RunID, tool, ports.ToolFinishedEvent{Result: res}))
	}

	return res
}

func usesWorkDir(s ports.Scanner) bool {
	if u, ok := s.(ports.WorkDirUser); ok {
		return u.UsesWorkDir()
	}
	return true
}

// notify envía una notificación a todos los observers.
// Usa goroutines con WaitGroup y timeout para evitar leaks y bloqueos;
// un fallo de notificación nunca afecta a la ejecución.
func (o *Orchestrator) notify(ctx context.Context, event ports.Event) {
	for _, observer := range o.observers {
		o.notifyWg.Add(1)
		go func(notifier ports.Notifier) {
			defer o.notifyWg.Done()

			// Las notificaciones sobreviven a la cancelación de la ejecución
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- errors.Errorf("notifier panicked: %v", r)
					}
				}()
				done <- notifier.Notify(notifyCtx, event)
			}()

			select {
			case err := <-done:
				if err != nil {
					o.logger.Warn("notification failed", "event_type", event.Type, "error", err.Error())
				}
			case <-notifyCtx.Done():
				o.logger.Warn("notification timeout exceeded",
					"timeout", notificationTimeout,
					"event_type", event.Type,
				)
			}
		}(observer)
	}
}

// dedupeTools elimina duplicados y vacíos manteniendo el orden.
func dedupeTools(selection []domain.ToolID) []domain.ToolID {
	seen := make(map[domain.ToolID]bool, len(selection))
	out := make([]domain.ToolID, 0, len(selection))
	for _, t := range selection {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
