// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reconforge/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea; debe respetar la cancelación de ctx
	Execute(ctx context.Context) error

	// Name retorna el nombre de la tarea
	Name() string
}

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task     Task
	Error    error
	Duration time.Duration
}

// Config configura el worker pool.
type Config struct {
	Workers int
	Logger  logx.Logger
}

// Pool ejecuta lotes de tareas con concurrencia acotada, despachándolas en
// el orden de envío.
// Cada llamada a Run arranca y detiene sus propios workers, por lo que un
// Pool puede reutilizarse y usarse desde varias goroutines.
type Pool struct {
	workers int
	logger  logx.Logger
}

// New crea un nuevo worker pool.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.NewNop()
	}

	return &Pool{
		workers: cfg.Workers,
		logger:  cfg.Logger.With("component", "worker-pool"),
	}
}

// Workers retorna el número máximo de tareas simultáneas.
func (p *Pool) Workers() int {
	return p.workers
}

// Run ejecuta todas las tareas y retorna exactamente un TaskResult por tarea.
// Ninguna tarea se descarta: si ctx se cancela, las tareas pendientes se
// ejecutan igualmente con el ctx cancelado y deben terminar rápido.
func (p *Pool) Run(ctx context.Context, tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return []TaskResult{}
	}

	workers := min(p.workers, len(tasks))

	p.logger.Debug("running tasks",
		"total", len(tasks),
		"workers", workers,
	)

	queue := make(chan Task)
	results := make(chan TaskResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for task := range queue {
				results <- p.execute(ctx, id, task)
			}
		}(i)
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()
	close(results)

	out := make([]TaskResult, 0, len(tasks))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// execute ejecuta una tarea individual convirtiendo panics en errores.
func (p *Pool) execute(ctx context.Context, workerID int, task Task) (res TaskResult) {
	start := time.Now()
	res.Task = task

	defer func() {
		if r := recover(); r != nil {
			res.Error = fmt.Errorf("task %s panicked: %v", task.Name(), r)
		}
		res.Duration = time.Since(start)

		p.logger.Debug("task completed",
			"worker_id", workerID,
			"task", task.Name(),
			"duration_ms", res.Duration.Milliseconds(),
			"error", res.Error != nil,
		)
	}()

	res.Error = task.Execute(ctx)
	return res
}

// TaskFunc adapta una función a Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Execute(ctx context.Context) error { return t.Fn(ctx) }
func (t TaskFunc) Name() string                      { return t.TaskName }
