// internal/core/usecases/scan_task.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
)

// ScanTask es la unidad de trabajo de una herramienta dentro de una ejecución.
// Se crea por herramienta seleccionada y se ejecuta una sola vez.
type ScanTask struct {
	Tool    domain.ToolID
	Target  domain.Target
	Timeout time.Duration // 0 = solo el contexto de la ejecución
	Scanner ports.Scanner
}

// NewScanTask crea una ScanTask tomando el timeout del scanner.
func NewScanTask(scanner ports.Scanner, target domain.Target) ScanTask {
	return ScanTask{
		Tool:    scanner.Tool(),
		Target:  target,
		Timeout: scanner.Timeout(),
		Scanner: scanner,
	}
}

// Run ejecuta el scanner y convierte cualquier resultado (payload, error o
// panic) en un ScanResult. Nunca retorna error: los fallos son datos.
func (t ScanTask) Run(ctx context.Context, req ports.ScanRequest) (res domain.ScanResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res = domain.NewFailure(t.Tool, domain.KindInternal,
				fmt.Sprintf("panic in %s scanner: %v", t.Tool, r), start, time.Since(start))
		}
	}()

	taskCtx := ctx
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	payload, err := t.Scanner.Scan(taskCtx, req)
	elapsed := time.Since(start)

	if err != nil {
		// el plazo propio venció antes que el de la ejecución
		if ctx.Err() == nil && taskCtx.Err() == context.DeadlineExceeded && !errors.IsTimeout(err) {
			err = errors.Wrapf(errors.ErrTimeout, "%s exceeded %s: %v", t.Tool, t.Timeout, err)
		}
		return domain.FailureFromError(t.Tool, err, start, elapsed)
	}

	return domain.NewSuccess(t.Tool, payload, start, elapsed)
}
