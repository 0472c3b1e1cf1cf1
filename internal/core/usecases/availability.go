// internal/core/usecases/availability.go
package usecases

import (
	"context"
	"sync"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
)

// availabilityTimeout límite de cada comprobación individual.
const availabilityTimeout = 10 * time.Second

// ToolAvailability indica si una herramienta puede ejecutarse en este host.
type ToolAvailability struct {
	Tool      domain.ToolID `json:"id"`
	Name      string        `json:"name"`
	Available bool          `json:"available"`
	Detail    string        `json:"detail,omitempty"`
}

// CheckTools comprueba la disponibilidad de cada herramienta en paralelo.
// Las herramientas que no se pudieron construir se marcan como no disponibles
// con la causa; los scanners sin Checker se consideran disponibles.
func CheckTools(ctx context.Context, tools []domain.ToolID, scanners map[domain.ToolID]ports.Scanner, buildErrors map[domain.ToolID]error) []ToolAvailability {
	out := make([]ToolAvailability, len(tools))

	var wg sync.WaitGroup
	for i, tool := range tools {
		out[i] = ToolAvailability{Tool: tool, Name: tool.DisplayName()}

		if err, failed := buildErrors[tool]; failed && err != nil {
			out[i].Detail = err.Error()
			continue
		}
		sc, ok := scanners[tool]
		if !ok {
			out[i].Detail = "not configured"
			continue
		}
		checker, ok := sc.(ports.Checker)
		if !ok {
			out[i].Available = true
			continue
		}

		wg.Add(1)
		go func(i int, checker ports.Checker) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
			defer cancel()
			if err := checker.Check(cctx); err != nil {
				out[i].Detail = err.Error()
				return
			}
			out[i].Available = true
		}(i, checker)
	}
	wg.Wait()

	return out
}
