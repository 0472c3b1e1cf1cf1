// internal/core/domain/run_results.go
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OverallKey clave del análisis global dentro de Analyses.
const OverallKey = "overall"

// Analyses textos de análisis de IA por herramienta más "overall".
type Analyses map[string]string

// RunResults agrega los resultados de todas las herramientas de una ejecución.
// Contiene exactamente una entrada por herramienta seleccionada.
type RunResults struct {
	ID        string                `json:"id"`
	Target    Target                `json:"target"`
	StartedAt time.Time             `json:"started_at"`
	Duration  time.Duration         `json:"-"`
	Results   map[ToolID]ScanResult `json:"results"`
}

// NewRunResults crea una ejecución vacía con un ID único.
func NewRunResults(target Target) *RunResults {
	return &RunResults{
		ID:        uuid.New().String(),
		Target:    target,
		StartedAt: time.Now(),
		Results:   make(map[ToolID]ScanResult),
	}
}

// Get retorna el resultado de una herramienta.
func (r *RunResults) Get(tool ToolID) (ScanResult, bool) {
	res, ok := r.Results[tool]
	return res, ok
}

// Has indica si la herramienta tiene entrada.
func (r *RunResults) Has(tool ToolID) bool {
	_, ok := r.Results[tool]
	return ok
}

// Tools retorna las herramientas presentes en orden canónico.
func (r *RunResults) Tools() []ToolID {
	out := make([]ToolID, 0, len(r.Results))
	for id := range r.Results {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].order() != out[j].order() {
			return out[i].order() < out[j].order()
		}
		return out[i] < out[j]
	})
	return out
}

// Succeeded retorna las herramientas que terminaron con éxito.
func (r *RunResults) Succeeded() []ToolID {
	return r.filter(true)
}

// Failed retorna las herramientas que fallaron.
func (r *RunResults) Failed() []ToolID {
	return r.filter(false)
}

func (r *RunResults) filter(ok bool) []ToolID {
	var out []ToolID
	for _, id := range r.Tools() {
		if r.Results[id].OK() == ok {
			out = append(out, id)
		}
	}
	return out
}
