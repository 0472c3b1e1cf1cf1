// internal/platform/ui/presenter.go
package ui

import (
	"time"

	"reconforge/internal/core/domain"
)

// Presenter define la interfaz para presentar el progreso de una ejecución
// de herramientas de manera visual e interactiva.
type Presenter interface {
	// Start inicia la presentación con información de la ejecución
	Start(info RunInfo)

	// StartTool notifica el inicio de una herramienta
	StartTool(tool domain.ToolID)

	// FinishTool notifica la finalización de una herramienta
	FinishTool(summary ToolSummary)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación con estadísticas finales
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución
type RunInfo struct {
	RunID          string
	Target         string
	Tools          []domain.ToolID
	TimeoutSeconds int
	AIEnabled      bool
	PDFEnabled     bool
}

// ToolSummary resultado de una herramienta listo para mostrar
type ToolSummary struct {
	Tool     domain.ToolID
	Status   Status
	Duration time.Duration
	Detail   string
	Kind     string
}

// SummaryFromResult construye el resumen de un ScanResult.
func SummaryFromResult(res domain.ScanResult) ToolSummary {
	s := ToolSummary{
		Tool:     res.Tool,
		Status:   StatusSuccess,
		Duration: res.Duration,
		Detail:   res.Summary(),
	}
	if !res.OK() {
		s.Status = StatusFailed
		if res.Failure != nil {
			s.Status = StatusForKind(res.Failure.Kind)
			s.Kind = string(res.Failure.Kind)
		}
	}
	return s
}

// RunStats contiene estadísticas finales de la ejecución
type RunStats struct {
	Duration        time.Duration
	Succeeded       int
	Failed          int
	OverallSeverity string
	Reports         []string
}
