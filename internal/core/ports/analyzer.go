// internal/core/ports/analyzer.go
package ports

import (
	"context"

	"reconforge/internal/core/domain"
)

// Analyzer genera un análisis en lenguaje natural de los hallazgos de una herramienta.
type Analyzer interface {
	// Analyze recibe el nombre de la herramienta (o "overall") y su payload
	Analyze(ctx context.Context, tool string, payload any) (string, error)
}

// ReportWriter materializa una ejecución y sus análisis en un artefacto.
type ReportWriter interface {
	// Name retorna el nombre del formato (pdf, json, table)
	Name() string

	// Write genera el reporte y retorna su ruta (vacía para salidas a terminal)
	Write(run *domain.RunResults, analyses domain.Analyses) (string, error)
}
