// internal/adapters/ai/severity.go
package ai

import "strings"

// Severity nivel de riesgo deducido de un análisis.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// InferSeverity busca la primera palabra clave por orden de gravedad.
// Sin coincidencias (o texto vacío) retorna Medium.
func InferSeverity(text string) Severity {
	lower := strings.ToLower(text)
	switch {
	case strings.TrimSpace(lower) == "":
		return SeverityMedium
	case strings.Contains(lower, "critical"):
		return SeverityCritical
	case strings.Contains(lower, "high"):
		return SeverityHigh
	case strings.Contains(lower, "medium"):
		return SeverityMedium
	case strings.Contains(lower, "low"):
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// RGB color asociado al nivel para los reportes.
func (s Severity) RGB() (r, g, b int) {
	switch s {
	case SeverityCritical:
		return 191, 0, 0
	case SeverityHigh:
		return 255, 0, 0
	case SeverityMedium:
		return 255, 165, 0
	case SeverityLow:
		return 0, 128, 0
	default:
		return 128, 128, 128
	}
}
