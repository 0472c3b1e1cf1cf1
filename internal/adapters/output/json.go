// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"reconforge/internal/adapters/ai"
	"reconforge/internal/core/domain"
)

// sanitizeDomainName convierte un nombre de dominio en un nombre de carpeta válido.
// Ejemplo: "example.com" -> "example_com"
func sanitizeDomainName(domain string) string {
	// Reemplazar puntos por guiones bajos
	sanitized := strings.ReplaceAll(domain, ".", "_")
	// Remover cualquier otro carácter que no sea alfanumérico, guión bajo o guión
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
	if sanitized == "" {
		return "unknown"
	}
	return sanitized
}

// Report documento exportado: resultados de la ejecución más los análisis.
type Report struct {
	Run         *domain.RunResults `json:"run"`
	DurationMS  int64              `json:"duration_ms"`
	Analyses    domain.Analyses    `json:"analyses,omitempty"`
	Severity    map[string]string  `json:"severity,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// NewReport construye el documento exportable.
func NewReport(run *domain.RunResults, analyses domain.Analyses) Report {
	r := Report{
		Run:         run,
		Analyses:    analyses,
		GeneratedAt: time.Now().UTC(),
	}
	if run != nil {
		r.DurationMS = run.Duration.Milliseconds()
	}
	if len(analyses) > 0 {
		r.Severity = severities(analyses)
	}
	return r
}

// JSONWriter escribe el reporte JSON en <dir>/<target>/.
type JSONWriter struct {
	dir string
}

// NewJSONWriter crea el writer.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{dir: dir}
}

// Name retorna el formato.
func (w *JSONWriter) Name() string { return "json" }

// Write implementa ports.ReportWriter.
func (w *JSONWriter) Write(run *domain.RunResults, analyses domain.Analyses) (string, error) {
	return OutputJSON(w.dir, run, analyses)
}

// OutputJSON exporta el resultado en formato JSON y retorna la ruta del fichero.
func OutputJSON(dir string, run *domain.RunResults, analyses domain.Analyses) (string, error) {
	if run == nil {
		return "", fmt.Errorf("no run results to export")
	}
	if dir == "" {
		dir = "."
	}

	// Crear subdirectorio específico para el objetivo
	fullDir := filepath.Join(dir, sanitizeDomainName(run.Target.Value))
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generar nombre de archivo con timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("reconforge_%s_%s.json", run.Target.Value, timestamp)
	path := filepath.Join(fullDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := encodeJSON(f, NewReport(run, analyses), true); err != nil {
		return "", err
	}
	return path, nil
}

// OutputJSONStdout exporta el resultado a w (normalmente stdout).
func OutputJSONStdout(w io.Writer, run *domain.RunResults, analyses domain.Analyses, pretty bool) error {
	if w == nil {
		w = os.Stdout
	}
	return encodeJSON(w, NewReport(run, analyses), pretty)
}

func encodeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// severities deduce el nivel de riesgo de cada análisis.
func severities(analyses domain.Analyses) map[string]string {
	out := make(map[string]string, len(analyses))
	for key, text := range analyses {
		out[key] = string(ai.InferSeverity(text))
	}
	return out
}
