// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"reconforge/internal/core/domain"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para salidas sin terminal (CI, pipes):
// una línea por evento, sin colores ni spinners.
type RawPresenter struct {
	format LogFormat
	out    io.Writer
	now    func() time.Time
	mu     sync.Mutex
}

// NewRawPresenter crea un nuevo RawPresenter (out nil = stdout)
func NewRawPresenter(format LogFormat, out io.Writer) *RawPresenter {
	if out == nil {
		out = os.Stdout
	}
	return &RawPresenter{
		format: format,
		out:    out,
		now:    time.Now,
	}
}

// log escribe un log en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]any) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]any) {
	entry := map[string]any{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}
	if len(fields) > 0 {
		entry["data"] = fields
	}

	data, _ := json.Marshal(entry)
	fmt.Fprintln(r.out, string(data))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " =\"") || val == "" {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start inicia la presentación
func (r *RawPresenter) Start(info RunInfo) {
	tools := make([]string, 0, len(info.Tools))
	for _, t := range info.Tools {
		tools = append(tools, string(t))
	}
	r.log("INFO", "run_started", map[string]any{
		"run_id":  info.RunID,
		"target":  info.Target,
		"tools":   strings.Join(tools, ","),
		"timeout": fmt.Sprintf("%ds", info.TimeoutSeconds),
		"ai":      info.AIEnabled,
		"pdf":     info.PDFEnabled,
	})
}

// StartTool notifica el inicio de una herramienta
func (r *RawPresenter) StartTool(tool domain.ToolID) {
	r.log("INFO", "tool_started", map[string]any{"tool": string(tool)})
}

// FinishTool notifica la finalización de una herramienta
func (r *RawPresenter) FinishTool(summary ToolSummary) {
	level := "INFO"
	fields := map[string]any{
		"tool":     string(summary.Tool),
		"status":   summary.Status.String(),
		"duration": summary.Duration,
		"result":   summary.Detail,
	}
	if summary.Kind != "" {
		level = "WARN"
		fields["kind"] = summary.Kind
	}
	r.log(level, "tool_finished", fields)
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish finaliza la presentación con estadísticas finales
func (r *RawPresenter) Finish(stats RunStats) {
	fields := map[string]any{
		"duration":  stats.Duration,
		"succeeded": stats.Succeeded,
		"failed":    stats.Failed,
	}
	if stats.OverallSeverity != "" {
		fields["severity"] = stats.OverallSeverity
	}
	if len(stats.Reports) > 0 {
		fields["reports"] = strings.Join(stats.Reports, ",")
	}
	r.log("INFO", "run_completed", fields)
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
