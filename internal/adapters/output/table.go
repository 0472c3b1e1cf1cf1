// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"reconforge/internal/adapters/ai"
	"reconforge/internal/core/domain"
)

// TableWriter imprime el resumen de la ejecución en terminal.
type TableWriter struct {
	w io.Writer
}

// NewTableWriter crea el writer (nil = stdout).
func NewTableWriter(w io.Writer) *TableWriter {
	if w == nil {
		w = os.Stdout
	}
	return &TableWriter{w: w}
}

// Name retorna el formato.
func (t *TableWriter) Name() string { return "table" }

// Write implementa ports.ReportWriter; no genera fichero.
func (t *TableWriter) Write(run *domain.RunResults, analyses domain.Analyses) (string, error) {
	return "", OutputTable(t.w, run, analyses)
}

// OutputTable imprime una tabla legible en terminal.
func OutputTable(out io.Writer, run *domain.RunResults, analyses domain.Analyses) error {
	if run == nil {
		return fmt.Errorf("no run results to print")
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	// Header con información de la ejecución
	fmt.Fprintf(w, "\n=== Reconforge Scan Results ===\n")
	fmt.Fprintf(w, "Target:\t%s (%s)\n", run.Target.Value, run.Target.Kind)
	fmt.Fprintf(w, "Run:\t%s\n", run.ID)
	fmt.Fprintf(w, "Duration:\t%s\n", run.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Tools:\t%d succeeded, %d failed\n\n", len(run.Succeeded()), len(run.Failed()))

	fmt.Fprintln(w, "TOOL\tSTATUS\tKIND\tDURATION\tRESULT\tSEVERITY")
	fmt.Fprintln(w, "----\t------\t----\t--------\t------\t--------")

	for _, tool := range run.Tools() {
		res := run.Results[tool]
		kind := "-"
		if res.Failure != nil {
			kind = string(res.Failure.Kind)
		}
		severity := "-"
		if text, ok := analyses[string(tool)]; ok {
			severity = string(ai.InferSeverity(text))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tool.DisplayName(),
			res.Status,
			kind,
			res.Duration.Round(time.Millisecond),
			res.Summary(),
			severity,
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	// Errors
	if failed := run.Failed(); len(failed) > 0 {
		fmt.Fprintf(out, "\nErrors (%d):\n", len(failed))
		for i, tool := range failed {
			f := run.Results[tool].Failure
			if f == nil {
				continue
			}
			fmt.Fprintf(out, "  %d. [%s] %s\n", i+1, tool, firstLine(f.Message))
		}
	}

	if text, ok := analyses[domain.OverallKey]; ok {
		fmt.Fprintf(out, "\nOverall severity: %s\n", ai.InferSeverity(text))
	}

	fmt.Fprintln(out)
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
