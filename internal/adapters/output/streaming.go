// internal/adapters/output/streaming.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
)

// StreamingWriter escribe el resultado de cada herramienta en cuanto termina.
// Implementa ports.Notifier: si la ejecución se interrumpe, los resultados
// parciales ya están en disco.
type StreamingWriter struct {
	baseDir string
	logger  logx.Logger

	mu        sync.Mutex
	target    string
	timestamp string
	written   []string
}

// NewStreamingWriter crea un nuevo writer de streaming.
func NewStreamingWriter(baseDir string, logger logx.Logger) *StreamingWriter {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &StreamingWriter{
		baseDir:   baseDir,
		timestamp: time.Now().Format("20060102_150405"),
		logger:    logger.With("component", "streaming-writer"),
	}
}

// Notify escribe un parcial por cada tool.completed / tool.failed.
func (w *StreamingWriter) Notify(ctx context.Context, event ports.Event) error {
	switch event.Type {
	case ports.EventRunStarted:
		if data, ok := event.Data.(ports.RunStartedEvent); ok {
			w.mu.Lock()
			w.target = data.Target.Value
			w.mu.Unlock()
		}
		return nil
	case ports.EventToolCompleted, ports.EventToolFailed:
		data, ok := event.Data.(ports.ToolFinishedEvent)
		if !ok {
			return fmt.Errorf("unexpected event data %T", event.Data)
		}
		_, err := w.WritePartial(event.RunID, data.Result)
		return err
	default:
		return nil
	}
}

// Close no libera nada; los parciales se eliminan con Cleanup.
func (w *StreamingWriter) Close() error { return nil }

// WritePartial escribe un resultado parcial de una herramienta a disco.
// Formato: reconforge_{target}_{timestamp}_partial_{tool}.json
func (w *StreamingWriter) WritePartial(runID string, result domain.ScanResult) (string, error) {
	w.mu.Lock()
	target := w.target
	w.mu.Unlock()

	dir := filepath.Join(w.baseDir, sanitizeDomainName(target))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, w.PartialFilename(result.Tool))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create partial file: %w", err)
	}
	defer f.Close()

	partial := PartialResult{
		RunID:     runID,
		Target:    target,
		Result:    result,
		WrittenAt: time.Now().UTC(),
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(partial); err != nil {
		return "", fmt.Errorf("failed to encode partial JSON: %w", err)
	}

	w.mu.Lock()
	w.written = append(w.written, path)
	w.mu.Unlock()

	w.logger.Debug("partial result written", "tool", result.Tool, "status", result.Status, "file", path)
	return path, nil
}

// PartialFilename genera el nombre de archivo para un resultado parcial.
func (w *StreamingWriter) PartialFilename(tool domain.ToolID) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fmt.Sprintf("reconforge_%s_%s_partial_%s.json", w.target, w.timestamp, tool)
}

// Written retorna las rutas escritas hasta ahora.
func (w *StreamingWriter) Written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.written...)
}

// Cleanup elimina los parciales una vez escrito el reporte consolidado.
func (w *StreamingWriter) Cleanup() error {
	w.mu.Lock()
	paths := w.written
	w.written = nil
	w.mu.Unlock()

	var firstErr error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PartialResult contenido de un fichero parcial.
type PartialResult struct {
	RunID     string            `json:"run_id"`
	Target    string            `json:"target"`
	Result    domain.ScanResult `json:"result"`
	WrittenAt time.Time         `json:"written_at"`
}
