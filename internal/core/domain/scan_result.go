// internal/core/domain/scan_result.go
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"reconforge/internal/platform/errors"
)

// Failure describe por qué una herramienta no produjo resultados.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implementa la interfaz error para poder propagarlo si hace falta.
func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return string(f.Kind) + ": " + f.Message
}

// ScanResult es la unión discriminada success/failure de una herramienta.
// Payload solo se rellena en success, Failure solo en failure.
type ScanResult struct {
	Tool      ToolID
	Status    Status
	Payload   any
	Failure   *Failure
	StartedAt time.Time
	Duration  time.Duration
}

// NewSuccess construye un resultado exitoso.
func NewSuccess(tool ToolID, payload any, startedAt time.Time, d time.Duration) ScanResult {
	return ScanResult{
		Tool:      tool,
		Status:    StatusSuccess,
		Payload:   payload,
		StartedAt: startedAt,
		Duration:  d,
	}
}

// NewFailure construye un resultado fallido con un tipo explícito.
func NewFailure(tool ToolID, kind ErrorKind, message string, startedAt time.Time, d time.Duration) ScanResult {
	return ScanResult{
		Tool:      tool,
		Status:    StatusFailure,
		Failure:   &Failure{Kind: kind, Message: strings.TrimSpace(message)},
		StartedAt: startedAt,
		Duration:  d,
	}
}

// FailureFromError clasifica err y construye el resultado fallido.
func FailureFromError(tool ToolID, err error, startedAt time.Time, d time.Duration) ScanResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return NewFailure(tool, KindOf(err), msg, startedAt, d)
}

// OK indica si la herramienta terminó con éxito.
func (r ScanResult) OK() bool {
	return r.Status == StatusSuccess
}

// Summary resume el resultado en una línea (contadores del payload o el error).
func (r ScanResult) Summary() string {
	if !r.OK() {
		if r.Failure == nil {
			return "failed"
		}
		return firstLine(r.Failure.Message)
	}

	switch p := r.Payload.(type) {
	case NetworkScanPayload:
		return fmt.Sprintf("%d hosts, %d open ports", len(p), p.OpenPorts())
	case HarvestPayload:
		return fmt.Sprintf("%d emails, %d hosts, %d domains", len(p.Emails), len(p.Hosts), len(p.Domains))
	case SubdomainListPayload:
		return fmt.Sprintf("%d subdomains", len(p.Subdomains))
	case SQLInjectionPayload:
		return fmt.Sprintf("%d findings", len(p.Findings))
	case EnumerationPayload:
		return fmt.Sprintf("%d candidates, %d resolved, %d reachable",
			p.Summary.Total, p.Summary.DNSResolved, p.Summary.HTTPReachable)
	default:
		return "ok"
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

// KindOf mapea un error (posiblemente envuelto) a su ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return KindTimeoutExceeded
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.IsLaunchFailed(err):
		return KindLaunchFailed
	case errors.IsParse(err):
		return KindParseError
	case errors.IsConnectionFailed(err):
		return KindNetworkUnreachable
	case errors.IsDependencyUnavailable(err):
		return KindDependencyUnavailable
	case errors.IsToolFailed(err):
		return KindToolFailed
	default:
		return KindInternal
	}
}

type scanResultJSON struct {
	Tool       ToolID   `json:"tool"`
	Status     Status   `json:"status"`
	Payload    any      `json:"payload,omitempty"`
	Error      *Failure `json:"error,omitempty"`
	StartedAt  string   `json:"started_at,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// MarshalJSON emite {"tool","status","payload"|"error","duration_ms"}.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	out := scanResultJSON{
		Tool:       r.Tool,
		Status:     r.Status,
		DurationMS: r.Duration.Milliseconds(),
	}
	if !r.StartedAt.IsZero() {
		out.StartedAt = r.StartedAt.UTC().Format(time.RFC3339)
	}
	if r.OK() {
		out.Payload = r.Payload
	} else {
		out.Error = r.Failure
	}
	return json.Marshal(out)
}
