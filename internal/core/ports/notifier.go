// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"reconforge/internal/core/domain"
)

// Notifier es el port para notificaciones de eventos del sistema.
// Implementa el patrón Observer para desacoplar la orquestación
// de la presentación (terminal, métricas, logs).
type Notifier interface {
	// Notify envía una notificación para un evento
	Notify(ctx context.Context, event Event) error

	// Close cierra el notifier y libera recursos
	Close() error
}

// Event representa un evento del sistema.
type Event struct {
	// Type tipo de evento
	Type EventType

	// Timestamp momento del evento
	Timestamp time.Time

	// RunID ejecución a la que pertenece
	RunID string

	// Tool herramienta relacionada (vacío en eventos de ejecución)
	Tool domain.ToolID

	// Data datos específicos del evento
	Data any
}

// EventType define los tipos de eventos del sistema.
type EventType string

const (
	// Run events
	EventRunStarted   EventType = "run.started"
	EventRunCompleted EventType = "run.completed"

	// Tool events
	EventToolStarted   EventType = "tool.started"
	EventToolCompleted EventType = "tool.completed"
	EventToolFailed    EventType = "tool.failed"
)

// NewEvent crea un nuevo evento.
func NewEvent(eventType EventType, runID string, tool domain.ToolID, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		RunID:     runID,
		Tool:      tool,
		Data:      data,
	}
}

// RunStartedEvent datos para evento de inicio de ejecución.
type RunStartedEvent struct {
	Target domain.Target
	Tools  []domain.ToolID
}

// RunCompletedEvent datos para evento de finalización de ejecución.
type RunCompletedEvent struct {
	Target    domain.Target
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// ToolFinishedEvent datos para eventos tool.completed y tool.failed.
type ToolFinishedEvent struct {
	Result domain.ScanResult
}
