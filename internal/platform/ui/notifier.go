// internal/platform/ui/notifier.go
package ui

import (
	"context"
	"fmt"

	"reconforge/internal/core/ports"
)

// Notifier adapta los eventos del orchestrator a un Presenter.
type Notifier struct {
	presenter Presenter
}

// NewNotifier crea el adaptador (nil = NoopPresenter).
func NewNotifier(p Presenter) *Notifier {
	if p == nil {
		p = NewNoopPresenter()
	}
	return &Notifier{presenter: p}
}

// Notify implementa ports.Notifier.
func (n *Notifier) Notify(ctx context.Context, event ports.Event) error {
	switch event.Type {
	case ports.EventRunStarted:
		// El comando llama a Start con la información completa
		return nil
	case ports.EventToolStarted:
		n.presenter.StartTool(event.Tool)
	case ports.EventToolCompleted, ports.EventToolFailed:
		data, ok := event.Data.(ports.ToolFinishedEvent)
		if !ok {
			return fmt.Errorf("unexpected %s data %T", event.Type, event.Data)
		}
		n.presenter.FinishTool(SummaryFromResult(data.Result))
	case ports.EventRunCompleted:
		if data, ok := event.Data.(ports.RunCompletedEvent); ok {
			n.presenter.Info(fmt.Sprintf("Tools finished in %s (%d succeeded, %d failed)",
				formatDuration(data.Duration), data.Succeeded, data.Failed))
		}
	}
	return nil
}

// Close no cierra el presenter; su ciclo de vida es del comando.
func (n *Notifier) Close() error { return nil }
