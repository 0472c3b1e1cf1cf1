// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"reconforge/internal/core/domain"
)

// Status es el desenlace de una herramienta tal como se muestra en pantalla.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusTimedOut
	StatusCanceled
)

// StatusForKind traduce la clase de fallo al estado visible.
func StatusForKind(kind domain.ErrorKind) Status {
	switch kind {
	case domain.KindTimeoutExceeded:
		return StatusTimedOut
	case domain.KindCanceled:
		return StatusCanceled
	default:
		return StatusFailed
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timeout"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo de la línea de progreso.
func (s Status) Symbol() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusFailed:
		return "✗"
	case StatusTimedOut:
		return "⏱"
	case StatusCanceled:
		return "⊘"
	default:
		return "?"
	}
}

func (s Status) Color() pterm.Color {
	switch s {
	case StatusSuccess:
		return pterm.FgGreen
	case StatusFailed:
		return pterm.FgRed
	case StatusTimedOut:
		return pterm.FgYellow
	default:
		return pterm.FgGray
	}
}

func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

var (
	IconTarget  = "🎯"
	IconTools   = "🔌"
	IconTime    = "⏱"
	IconAI      = "🤖"
	IconReport  = "📄"
	IconSuccess = "✓"
	IconError   = "✗"
)

var SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
