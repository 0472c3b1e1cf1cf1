// internal/core/ports/scanner.go
package ports

import (
	"context"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/procexec"
)

// Scanner es el port primario para cada herramienta de reconocimiento.
// Cualquier herramienta (CLI externa o builtin) debe implementar esta interfaz.
type Scanner interface {
	// Tool retorna el identificador de la herramienta
	Tool() domain.ToolID

	// Timeout retorna el límite de ejecución (0 = solo el contexto de la ejecución)
	Timeout() time.Duration

	// Scan ejecuta la herramienta y retorna su payload normalizado
	Scan(ctx context.Context, req ScanRequest) (any, error)
}

// Checker es implementado por scanners que pueden verificar su disponibilidad
// (binario en PATH, resolvers DNS, etc.).
type Checker interface {
	Check(ctx context.Context) error
}

// WorkDirUser es implementado por scanners que declaran si escriben
// artefactos en WorkDir. Quien no lo implementa se considera usuario.
type WorkDirUser interface {
	UsesWorkDir() bool
}

// ScanRequest agrupa la entrada de una tarea de escaneo.
type ScanRequest struct {
	// RunID identificador de la ejecución a la que pertenece la tarea
	RunID string

	// Target objetivo validado
	Target domain.Target

	// WorkDir directorio de artefactos exclusivo de la ejecución
	WorkDir string
}

// ProcessRunner ejecuta un proceso externo con límite de tiempo y captura su salida.
type ProcessRunner interface {
	Run(ctx context.Context, command []string, timeout time.Duration) (procexec.Outcome, error)
}

// ToolConfig contiene la configuración específica de una herramienta.
type ToolConfig struct {
	// Enabled indica si la herramienta está habilitada
	Enabled bool

	// ExecPath ejecutable o script de la herramienta
	ExecPath string

	// Python intérprete usado cuando ExecPath es un script .py
	Python string

	// Timeout tiempo máximo de ejecución (0 = valor por defecto de la herramienta)
	Timeout time.Duration

	// Custom configuración específica (wordlist, threads, resolvers, etc.)
	Custom map[string]any
}

// DefaultToolConfig retorna una configuración por defecto.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		Enabled: true,
		Python:  "python3",
		Custom:  make(map[string]any),
	}
}

// ToolKind describe cómo se implementa la herramienta.
type ToolKind string

const (
	ToolKindCLI     ToolKind = "cli"
	ToolKindBuiltin ToolKind = "builtin"
)

// ToolMetadata contiene metadatos sobre una herramienta.
type ToolMetadata struct {
	Tool           domain.ToolID
	Description    string
	Kind           ToolKind
	Binary         string        // ejecutable por defecto (vacío para builtin)
	DefaultTimeout time.Duration // 0 = sin límite propio
	OutputFormat   string        // xml, json, txt, stdout, records
}
