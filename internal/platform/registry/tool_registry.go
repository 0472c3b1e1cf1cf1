// internal/platform/registry/tool_registry.go
package registry

import (
	"fmt"
	"sync"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
)

// ToolRegistry es la tabla de despacho ToolID -> factory.
// Implementa el patrón Registry + Factory para desacoplar la creación
// de scanners del código de aplicación.
type ToolRegistry struct {
	mu        sync.RWMutex
	factories map[domain.ToolID]ScannerFactory
	metadata  map[domain.ToolID]ports.ToolMetadata
	logger    logx.Logger
}

// ScannerFactory es una función que crea una instancia de Scanner.
type ScannerFactory func(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *ToolRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *ToolRegistry {
	once.Do(func() {
		globalRegistry = NewToolRegistry(logx.New())
	})
	return globalRegistry
}

// NewToolRegistry crea un nuevo registry de herramientas.
func NewToolRegistry(logger logx.Logger) *ToolRegistry {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &ToolRegistry{
		factories: make(map[domain.ToolID]ScannerFactory),
		metadata:  make(map[domain.ToolID]ports.ToolMetadata),
		logger:    logger.With("component", "tool-registry"),
	}
}

// Register registra una factory con su metadata.
// Típicamente llamado desde init() de cada paquete de herramienta.
func (r *ToolRegistry) Register(tool domain.ToolID, factory ScannerFactory, meta ports.ToolMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tool == "" {
		return fmt.Errorf("tool id cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for tool %s", tool)
	}
	if _, exists := r.factories[tool]; exists {
		return fmt.Errorf("tool %s is already registered", tool)
	}

	meta.Tool = tool
	r.factories[tool] = factory
	r.metadata[tool] = meta
	r.logger.Debug("tool registered", "tool", tool, "kind", meta.Kind)

	return nil
}

// MustRegister es Register para init(): un registro duplicado es un bug de programación.
func (r *ToolRegistry) MustRegister(tool domain.ToolID, factory ScannerFactory, meta ports.ToolMetadata) {
	if err := r.Register(tool, factory, meta); err != nil {
		panic(err)
	}
}

// Build construye los scanners solicitados.
// Las herramientas no registradas o cuya factory falla se devuelven en el mapa
// de errores; el orquestador las registra como LaunchFailed.
func (r *ToolRegistry) Build(tools []domain.ToolID, configs map[domain.ToolID]ports.ToolConfig, logger logx.Logger) (map[domain.ToolID]ports.Scanner, map[domain.ToolID]error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if logger == nil {
		logger = r.logger
	}

	scanners := make(map[domain.ToolID]ports.Scanner, len(tools))
	failures := make(map[domain.ToolID]error)

	for _, tool := range tools {
		factory, exists := r.factories[tool]
		if !exists {
			failures[tool] = fmt.Errorf("tool %s not registered in registry", tool)
			continue
		}

		cfg, ok := configs[tool]
		if !ok {
			cfg = ports.DefaultToolConfig()
		}
		if !cfg.Enabled {
			failures[tool] = fmt.Errorf("tool %s is disabled by configuration", tool)
			continue
		}

		scanner, err := factory(cfg, logger.With("tool", tool))
		if err != nil {
			failures[tool] = fmt.Errorf("failed to build tool %s: %w", tool, err)
			continue
		}
		scanners[tool] = scanner
	}

	for tool, err := range failures {
		r.logger.Warn("tool build error", "tool", tool, "error", err.Error())
	}
	r.logger.Debug("tools built", "count", len(scanners), "requested", len(tools))

	return scanners, failures
}

// List retorna las herramientas registradas en orden canónico.
func (r *ToolRegistry) List() []domain.ToolID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ToolID, 0, len(r.factories))
	for _, id := range domain.AllTools() {
		if _, ok := r.factories[id]; ok {
			out = append(out, id)
		}
	}
	for id := range r.factories {
		if !id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// GetMetadata retorna el metadata de una herramienta.
func (r *ToolRegistry) GetMetadata(tool domain.ToolID) (ports.ToolMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[tool]
	return meta, exists
}

// IsRegistered verifica si una herramienta está registrada.
func (r *ToolRegistry) IsRegistered(tool domain.ToolID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[tool]
	return exists
}

// Clear elimina todas las herramientas registradas (útil para testing).
func (r *ToolRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[domain.ToolID]ScannerFactory)
	r.metadata = make(map[domain.ToolID]ports.ToolMetadata)
}
