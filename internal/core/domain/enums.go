// internal/core/domain/enums.go
package domain

import (
	"fmt"
	"strings"
)

// ToolID identifica cada herramienta de reconocimiento soportada.
type ToolID string

const (
	ToolNmap          ToolID = "nmap"
	ToolHarvester     ToolID = "harvester"
	ToolSublist3r     ToolID = "sublist3r"
	ToolSQLInjection  ToolID = "sql_injection"
	ToolSubdomainEnum ToolID = "subdomain_enum"
)

// SelectAll es el centinela que expande a todas las herramientas.
const SelectAll = "all"

var allTools = []ToolID{ToolNmap, ToolHarvester, ToolSublist3r, ToolSQLInjection, ToolSubdomainEnum}

var displayNames = map[ToolID]string{
	ToolNmap:          "Nmap",
	ToolHarvester:     "theHarvester",
	ToolSublist3r:     "Sublist3r",
	ToolSQLInjection:  "SQL Injection",
	ToolSubdomainEnum: "Subdomain Enum",
}

// AllTools retorna el conjunto fijo de herramientas en orden canónico.
func AllTools() []ToolID {
	return append([]ToolID(nil), allTools...)
}

// IsValid verifica si el ToolID es conocido.
func (t ToolID) IsValid() bool {
	_, ok := displayNames[t]
	return ok
}

// DisplayName retorna la etiqueta legible de la herramienta.
func (t ToolID) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// String retorna la representación string del ToolID.
func (t ToolID) String() string {
	return string(t)
}

// order retorna la posición canónica (desconocidos al final).
func (t ToolID) order() int {
	for i, id := range allTools {
		if id == t {
			return i
		}
	}
	return len(allTools)
}

// ParseToolID acepta el id canónico o el nombre visible, sin distinguir mayúsculas.
func ParseToolID(name string) (ToolID, error) {
	key := normalizeToolName(name)
	for _, id := range allTools {
		if key == normalizeToolName(string(id)) || key == normalizeToolName(displayNames[id]) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, strings.TrimSpace(name))
}

func normalizeToolName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ExpandSelection resuelve "all", elimina duplicados y rechaza nombres desconocidos.
// El resultado sigue el orden canónico de AllTools.
func ExpandSelection(names []string) ([]ToolID, error) {
	seen := make(map[ToolID]bool, len(allTools))
	for _, raw := range names {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(raw), SelectAll) {
			for _, id := range allTools {
				seen[id] = true
			}
			continue
		}
		id, err := ParseToolID(raw)
		if err != nil {
			return nil, err
		}
		seen[id] = true
	}

	if len(seen) == 0 {
		return nil, ErrNoToolsSelected
	}

	out := make([]ToolID, 0, len(seen))
	for _, id := range allTools {
		if seen[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// Status indica el resultado de una tarea de escaneo.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ErrorKind clasifica los fallos de una herramienta.
type ErrorKind string

const (
	KindLaunchFailed          ErrorKind = "LaunchFailed"
	KindTimeoutExceeded       ErrorKind = "TimeoutExceeded"
	KindParseError            ErrorKind = "ParseError"
	KindNetworkUnreachable    ErrorKind = "NetworkUnreachable"
	KindDependencyUnavailable ErrorKind = "DependencyUnavailable"
	KindToolFailed            ErrorKind = "ToolFailed"
	KindCanceled              ErrorKind = "Canceled"
	KindInternal              ErrorKind = "Internal"
)

// String retorna la representación string del tipo de error.
func (k ErrorKind) String() string {
	return string(k)
}
