// internal/core/domain/target.go
package domain

import (
	"fmt"
	"strings"

	"reconforge/internal/platform/validator"
)

// TargetKind distingue objetivos por nombre de dominio o por IP.
type TargetKind string

const (
	TargetKindDomain TargetKind = "domain"
	TargetKindIP     TargetKind = "ip"
)

// Target representa el host o dominio sobre el que se lanzan las herramientas.
// Es inmutable una vez validado.
type Target struct {
	// Value forma canónica (minúsculas, sin punto final, punycode)
	Value string `json:"value"`

	// Kind indica si Value es un dominio o una IP
	Kind TargetKind `json:"kind"`
}

// NewTarget normaliza y valida la entrada del usuario.
func NewTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, ErrEmptyTarget
	}

	if ip := validator.NormalizeIP(raw); ip != "" {
		return Target{Value: ip, Kind: TargetKindIP}, nil
	}

	t := Target{Value: validator.NormalizeDomain(raw), Kind: TargetKindDomain}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// Validate verifica que el target sea utilizable.
func (t Target) Validate() error {
	if strings.TrimSpace(t.Value) == "" {
		return ErrEmptyTarget
	}

	switch t.Kind {
	case TargetKindIP:
		if !validator.IsIP(t.Value) {
			return fmt.Errorf("%w: %s", ErrInvalidTarget, t.Value)
		}
	case TargetKindDomain:
		if !validator.IsDomain(t.Value) {
			return fmt.Errorf("%w: %s", ErrInvalidTarget, t.Value)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTarget, t.Kind)
	}
	return nil
}

// IsDomain indica si el objetivo es un nombre de dominio.
func (t Target) IsDomain() bool {
	return t.Kind == TargetKindDomain
}

// String retorna el valor canónico.
func (t Target) String() string {
	return t.Value
}
