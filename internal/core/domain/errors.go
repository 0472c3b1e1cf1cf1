// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidTarget = errors.New("target is neither a valid domain nor an IP address")

	// Tool selection errors
	ErrUnknownTool     = errors.New("unknown tool")
	ErrNoToolsSelected = errors.New("no tools selected")

	// Configuration errors
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
	ErrInvalidConfig = errors.New("invalid configuration")
)
