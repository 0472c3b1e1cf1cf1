// internal/platform/resilience/analyzer.go
package resilience

import (
	"context"

	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// Compile-time interface check.
var _ ports.Analyzer = (*GuardedAnalyzer)(nil)

// GuardedAnalyzer envuelve un ports.Analyzer con un circuit breaker: cuando
// el servicio de IA falla varias veces seguidas, el resto de análisis de la
// ejecución caen al texto de fallback sin esperar a cada timeout.
type GuardedAnalyzer struct {
	inner   ports.Analyzer
	breaker *CircuitBreaker
	logger  logx.Logger
}

// NewGuardedAnalyzer crea el wrapper (breaker nil = DefaultBreakerConfig).
func NewGuardedAnalyzer(inner ports.Analyzer, breaker *CircuitBreaker, logger logx.Logger) *GuardedAnalyzer {
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultBreakerConfig())
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	return &GuardedAnalyzer{
		inner:   inner,
		breaker: breaker,
		logger:  logger.With("component", "analyzer-breaker"),
	}
}

// Analyze implementa ports.Analyzer.
func (g *GuardedAnalyzer) Analyze(ctx context.Context, tool string, payload any) (string, error) {
	if !g.breaker.Allow() {
		g.logger.Debug("circuit open, skipping analysis", "tool", tool)
		return "", errors.Wrapf(ErrCircuitOpen, "analysis of %s", tool)
	}

	text, err := g.inner.Analyze(ctx, tool, payload)
	switch {
	case err == nil:
		g.breaker.RecordSuccess()
	case errors.Is(err, context.Canceled):
		// Cancelación del llamante: no dice nada del servicio
	default:
		g.breaker.RecordFailure()
		if g.breaker.State() == StateOpen {
			g.logger.Warn("analyzer circuit opened", "tool", tool, "error", err.Error())
		}
	}
	return text, err
}

// Breaker retorna el circuit breaker (útil para tests).
func (g *GuardedAnalyzer) Breaker() *CircuitBreaker { return g.breaker }
