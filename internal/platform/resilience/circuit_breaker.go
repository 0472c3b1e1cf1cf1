// internal/platform/resilience/circuit_breaker.go
package resilience

import (
	"sync"
	"time"

	"reconforge/internal/platform/errors"
)

// ErrCircuitOpen se retorna cuando el breaker rechaza una llamada.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State representa el estado del circuit breaker.
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, rejecting requests
	StateHalfOpen              // Testing if service recovered
)

// String retorna una representación legible del estado.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig parámetros del circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           // fallos consecutivos para abrir
	Cooldown         time.Duration // espera antes de pasar a half-open
	HalfOpenMax      int           // llamadas de prueba en half-open
}

// DefaultBreakerConfig retorna la configuración usada para el analizador.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		Cooldown:         60 * time.Second,
		HalfOpenMax:      1,
	}
}

// CircuitBreaker deja de llamar a un servicio remoto tras varios fallos
// consecutivos y lo vuelve a probar pasado el cooldown.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           State
	failures        int
	halfOpenCalls   int
	halfOpenSuccess int
	openedAt        time.Time

	cfg BreakerConfig
	now func() time.Time
}

// NewCircuitBreaker crea un nuevo circuit breaker; valores no positivos
// toman los de DefaultBreakerConfig.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = def.HalfOpenMax
	}
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Allow verifica si una llamada puede pasar.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Cooldown {
			return false
		}
		cb.state = StateHalfOpen
		cb.halfOpenCalls = 0
		cb.halfOpenSuccess = 0
		fallthrough

	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.cfg.HalfOpenMax {
			return false
		}
		cb.halfOpenCalls++
		return true

	default:
		return false
	}
}

// RecordSuccess registra una llamada exitosa.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.halfOpenSuccess++
		if cb.halfOpenSuccess >= cb.cfg.HalfOpenMax {
			cb.state = StateClosed
			cb.failures = 0
		}
	}
}

// RecordFailure registra una llamada fallida.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.trip()
		}
	case StateHalfOpen:
		// Un fallo en half-open reabre el circuito inmediatamente
		cb.trip()
	}
}

// trip abre el circuito. Debe llamarse con cb.mu tomado.
func (cb *CircuitBreaker) trip() {
	cb.state = StateOpen
	cb.openedAt = cb.now()
	cb.failures = 0
}

// State retorna el estado actual del circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset vuelve al estado cerrado.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.failures = 0
}
