// internal/platform/resilience/circuit_breaker_test.go
package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock reloj manual para los tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, cooldown time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(BreakerConfig{FailureThreshold: threshold, Cooldown: cooldown, HalfOpenMax: 1})
	cb.now = clock.now
	return cb, clock
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		assert.True(t, cb.Allow())
		cb.RecordFailure()
	}
	assert.Equal(t, StateClosed, cb.State())

	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State(), "failures must be consecutive")
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Minute)

	cb.RecordFailure()
	assert.False(t, cb.Allow())

	clock.advance(time.Minute)
	assert.True(t, cb.Allow(), "probe allowed after cooldown")
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.False(t, cb.Allow(), "only one probe in half-open")

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Minute)

	cb.RecordFailure()
	clock.advance(2 * time.Minute)
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())

	clock.advance(30 * time.Second)
	assert.False(t, cb.Allow(), "cooldown restarts when reopened")
}

func TestCircuitBreaker_DefaultsAndReset(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{})
	assert.Equal(t, DefaultBreakerConfig(), cb.cfg)

	for i := 0; i < cb.cfg.FailureThreshold; i++ {
		cb.RecordFailure()
	}
	assert.Equal(t, StateOpen, cb.State())
	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
