package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRemote = errors.New("remote failure")

func failN(cb *CircuitBreaker, n int, err error) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return err })
	}
}

func TestCircuitBreaker_StateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		config        CircuitBreakerConfig
		setup         func(cb *CircuitBreaker)
		expectedState State
	}{
		{
			name:          "successful execution stays closed",
			config:        CircuitBreakerConfig{MaxFailures: 3, Timeout: 5 * time.Second},
			setup:         func(cb *CircuitBreaker) { _ = cb.Execute(func() error { return nil }) },
			expectedState: StateClosed,
		},
		{
			name:          "opens after max failures",
			config:        CircuitBreakerConfig{MaxFailures: 3, Timeout: 5 * time.Second},
			setup:         func(cb *CircuitBreaker) { failN(cb, 3, errRemote) },
			expectedState: StateOpen,
		},
		{
			name:   "half-open after timeout",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: 50 * time.Millisecond},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3, errRemote)
				time.Sleep(100 * time.Millisecond)
				_ = cb.Execute(func() error { return nil })
			},
			expectedState: StateHalfOpen,
		},
		{
			name:   "closes after enough half-open successes",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: 50 * time.Millisecond, HalfOpenMax: 2},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3, errRemote)
				time.Sleep(100 * time.Millisecond)
				for i := 0; i < 2; i++ {
					_ = cb.Execute(func() error { return nil })
				}
			},
			expectedState: StateClosed,
		},
		{
			name: "ignored errors never open the circuit",
			config: CircuitBreakerConfig{
				MaxFailures: 2,
				Timeout:     time.Hour,
				IsFailure:   func(err error) bool { return !errors.Is(err, errRemote) },
			},
			setup:         func(cb *CircuitBreaker) { failN(cb, 5, errRemote) },
			expectedState: StateClosed,
		},
		{
			name:   "reset returns to closed",
			config: CircuitBreakerConfig{MaxFailures: 3, Timeout: time.Hour},
			setup: func(cb *CircuitBreaker) {
				failN(cb, 3, errRemote)
				cb.Reset()
			},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(tt.config)

			tt.setup(cb)

			assert.Equal(t, tt.expectedState, cb.State())
		})
	}
}

func TestCircuitBreaker_OpenRejectsCalls(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Hour})
	failN(cb, 2, errRemote)

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_NotifiesStateChange(t *testing.T) {
	changes := make(chan State, 1)
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "predictor",
		MaxFailures: 1,
		Timeout:     time.Hour,
		OnStateChange: func(name string, from, to State) {
			changes <- to
		},
	})

	failN(cb, 1, errRemote)

	select {
	case state := <-changes:
		assert.Equal(t, StateOpen, state)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for state change")
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
