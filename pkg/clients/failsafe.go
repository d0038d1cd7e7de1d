package clients

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"mediasearch/pkg/logging"
)

// CircuitBreakerState represents the state of the circuit breaker.
type CircuitBreakerState int

const (
	StateClosed CircuitBreakerState = iota
	StateHalfOpen
	StateOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies this circuit breaker in logs and metrics
	Name string

	// MaxRequests is the number of successful requests needed in half-open
	// state before transitioning to closed. Default: 1
	MaxRequests uint32

	// Timeout is the duration the circuit stays open before transitioning
	// to half-open. Default: 15 seconds.
	Timeout time.Duration

	// FailureRatio is the share of failed requests at which the circuit trips.
	// Default: 0.5
	FailureRatio float64

	// MinRequests is the window of recent requests the ratio is evaluated over.
	// Default: 10
	MinRequests uint32

	Logger logging.Logger

	// OnStateChange is invoked after every state transition.
	OnStateChange func(name string, from, to CircuitBreakerState)
}

// DefaultCircuitBreakerConfig returns sensible defaults for the circuit breaker.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         "default",
		MaxRequests:  1,
		Timeout:      15 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  10,
	}
}

// HTTPCircuitBreaker guards outbound HTTP calls. Transport errors and 5xx
// responses count as failures; while open, calls fail fast with
// circuitbreaker.ErrOpen and never reach the network. It never retries.
type HTTPCircuitBreaker struct {
	cb   circuitbreaker.CircuitBreaker[*http.Response]
	name string
}

// NewHTTPCircuitBreaker creates a breaker from cfg, filling zero fields with defaults.
//
//nolint:bodyclose // false positive: [*http.Response] is a generic type parameter, not an actual response
func NewHTTPCircuitBreaker(cfg CircuitBreakerConfig) *HTTPCircuitBreaker {
	if cfg.Name == "" {
		cfg.Name = "circuit-breaker"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.FailureRatio == 0 {
		cfg.FailureRatio = 0.5
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 10
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}

	// e.g. 50% of 10 requests = 5 failures
	failureThreshold := uint(float64(cfg.MinRequests) * cfg.FailureRatio)
	if failureThreshold < 1 {
		failureThreshold = 1
	}

	builder := circuitbreaker.NewBuilder[*http.Response]().
		WithFailureThresholdRatio(failureThreshold, uint(cfg.MinRequests)).
		WithDelay(cfg.Timeout).
		WithSuccessThreshold(uint(cfg.MaxRequests)).
		HandleIf(IsUpstreamFailure)

	if cfg.OnStateChange != nil || cfg.Logger != nil {
		builder = builder.OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			fromState := convertState(event.OldState)
			toState := convertState(event.NewState)

			if cfg.Logger != nil {
				cfg.Logger.WithFields(logging.Fields{
					"circuit_breaker": cfg.Name,
					"from_state":      fromState.String(),
					"to_state":        toState.String(),
				}).Warn("circuit breaker state change")
			}

			if cfg.OnStateChange != nil {
				cfg.OnStateChange(cfg.Name, fromState, toState)
			}
		})
	}

	return &HTTPCircuitBreaker{
		cb:   builder.Build(),
		name: cfg.Name,
	}
}

// callerGoneError marks an attempt that failed after its caller's context was
// done. It never counts against the breaker.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return e.err.Error() }

func (e *callerGoneError) Unwrap() error { return e.err }

// IsUpstreamFailure reports whether an outbound call result counts against the
// breaker. Caller cancellation is not an upstream failure; client timeouts are.
func IsUpstreamFailure(resp *http.Response, err error) bool {
	if err != nil {
		var gone *callerGoneError
		return !errors.Is(err, context.Canceled) && !errors.As(err, &gone)
	}
	return resp != nil && resp.StatusCode >= http.StatusInternalServerError
}

func convertState(state circuitbreaker.State) CircuitBreakerState {
	switch state {
	case circuitbreaker.ClosedState:
		return StateClosed
	case circuitbreaker.HalfOpenState:
		return StateHalfOpen
	case circuitbreaker.OpenState:
		return StateOpen
	default:
		return StateClosed
	}
}

// Do runs one outbound attempt through the breaker. fn must honor ctx. An
// attempt that fails because ctx ended is returned as is and not recorded as
// a failure.
func (b *HTTPCircuitBreaker) Do(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := failsafe.With[*http.Response](b.cb).Get(func() (*http.Response, error) {
		resp, err := fn()
		if err != nil && ctx.Err() != nil {
			return resp, &callerGoneError{err: err}
		}
		return resp, err
	})
	var gone *callerGoneError
	if errors.As(err, &gone) {
		return resp, gone.err
	}
	return resp, err
}

// State returns the current state of the circuit breaker.
func (b *HTTPCircuitBreaker) State() CircuitBreakerState {
	return convertState(b.cb.State())
}

// Name returns the name of the circuit breaker.
func (b *HTTPCircuitBreaker) Name() string {
	return b.name
}

// IsOpen returns true if the circuit breaker is open
func (b *HTTPCircuitBreaker) IsOpen() bool {
	return b.cb.IsOpen()
}
