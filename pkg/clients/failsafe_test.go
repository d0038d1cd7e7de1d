package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	fsCircuitbreaker "github.com/failsafe-go/failsafe-go/circuitbreaker"
)

func failingCall() (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func okCall() (*http.Response, error) {
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_StartsClosed(t *testing.T) {
	cb := NewHTTPCircuitBreaker(DefaultCircuitBreakerConfig())
	if cb.State() != StateClosed {
		t.Fatalf("expected closed, got %s", cb.State())
	}
	resp, err := cb.Do(context.Background(), okCall)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected pass-through success, got %v %v", resp, err)
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_DoesNotRetry(t *testing.T) {
	cb := NewHTTPCircuitBreaker(DefaultCircuitBreakerConfig())

	var attempts int32
	_, err := cb.Do(context.Background(), func() (*http.Response, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, errors.New("timeout")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_TripsAndRejects(t *testing.T) {
	var transitions []string
	cb := NewHTTPCircuitBreaker(CircuitBreakerConfig{
		Name:         "rawg",
		MinRequests:  3,
		FailureRatio: 0.5,
		Timeout:      time.Second,
		OnStateChange: func(_ string, _, to CircuitBreakerState) {
			transitions = append(transitions, to.String())
		},
	})

	for i := 0; i < 3; i++ {
		_, _ = cb.Do(context.Background(), failingCall)
	}
	if !cb.IsOpen() {
		t.Fatalf("expected open, got %s", cb.State())
	}
	if len(transitions) == 0 || transitions[0] != "open" {
		t.Fatalf("expected transition to open, got %v", transitions)
	}

	var called bool
	_, err := cb.Do(context.Background(), func() (*http.Response, error) {
		called = true
		return okCall()
	})
	if !errors.Is(err, fsCircuitbreaker.ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Fatal("open breaker must not reach the network")
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_ServerErrorsCountAsFailures(t *testing.T) {
	cb := NewHTTPCircuitBreaker(CircuitBreakerConfig{Name: "rawg", MinRequests: 4, FailureRatio: 0.5, Timeout: time.Second})

	for i := 0; i < 2; i++ {
		resp, err := cb.Do(context.Background(), func() (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusServiceUnavailable, Body: http.NoBody}, nil
		})
		if err != nil {
			t.Fatalf("closed breaker should pass the response through, got %v", err)
		}
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("unexpected status %d", resp.StatusCode)
		}
	}
	if !cb.IsOpen() {
		t.Fatalf("expected open after repeated 5xx, got %s", cb.State())
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := NewHTTPCircuitBreaker(CircuitBreakerConfig{Name: "rawg", MinRequests: 2, FailureRatio: 0.5, Timeout: 50 * time.Millisecond})
	for i := 0; i < 2; i++ {
		_, _ = cb.Do(context.Background(), failingCall)
	}
	time.Sleep(60 * time.Millisecond)

	if _, err := cb.Do(context.Background(), okCall); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", cb.State())
	}
}

func TestIsUpstreamFailure(t *testing.T) {
	cases := []struct {
		resp *http.Response
		err  error
		want bool
	}{
		{nil, errors.New("x"), true},
		{nil, fmt.Errorf("get: %w", context.Canceled), false},
		{nil, &callerGoneError{err: context.DeadlineExceeded}, false},
		{nil, fmt.Errorf("get: %w (Client.Timeout exceeded)", context.DeadlineExceeded), true},
		{&http.Response{StatusCode: 502}, nil, true},
		{&http.Response{StatusCode: 404}, nil, false},
		{&http.Response{StatusCode: 200}, nil, false},
	}
	for _, c := range cases {
		if got := IsUpstreamFailure(c.resp, c.err); got != c.want {
			t.Fatalf("IsUpstreamFailure(%v, %v) = %v", c.resp, c.err, got)
		}
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_CallerCancellationDoesNotTrip(t *testing.T) {
	cb := NewHTTPCircuitBreaker(DefaultCircuitBreakerConfig())

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		_, err := cb.Do(ctx, func() (*http.Response, error) {
			cancel()
			return nil, fmt.Errorf("get: %w", ctx.Err())
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected the caller's cancellation back, got %v", err)
		}
	}

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		_, err := cb.Do(ctx, func() (*http.Response, error) {
			<-ctx.Done()
			return nil, errors.New("read tcp: i/o timeout")
		})
		cancel()
		if err == nil || err.Error() != "read tcp: i/o timeout" {
			t.Fatalf("expected the attempt error unchanged, got %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Fatalf("caller cancellations must not open the breaker, got %s", cb.State())
	}
	if _, err := cb.Do(context.Background(), okCall); err != nil {
		t.Fatalf("expected a healthy call to pass, got %v", err)
	}
}

func TestHTTPCircuitBreaker_CanceledBeforeCallSkipsAttempt(t *testing.T) {
	cb := NewHTTPCircuitBreaker(DefaultCircuitBreakerConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called bool
	_, err := cb.Do(ctx, func() (*http.Response, error) { //nolint:bodyclose // never called
		called = true
		return okCall()
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected immediate cancellation, got err=%v called=%v", err, called)
	}
}

//nolint:bodyclose // test responses have no body
func TestHTTPCircuitBreaker_ClientTimeoutsStillTrip(t *testing.T) {
	cb := NewHTTPCircuitBreaker(CircuitBreakerConfig{Name: "rawg", MinRequests: 4, FailureRatio: 0.5, Timeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, _ = cb.Do(context.Background(), func() (*http.Response, error) {
			return nil, fmt.Errorf("get: %w (Client.Timeout exceeded while awaiting headers)", context.DeadlineExceeded)
		})
	}
	if !cb.IsOpen() {
		t.Fatalf("expected client timeouts to open the breaker, got %s", cb.State())
	}
}
