package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, listener StateListener) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker("gamma", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, listener)

	now := time.Date(2023, 12, 1, 5, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	var transitions []string
	b, now := newTestBreaker(2, func(name string, from, to CircuitState) {
		transitions = append(transitions, name+":"+string(from)+"->"+string(to))
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []string{"gamma:closed->open", "gamma:open->half_open", "gamma:half_open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: want %s got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_ExecuteCountsOnlyCountableErrors(t *testing.T) {
	b, _ := newTestBreaker(1, nil)
	notFound := errors.New("not found")

	err := b.Execute(func() error { return notFound }, func(err error) bool { return !errors.Is(err, notFound) })
	if !errors.Is(err, notFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-countable error must not open breaker, got %s", state)
	}

	_ = b.Execute(func() error { return errors.New("503") }, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after countable failure, got %s", state)
	}

	called := false
	err = b.Execute(func() error { called = true; return nil }, nil)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short-circuit, err=%v called=%v", err, called)
	}
}

func TestBreakerFor_DisabledReturnsNilThatAdmits(t *testing.T) {
	b := BreakerFor("github", CircuitBreakerConfig{Enabled: false}, nil)
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	called := false
	if err := b.Execute(func() error { called = true; return nil }, nil); err != nil || !called {
		t.Fatalf("nil breaker must run fn, err=%v called=%v", err, called)
	}
}
