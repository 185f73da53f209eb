package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("fpl api status=503")

func TestCircuitBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	failing := func() error { return errUpstream }
	calls := 0
	succeeding := func() error { calls++; return nil }

	if err := b.Execute(failing, nil); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(failing, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Execute(succeeding, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open breaker must not run the call")
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Execute(succeeding, nil); err != nil {
		t.Fatalf("expected half-open trial call to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful trial call, got %s", state)
	}
}

func TestCircuitBreaker_ClassifierIgnoresNonTransientErrors(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1})

	errNotFound := errors.New("status=404")
	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return errNotFound }, func(err error) bool { return !errors.Is(err, errNotFound) })
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-transient errors must not open the breaker, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 5; i++ {
		if err := b.Execute(func() error { return errUpstream }, nil); !errors.Is(err, errUpstream) {
			t.Fatalf("disabled breaker should surface the call error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker should stay closed, got %s", state)
	}
}

func TestCircuitBreaker_ReportsStateChanges(t *testing.T) {
	type transition struct {
		name     string
		from, to CircuitState
	}
	var got []transition

	b := NewCircuitBreaker(BreakerConfig{
		Name:             "fplapi",
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		OnStateChange: func(name string, from, to CircuitState) {
			got = append(got, transition{name: name, from: from, to: to})
		},
	})
	now := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.Execute(func() error { return errUpstream }, nil)
	_ = b.Execute(func() error { return nil }, nil)
	now = now.Add(2 * time.Second)
	_ = b.Execute(func() error { return nil }, nil)

	want := []transition{
		{name: "fplapi", from: CircuitStateClosed, to: CircuitStateOpen},
		{name: "fplapi", from: CircuitStateOpen, to: CircuitStateHalfOpen},
		{name: "fplapi", from: CircuitStateHalfOpen, to: CircuitStateClosed},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected transitions: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transition %d = %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestBreakerConfig_Defaults(t *testing.T) {
	cfg := BreakerConfig{FailureThreshold: -1, HalfOpenMaxReq: 0}.withDefaults()
	if cfg.Name != "upstream" || cfg.FailureThreshold != defaultFailureThreshold ||
		cfg.OpenTimeout != defaultOpenTimeout || cfg.HalfOpenMaxReq != defaultHalfOpenMaxReq {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
