package worker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fplbot/internal/platform/logging"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	t.Parallel()

	pool, err := NewPool(4, logging.NewNop())
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer func() { _ = pool.Release(time.Second) }()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		for {
			err := pool.Submit(func() {
				defer wg.Done()
				mu.Lock()
				seen[i] = true
				mu.Unlock()
			})
			if err == nil {
				break
			}
			if !errors.Is(err, ErrPoolSaturated) {
				t.Fatalf("submit: %v", err)
			}
			time.Sleep(time.Millisecond)
		}
	}
	wg.Wait()

	if len(seen) != 10 {
		t.Fatalf("expected 10 tasks to run, got %d", len(seen))
	}
}

func TestPool_SaturatedSubmitFails(t *testing.T) {
	t.Parallel()

	pool, err := NewPool(1, logging.NewNop())
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}

	release := make(chan struct{})
	started := make(chan struct{})
	if err := pool.Submit(func() {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("submit first task: %v", err)
	}
	<-started

	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolSaturated) {
		t.Fatalf("expected ErrPoolSaturated, got %v", err)
	}

	close(release)
	if err := pool.Release(time.Second); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed after release, got %v", err)
	}
}

func TestPool_SurvivesPanickingTask(t *testing.T) {
	t.Parallel()

	pool, err := NewPool(1, logging.NewNop())
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer func() { _ = pool.Release(time.Second) }()

	done := make(chan struct{})
	if err := pool.Submit(func() { panic("boom") }); err != nil {
		t.Fatalf("submit panicking task: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		err := pool.Submit(func() { close(done) })
		if err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("pool did not recover after panic: %v", err)
		case <-time.After(5 * time.Millisecond):
		}
	}
	<-done
}

func TestNewPool_RejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	if _, err := NewPool(0, nil); err == nil {
		t.Fatalf("expected error for size 0")
	}
}
