// Package worker runs fire-and-forget tasks on a bounded goroutine pool.
package worker

import (
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
)

// ErrPoolSaturated is returned by Submit when every worker is busy.
var ErrPoolSaturated = errors.New("worker pool saturated")

var ErrPoolClosed = errors.New("worker pool closed")

type Pool struct {
	pool   *ants.Pool
	logger *logging.Logger
}

func NewPool(size int, logger *logging.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("worker pool size must be positive, got %d", size)
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithLogger(antsLogger{logger: logger}),
		ants.WithPanicHandler(func(recovered any) {
			logger.Error("background task panicked", "panic", fmt.Sprint(recovered))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Pool{pool: pool, logger: logger}, nil
}

func (p *Pool) Submit(task func()) error {
	err := p.pool.Submit(task)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ants.ErrPoolOverload):
		return ErrPoolSaturated
	case errors.Is(err, ants.ErrPoolClosed):
		return ErrPoolClosed
	default:
		return err
	}
}

// Release stops accepting tasks and waits up to timeout for running ones.
func (p *Pool) Release(timeout time.Duration) error {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		return fmt.Errorf("release worker pool: %w", err)
	}
	p.logger.Info("worker pool released")
	return nil
}

type antsLogger struct {
	logger *logging.Logger
}

func (l antsLogger) Printf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "worker")
}
