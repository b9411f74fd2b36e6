package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory (projection
	// matrices). If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxWorkers is the maximum number of concurrently running batch workers
	// across all processors sharing this controller. If 0, unlimited.
	MaxWorkers int64

	// ItemsPerSec caps batch throughput in embeddings per second.
	// If 0, unlimited.
	ItemsPerSec int64
}

// Controller manages shared resources (memory, concurrency, throughput).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	workerSem *semaphore.Weighted // nil if unlimited

	// Throughput
	limiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.MaxWorkers > 0 {
		c.workerSem = semaphore.NewWeighted(cfg.MaxWorkers)
	}

	if cfg.ItemsPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.ItemsPerSec), int(cfg.ItemsPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireWorker reserves a worker slot, blocking until one is free or ctx
// is canceled.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil || c.workerSem == nil {
		return nil
	}
	return c.workerSem.Acquire(ctx, 1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil || c.workerSem == nil {
		return
	}
	c.workerSem.Release(1)
}

// AcquireItems waits until the throughput limit allows n more items.
// Requests larger than the burst are split.
func (c *Controller) AcquireItems(ctx context.Context, n int) error {
	if c == nil || c.limiter == nil {
		return nil
	}
	burst := c.limiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.limiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
