// Package resource implements the Controller for shared limits.
//
// The Controller manages three resource types:
//
//   - Memory: budget for cached SimHash projection matrices (non-blocking, fail-fast)
//   - Concurrency: cap on batch workers across processors sharing a controller
//   - Throughput: token-bucket limit on embeddings processed per second
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	})
//
//	if err := rc.AcquireMemory(int64(planes * dims * 4)); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides how to degrade
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
