package uubed

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/uubed/internal/resource"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/simhash"
	"github.com/hupe1980/uubed/topk"
	"github.com/hupe1980/uubed/validation"
	"github.com/hupe1980/uubed/zorder"
)

// DefaultBatchItems is divided across threads to derive the default chunk size.
const DefaultBatchItems = 10_000

// BatchProcessor encodes many embeddings concurrently while preserving
// input order in the output.
type BatchProcessor struct {
	threads     int
	chunkSize   int
	rateLimit   int64
	resources   *resource.Controller
	localCaches bool
	cacheOpts   []func(o *simhash.CacheOptions)
	logger      *Logger
	metrics     MetricsCollector
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithThreads sets the number of concurrent workers. Values <= 0 select
// runtime.GOMAXPROCS(0).
func WithThreads(n int) BatchOption {
	return func(p *BatchProcessor) {
		p.threads = n
	}
}

// WithChunkSize sets how many embeddings a worker handles per task. Values
// <= 0 select max(1, 10000/threads).
func WithChunkSize(n int) BatchOption {
	return func(p *BatchProcessor) {
		p.chunkSize = n
	}
}

// WithRateLimit caps throughput in embeddings per second. It is ignored
// when WithResources supplies a controller.
func WithRateLimit(itemsPerSec int64) BatchOption {
	return func(p *BatchProcessor) {
		p.rateLimit = itemsPerSec
	}
}

// WithResources shares a resource controller between processors so their
// combined worker count and throughput stay within its limits.
func WithResources(rc *resource.Controller) BatchOption {
	return func(p *BatchProcessor) {
		p.resources = rc
	}
}

// WithLocalMatrixCaches gives every SimHash worker its own unsynchronized
// matrix cache instead of the shared default. Workers never contend on a
// lock, at the cost of one matrix copy per worker. optFns configure each
// worker cache; matrix memory is charged to the processor's resource
// controller unless an option sets another one.
func WithLocalMatrixCaches(optFns ...func(o *simhash.CacheOptions)) BatchOption {
	return func(p *BatchProcessor) {
		p.localCaches = true
		p.cacheOpts = optFns
	}
}

// WithBatchLogger sets the logger used for batch summaries.
func WithBatchLogger(l *Logger) BatchOption {
	return func(p *BatchProcessor) {
		if l == nil {
			l = NoopLogger()
		}
		p.logger = l
	}
}

// WithBatchMetrics sets the metrics collector notified after every batch.
func WithBatchMetrics(mc MetricsCollector) BatchOption {
	return func(p *BatchProcessor) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		p.metrics = mc
	}
}

// NewBatchProcessor creates a BatchProcessor.
func NewBatchProcessor(optFns ...BatchOption) *BatchProcessor {
	p := &BatchProcessor{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(p)
	}

	if p.threads <= 0 {
		p.threads = runtime.GOMAXPROCS(0)
	}
	if p.chunkSize <= 0 {
		p.chunkSize = max(1, DefaultBatchItems/p.threads)
	}
	if p.resources == nil && p.rateLimit > 0 {
		p.resources = resource.NewController(resource.Config{ItemsPerSec: p.rateLimit})
	}

	return p
}

// Threads returns the number of concurrent workers.
func (p *BatchProcessor) Threads() int { return p.threads }

// ChunkSize returns the number of embeddings per task.
func (p *BatchProcessor) ChunkSize() int { return p.chunkSize }

// ProcessBatch applies fn to every embedding and returns the results in
// input order. The first failure cancels the remaining work and is
// returned; a panic in fn becomes a computation error.
func (p *BatchProcessor) ProcessBatch(ctx context.Context, embeddings [][]byte, fn func([]byte) (string, error)) ([]string, error) {
	return ProcessBatchWithState(ctx, p, embeddings,
		func() struct{} { return struct{}{} },
		func(_ struct{}, e []byte) (string, error) { return fn(e) },
	)
}

// ProcessBatchFunc is ProcessBatch for encoders that cannot fail.
func (p *BatchProcessor) ProcessBatchFunc(ctx context.Context, embeddings [][]byte, fn func([]byte) string) ([]string, error) {
	return p.ProcessBatch(ctx, embeddings, func(e []byte) (string, error) {
		return fn(e), nil
	})
}

// ProcessBatchWithState is ProcessBatch for encoders that keep per-worker
// state. newState is called lazily, at most once per concurrent worker, and
// a state is never used by two goroutines at the same time.
func ProcessBatchWithState[S any](ctx context.Context, p *BatchProcessor, embeddings [][]byte, newState func() S, fn func(S, []byte) (string, error)) ([]string, error) {
	results := make([]string, len(embeddings))
	if len(embeddings) == 0 {
		return results, nil
	}

	states := make(chan S, p.threads)
	acquire := func() S {
		select {
		case s := <-states:
			return s
		default:
			return newState()
		}
	}
	release := func(s S) {
		select {
		case states <- s:
		default:
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.threads)

	stopped := false
	for start := 0; start < len(embeddings); start += p.chunkSize {
		if gctx.Err() != nil {
			stopped = true
			break
		}

		end := min(start+p.chunkSize, len(embeddings))

		g.Go(func() (err error) {
			if err := p.resources.AcquireWorker(gctx); err != nil {
				return err
			}
			defer p.resources.ReleaseWorker()

			if err := p.resources.AcquireItems(gctx, end-start); err != nil {
				return err
			}

			state := acquire()
			defer release(state)

			defer func() {
				if r := recover(); r != nil {
					err = panicError(r)
				}
			}()

			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := fn(state, embeddings[i])
				if err != nil {
					return fmt.Errorf("embedding %d: %w", i, err)
				}
				results[i] = out
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, translateError(err)
	}
	if stopped {
		// Scheduling stopped on cancellation before any task failed.
		return nil, translateError(context.Cause(gctx))
	}

	return results, nil
}

func (p *BatchProcessor) run(ctx context.Context, logger *Logger, m Method, embeddings [][]byte, do func() ([]string, error)) ([]string, error) {
	start := time.Now()

	out, err := do()

	p.metrics.RecordBatch(m, len(embeddings), time.Since(start), err)
	logger.LogBatch(ctx, m, len(embeddings), p.threads, err)

	return out, err
}

// EncodeQ64 Q64-encodes every embedding.
func (p *BatchProcessor) EncodeQ64(ctx context.Context, embeddings [][]byte) ([]string, error) {
	return p.run(ctx, p.logger, MethodQ64, embeddings, func() ([]string, error) {
		return p.ProcessBatchFunc(ctx, embeddings, q64.Encode)
	})
}

// EncodeSimHash computes the Q64-encoded SimHash of every embedding.
// Parameters are validated once before any worker starts.
func (p *BatchProcessor) EncodeSimHash(ctx context.Context, embeddings [][]byte, planes int) ([]string, error) {
	return p.run(ctx, p.logger.WithPlanes(planes), MethodSimHash, embeddings, func() ([]string, error) {
		if err := validation.SimHashParams(planes, 0); err != nil {
			return nil, err
		}

		if !p.localCaches {
			h := simhash.NewHasher()
			return p.ProcessBatch(ctx, embeddings, func(e []byte) (string, error) {
				return h.HashQ64(e, planes)
			})
		}

		// Worker caches live for one batch; their memory is returned after it.
		var (
			mu     sync.Mutex
			caches []*simhash.LocalCache
		)
		defer func() {
			for _, c := range caches {
				c.Purge()
			}
		}()

		optFns := append([]func(o *simhash.CacheOptions){
			func(o *simhash.CacheOptions) { o.Resources = p.resources },
		}, p.cacheOpts...)

		return ProcessBatchWithState(ctx, p, embeddings,
			func() *simhash.Hasher {
				cache := simhash.NewLocalCache(optFns...)

				mu.Lock()
				caches = append(caches, cache)
				mu.Unlock()

				return simhash.NewHasher(func(o *simhash.Options) { o.Cache = cache })
			},
			func(h *simhash.Hasher, e []byte) (string, error) {
				return h.HashQ64(e, planes)
			},
		)
	})
}

// EncodeTopK encodes the top-k indices of every embedding.
func (p *BatchProcessor) EncodeTopK(ctx context.Context, embeddings [][]byte, k int) ([]string, error) {
	return p.run(ctx, p.logger.WithK(k), MethodTopK, embeddings, func() ([]string, error) {
		if err := validation.K(k); err != nil {
			return nil, err
		}
		return p.ProcessBatch(ctx, embeddings, func(e []byte) (string, error) {
			if err := topk.Validate(e, k); err != nil {
				return "", err
			}
			return topk.EncodeQ64Optimized(e, k), nil
		})
	})
}

// EncodeZOrder computes the Z-order key of every embedding.
func (p *BatchProcessor) EncodeZOrder(ctx context.Context, embeddings [][]byte) ([]string, error) {
	return p.run(ctx, p.logger, MethodZOrder, embeddings, func() ([]string, error) {
		return p.ProcessBatchFunc(ctx, embeddings, zorder.Encode)
	})
}

// EncodeWith encodes every embedding with enc, which must be configured
// for method m.
func (p *BatchProcessor) EncodeWith(ctx context.Context, enc *Encoder, m Method, embeddings [][]byte) ([]string, error) {
	return p.run(ctx, enc.logger(m), m, embeddings, func() ([]string, error) {
		return p.ProcessBatch(ctx, embeddings, func(e []byte) (string, error) {
			return enc.encode(m, e)
		})
	})
}

func processor(threads int) *BatchProcessor {
	return NewBatchProcessor(WithThreads(threads))
}

// ParallelQ64Encode Q64-encodes embeddings concurrently. threads <= 0
// selects the default worker count.
func ParallelQ64Encode(ctx context.Context, embeddings [][]byte, threads int) ([]string, error) {
	return processor(threads).EncodeQ64(ctx, embeddings)
}

// ParallelSimHashEncode computes SimHashes concurrently.
func ParallelSimHashEncode(ctx context.Context, embeddings [][]byte, planes, threads int) ([]string, error) {
	return processor(threads).EncodeSimHash(ctx, embeddings, planes)
}

// ParallelTopKEncode computes top-k encodings concurrently.
func ParallelTopKEncode(ctx context.Context, embeddings [][]byte, k, threads int) ([]string, error) {
	return processor(threads).EncodeTopK(ctx, embeddings, k)
}

// ParallelZOrderEncode computes Z-order keys concurrently.
func ParallelZOrderEncode(ctx context.Context, embeddings [][]byte, threads int) ([]string, error) {
	return processor(threads).EncodeZOrder(ctx, embeddings)
}
