package simhash

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/resource"
	"github.com/hupe1980/uubed/validation"
)

// Cache provides projection matrices keyed by (planes, dims).
type Cache interface {
	// Matrix returns the matrix for (planes, dims), creating it on first use.
	Matrix(planes, dims int) (*Matrix, error)
}

// CacheOptions configures a matrix cache.
type CacheOptions struct {
	// Seed of generated matrices.
	Seed uint64

	// Resources, if set, accounts matrix memory. Creating a matrix beyond the
	// memory limit fails with an errs.KindMemory error.
	Resources *resource.Controller

	// MaxEntries bounds a LocalCache. The oldest matrix is dropped and its
	// memory released once the bound is reached. 0 means unbounded.
	MaxEntries int
}

// DefaultCacheOptions are used when no option function overrides them.
var DefaultCacheOptions = CacheOptions{
	Seed: DefaultSeed,
}

type cacheKey struct {
	planes int
	dims   int
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%dx%d", k.planes, k.dims)
}

// builder creates matrices and tracks how many were generated.
type builder struct {
	opts      CacheOptions
	generated atomic.Int64
}

func (b *builder) build(k cacheKey) (*Matrix, error) {
	if err := validation.SimHashParams(k.planes, k.dims); err != nil {
		return nil, err
	}

	size := validation.MatrixBytes(k.planes, k.dims)
	if err := b.opts.Resources.AcquireMemory(size); err != nil {
		return nil, errs.Memory(fmt.Sprintf("projection matrix %s needs %d bytes", k, size), err)
	}

	m, err := NewMatrix(k.planes, k.dims, b.opts.Seed)
	if err != nil {
		b.opts.Resources.ReleaseMemory(size)
		return nil, errs.MatrixGenerationFailed(k.planes, k.dims, err)
	}

	b.generated.Add(1)
	return m, nil
}

// Generated returns how many matrices the cache has built.
func (b *builder) Generated() int64 {
	return b.generated.Load()
}

func cacheOptions(optFns []func(o *CacheOptions)) CacheOptions {
	opts := DefaultCacheOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// SharedCache is an unbounded matrix cache safe for concurrent use.
//
// Entries are written once and read thereafter. Concurrent first-time
// requests for the same key share a single generation.
type SharedCache struct {
	builder

	mu      sync.RWMutex
	entries map[cacheKey]*Matrix
	group   singleflight.Group
}

// NewSharedCache creates an empty SharedCache.
func NewSharedCache(optFns ...func(o *CacheOptions)) *SharedCache {
	return &SharedCache{
		builder: builder{opts: cacheOptions(optFns)},
		entries: make(map[cacheKey]*Matrix),
	}
}

// Matrix implements Cache.
func (c *SharedCache) Matrix(planes, dims int) (*Matrix, error) {
	k := cacheKey{planes: planes, dims: dims}

	if m, ok := c.lookup(k); ok {
		return m, nil
	}

	v, err, _ := c.group.Do(k.String(), func() (any, error) {
		if m, ok := c.lookup(k); ok {
			return m, nil
		}

		m, err := c.build(k)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[k] = m
		c.mu.Unlock()

		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Matrix), nil
}

func (c *SharedCache) lookup(k cacheKey) (*Matrix, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[k]
	return m, ok
}

// Len returns the number of cached matrices.
func (c *SharedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every cached matrix and releases its accounted memory.
func (c *SharedCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, m := range c.entries {
		c.opts.Resources.ReleaseMemory(m.SizeBytes())
		delete(c.entries, k)
	}
}

// LRUCache is a bounded matrix cache safe for concurrent use. The least
// recently used matrix is evicted once size entries are held.
type LRUCache struct {
	builder

	lru   *lru.Cache[cacheKey, *Matrix]
	group singleflight.Group
}

// NewLRUCache creates an LRUCache holding at most size matrices.
func NewLRUCache(size int, optFns ...func(o *CacheOptions)) (*LRUCache, error) {
	c := &LRUCache{builder: builder{opts: cacheOptions(optFns)}}

	l, err := lru.NewWithEvict(size, func(_ cacheKey, m *Matrix) {
		c.opts.Resources.ReleaseMemory(m.SizeBytes())
	})
	if err != nil {
		return nil, errs.IncompatibleParameters(err.Error())
	}
	c.lru = l

	return c, nil
}

// Matrix implements Cache.
func (c *LRUCache) Matrix(planes, dims int) (*Matrix, error) {
	k := cacheKey{planes: planes, dims: dims}

	if m, ok := c.lru.Get(k); ok {
		return m, nil
	}

	v, err, _ := c.group.Do(k.String(), func() (any, error) {
		if m, ok := c.lru.Get(k); ok {
			return m, nil
		}

		m, err := c.build(k)
		if err != nil {
			return nil, err
		}
		c.lru.Add(k, m)

		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Matrix), nil
}

// Len returns the number of cached matrices.
func (c *LRUCache) Len() int {
	return c.lru.Len()
}

// LocalCache is a matrix cache without any synchronization. It must only
// be used by one goroutine at a time.
type LocalCache struct {
	builder

	entries map[cacheKey]*Matrix
	order   []cacheKey
}

// NewLocalCache creates an empty LocalCache.
func NewLocalCache(optFns ...func(o *CacheOptions)) *LocalCache {
	return &LocalCache{
		builder: builder{opts: cacheOptions(optFns)},
		entries: make(map[cacheKey]*Matrix),
	}
}

// Matrix implements Cache.
func (c *LocalCache) Matrix(planes, dims int) (*Matrix, error) {
	k := cacheKey{planes: planes, dims: dims}
	if m, ok := c.entries[k]; ok {
		return m, nil
	}

	if limit := c.opts.MaxEntries; limit > 0 && len(c.order) >= limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.opts.Resources.ReleaseMemory(c.entries[oldest].SizeBytes())
		delete(c.entries, oldest)
	}

	m, err := c.build(k)
	if err != nil {
		return nil, err
	}
	c.entries[k] = m
	c.order = append(c.order, k)

	return m, nil
}

// Len returns the number of cached matrices.
func (c *LocalCache) Len() int {
	return len(c.entries)
}

// Purge drops every cached matrix and releases its accounted memory.
func (c *LocalCache) Purge() {
	for _, k := range c.order {
		c.opts.Resources.ReleaseMemory(c.entries[k].SizeBytes())
	}
	clear(c.entries)
	c.order = c.order[:0]
}
