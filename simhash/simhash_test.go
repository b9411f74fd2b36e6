package simhash

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/resource"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/testutil"
	"github.com/hupe1980/uubed/validation"
)

func repeat(v byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func TestHashQ64Length(t *testing.T) {
	hash, err := HashQ64(make([]byte, 256), 64)
	require.NoError(t, err)
	assert.Len(t, hash, 16) // 64 bits = 8 bytes = 16 chars
	assert.True(t, q64.Valid(hash))

	hash, err = HashQ64(make([]byte, 10), 10)
	require.NoError(t, err)
	assert.Len(t, hash, 4)
}

func TestDeterministic(t *testing.T) {
	embedding := repeat(100, 32)

	h1, err := HashQ64(embedding, 64)
	require.NoError(t, err)
	h2, err := HashQ64(embedding, 64)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// Independent caches with the same seed agree.
	h3, err := NewHasher(func(o *Options) { o.Cache = NewLocalCache() }).HashQ64(embedding, 64)
	require.NoError(t, err)
	assert.Equal(t, h1, h3)
}

func TestMatrixSeed(t *testing.T) {
	a, err := NewMatrix(4, 8, DefaultSeed)
	require.NoError(t, err)
	b, err := NewMatrix(4, 8, DefaultSeed)
	require.NoError(t, err)
	c, err := NewMatrix(4, 8, 7)
	require.NoError(t, err)

	assert.Equal(t, a.Data, b.Data)
	assert.NotEqual(t, a.Data, c.Data)
	assert.Len(t, a.Row(3), 8)
	assert.Equal(t, int64(4*8*4), a.SizeBytes())
}

func TestMatrixIsRoughlyStandardNormal(t *testing.T) {
	m, err := NewMatrix(64, 256, DefaultSeed)
	require.NoError(t, err)

	samples := make([]float64, len(m.Data))
	for i, v := range m.Data {
		samples[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(samples, nil)
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, std, 0.05)
}

func TestLocality(t *testing.T) {
	base := repeat(100, 32)
	similar := append([]byte(nil), base...)
	similar[0] = 101

	different := make([]byte, len(base))
	for i, v := range base {
		different[i] = 255 - v
	}

	h1, err := Hash(base, 64)
	require.NoError(t, err)
	h2, err := Hash(similar, 64)
	require.NoError(t, err)
	h3, err := Hash(different, 64)
	require.NoError(t, err)

	dSimilar, err := Hamming(h1, h2)
	require.NoError(t, err)
	dDifferent, err := Hamming(h1, h3)
	require.NoError(t, err)

	assert.Less(t, dSimilar, dDifferent)
}

func TestLocalityStatistical(t *testing.T) {
	rng := testutil.NewRNG(11)
	const (
		dims   = 64
		planes = 128
		trials = 100
	)

	var near, far []float64
	for range trials {
		a := rng.Embedding(dims)
		b := rng.Perturb(a, 3)
		c := rng.Embedding(dims)

		ha, err := Hash(a, planes)
		require.NoError(t, err)
		hb, err := Hash(b, planes)
		require.NoError(t, err)
		hc, err := Hash(c, planes)
		require.NoError(t, err)

		dNear, _ := Hamming(ha, hb)
		dFar, _ := Hamming(ha, hc)
		near = append(near, float64(dNear))
		far = append(far, float64(dFar))
	}

	assert.Less(t, stat.Mean(near, nil), stat.Mean(far, nil))
}

func TestBitsMatchHash(t *testing.T) {
	embedding := []byte{10, 20, 30, 40, 50, 60, 70, 80, 90, 200}

	packed, err := Hash(embedding, 12)
	require.NoError(t, err)
	bits, err := Bits(embedding, 12)
	require.NoError(t, err)
	require.Len(t, bits, 12)
	require.Len(t, packed, 2)

	for i, bit := range bits {
		assert.Equal(t, bit, packed[i/8]&(1<<(7-i%8)) != 0, "bit %d", i)
	}
	// Padding bits of the last byte stay zero.
	assert.Zero(t, packed[1]&0x0F)
}

func TestEmptyEmbedding(t *testing.T) {
	packed, err := Hash(nil, 8)
	require.NoError(t, err)
	// Every dot product is zero, which counts as non-negative.
	assert.Equal(t, []byte{0xFF}, packed)
}

func TestValidationErrors(t *testing.T) {
	_, err := HashQ64([]byte{1, 2, 3}, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidPlanes)

	_, err = HashQ64([]byte{1, 2, 3}, validation.MaxSimHashPlanes+1)
	assert.ErrorIs(t, err, errs.ErrInvalidPlanes)

	cache := NewSharedCache()
	h := NewHasher(func(o *Options) { o.Cache = cache })
	_, err = h.HashQ64(make([]byte, validation.MaxSimHashDimensions+1), 8)
	assert.ErrorIs(t, err, errs.ErrDimensionsTooLarge)
	assert.Zero(t, cache.Len(), "no matrix may be allocated for rejected input")
}

func TestOversizedMatrixRejectedBeforeAllocation(t *testing.T) {
	embedding := make([]byte, validation.MaxSimHashDimensions)

	// Each limit holds on its own; the 32 GB product does not.
	_, err := HashQ64(embedding, validation.MaxSimHashPlanes)
	assert.ErrorIs(t, err, errs.ErrMemory)
	assert.Equal(t, errs.CodeMemory, errs.CodeOf(err))

	cache := NewSharedCache()
	h := NewHasher(func(o *Options) { o.Cache = cache })
	_, err = h.Hash(embedding, validation.MaxSimHashPlanes)
	assert.ErrorIs(t, err, errs.ErrMemory)
	assert.Zero(t, cache.Len())
	assert.Zero(t, cache.Generated())

	_, err = cache.Matrix(validation.MaxSimHashPlanes, validation.MaxSimHashDimensions)
	assert.ErrorIs(t, err, errs.ErrMemory)
	assert.Zero(t, cache.Generated())

	_, err = NewMatrix(validation.MaxSimHashPlanes, validation.MaxSimHashDimensions, DefaultSeed)
	assert.ErrorIs(t, err, errs.ErrMemory)
}

func TestHashToBuffer(t *testing.T) {
	embedding := repeat(7, 16)

	want, err := HashQ64(embedding, 64)
	require.NoError(t, err)

	buf := make([]byte, 32)
	n, err := NewHasher().HashToBuffer(embedding, 64, buf)
	require.NoError(t, err)
	assert.Equal(t, want, string(buf[:n]))

	_, err = NewHasher().HashToBuffer(embedding, 64, make([]byte, 15))
	assert.ErrorIs(t, err, errs.ErrBufferOverflow)
}

func TestSharedCacheConcurrentCreation(t *testing.T) {
	cache := NewSharedCache()

	const goroutines = 32
	results := make([]*Matrix, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := cache.Matrix(64, 128)
			assert.NoError(t, err)
			results[i] = m
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), cache.Generated())
	assert.Equal(t, 1, cache.Len())
	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}

func TestConcurrentHashesAgree(t *testing.T) {
	embedding := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	h := NewHasher(func(o *Options) { o.Cache = NewSharedCache() })

	want, err := h.Hash(embedding, 64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := h.Hash(embedding, 64)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestSharedCacheMemoryBudget(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 * 16 * 4})
	cache := NewSharedCache(func(o *CacheOptions) { o.Resources = rc })

	_, err := cache.Matrix(64, 16)
	require.NoError(t, err)
	assert.Equal(t, int64(64*16*4), rc.MemoryUsage())

	_, err = cache.Matrix(64, 17)
	assert.ErrorIs(t, err, errs.ErrMemory)
	assert.Equal(t, errs.CodeMemory, errs.CodeOf(err))

	cache.Purge()
	assert.Zero(t, rc.MemoryUsage())
	_, err = cache.Matrix(8, 8)
	assert.NoError(t, err)
}

func TestLRUCacheEviction(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	cache, err := NewLRUCache(1, func(o *CacheOptions) { o.Resources = rc })
	require.NoError(t, err)

	_, err = cache.Matrix(8, 4)
	require.NoError(t, err)
	_, err = cache.Matrix(8, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, int64(8*5*4), rc.MemoryUsage())

	_, err = cache.Matrix(8, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cache.Generated())

	_, err = NewLRUCache(0)
	assert.ErrorIs(t, err, errs.ErrIncompatibleParameters)
}

func TestLocalCacheMaxEntries(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	cache := NewLocalCache(func(o *CacheOptions) {
		o.Resources = rc
		o.MaxEntries = 2
	})

	for _, dims := range []int{4, 5, 6} {
		_, err := cache.Matrix(8, dims)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, int64(8*5*4+8*6*4), rc.MemoryUsage())

	// The oldest entry (8x4) was dropped and is rebuilt on demand.
	_, err := cache.Matrix(8, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cache.Generated())

	cache.Purge()
	assert.Zero(t, cache.Len())
	assert.Zero(t, rc.MemoryUsage())
}

func TestLRUCacheMatchesShared(t *testing.T) {
	lruCache, err := NewLRUCache(4)
	require.NoError(t, err)

	embedding := []byte{9, 8, 7, 6, 5, 4, 3, 2, 1}
	a, err := NewHasher(func(o *Options) { o.Cache = lruCache }).HashQ64(embedding, 32)
	require.NoError(t, err)
	b, err := HashQ64(embedding, 32)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHamming(t *testing.T) {
	d, err := Hamming([]byte{0xF0, 0x01}, []byte{0x0F, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 8, d)

	_, err = Hamming([]byte{1}, []byte{1, 2})
	assert.ErrorIs(t, err, errs.ErrIncompatibleParameters)

	d, err = HammingQ64(q64.Encode([]byte{0xFF}), q64.Encode([]byte{0x00}))
	require.NoError(t, err)
	assert.Equal(t, 8, d)

	_, err = HammingQ64("A", "AQ")
	assert.ErrorIs(t, err, errs.ErrOddLength)
}

func TestProjectDimensionMismatch(t *testing.T) {
	m, err := NewMatrix(8, 4, DefaultSeed)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Project([]byte{1, 2, 3}, make([]byte, 1)), errs.ErrIncompatibleParameters)
	assert.ErrorIs(t, m.Project([]byte{1, 2, 3, 4}, nil), errs.ErrBufferOverflow)
}
