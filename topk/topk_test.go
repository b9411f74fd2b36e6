package topk

import (
	"context"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/testutil"
	"github.com/hupe1980/uubed/validation"
)

// reference is the obvious full-sort implementation.
func reference(embedding []byte, k int) []byte {
	idx := make([]int, len(embedding))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return embedding[idx[a]] > embedding[idx[b]]
	})
	idx = idx[:min(k, len(idx))]
	return finish(idx, k)
}

func TestIndices(t *testing.T) {
	tests := []struct {
		name      string
		embedding []byte
		k         int
		want      []byte
	}{
		{"basic", []byte{10, 50, 30, 80, 20, 90, 40, 70}, 3, []byte{3, 5, 7}},
		{"padding", []byte{10, 20, 30}, 5, []byte{0, 1, 2, 255, 255}},
		{"empty", nil, 3, []byte{255, 255, 255}},
		{"k zero", []byte{1, 2, 3}, 0, []byte{}},
		{"ties lowest index", []byte{5, 5, 5, 5}, 2, []byte{0, 1}},
		{"ties mixed", []byte{1, 9, 3, 9, 9}, 2, []byte{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indices(tt.embedding, tt.k))
			assert.Equal(t, tt.want, IndicesOptimized(tt.embedding, tt.k))
		})
	}
}

func TestIndicesClampsLargeIndices(t *testing.T) {
	data := make([]byte, 300)
	data[100] = 255
	data[200] = 200
	data[299] = 150

	assert.Equal(t, []byte{100, 200, 255}, Indices(data, 3))
	assert.Equal(t, []byte{100, 200, 255}, IndicesOptimized(data, 3))
	assert.Equal(t, []uint32{100, 200, 299}, IndicesWide(data, 3))
}

func TestStrategiesAgree(t *testing.T) {
	rng := testutil.NewRNG(3)

	for _, n := range []int{1, 7, 64, 255, 256, 257, 1000, 4096} {
		for _, k := range []int{1, 3, 4, 5, 16, 17, 64, 300} {
			embedding := rng.NarrowEmbedding(n, 16)

			want := reference(embedding, k)
			assert.Equal(t, want, Indices(embedding, k), "basic n=%d k=%d", n, k)
			assert.Equal(t, want, IndicesOptimized(embedding, k), "optimized n=%d k=%d", n, k)
			for _, s := range []Strategy{StrategyNth, StrategyHeap, StrategyChunked} {
				assert.Equal(t, want, IndicesWith(s, embedding, k), "%s n=%d k=%d", s, n, k)
			}
		}
	}
}

func TestSelectChunkedSmallChunks(t *testing.T) {
	embedding := []byte{3, 9, 1, 9, 7, 2, 8, 0, 9, 4}

	got, err := SelectChunked(t.Context(), embedding, 4, 3)
	require.NoError(t, err)
	slices.Sort(got)
	assert.Equal(t, []int{1, 3, 6, 8}, got)
}

func TestSelectChunkedCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := SelectChunked(ctx, make([]byte, 1024), 32, 256)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParallelProcessingFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChoose(t *testing.T) {
	tests := []struct {
		n, k int
		want Strategy
	}{
		{8, 3, StrategyNth},
		{256, 4, StrategyNth},
		{256, 65, StrategyNth},
		{256, 32, StrategyHeap},
		{100, 20, StrategyHeap},
		{257, 16, StrategyHeap},
		{10000, 3, StrategyHeap},
		{257, 17, StrategyChunked},
		{10000, 100, StrategyChunked},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Choose(tt.n, tt.k), "n=%d k=%d", tt.n, tt.k)
	}
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, SmallThreshold, ChunkSize(10))
	assert.GreaterOrEqual(t, ChunkSize(1<<20), SmallThreshold)
}

func TestEncodeQ64(t *testing.T) {
	data := []byte{10, 50, 30, 80, 20, 90, 40, 70}

	encoded := EncodeQ64(data, 8)
	assert.Len(t, encoded, 16)

	decoded, err := q64.Decode(EncodeQ64(data, 3))
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 5, 7}, decoded)

	assert.Equal(t, EncodeQ64(data, 3), EncodeQ64Optimized(data, 3))
	assert.Empty(t, EncodeQ64(data, 0))
}

func TestEncodeToBuffer(t *testing.T) {
	data := []byte{10, 50, 30, 80, 20, 90, 40, 70}

	buf := make([]byte, 6)
	n, err := EncodeToBuffer(data, 3, buf)
	require.NoError(t, err)
	assert.Equal(t, EncodeQ64(data, 3), string(buf[:n]))

	small := make([]byte, 5)
	_, err = EncodeToBuffer(data, 3, small)
	assert.ErrorIs(t, err, errs.ErrBufferOverflow)
	assert.Equal(t, make([]byte, 5), small)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte{1, 2}, 5))
	assert.ErrorIs(t, Validate([]byte{1}, validation.MaxK+1), errs.ErrKTooLarge)
	assert.ErrorIs(t, Validate([]byte{1}, -1), errs.ErrInvalidK)
	assert.ErrorIs(t, Validate(make([]byte, validation.MaxEmbeddingSize+1), 1), errs.ErrEmbeddingTooLarge)
}

func TestSetAndJaccard(t *testing.T) {
	a := Set([]byte{10, 50, 30, 80, 20, 90, 40, 70}, 3)
	b := Set([]byte{10, 50, 30, 80, 20, 90, 40, 75}, 3)
	c := Set([]byte{90, 80, 70, 0, 0, 0, 0, 0}, 3)

	assert.Equal(t, []uint32{3, 5, 7}, a.ToArray())
	assert.InDelta(t, 1.0, Jaccard(a, b), 1e-9)
	assert.InDelta(t, 0.0, Jaccard(a, c), 1e-9)
	assert.InDelta(t, 1.0, Jaccard(Set(nil, 3), Set(nil, 3)), 1e-9)
}

func TestCandidateHeap(t *testing.T) {
	h := newCandidateHeap(3)
	for i, v := range []byte{4, 8, 1, 8, 6, 2} {
		h.PushBounded(entry{index: i, value: v}, 3)
	}
	require.Equal(t, 3, h.Len())

	got := indicesOf(h.items)
	slices.Sort(got)
	assert.Equal(t, []int{1, 3, 4}, got)

	// The root is the worst retained candidate.
	assert.Equal(t, entry{index: 4, value: 6}, h.items[0])
}
