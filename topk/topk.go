package topk

import (
	"context"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/validation"
)

// Padding fills slots beyond the number of available indices. It is also
// the clamped value of every index >= 255.
const Padding = 255

// Strategy identifies a selection algorithm.
type Strategy int

const (
	// StrategyNth is in-place partial selection.
	StrategyNth Strategy = iota
	// StrategyHeap is a single bounded min-heap scan.
	StrategyHeap
	// StrategyChunked is the concurrent per-chunk heap search.
	StrategyChunked
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNth:
		return "nth"
	case StrategyHeap:
		return "heap"
	case StrategyChunked:
		return "chunked"
	default:
		return "unknown"
	}
}

// Choose returns the strategy IndicesOptimized runs for an embedding of
// n values and the given k.
func Choose(n, k int) Strategy {
	switch {
	case n <= SmallThreshold:
		kc := min(k, n)
		if kc <= 4 || float64(kc)/float64(n) > 0.25 {
			return StrategyNth
		}
		return StrategyHeap
	case k <= 16:
		return StrategyHeap
	default:
		return StrategyChunked
	}
}

// Indices returns the ascending indices of the k largest values, padded to
// length k with Padding. Embeddings up to 256 values use partial selection,
// longer ones are searched in chunks of 256. A non-positive k yields an
// empty slice.
func Indices(embedding []byte, k int) []byte {
	if k <= 0 {
		return []byte{}
	}

	var idx []int
	if len(embedding) <= SmallThreshold {
		idx = SelectNth(embedding, k)
	} else {
		// Cannot fail without cancellation.
		idx, _ = SelectChunked(context.Background(), embedding, k, SmallThreshold)
	}

	return finish(idx, k)
}

// IndicesOptimized returns the same result as Indices, choosing the
// strategy with Choose.
func IndicesOptimized(embedding []byte, k int) []byte {
	if k <= 0 {
		return []byte{}
	}
	return finish(selectOptimized(embedding, k), k)
}

// IndicesWith runs the given strategy and formats its result like Indices.
func IndicesWith(s Strategy, embedding []byte, k int) []byte {
	if k <= 0 {
		return []byte{}
	}

	var idx []int
	switch s {
	case StrategyHeap:
		idx = SelectHeap(embedding, k)
	case StrategyChunked:
		idx, _ = SelectChunked(context.Background(), embedding, k, 0)
	default:
		idx = SelectNth(embedding, k)
	}

	return finish(idx, k)
}

// IndicesWide returns the exact ascending indices of the min(k, len)
// largest values, without clamping or padding.
func IndicesWide(embedding []byte, k int) []uint32 {
	if k <= 0 || len(embedding) == 0 {
		return []uint32{}
	}

	idx := selectOptimized(embedding, k)
	slices.Sort(idx)

	out := make([]uint32, len(idx))
	for i, v := range idx {
		out[i] = uint32(v)
	}
	return out
}

func selectOptimized(embedding []byte, k int) []int {
	if len(embedding) == 0 {
		return nil
	}

	switch Choose(len(embedding), k) {
	case StrategyNth:
		return SelectNth(embedding, k)
	case StrategyHeap:
		return SelectHeap(embedding, k)
	default:
		idx, _ := SelectChunked(context.Background(), embedding, k, 0)
		return idx
	}
}

// finish clamps, sorts and pads raw indices to k bytes.
func finish(idx []int, k int) []byte {
	out := make([]byte, k)
	for i, v := range idx {
		out[i] = byte(min(v, Padding))
	}
	slices.Sort(out[:len(idx)])
	for i := len(idx); i < k; i++ {
		out[i] = Padding
	}
	return out
}

// EncodeQ64 returns the Q64 encoding of Indices (2k characters).
func EncodeQ64(embedding []byte, k int) string {
	return q64.Encode(Indices(embedding, k))
}

// EncodeQ64Optimized returns the Q64 encoding of IndicesOptimized.
func EncodeQ64Optimized(embedding []byte, k int) string {
	return q64.Encode(IndicesOptimized(embedding, k))
}

// EncodeToBuffer writes the Q64 encoding of IndicesOptimized into buf and
// returns the number of bytes written. Nothing is written on error.
func EncodeToBuffer(embedding []byte, k int, buf []byte) (int, error) {
	if need := q64.EncodedLen(max(k, 0)); len(buf) < need {
		return 0, errs.BufferOverflow(need, len(buf))
	}
	return q64.EncodeToBuffer(IndicesOptimized(embedding, k), buf)
}

// Validate checks k and the embedding size against the documented limits.
func Validate(embedding []byte, k int) error {
	if k > validation.MaxK {
		return errs.KTooLarge(k, validation.MaxK)
	}
	if k < 0 {
		return errs.InvalidK(k)
	}
	if len(embedding) > validation.MaxEmbeddingSize {
		return errs.EmbeddingTooLarge(len(embedding), validation.MaxEmbeddingSize)
	}
	return nil
}

// Set returns the exact top-k indices as a bitmap.
func Set(embedding []byte, k int) *roaring.Bitmap {
	bm := roaring.New()
	bm.AddMany(IndicesWide(embedding, k))
	return bm
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets are identical.
func Jaccard(a, b *roaring.Bitmap) float64 {
	union := a.OrCardinality(b)
	if union == 0 {
		return 1
	}
	return float64(a.AndCardinality(b)) / float64(union)
}
