package topk

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/uubed/errs"
)

// SmallThreshold is the largest embedding handled without chunking.
const SmallThreshold = 256

// SelectNth returns the indices of the k best values using in-place partial
// selection. The result is in no particular order.
func SelectNth(embedding []byte, k int) []int {
	k = min(k, len(embedding))
	if k <= 0 {
		return []int{}
	}

	items := entries(embedding, 0)
	partialSelect(items, k)

	return indicesOf(items[:k])
}

// SelectHeap returns the indices of the k best values using a bounded
// min-heap. The result is in no particular order.
func SelectHeap(embedding []byte, k int) []int {
	k = min(k, len(embedding))
	if k <= 0 {
		return []int{}
	}

	h := newCandidateHeap(k)
	for i, v := range embedding {
		h.PushBounded(entry{index: i, value: v}, k)
	}

	return indicesOf(h.items)
}

// SelectChunked splits embedding into chunks of chunkSize, selects the local
// top k of every chunk concurrently and runs a final selection over the
// merged candidates. A non-positive chunkSize selects ChunkSize(len(embedding)).
// The result is in no particular order.
func SelectChunked(ctx context.Context, embedding []byte, k, chunkSize int) ([]int, error) {
	k = min(k, len(embedding))
	if k <= 0 {
		return []int{}, nil
	}
	if chunkSize <= 0 {
		chunkSize = ChunkSize(len(embedding))
	}

	numChunks := (len(embedding) + chunkSize - 1) / chunkSize
	local := make([][]entry, numChunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for c := range numChunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := c * chunkSize
			end := min(start+chunkSize, len(embedding))
			localK := min(k, end-start)

			h := newCandidateHeap(localK)
			for i := start; i < end; i++ {
				h.PushBounded(entry{index: i, value: embedding[i]}, localK)
			}
			local[c] = h.items

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errs.ParallelProcessingFailed(err)
	}

	var total int
	for _, l := range local {
		total += len(l)
	}
	candidates := make([]entry, 0, total)
	for _, l := range local {
		candidates = append(candidates, l...)
	}

	partialSelect(candidates, k)

	return indicesOf(candidates[:k]), nil
}

// ChunkSize returns the chunk size used for an embedding of n values:
// n split evenly across GOMAXPROCS, but never below SmallThreshold.
func ChunkSize(n int) int {
	workers := runtime.GOMAXPROCS(0)
	return max(SmallThreshold, (n+workers-1)/workers)
}

func entries(embedding []byte, base int) []entry {
	items := make([]entry, len(embedding))
	for i, v := range embedding {
		items[i] = entry{index: base + i, value: v}
	}
	return items
}

func indicesOf(items []entry) []int {
	out := make([]int, len(items))
	for i, e := range items {
		out[i] = e.index
	}
	return out
}

// partialSelect rearranges items so that items[:k] hold the k best entries.
func partialSelect(items []entry, k int) {
	if k <= 0 || k >= len(items) {
		return
	}

	lo, hi := 0, len(items)-1
	for lo < hi {
		p := partition(items, lo, hi)
		switch {
		case p == k-1:
			return
		case p < k-1:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition uses a median-of-three pivot and returns its final position.
// Entries before it rank better, entries after it rank worse.
func partition(items []entry, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if items[mid].better(items[lo]) {
		items[lo], items[mid] = items[mid], items[lo]
	}
	if items[hi].better(items[lo]) {
		items[lo], items[hi] = items[hi], items[lo]
	}
	if items[hi].better(items[mid]) {
		items[mid], items[hi] = items[hi], items[mid]
	}
	items[mid], items[hi] = items[hi], items[mid]

	pivot := items[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if items[j].better(pivot) {
			items[i], items[j] = items[j], items[i]
			i++
		}
	}
	items[i], items[hi] = items[hi], items[i]

	return i
}
