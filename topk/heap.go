package topk

// entry is a candidate value together with its position in the embedding.
type entry struct {
	index int
	value byte
}

// better reports whether e ranks above o: larger value first, then lower index.
func (e entry) better(o entry) bool {
	if e.value != o.value {
		return e.value > o.value
	}
	return e.index < o.index
}

// candidateHeap is a min-heap holding the best candidates seen so far.
// The top is the worst retained candidate.
// It does NOT implement container/heap to avoid interface overhead.
type candidateHeap struct {
	items []entry
}

func newCandidateHeap(capacity int) *candidateHeap {
	return &candidateHeap{items: make([]entry, 0, capacity)}
}

// Len returns the number of retained candidates.
func (h *candidateHeap) Len() int {
	return len(h.items)
}

// PushBounded inserts e into a heap of at most capacity items.
// If the heap is full and e is worse than the top, it is skipped.
// If the heap is full and e is better, the top is replaced.
func (h *candidateHeap) PushBounded(e entry, capacity int) {
	if len(h.items) < capacity {
		h.items = append(h.items, e)
		h.siftUp(len(h.items) - 1)
		return
	}
	if capacity == 0 || !e.better(h.items[0]) {
		return
	}
	h.items[0] = e
	h.siftDown(0)
}

// less orders the heap so the worst candidate sits at the root.
func (h *candidateHeap) less(i, j int) bool {
	return h.items[j].better(h.items[i])
}

func (h *candidateHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *candidateHeap) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && h.less(right, left) {
			child = right
		}
		if !h.less(child, i) {
			break
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
}
