package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Fill fills dst with uniform random bytes.
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Embedding returns a uniform random embedding of the given length.
func (r *RNG) Embedding(dims int) []byte {
	e := make([]byte, dims)
	r.Fill(e)
	return e
}

// Embeddings returns num uniform random embeddings backed by one allocation.
func (r *RNG) Embeddings(num, dims int) [][]byte {
	data := make([]byte, num*dims)
	r.Fill(data)

	out := make([][]byte, num)
	for i := range out {
		out[i] = data[i*dims : (i+1)*dims : (i+1)*dims]
	}
	return out
}

// NarrowEmbedding returns an embedding with values in [0, maxValue).
// Small ranges produce many ties.
func (r *RNG) NarrowEmbedding(dims, maxValue int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := make([]byte, dims)
	for i := range e {
		e[i] = byte(r.rand.Intn(maxValue))
	}
	return e
}

// Perturb returns a copy of e where every byte is shifted by a random
// delta in [-maxDelta, maxDelta], saturating at 0 and 255.
func (r *RNG) Perturb(e []byte, maxDelta int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, len(e))
	for i, b := range e {
		delta := r.rand.Intn(2*maxDelta+1) - maxDelta
		out[i] = byte(min(255, max(0, int(b)+delta)))
	}
	return out
}
