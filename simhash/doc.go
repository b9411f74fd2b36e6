// Package simhash implements random-hyperplane SimHash over byte embeddings.
//
// Each byte is centred as (b-128)/128 and projected onto planes rows of a
// fixed-seed Gaussian matrix; bit i of the hash is 1 iff the i-th dot
// product is non-negative. Bits are packed most-significant first and the
// packed bytes are Q64-encoded by HashQ64.
//
// Hamming distance between two hashes approximates the angular distance of
// the embeddings. The same (planes, dims, seed) always yields the same matrix
// and therefore the same hash.
//
// # Matrix caches
//
// Matrices are expensive to build and are cached by (planes, dims):
//
//   - SharedCache: unbounded, safe for concurrent use, first-time creation
//     of an entry is computed exactly once.
//   - LRUCache: bounded variant of SharedCache with least-recently-used eviction.
//   - LocalCache: no locking; must be confined to a single goroutine. Trades
//     duplicated memory for zero lock contention.
package simhash
