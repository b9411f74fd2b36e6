// Package testutil provides testing utilities for uubed.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible byte embeddings,
// near-duplicate embeddings and tie-heavy inputs.
//
//	rng := testutil.NewRNG(seed)
//	emb := rng.Embedding(256)          // uniform bytes
//	near := rng.Perturb(emb, 3)        // each byte moved by at most 3
//	ties := rng.NarrowEmbedding(64, 16) // values in [0, 16)
package testutil
