// Package uubed turns byte embeddings into position-safe strings usable as
// search-engine tokens, cache keys or compact fingerprints.
//
// # Encodings
//
//   - Q64: lossless. Each byte becomes two characters; the alphabet of a
//     character depends on its position mod 4, so an encoded substring can
//     never match at a misaligned offset.
//   - Mq64: Q64 of successively longer prefixes joined by ':' for coarse to
//     fine comparison.
//   - SimHash: random-hyperplane LSH. Similar embeddings share most bits.
//   - Top-k: the sorted indices of the k largest values.
//   - Z-order: a 32-bit Morton key. Close embeddings share code prefixes.
//
// # Quick Start
//
//	s := uubed.Q64Encode([]byte{0x12, 0x34}) // "BSj0"
//	data, err := uubed.Q64Decode(s)
//
//	hash, err := uubed.SimHashQ64(embedding, 64)
//	top, err := uubed.TopKQ64(embedding, 8)
//	key := uubed.ZOrderQ64(embedding)
//
// An Encoder fixes the parameters of every method and validates input
// before encoding:
//
//	enc := uubed.NewEncoder(uubed.WithPlanes(128), uubed.WithK(16))
//	out, err := enc.Encode(ctx, uubed.MethodSimHash, embedding)
//
// # Batches
//
// BatchProcessor fans embeddings out over a bounded worker pool and keeps
// the input order:
//
//	p := uubed.NewBatchProcessor(uubed.WithThreads(8), uubed.WithRateLimit(50_000))
//	hashes, err := p.EncodeSimHash(ctx, embeddings, 64)
//
// # Errors
//
// Every failure is an *errs.Error. ErrorCode maps it to a stable numeric
// code for callers outside Go.
//
// # Kernels
//
// Q64 encoding and Hamming distances use word-parallel kernels when the CPU
// has a native 64-bit popcount. Set UUBED_SIMD=generic or UUBED_SIMD=wide to
// force a kernel family.
package uubed
