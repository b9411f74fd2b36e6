// Package topk encodes an embedding as the sorted indices of its k largest
// values.
//
// Three selection strategies are available and always agree on the result:
// partial selection (StrategyNth), a bounded min-heap (StrategyHeap) and a
// concurrent chunked heap search (StrategyChunked). Values are ranked
// descending; among equal values the lowest index wins.
//
// Emitted indices are bytes. Indices of 256 and above are clamped to 255 and
// missing slots are padded with 255, so for embeddings longer than 256
// elements the encoding loses precision. IndicesWide returns the exact
// indices for callers that need them.
package topk
