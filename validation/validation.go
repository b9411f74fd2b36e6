// Package validation enforces the documented input limits before any codec
// runs. Every check is fail-fast and allocation-free.
package validation

import (
	"fmt"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
)

const (
	// MaxEmbeddingSize is the largest accepted embedding (16 MiB).
	MaxEmbeddingSize = 16 << 20

	// MaxK is the largest accepted k for top-k selection.
	MaxK = 100_000

	// MaxSimHashPlanes is the largest accepted SimHash plane count.
	MaxSimHashPlanes = 8192

	// MaxSimHashDimensions is the widest embedding accepted by SimHash.
	MaxSimHashDimensions = 1_000_000

	// MaxMatrixBytes caps a single SimHash projection matrix (1 GiB).
	// Planes and dimensions may each be within their limits while their
	// product is not.
	MaxMatrixBytes = 1 << 30
)

// Embedding rejects empty or oversized embeddings.
func Embedding(embedding []byte, op string) error {
	if len(embedding) == 0 {
		return errs.EmptyInput(op)
	}
	return EmbeddingSize(len(embedding), op)
}

// EmbeddingSize rejects sizes above MaxEmbeddingSize. Zero is allowed.
func EmbeddingSize(n int, op string) error {
	if n > MaxEmbeddingSize {
		return errs.InputTooLarge(n, MaxEmbeddingSize, op)
	}
	return nil
}

// K rejects k values outside [1, MaxK].
func K(k int) error {
	if k <= 0 {
		return errs.InvalidK(k)
	}
	if k > MaxK {
		return errs.KTooLarge(k, MaxK)
	}
	return nil
}

// SimHashParams rejects plane counts outside [1, MaxSimHashPlanes],
// dimensions above MaxSimHashDimensions and combinations whose projection
// matrix would exceed MaxMatrixBytes.
func SimHashParams(planes, dims int) error {
	if planes <= 0 || planes > MaxSimHashPlanes {
		return errs.InvalidPlanes(planes, MaxSimHashPlanes)
	}
	if dims > MaxSimHashDimensions {
		return errs.DimensionsTooLarge(dims, MaxSimHashDimensions)
	}
	if size := MatrixBytes(planes, dims); size > MaxMatrixBytes {
		return errs.Memory(fmt.Sprintf("projection matrix %dx%d needs %d bytes, limit is %d",
			planes, dims, size, MaxMatrixBytes), nil)
	}
	return nil
}

// MatrixBytes returns the size of a planes x dims float32 matrix.
func MatrixBytes(planes, dims int) int64 {
	return int64(planes) * int64(dims) * 4
}

// Q64String performs full alphabet-aware validation of s.
func Q64String(s string) error {
	return q64.Validate(s)
}

// Levels rejects Mq64 level lists that are empty, non-positive or not
// strictly increasing.
func Levels(levels []int) error {
	if len(levels) == 0 {
		return errs.EmptyInput("mq64 levels")
	}
	prev := 0
	for i, l := range levels {
		if l <= 0 {
			return errs.InvalidInputValues(fmt.Sprintf("level %d at index %d must be positive", l, i))
		}
		if l <= prev {
			return errs.IncompatibleParameters(fmt.Sprintf("levels must be strictly increasing: %d follows %d", l, prev))
		}
		prev = l
	}
	return nil
}
