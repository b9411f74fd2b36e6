package uubed

import (
	"github.com/hupe1980/uubed/mq64"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/simhash"
	"github.com/hupe1980/uubed/topk"
	"github.com/hupe1980/uubed/zorder"
)

// Q64Encode encodes data losslessly. The result has 2*len(data) characters.
func Q64Encode(data []byte) string {
	return q64.Encode(data)
}

// Q64Decode decodes a Q64 string.
func Q64Decode(s string) ([]byte, error) {
	return q64.Decode(s)
}

// Q64EncodeToBuffer writes the encoding of data into buf without allocating.
func Q64EncodeToBuffer(data, buf []byte) (int, error) {
	return q64.EncodeToBuffer(data, buf)
}

// Mq64Encode encodes data at the default doubling levels.
func Mq64Encode(data []byte) string {
	return mq64.Encode(data)
}

// Mq64EncodeWithLevels encodes data at explicit prefix levels, in the order
// given. Levels longer than data are skipped; with no usable level the
// result is empty.
func Mq64EncodeWithLevels(data []byte, levels []int) string {
	return mq64.EncodeWithLevels(data, levels)
}

// Mq64Decode decodes the full-resolution segment of an Mq64 string.
func Mq64Decode(s string) ([]byte, error) {
	return mq64.Decode(s)
}

// SimHashQ64 returns the Q64-encoded planes-bit SimHash of embedding.
func SimHashQ64(embedding []byte, planes int) (string, error) {
	return simhash.HashQ64(embedding, planes)
}

// SimHashQ64ToBuffer writes SimHashQ64 into buf.
func SimHashQ64ToBuffer(embedding []byte, planes int, buf []byte) (int, error) {
	return simhash.NewHasher().HashToBuffer(embedding, planes, buf)
}

// TopKQ64 returns the Q64-encoded sorted indices of the k largest values.
func TopKQ64(embedding []byte, k int) (string, error) {
	if err := topk.Validate(embedding, k); err != nil {
		return "", err
	}
	return topk.EncodeQ64(embedding, k), nil
}

// TopKQ64Optimized is TopKQ64 with adaptive strategy selection. The output
// is identical.
func TopKQ64Optimized(embedding []byte, k int) (string, error) {
	if err := topk.Validate(embedding, k); err != nil {
		return "", err
	}
	return topk.EncodeQ64Optimized(embedding, k), nil
}

// TopKQ64ToBuffer writes TopKQ64 into buf.
func TopKQ64ToBuffer(embedding []byte, k int, buf []byte) (int, error) {
	if err := topk.Validate(embedding, k); err != nil {
		return 0, err
	}
	return topk.EncodeToBuffer(embedding, k, buf)
}

// ZOrderQ64 returns the 8-character Z-order key of embedding.
func ZOrderQ64(embedding []byte) string {
	return zorder.Encode(embedding)
}

// ZOrderQ64ToBuffer writes ZOrderQ64 into buf.
func ZOrderQ64ToBuffer(embedding []byte, buf []byte) (int, error) {
	return zorder.EncodeToBuffer(embedding, buf)
}
