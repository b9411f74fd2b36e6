// Package mq64 implements Matryoshka QuadB64: a hierarchical encoding whose
// ':'-separated segments are the Q64 encodings of successively longer
// prefixes of the same data.
//
// The coarse segments allow prefix comparison at several resolutions without
// decoding; Decode only returns the bytes of the final (full) segment.
package mq64

import (
	"fmt"
	"strings"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
)

// Separator joins the segments of an Mq64 string.
const Separator = ":"

// BaseLevel is the first default level in bytes.
const BaseLevel = 64

// DefaultLevels returns the level list used by Encode for n bytes of data:
// 64, 128, 256, ... while smaller than n, followed by n itself.
func DefaultLevels(n int) []int {
	var levels []int
	for l := BaseLevel; l < n; l *= 2 {
		levels = append(levels, l)
	}
	return append(levels, n)
}

// Encode encodes data with DefaultLevels.
func Encode(data []byte) string {
	return EncodeWithLevels(data, DefaultLevels(len(data)))
}

// EncodeWithLevels encodes data at the given prefix lengths. Levels larger
// than len(data) are skipped, so an input shorter than every level yields
// the empty string.
func EncodeWithLevels(data []byte, levels []int) string {
	size := 0
	for _, l := range levels {
		if l >= 0 && l <= len(data) {
			size += q64.EncodedLen(l) + len(Separator)
		}
	}
	if size == 0 {
		return ""
	}

	buf := make([]byte, 0, size)
	first := true
	for _, l := range levels {
		if l < 0 || l > len(data) {
			continue
		}
		if !first {
			buf = append(buf, Separator...)
		}
		first = false
		buf = q64.AppendEncode(buf, data[:l])
	}
	return string(buf)
}

// Decode returns the bytes of the last segment.
//
// Earlier segments are not inspected, so a malformed coarse segment goes
// unnoticed; use DecodeStrict to check them as well.
func Decode(s string) ([]byte, error) {
	last := s
	if i := strings.LastIndex(s, Separator); i >= 0 {
		last = s[i+len(Separator):]
	}
	return q64.Decode(last)
}

// DecodeStrict decodes like Decode but also requires every earlier segment to
// be valid Q64 and a prefix of the final data.
func DecodeStrict(s string) ([]byte, error) {
	segments := Segments(s)
	data, err := q64.Decode(segments[len(segments)-1])
	if err != nil {
		return nil, err
	}

	full := segments[len(segments)-1]
	for i, seg := range segments[:len(segments)-1] {
		if err := q64.Validate(seg); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if !strings.HasPrefix(full, seg) {
			return nil, errs.InvalidInputValues(fmt.Sprintf("segment %d is not a prefix of the final segment", i))
		}
	}
	return data, nil
}

// Segments splits s into its Q64 segments, coarsest first. It always returns
// at least one element.
func Segments(s string) []string {
	return strings.Split(s, Separator)
}
