// Package zorder builds fixed-width Z-order (Morton) keys from embeddings.
//
// Every encoder quantizes each dimension to its most significant bits and
// packs them into a 32-bit code rendered big-endian and Q64-encoded, so the
// output is always 8 characters. Embeddings that agree on the high bits of
// their leading dimensions share longer code prefixes.
package zorder

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/q64"
)

const (
	// CodeBytes is the size of a rendered code.
	CodeBytes = 4

	// EncodedLen is the length of every Q64-encoded code.
	EncodedLen = 2 * CodeBytes

	// MaxDims is the number of dimensions used by Code.
	MaxDims = 16

	// MaxDimsExtended is the number of dimensions used by CodeExtended.
	MaxDimsExtended = 8
)

// Code takes the top 2 bits of up to the first 16 dimensions. Dimension d
// contributes its bit 0 at position 2d and its bit 1 at position 2d+1.
func Code(embedding []byte) uint32 {
	var code uint32
	for d, b := range embedding[:min(len(embedding), MaxDims)] {
		v := uint32(b>>6) & 0b11
		code |= (v & 0b01) << (2 * d)
		code |= ((v & 0b10) >> 1) << (2*d + 1)
	}
	return code
}

// CodeExtended takes the top 4 bits of up to the first 8 dimensions. Bit b
// of dimension d lands at position 8b+d.
func CodeExtended(embedding []byte) uint32 {
	var code uint32
	for d, b := range embedding[:min(len(embedding), MaxDimsExtended)] {
		v := uint32(b>>4) & 0b1111
		for bit := range 4 {
			code |= ((v >> bit) & 1) << (bit*8 + d)
		}
	}
	return code
}

var (
	mortonX = [4]uint32{0b0000, 0b0001, 0b0100, 0b0101}
	mortonY = [4]uint32{0b0000, 0b0010, 0b1000, 0b1010}
)

// CodePairs interleaves the top 2 bits of up to 16 dimensions pairwise
// with lookup tables: dimensions 2i and 2i+1 form a 4-bit Morton cell at
// position 4i. A missing odd dimension counts as zero.
func CodePairs(embedding []byte) uint32 {
	n := min(len(embedding), MaxDims)

	var code uint32
	for i := 0; i < n; i += 2 {
		x := embedding[i] >> 6
		var y byte
		if i+1 < n {
			y = embedding[i+1] >> 6
		}
		code |= (mortonX[x] | mortonY[y]) << (2 * i)
	}
	return code
}

// CodeBits quantizes dimensions to their top bitsPerDim bits and
// interleaves the first 32/bitsPerDim of them bit-plane major: bit b of
// dimension d lands at position b*dims+d. CodeBits(e, 4) equals
// CodeExtended(e).
func CodeBits(embedding []byte, bitsPerDim int) (uint32, error) {
	if bitsPerDim < 1 || bitsPerDim > 8 {
		return 0, errs.UnsuitableDimensions(len(embedding), fmt.Sprintf("%d bits per dimension not in [1, 8]", bitsPerDim))
	}

	dims := 32 / bitsPerDim
	coords := make([]uint32, dims)
	for d, b := range embedding[:min(len(embedding), dims)] {
		coords[d] = uint32(b >> (8 - bitsPerDim))
	}

	return Interleave(coords, bitsPerDim)
}

// Interleave packs len(coords) values of bits bits each into one code,
// bit-plane major. It fails when the layout needs more than 32 bits or a
// coordinate does not fit into bits bits.
func Interleave(coords []uint32, bits int) (uint32, error) {
	if bits < 1 || len(coords)*bits > 32 {
		return 0, errs.UnsuitableDimensions(len(coords), fmt.Sprintf("%d dimensions x %d bits exceed 32 bits", len(coords), bits))
	}

	dims := len(coords)
	var code uint32
	for d, c := range coords {
		if c>>bits != 0 {
			return 0, errs.BitOverflow(uint64(c), bits)
		}
		for b := range bits {
			code |= ((c >> b) & 1) << (b*dims + d)
		}
	}
	return code, nil
}

// Deinterleave is the inverse of Interleave.
func Deinterleave(code uint32, dims, bits int) ([]uint32, error) {
	if dims < 1 || bits < 1 || dims*bits > 32 {
		return nil, errs.UnsuitableDimensions(dims, fmt.Sprintf("%d dimensions x %d bits exceed 32 bits", dims, bits))
	}

	coords := make([]uint32, dims)
	for d := range coords {
		for b := range bits {
			coords[d] |= ((code >> (b*dims + d)) & 1) << b
		}
	}
	return coords, nil
}

// Bytes renders a code big-endian.
func Bytes(code uint32) [CodeBytes]byte {
	var out [CodeBytes]byte
	binary.BigEndian.PutUint32(out[:], code)
	return out
}

// Encode returns the Q64 encoding of Code. The result is always 8 characters.
func Encode(embedding []byte) string {
	b := Bytes(Code(embedding))
	return q64.Encode(b[:])
}

// EncodeExtended returns the Q64 encoding of CodeExtended.
func EncodeExtended(embedding []byte) string {
	b := Bytes(CodeExtended(embedding))
	return q64.Encode(b[:])
}

// EncodeToBuffer writes Encode(embedding) into buf and returns the number
// of bytes written. Nothing is written on error.
func EncodeToBuffer(embedding []byte, buf []byte) (int, error) {
	b := Bytes(Code(embedding))
	return q64.EncodeToBuffer(b[:], buf)
}

// CommonPrefix returns the length of the longest common prefix of two
// encoded codes, a coarse proximity measure for prefix range queries.
func CommonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
