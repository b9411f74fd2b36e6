package simd

import "encoding/binary"

// BlockSize is the number of input bytes consumed per wide-kernel iteration.
const BlockSize = 16

const lowNibbles = 0x0F0F0F0F0F0F0F0F

var splitNibblesImpl = splitNibblesGeneric

// SplitNibbles writes the high nibble of src[i] to hi[i] and the low nibble
// to lo[i].
//
// Assumes len(hi) >= len(src) and len(lo) >= len(src). Caller's responsibility.
func SplitNibbles(src, hi, lo []byte) {
	splitNibblesImpl(src, hi, lo)
}

// SplitNibblesGeneric is the reference byte-at-a-time implementation.
func SplitNibblesGeneric(src, hi, lo []byte) {
	splitNibblesGeneric(src, hi, lo)
}

func splitNibblesGeneric(src, hi, lo []byte) {
	for i, b := range src {
		hi[i] = b >> 4
		lo[i] = b & 0x0F
	}
}

// splitNibblesWide handles BlockSize bytes per iteration as two 64-bit lanes
// and finishes the remainder with the generic kernel.
func splitNibblesWide(src, hi, lo []byte) {
	n := len(src) - len(src)%BlockSize
	for i := 0; i < n; i += BlockSize {
		w0 := binary.LittleEndian.Uint64(src[i:])
		w1 := binary.LittleEndian.Uint64(src[i+8:])

		binary.LittleEndian.PutUint64(hi[i:], (w0>>4)&lowNibbles)
		binary.LittleEndian.PutUint64(hi[i+8:], (w1>>4)&lowNibbles)
		binary.LittleEndian.PutUint64(lo[i:], w0&lowNibbles)
		binary.LittleEndian.PutUint64(lo[i+8:], w1&lowNibbles)
	}
	if n < len(src) {
		splitNibblesGeneric(src[n:], hi[n:], lo[n:])
	}
}
