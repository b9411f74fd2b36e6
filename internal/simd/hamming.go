package simd

import (
	"encoding/binary"
	"math/bits"
)

var hammingImpl = hammingGeneric

// Hamming computes the Hamming distance between a and b.
//
// Assumes len(a) == len(b). Caller's responsibility.
func Hamming(a, b []byte) int {
	return hammingImpl(a, b)
}

func hammingGeneric(a, b []byte) int {
	var sum int
	for i := range a {
		sum += bits.OnesCount8(a[i] ^ b[i])
	}
	return sum
}

func hammingWide(a, b []byte) int {
	var sum int
	n := len(a)
	for n >= 8 {
		v1 := binary.LittleEndian.Uint64(a)
		v2 := binary.LittleEndian.Uint64(b)
		sum += bits.OnesCount64(v1 ^ v2)
		a = a[8:]
		b = b[8:]
		n -= 8
	}
	for i := range a {
		sum += bits.OnesCount8(a[i] ^ b[i])
	}
	return sum
}

// installKernels installs the kernels of family k.
func installKernels(k Kernel) {
	if k == Generic {
		splitNibblesImpl = splitNibblesGeneric
		hammingImpl = hammingGeneric
		return
	}
	splitNibblesImpl = splitNibblesWide
	hammingImpl = hammingWide
}
