// Package simd selects byte-parallel kernels for the codecs at startup.
//
// Two kernel families exist, both in pure Go:
//
//   - generic: one byte per step, the reference implementation
//   - wide: two 64-bit words per step for nibble splitting and one word
//     per step for popcount
//
// CPU feature detection (golang.org/x/sys/cpu) enables the wide kernels
// when the CPU has a native 64-bit popcount (POPCNT on x86-64, ASIMD on
// ARM64). Set UUBED_SIMD=generic or UUBED_SIMD=wide to force a family.
//
// # Operations
//
//   - Nibble split: SplitNibbles (Q64 encoding)
//   - Popcount: Hamming (SimHash distance)
//
// Every wide kernel must produce byte-identical output to its generic
// counterpart.
package simd
