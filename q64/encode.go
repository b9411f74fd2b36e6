package q64

import (
	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/simd"
)

// encodeImpl is selected once at init from the active kernel family.
var encodeImpl = encodeScalar

func init() {
	if simd.ActiveKernel() == simd.Wide {
		encodeImpl = encodeBlocks
	}
}

// EncodedLen returns the length of the encoding of n bytes.
func EncodedLen(n int) int { return n * 2 }

// DecodedLen returns the number of bytes encoded by n characters.
func DecodedLen(n int) int { return n / 2 }

// Encode returns the Q64 encoding of data. The result is always
// exactly 2*len(data) characters long.
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	buf := make([]byte, EncodedLen(len(data)))
	encodeImpl(buf, data)
	return string(buf)
}

// AppendEncode appends the Q64 encoding of data to dst and returns the
// extended buffer.
func AppendEncode(dst, data []byte) []byte {
	n := len(dst)
	need := n + EncodedLen(len(data))
	if cap(dst) < need {
		grown := make([]byte, n, need)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:need]
	encodeImpl(dst[n:], data)
	return dst
}

// EncodeToBuffer writes the Q64 encoding of data into buf without allocating
// and returns the number of bytes written.
//
// If buf is shorter than EncodedLen(len(data)) an errs.KindBufferOverflow
// error is returned and buf is left untouched.
func EncodeToBuffer(data, buf []byte) (int, error) {
	need := EncodedLen(len(data))
	if len(buf) < need {
		return 0, errs.BufferOverflow(need, len(buf))
	}
	encodeImpl(buf[:need], data)
	return need, nil
}

// encodeScalar is the reference encoder: one byte per iteration.
func encodeScalar(dst, src []byte) {
	for i, b := range src {
		pos := i * 2
		dst[pos] = Alphabets[pos&3][b>>4]
		dst[pos+1] = Alphabets[(pos+1)&3][b&0x0F]
	}
}

// encodeBlocks splits nibbles for simd.BlockSize bytes at a time and maps
// them through the alphabets; the tail goes through the scalar path.
//
// Blocks start at even byte indexes, so the first byte of every block uses
// alphabets 0/1 and the second uses 2/3.
func encodeBlocks(dst, src []byte) {
	var hi, lo [simd.BlockSize]byte

	n := len(src) - len(src)%simd.BlockSize
	for off := 0; off < n; off += simd.BlockSize {
		simd.SplitNibbles(src[off:off+simd.BlockSize], hi[:], lo[:])

		out := dst[off*2 : (off+simd.BlockSize)*2]
		for i := 0; i < simd.BlockSize; i += 2 {
			j := i * 2
			out[j] = Alphabets[0][hi[i]]
			out[j+1] = Alphabets[1][lo[i]]
			out[j+2] = Alphabets[2][hi[i+1]]
			out[j+3] = Alphabets[3][lo[i+1]]
		}
	}

	for i := n; i < len(src); i++ {
		b := src[i]
		pos := i * 2
		dst[pos] = Alphabets[pos&3][b>>4]
		dst[pos+1] = Alphabets[(pos+1)&3][b&0x0F]
	}
}
