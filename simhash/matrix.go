package simhash

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/viterin/vek/vek32"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/pool"
	"github.com/hupe1980/uubed/validation"
)

// DefaultSeed is the seed of the projection matrices used by the package
// level functions. Changing it changes every hash.
const DefaultSeed uint64 = 42

// Matrix is a planes x dims row-major matrix of standard-normal samples.
// It is never mutated after creation and may be shared freely.
type Matrix struct {
	Planes int
	Dims   int
	Seed   uint64
	Data   []float32
}

// NewMatrix generates the projection matrix for (planes, dims) from seed.
func NewMatrix(planes, dims int, seed uint64) (*Matrix, error) {
	if err := validation.SimHashParams(planes, dims); err != nil {
		return nil, err
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewChaCha8(key)}

	data := make([]float32, planes*dims)
	for i := range data {
		data[i] = float32(normal.Rand())
	}

	return &Matrix{Planes: planes, Dims: dims, Seed: seed, Data: data}, nil
}

// SizeBytes returns the memory held by the matrix samples.
func (m *Matrix) SizeBytes() int64 {
	return validation.MatrixBytes(m.Planes, m.Dims)
}

// Row returns the hyperplane normal for plane i.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Dims : (i+1)*m.Dims]
}

// Project writes sign bits of the projections of embedding into dst, which
// must hold ceil(Planes/8) bytes. Bits are packed most-significant first.
func (m *Matrix) Project(embedding []byte, dst []byte) error {
	if len(embedding) != m.Dims {
		return errs.IncompatibleParameters("embedding length does not match matrix dimensions")
	}
	if need := PackedLen(m.Planes); len(dst) < need {
		return errs.BufferOverflow(need, len(dst))
	}

	buf := pool.GetFloat32(len(embedding))
	defer pool.PutFloat32(buf)

	centered := buf.Data
	for i, b := range embedding {
		centered[i] = (float32(b) - 128) / 128
	}

	clear(dst[:PackedLen(m.Planes)])
	for p := 0; p < m.Planes; p++ {
		var dot float32
		if m.Dims > 0 {
			dot = vek32.Dot(m.Row(p), centered)
		}
		if dot >= 0 {
			dst[p/8] |= 1 << (7 - p%8)
		}
	}
	return nil
}

// PackedLen returns the number of bytes holding planes bits.
func PackedLen(planes int) int {
	return (planes + 7) / 8
}
