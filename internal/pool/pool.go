// Package pool provides scratch buffer pools for zero-allocation hashing.
// Uses sync.Pool for automatic memory reuse across goroutines.
package pool

import "sync"

const (
	// DefaultMaxDimensions is the default capacity of a pooled float buffer.
	DefaultMaxDimensions = 2048

	// maxRetained caps the capacity of buffers returned to the pool so a
	// single very wide embedding does not pin memory forever.
	maxRetained = 1 << 16
)

// Float32Buffer is a reusable float32 scratch slice.
type Float32Buffer struct {
	Data []float32
}

var float32Pool = sync.Pool{
	New: func() interface{} {
		return &Float32Buffer{Data: make([]float32, 0, DefaultMaxDimensions)}
	},
}

// GetFloat32 retrieves a buffer of length n from the pool.
// The contents are not cleared.
func GetFloat32(n int) *Float32Buffer {
	buf := float32Pool.Get().(*Float32Buffer)
	if cap(buf.Data) < n {
		buf.Data = make([]float32, n)
	}
	buf.Data = buf.Data[:n]
	return buf
}

// PutFloat32 returns a buffer to the pool for reuse.
func PutFloat32(buf *Float32Buffer) {
	if buf == nil || cap(buf.Data) > maxRetained {
		return
	}
	buf.Data = buf.Data[:0]
	float32Pool.Put(buf)
}
