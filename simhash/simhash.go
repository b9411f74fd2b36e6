package simhash

import (
	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/internal/simd"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/validation"
)

var defaultCache = NewSharedCache()

// DefaultCache returns the process-wide cache used by the package-level
// functions and by hashers created without a cache.
func DefaultCache() *SharedCache {
	return defaultCache
}

// Options configures a Hasher.
type Options struct {
	// Cache supplies projection matrices. Defaults to DefaultCache().
	Cache Cache
}

// Hasher computes SimHashes using matrices from its cache.
type Hasher struct {
	cache Cache
}

// NewHasher creates a Hasher.
func NewHasher(optFns ...func(o *Options)) *Hasher {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Cache == nil {
		opts.Cache = defaultCache
	}
	return &Hasher{cache: opts.Cache}
}

// Hash returns the packed planes-bit signature of embedding
// (ceil(planes/8) bytes, most significant bit first).
func (h *Hasher) Hash(embedding []byte, planes int) ([]byte, error) {
	m, err := h.matrix(embedding, planes)
	if err != nil {
		return nil, err
	}
	out := make([]byte, PackedLen(planes))
	if err := m.Project(embedding, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bits returns the signature as one bool per plane.
func (h *Hasher) Bits(embedding []byte, planes int) ([]bool, error) {
	packed, err := h.Hash(embedding, planes)
	if err != nil {
		return nil, err
	}
	bits := make([]bool, planes)
	for i := range bits {
		bits[i] = packed[i/8]&(1<<(7-i%8)) != 0
	}
	return bits, nil
}

// HashQ64 returns the Q64 encoding of Hash.
func (h *Hasher) HashQ64(embedding []byte, planes int) (string, error) {
	packed, err := h.Hash(embedding, planes)
	if err != nil {
		return "", err
	}
	return q64.Encode(packed), nil
}

// HashToBuffer writes the Q64-encoded hash into buf and returns the number
// of bytes written. Nothing is written on error.
func (h *Hasher) HashToBuffer(embedding []byte, planes int, buf []byte) (int, error) {
	if err := validate(embedding, planes); err != nil {
		return 0, err
	}
	if need := q64.EncodedLen(PackedLen(planes)); len(buf) < need {
		return 0, errs.BufferOverflow(need, len(buf))
	}
	packed, err := h.Hash(embedding, planes)
	if err != nil {
		return 0, err
	}
	return q64.EncodeToBuffer(packed, buf)
}

func (h *Hasher) matrix(embedding []byte, planes int) (*Matrix, error) {
	if err := validate(embedding, planes); err != nil {
		return nil, err
	}
	return h.cache.Matrix(planes, len(embedding))
}

func validate(embedding []byte, planes int) error {
	if err := validation.SimHashParams(planes, len(embedding)); err != nil {
		return err
	}
	return validation.EmbeddingSize(len(embedding), "simhash")
}

// Hash computes the packed signature using the default cache.
func Hash(embedding []byte, planes int) ([]byte, error) {
	return NewHasher().Hash(embedding, planes)
}

// Bits computes the bit signature using the default cache.
func Bits(embedding []byte, planes int) ([]bool, error) {
	return NewHasher().Bits(embedding, planes)
}

// HashQ64 computes the Q64-encoded signature using the default cache.
func HashQ64(embedding []byte, planes int) (string, error) {
	return NewHasher().HashQ64(embedding, planes)
}

// Hamming returns the number of differing bits between two packed hashes.
func Hamming(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, errs.IncompatibleParameters("hashes have different lengths")
	}
	return simd.Hamming(a, b), nil
}

// HammingQ64 decodes two Q64-encoded hashes and returns their Hamming distance.
func HammingQ64(a, b string) (int, error) {
	da, err := q64.Decode(a)
	if err != nil {
		return 0, err
	}
	db, err := q64.Decode(b)
	if err != nil {
		return 0, err
	}
	return Hamming(da, db)
}
