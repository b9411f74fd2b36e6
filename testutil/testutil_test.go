package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingsReproducible(t *testing.T) {
	a := NewRNG(4711).Embeddings(8, 32)
	b := NewRNG(4711).Embeddings(8, 32)

	assert.Equal(t, 8, len(a))
	assert.Equal(t, 32, len(a[0]))
	assert.Equal(t, a, b)
}

func TestEmbeddingsDoNotAlias(t *testing.T) {
	e := NewRNG(1).Embeddings(2, 4)
	e[0] = append(e[0], 0xAA)
	assert.NotEqual(t, byte(0xAA), e[1][0], "appending to one row must not overwrite the next")
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	first := rng.Embedding(16)
	rng.Reset()
	assert.Equal(t, first, rng.Embedding(16))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestNarrowEmbedding(t *testing.T) {
	e := NewRNG(3).NarrowEmbedding(256, 4)
	for _, v := range e {
		assert.Less(t, v, byte(4))
	}
}

func TestPerturb(t *testing.T) {
	rng := NewRNG(9)
	base := []byte{0, 1, 128, 254, 255}

	for range 100 {
		p := rng.Perturb(base, 3)
		for i := range base {
			d := int(p[i]) - int(base[i])
			assert.LessOrEqual(t, d, 3)
			assert.GreaterOrEqual(t, d, -3)
		}
	}
}
