package uubed

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/mq64"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/simhash"
	"github.com/hupe1980/uubed/validation"
)

func TestFacade(t *testing.T) {
	t.Run("Q64", func(t *testing.T) {
		assert.Equal(t, "BSj0", Q64Encode([]byte{0x12, 0x34}))

		data, err := Q64Decode("BSj0")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34}, data)

		buf := make([]byte, 4)
		n, err := Q64EncodeToBuffer([]byte{0x12, 0x34}, buf)
		require.NoError(t, err)
		assert.Equal(t, "BSj0", string(buf[:n]))

		_, err = Q64EncodeToBuffer([]byte{0x12, 0x34}, buf[:3])
		assert.Equal(t, errs.CodeBufferTooSmall, ErrorCode(err))
	})

	t.Run("Mq64", func(t *testing.T) {
		data := bytes.Repeat([]byte{7}, 100)

		s := Mq64Encode(data)
		decoded, err := Mq64Decode(s)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)

		s = Mq64EncodeWithLevels(data, []int{10, 50})
		assert.Len(t, s, 20+1+100)

		// Any level list is accepted: order is kept, unusable levels are skipped.
		long := bytes.Repeat([]byte{9}, 200)
		s = Mq64EncodeWithLevels(long, []int{128, 64})
		assert.Len(t, s, 256+1+128)
		assert.Equal(t, mq64.EncodeWithLevels(long, []int{128, 64}), s)

		assert.Equal(t, q64.Encode(long[:64]), Mq64EncodeWithLevels(long, []int{64, 512}))
		assert.Empty(t, Mq64EncodeWithLevels(long, nil))
		assert.Empty(t, Mq64EncodeWithLevels(long, []int{}))
		assert.Empty(t, Mq64EncodeWithLevels(long, []int{1000}))
	})

	t.Run("SimHash", func(t *testing.T) {
		s, err := SimHashQ64(bytes.Repeat([]byte{100}, 32), 64)
		require.NoError(t, err)
		assert.Len(t, s, 16)

		buf := make([]byte, 16)
		n, err := SimHashQ64ToBuffer(bytes.Repeat([]byte{100}, 32), 64, buf)
		require.NoError(t, err)
		assert.Equal(t, s, string(buf[:n]))

		_, err = SimHashQ64([]byte{1}, 0)
		assert.Equal(t, errs.CodeSimHash, ErrorCode(err))
	})

	t.Run("TopK", func(t *testing.T) {
		data := []byte{10, 50, 30, 80, 20, 90, 40, 70}

		a, err := TopKQ64(data, 3)
		require.NoError(t, err)
		b, err := TopKQ64Optimized(data, 3)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, Q64Encode([]byte{3, 5, 7}), a)

		buf := make([]byte, 6)
		n, err := TopKQ64ToBuffer(data, 3, buf)
		require.NoError(t, err)
		assert.Equal(t, a, string(buf[:n]))

		_, err = TopKQ64(data, validation.MaxK+1)
		assert.Equal(t, errs.CodeTopK, ErrorCode(err))
	})

	t.Run("ZOrder", func(t *testing.T) {
		assert.Equal(t, "AQgwAQgw", ZOrderQ64(nil))

		buf := make([]byte, 8)
		n, err := ZOrderQ64ToBuffer([]byte{0xFF}, buf)
		require.NoError(t, err)
		assert.Equal(t, ZOrderQ64([]byte{0xFF}), string(buf[:n]))
	})
}

func TestEncoder(t *testing.T) {
	ctx := t.Context()
	embedding := []byte{10, 50, 30, 80, 20, 90, 40, 70}

	enc := NewEncoder(WithPlanes(32), WithK(3))

	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			out, err := enc.Encode(ctx, m, embedding)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}

	out, err := enc.Encode(ctx, MethodTopK, embedding)
	require.NoError(t, err)
	assert.Equal(t, Q64Encode([]byte{3, 5, 7}), out)

	out, err = enc.Encode(ctx, MethodSimHash, embedding)
	require.NoError(t, err)
	assert.Len(t, out, 8)
}

func TestEncoderFailFast(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name string
		enc  *Encoder
		m    Method
		emb  []byte
		kind errs.Kind
	}{
		{"empty", NewEncoder(), MethodQ64, nil, errs.KindEmptyInput},
		{"planes", NewEncoder(WithPlanes(0)), MethodSimHash, []byte{1}, errs.KindInvalidPlanes},
		{"k zero", NewEncoder(WithK(0)), MethodTopK, []byte{1}, errs.KindInvalidK},
		{"k large", NewEncoder(WithK(validation.MaxK + 1)), MethodTopK, []byte{1}, errs.KindKTooLarge},
		{"levels", NewEncoder(WithLevels(4, 2)), MethodMq64, []byte{1}, errs.KindIncompatibleParameters},
		{"unknown method", NewEncoder(), Method(99), []byte{1}, errs.KindInvalidInputValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.enc.Encode(ctx, tt.m, tt.emb)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}

func TestEncoderDecode(t *testing.T) {
	ctx := t.Context()
	data := bytes.Repeat([]byte{1, 2, 3}, 50)

	enc := NewEncoder(WithLevels(16, 64, len(data)))
	for _, m := range []Method{MethodQ64, MethodMq64} {
		s, err := enc.Encode(ctx, m, data)
		require.NoError(t, err)

		decoded, err := enc.Decode(ctx, m, s)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
		assert.True(t, m.Reversible())
	}

	_, err := enc.Decode(ctx, MethodSimHash, "AQgw")
	assert.ErrorIs(t, err, errs.ErrIncompatibleParameters)
	assert.False(t, MethodSimHash.Reversible())
}

func TestEncoderMatrixCache(t *testing.T) {
	cache := simhash.NewSharedCache()
	enc := NewEncoder(WithMatrixCache(cache))

	a, err := enc.Encode(t.Context(), MethodSimHash, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	b, err := SimHashQ64([]byte{1, 2, 3, 4}, DefaultPlanes)
	require.NoError(t, err)
	assert.Equal(t, b, a)
	assert.Same(t, enc.Hasher(), enc.Hasher())
}

func TestEncoderObservability(t *testing.T) {
	var logs bytes.Buffer
	metrics := &BasicMetricsCollector{}

	enc := NewEncoder(
		WithLogger(NewJSONLogger(&logs, slog.LevelDebug)),
		WithMetricsCollector(metrics),
	)

	_, err := enc.Encode(context.Background(), MethodZOrder, []byte{1, 2})
	require.NoError(t, err)
	_, err = enc.Encode(context.Background(), MethodQ64, nil)
	require.Error(t, err)
	_, err = enc.Decode(context.Background(), MethodQ64, "A")
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.EncodeCount)
	assert.Equal(t, int64(1), stats.EncodeErrors)
	assert.Equal(t, int64(1), stats.DecodeErrors)

	assert.Contains(t, logs.String(), `"msg":"encode completed"`)
	assert.Contains(t, logs.String(), `"code":"validation_error"`)
	assert.Contains(t, logs.String(), `"msg":"decode failed"`)
	assert.Contains(t, logs.String(), `"method":"zorder"`)
}

func TestEncoderLogsMethodParameters(t *testing.T) {
	var logs bytes.Buffer
	enc := NewEncoder(
		WithLogger(NewJSONLogger(&logs, slog.LevelDebug)),
		WithPlanes(32),
		WithK(3),
	)

	_, err := enc.Encode(t.Context(), MethodSimHash, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"method":"simhash"`)
	assert.Contains(t, logs.String(), `"planes":32`)
	assert.NotContains(t, logs.String(), `"k":`)

	logs.Reset()
	_, err = enc.Encode(t.Context(), MethodTopK, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"method":"topk"`)
	assert.Contains(t, logs.String(), `"k":3`)
	assert.NotContains(t, logs.String(), `"planes":`)
}

func TestNilOptionsFallBack(t *testing.T) {
	enc := NewEncoder(WithLogger(nil), WithMetricsCollector(nil), WithMatrixCache(nil))

	_, err := enc.Encode(t.Context(), MethodSimHash, []byte{1, 2, 3})
	assert.NoError(t, err)
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := ParseMethod("  SimHash ")
	require.NoError(t, err)
	assert.Equal(t, MethodSimHash, m)

	_, err = ParseMethod("base64")
	assert.ErrorIs(t, err, errs.ErrInvalidInputValues)

	var u Method
	require.NoError(t, u.UnmarshalText([]byte("zorder-ext")))
	assert.Equal(t, MethodZOrderExtended, u)

	text, err := MethodTopK.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "topk", string(text))

	_, err = Method(0).MarshalText()
	assert.Error(t, err)
}

func TestErrorCodeAndMessage(t *testing.T) {
	assert.Equal(t, errs.CodeSuccess, ErrorCode(nil))
	assert.Empty(t, ErrorMessage(nil))

	_, err := Q64Decode("AQg")
	assert.Equal(t, errs.CodeQ64, ErrorCode(err))
	assert.Contains(t, ErrorMessage(err), "odd length")
}
