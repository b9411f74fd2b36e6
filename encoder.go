package uubed

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/uubed/errs"
	"github.com/hupe1980/uubed/mq64"
	"github.com/hupe1980/uubed/q64"
	"github.com/hupe1980/uubed/simhash"
	"github.com/hupe1980/uubed/topk"
	"github.com/hupe1980/uubed/validation"
	"github.com/hupe1980/uubed/zorder"
)

// Encoder dispatches embeddings to an encoding method with a fixed
// configuration. It is safe for concurrent use.
type Encoder struct {
	opts   options
	hasher *simhash.Hasher
}

// NewEncoder creates an Encoder.
func NewEncoder(optFns ...Option) *Encoder {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Encoder{
		opts: opts,
		hasher: simhash.NewHasher(func(o *simhash.Options) {
			o.Cache = opts.matrixCache
		}),
	}
}

// Validate checks embedding against the limits of method m without
// encoding anything.
func (e *Encoder) Validate(m Method, embedding []byte) error {
	if err := validation.Embedding(embedding, m.String()); err != nil {
		return err
	}

	switch m {
	case MethodQ64, MethodZOrder, MethodZOrderExtended:
		return nil
	case MethodMq64:
		if e.opts.levels != nil {
			return validation.Levels(e.opts.levels)
		}
		return nil
	case MethodSimHash:
		return validation.SimHashParams(e.opts.planes, len(embedding))
	case MethodTopK:
		if err := validation.K(e.opts.k); err != nil {
			return err
		}
		return topk.Validate(embedding, e.opts.k)
	default:
		return errs.InvalidInputValues(fmt.Sprintf("unknown method %s", m))
	}
}

// Encode validates embedding and encodes it with method m. Empty
// embeddings are rejected.
func (e *Encoder) Encode(ctx context.Context, m Method, embedding []byte) (string, error) {
	start := time.Now()

	out, err := e.encode(m, embedding)

	e.opts.metricsCollector.RecordEncode(m, time.Since(start), err)
	e.logger(m).LogEncode(ctx, m, len(embedding), err)

	return out, err
}

// logger returns the encoder logger annotated with the parameters of m.
func (e *Encoder) logger(m Method) *Logger {
	switch m {
	case MethodSimHash:
		return e.opts.logger.WithPlanes(e.opts.planes)
	case MethodTopK:
		return e.opts.logger.WithK(e.opts.k)
	default:
		return e.opts.logger
	}
}

func (e *Encoder) encode(m Method, embedding []byte) (string, error) {
	if err := e.Validate(m, embedding); err != nil {
		return "", err
	}

	switch m {
	case MethodQ64:
		return q64.Encode(embedding), nil
	case MethodMq64:
		if e.opts.levels != nil {
			return mq64.EncodeWithLevels(embedding, e.opts.levels), nil
		}
		return mq64.Encode(embedding), nil
	case MethodSimHash:
		return e.hasher.HashQ64(embedding, e.opts.planes)
	case MethodTopK:
		return topk.EncodeQ64Optimized(embedding, e.opts.k), nil
	case MethodZOrder:
		return zorder.Encode(embedding), nil
	default:
		return zorder.EncodeExtended(embedding), nil
	}
}

// Decode restores the bytes of a Q64 or Mq64 string. Other methods are
// lossy and fail with an IncompatibleParameters error.
func (e *Encoder) Decode(ctx context.Context, m Method, s string) ([]byte, error) {
	start := time.Now()

	var (
		out []byte
		err error
	)
	switch m {
	case MethodQ64:
		out, err = q64.Decode(s)
	case MethodMq64:
		out, err = mq64.Decode(s)
	default:
		err = errs.IncompatibleParameters(fmt.Sprintf("method %s is not reversible", m))
	}

	e.opts.metricsCollector.RecordDecode(m, time.Since(start), err)
	e.opts.logger.LogDecode(ctx, m, len(s), err)

	return out, err
}

// Hasher returns the SimHash hasher bound to the encoder's matrix cache.
func (e *Encoder) Hasher() *simhash.Hasher {
	return e.hasher
}
