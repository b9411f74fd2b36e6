package uubed

import (
	"github.com/hupe1980/uubed/simhash"
)

const (
	// DefaultPlanes is the SimHash plane count used when none is configured.
	DefaultPlanes = 64

	// DefaultK is the top-k size used when none is configured.
	DefaultK = 8
)

type options struct {
	planes           int
	k                int
	levels           []int
	matrixCache      simhash.Cache
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		planes:           DefaultPlanes,
		k:                DefaultK,
		matrixCache:      simhash.DefaultCache(),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures an Encoder.
type Option func(*options)

// WithPlanes sets the SimHash plane count (output bits).
func WithPlanes(planes int) Option {
	return func(o *options) {
		o.planes = planes
	}
}

// WithK sets the number of indices emitted by the top-k method.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithLevels sets explicit Mq64 prefix levels. Nil selects the default
// doubling levels.
func WithLevels(levels ...int) Option {
	return func(o *options) {
		o.levels = levels
	}
}

// WithMatrixCache sets the cache SimHash projection matrices are taken from.
//
// If nil is passed, simhash.DefaultCache() is used.
func WithMatrixCache(c simhash.Cache) Option {
	return func(o *options) {
		if c == nil {
			c = simhash.DefaultCache()
		}
		o.matrixCache = c
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &uubed.BasicMetricsCollector{}
//	enc := uubed.NewEncoder(uubed.WithMetricsCollector(metrics))
//	// ... encode ...
//	stats := metrics.GetStats()
//	fmt.Printf("Encodes: %d, Avg latency: %dns\n", stats.EncodeCount, stats.EncodeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
