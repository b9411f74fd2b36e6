package uubed

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    encodeCounter   *prometheus.CounterVec
//	    batchHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEncode(m uubed.Method, d time.Duration, err error) {
//	    p.encodeCounter.WithLabelValues(m.String()).Inc()
//	}
type MetricsCollector interface {
	// RecordEncode is called after each single encode operation.
	RecordEncode(m Method, duration time.Duration, err error)

	// RecordDecode is called after each decode operation.
	RecordDecode(m Method, duration time.Duration, err error)

	// RecordBatch is called after each batch. count is the number of
	// embeddings submitted.
	RecordBatch(m Method, count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(Method, time.Duration, error)      {}
func (NoopMetricsCollector) RecordDecode(Method, time.Duration, error)      {}
func (NoopMetricsCollector) RecordBatch(Method, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	BatchCount       atomic.Int64
	BatchItems       atomic.Int64
	BatchErrors      atomic.Int64
	BatchTotalNanos  atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(_ Method, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(_ Method, _ time.Duration, err error) {
	b.DecodeCount.Add(1)
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ Method, count int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:    b.EncodeCount.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		EncodeAvgNanos: avg(b.EncodeTotalNanos.Load(), b.EncodeCount.Load()),
		DecodeCount:    b.DecodeCount.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchItems:     b.BatchItems.Load(),
		BatchErrors:    b.BatchErrors.Load(),
		BatchAvgNanos:  avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount    int64
	EncodeErrors   int64
	EncodeAvgNanos int64
	DecodeCount    int64
	DecodeErrors   int64
	BatchCount     int64
	BatchItems     int64
	BatchErrors    int64
	BatchAvgNanos  int64
}
