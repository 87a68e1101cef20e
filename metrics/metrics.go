// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the prometheus collectors the storage engine
// exposes for cache efficiency, bucket I/O, delta merges, and algorithm
// latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/monacgraph/lsmcommunity/internal/lsmerr"
)

// Metrics holds every collector the engine updates. A zero-value Metrics
// (obtained via NewNoOp) is safe to use; every method becomes a no-op.
type Metrics struct {
	enabled bool

	BlockCacheHits   prometheus.Counter
	BlockCacheMisses prometheus.Counter
	GiantCacheHits   prometheus.Counter
	GiantCacheMisses prometheus.Counter
	BucketReads      prometheus.Counter
	DeltaMerges      prometheus.Counter
	DeltaOpsAppended prometheus.Counter
	BFSDuration      prometheus.Histogram
	WCCDuration      prometheus.Histogram
	WarmUpBlocks     prometheus.Gauge
}

// New registers every collector with reg. Registration failures are
// collected rather than aborting: a metric that cannot register (e.g.
// because it was already registered under the same name) degrades to a
// discarded update, mirroring the engine's general tolerance for
// non-essential failures.
func New(reg prometheus.Registerer) (*Metrics, error) {
	var errs lsmerr.Errs

	m := &Metrics{enabled: true}
	m.BlockCacheHits = mustCounter(reg, &errs, "lsmcommunity_block_cache_hits_total", "block cache hits")
	m.BlockCacheMisses = mustCounter(reg, &errs, "lsmcommunity_block_cache_misses_total", "block cache misses")
	m.GiantCacheHits = mustCounter(reg, &errs, "lsmcommunity_giant_cache_hits_total", "giant vertex cache hits")
	m.GiantCacheMisses = mustCounter(reg, &errs, "lsmcommunity_giant_cache_misses_total", "giant vertex cache misses")
	m.BucketReads = mustCounter(reg, &errs, "lsmcommunity_bucket_reads_total", "blocks read from a bucket file")
	m.DeltaMerges = mustCounter(reg, &errs, "lsmcommunity_delta_merges_total", "delta log merge operator invocations")
	m.DeltaOpsAppended = mustCounter(reg, &errs, "lsmcommunity_delta_ops_appended_total", "delta operations appended")

	m.BFSDuration = mustHistogram(reg, &errs, "lsmcommunity_bfs_duration_seconds", "bfs wall time")
	m.WCCDuration = mustHistogram(reg, &errs, "lsmcommunity_wcc_duration_seconds", "wcc wall time")

	m.WarmUpBlocks = mustGauge(reg, &errs, "lsmcommunity_warm_up_blocks", "blocks loaded by the last warm_up pass")

	if errs.Errored() {
		return m, errs.Err()
	}
	return m, nil
}

// NewNoOp returns a Metrics whose every update is discarded, for tests
// and callers that did not wire a registry.
func NewNoOp() *Metrics {
	return &Metrics{}
}

func mustCounter(reg prometheus.Registerer, errs *lsmerr.Errs, name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	if err := reg.Register(c); err != nil {
		errs.Add(err)
		return nil
	}
	return c
}

func mustGauge(reg prometheus.Registerer, errs *lsmerr.Errs, name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	if err := reg.Register(g); err != nil {
		errs.Add(err)
		return nil
	}
	return g
}

func mustHistogram(reg prometheus.Registerer, errs *lsmerr.Errs, name, help string) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: help})
	if err := reg.Register(h); err != nil {
		errs.Add(err)
		return nil
	}
	return h
}

func incr(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// IncBlockCacheHit records a block cache hit.
func (m *Metrics) IncBlockCacheHit() { incr(m.BlockCacheHits) }

// IncBlockCacheMiss records a block cache miss.
func (m *Metrics) IncBlockCacheMiss() { incr(m.BlockCacheMisses) }

// IncGiantCacheHit records a giant-vertex cache hit.
func (m *Metrics) IncGiantCacheHit() { incr(m.GiantCacheHits) }

// IncGiantCacheMiss records a giant-vertex cache miss.
func (m *Metrics) IncGiantCacheMiss() { incr(m.GiantCacheMisses) }

// IncBucketRead records a block read from a bucket file.
func (m *Metrics) IncBucketRead() { incr(m.BucketReads) }

// IncDeltaMerge records a merge-operator invocation.
func (m *Metrics) IncDeltaMerge() { incr(m.DeltaMerges) }

// AddDeltaOps records n delta operations appended.
func (m *Metrics) AddDeltaOps(n int) {
	if m.DeltaOpsAppended != nil {
		m.DeltaOpsAppended.Add(float64(n))
	}
}

// ObserveBFS records the wall time of a bfs() call in seconds.
func (m *Metrics) ObserveBFS(seconds float64) {
	if m.BFSDuration != nil {
		m.BFSDuration.Observe(seconds)
	}
}

// ObserveWCC records the wall time of a wcc() call in seconds.
func (m *Metrics) ObserveWCC(seconds float64) {
	if m.WCCDuration != nil {
		m.WCCDuration.Observe(seconds)
	}
}

// SetWarmUpBlocks records how many blocks the last warm_up pass loaded.
func (m *Metrics) SetWarmUpBlocks(n int) {
	if m.WarmUpBlocks != nil {
		m.WarmUpBlocks.Set(float64(n))
	}
}
