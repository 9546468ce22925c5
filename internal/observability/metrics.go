// Package observability wires prometheus metrics and an otel tracer
// provider around the pipeline's stages. Grounded on
// internal/shared/observability/metrics.go's promauto pattern, with the
// metric names and label sets swapped from architecture-graph concerns
// (parsing duration by language, graph node/edge counts) to
// dependency-inference concerns (per-stage duration, resolved/unresolved
// counts, cache hit rate, lookup counts).
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pypm_stage_seconds",
		Help:    "Time spent in one pipeline stage (scan, parse, resolve).",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pypm_files_scanned_total",
		Help: "Total number of source files yielded by the scanner.",
	})

	DependenciesResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pypm_dependencies_resolved_total",
		Help: "Total number of distributions resolved across all runs.",
	})

	ModulesUnresolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pypm_modules_unresolved_total",
		Help: "Total number of module names that could not be resolved to a distribution.",
	})

	WarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pypm_warnings_total",
		Help: "Total number of recovered, non-fatal warnings, by kind.",
	}, []string{"kind"})

	ParseCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pypm_parse_cache_hits_total",
		Help: "Total number of Parse Cache hits.",
	})

	IndexLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pypm_index_lookups_total",
		Help: "Total number of Index Client lookups, by outcome.",
	}, []string{"outcome"})

	IndexLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pypm_index_lookup_seconds",
		Help:    "Latency of a single Index Client HTTP round trip.",
		Buckets: prometheus.DefBuckets,
	})

	ParseQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pypm_parse_queue_depth",
		Help: "Number of files queued for the parse worker pool but not yet picked up by a worker.",
	})

	HeapAllocMB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pypm_heap_alloc_mb",
		Help: "Heap bytes allocated and in use, in MB, sampled at the end of the scan and resolve stages.",
	})
)
