package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis engine metrics for production monitoring
var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilityiq_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"vector", "status"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facilityiq_analysis_duration_seconds",
			Help:    "Analysis run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"vector"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilityiq_recommendations_total",
			Help: "Total number of task recommendations generated",
		},
		[]string{"source", "priority"},
	)

	ConflictsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilityiq_conflicts_detected_total",
			Help: "Total number of conflicts detected",
		},
		[]string{"type"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "facilityiq_cache_hits_total",
			Help: "Pattern-result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "facilityiq_cache_misses_total",
			Help: "Pattern-result cache misses",
		},
	)

	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "facilityiq_snapshot_entities",
			Help: "Entity counts in the most recently loaded snapshot",
		},
		[]string{"entity"},
	)
)
