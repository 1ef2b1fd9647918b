package recommend

import (
	"github.com/facilityiq/facilityiq-ai/internal/estimator"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

// Package recommend provides the recommendation analyzer: an engine
// independent from existing-work-order analysis that mines historical
// completion patterns, active alerts and metric drift to emit scored task
// recommendations, plus employee-assignment scoring and business-impact
// estimation.
//
// The analyzer is a pure function of its inputs: the snapshot, the history
// and baseline providers (treated as already-resolved data, any blocking
// belongs to them), and the injected escalation estimator. Recommendation
// generation for different location/type pairs is independent and may be
// parallelized by the caller.

// Analyzer generates candidate task recommendations from historical and live signals.
type Analyzer struct {
	snap       *snapshot.Snapshot
	history    snapshot.HistoryProvider
	baselines  snapshot.BaselineProvider
	escalation estimator.EscalationEstimator

	// Tunables. Defaults follow the analysis contract; the orchestrator may
	// override them from configuration.
	lookbackDays      int     // Default: 30
	minHistoryRecords int     // Default: 3
	varianceThreshold float64 // Default: 0.2
	triggerThreshold  float64 // Default: 0.6
	workdayHours      float64 // Default: 8
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLookbackDays overrides the default pattern-analysis lookback window.
func WithLookbackDays(days int) Option {
	return func(a *Analyzer) { a.lookbackDays = days }
}

// WithVarianceThreshold overrides the metric degradation threshold.
func WithVarianceThreshold(t float64) Option {
	return func(a *Analyzer) { a.varianceThreshold = t }
}

// WithTriggerThreshold overrides the alert trigger-score threshold.
func WithTriggerThreshold(t float64) Option {
	return func(a *Analyzer) { a.triggerThreshold = t }
}

// NewAnalyzer creates a recommendation analyzer. The estimator may be the
// fixed fixture implementation or a real model; the analyzer does not care.
func NewAnalyzer(
	snap *snapshot.Snapshot,
	history snapshot.HistoryProvider,
	baselines snapshot.BaselineProvider,
	escalation estimator.EscalationEstimator,
	opts ...Option,
) *Analyzer {
	a := &Analyzer{
		snap:              snap,
		history:           history,
		baselines:         baselines,
		escalation:        escalation,
		lookbackDays:      30,
		minHistoryRecords: 3,
		varianceThreshold: 0.2,
		triggerThreshold:  0.6,
		workdayHours:      8,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
