package analysis

import (
	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

// Package analysis provides the context analyzer: independent analysis
// vectors computed over a supplied set of work orders plus the loaded
// snapshot.
//
// Core Capabilities:
//   - Workload distribution (per-employee load, cost, composite scoring)
//   - Conflict detection (time, location, imbalance, skill, cost families)
//   - Alert impact analysis (hotspots, unaddressed alerts, priority alignment)
//   - Skill matching (zone-type requirement tables, alternative ranking)
//   - Cost efficiency (priority and rate-tier breakdowns)
//   - Location efficiency (travel-cost model, assignee concentration)
//   - Performance, strategic and predictive metrics
//
// Every method is pure, deterministic and side-effect free. All vectors are
// computed unconditionally; subscription-tier gating is applied by the caller
// through a separate projection filter, never in here. The vectors have no
// data dependency on each other and may be computed in parallel by the
// caller, provided the snapshot is not mutated while an analysis is in
// flight.

// Analyzer computes analysis vectors over work orders and a snapshot.
type Analyzer struct {
	snap *snapshot.Snapshot

	// Tunables. Defaults follow operational practice; the orchestrator may
	// override them from configuration.
	workdayHours       float64 // Default: 8
	imbalanceThreshold float64 // Default: 0.30 (strict inequality)
	buildingTravelMin  float64 // Default: 20 minutes per building change
	floorTravelMin     float64 // Default: 5 minutes per floor change
	baseLocationScore  float64 // Default: 5.0
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkdayHours overrides the standard workday length used for utilization.
func WithWorkdayHours(h float64) Option {
	return func(a *Analyzer) { a.workdayHours = h }
}

// WithImbalanceThreshold overrides the workload-imbalance deviation threshold.
func WithImbalanceThreshold(t float64) Option {
	return func(a *Analyzer) { a.imbalanceThreshold = t }
}

// WithTravelCosts overrides the per-building and per-floor travel charges in minutes.
func WithTravelCosts(buildingMin, floorMin float64) Option {
	return func(a *Analyzer) {
		a.buildingTravelMin = buildingMin
		a.floorTravelMin = floorMin
	}
}

// NewAnalyzer creates a context analyzer over an immutable snapshot.
func NewAnalyzer(snap *snapshot.Snapshot, opts ...Option) *Analyzer {
	a := &Analyzer{
		snap:               snap,
		workdayHours:       8,
		imbalanceThreshold: 0.30,
		buildingTravelMin:  20,
		floorTravelMin:     5,
		baseLocationScore:  5.0,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// efficiencyFactor maps a 0-10 efficiency rating onto a divisor for
// duration adjustment. A non-positive rating degrades to neutral rather
// than failing the analysis.
func efficiencyFactor(rating float64) float64 {
	if rating <= 0 {
		return 1.0
	}
	return rating / 10.0
}

// orderHours returns the scheduled duration of a work order in hours.
func orderHours(w models.WorkOrder) float64 {
	if w.Duration > 0 {
		return w.Duration.Hours()
	}
	return w.ScheduledEnd.Sub(w.ScheduledStart).Hours()
}
