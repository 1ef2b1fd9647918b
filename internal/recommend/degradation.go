package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// MetricIndicator describes one monitored metric's drift from baseline.
type MetricIndicator struct {
	BaselineAverage     float64 `json:"baseline_average"`
	RecentAverage       float64 `json:"recent_average"`
	VariancePercentage  float64 `json:"variance_percentage"`
	DegradationDetected bool    `json:"degradation_detected"`
	Trend               string  `json:"trend"` // increasing, decreasing, stable, non_comparable
}

// DegradationResult is the outcome of metric performance analysis.
// Field names are part of the downstream tier-filter contract.
type DegradationResult struct {
	DegradationScore     float64                    `json:"degradation_score"`
	InterventionNeeded   bool                       `json:"intervention_needed"`
	Indicators           map[string]MetricIndicator `json:"performance_indicators"`
	Recommendations      []string                   `json:"recommendations"`
	Confidence           float64                    `json:"confidence"`
	PredictedImprovement map[string]float64         `json:"predicted_improvement"` // metric → %
}

// interventionThreshold is the degradation score above which intervention is needed.
const interventionThreshold = 0.4

// AnalyzeDegradation compares recent metric averages against historical
// baselines for every monitored metric type at a location. A metric missing
// a baseline is skipped; a zero baseline is reported non-comparable rather
// than failing the analysis. The degradation score is the sum of variance
// fractions over degraded metrics; intervention is needed when it exceeds
// 0.4. Predicted improvement per degraded metric is min(variance%×0.7, 25)%.
func (a *Analyzer) AnalyzeDegradation(ctx context.Context, locationID, workOrderType string) (DegradationResult, error) {
	baselines, err := a.baselines.Baselines(ctx, locationID, workOrderType)
	if err != nil {
		return DegradationResult{}, fmt.Errorf("fetching baselines: %w", err)
	}

	result := DegradationResult{
		Indicators:           make(map[string]MetricIndicator),
		PredictedImprovement: make(map[string]float64),
	}

	metricTypes := a.snap.MetricTypesForLocation(locationID)
	sort.Strings(metricTypes)

	comparable := 0
	for _, metricType := range metricTypes {
		baseline, ok := baselines[metricType]
		if !ok {
			continue // missing baseline: skipped, not treated as degraded
		}
		samples := a.snap.MetricsForLocation(locationID, metricType)
		if len(samples) == 0 {
			continue
		}

		var sum float64
		for _, m := range samples {
			sum += m.Value
		}
		recentAvg := sum / float64(len(samples))

		indicator := MetricIndicator{
			BaselineAverage: baseline.Average,
			RecentAverage:   recentAvg,
		}
		if baseline.Average == 0 {
			indicator.Trend = "non_comparable"
			result.Indicators[metricType] = indicator
			continue
		}
		comparable++

		variance := math.Abs(recentAvg-baseline.Average) / baseline.Average
		indicator.VariancePercentage = variance * 100
		indicator.DegradationDetected = variance > a.varianceThreshold
		indicator.Trend = trendDirection(recentAvg, baseline.Average)
		result.Indicators[metricType] = indicator

		if indicator.DegradationDetected {
			result.DegradationScore += variance
			result.PredictedImprovement[metricType] = math.Min(variance*100*0.7, 25)
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("%s drifted %.1f%% from baseline %.2f; schedule %s intervention",
					metricType, variance*100, baseline.Average, workOrderType))
		}
	}

	result.InterventionNeeded = result.DegradationScore > interventionThreshold

	// Confidence grows with the number of comparable metrics, capped below
	// certainty. Heuristic pending a real estimator.
	result.Confidence = math.Min(0.9, 0.5+0.1*float64(comparable))
	return result, nil
}

// trendDirection classifies drift direction, treating moves within 1% of
// baseline as stable.
func trendDirection(recent, baseline float64) string {
	delta := (recent - baseline) / baseline
	switch {
	case delta > 0.01:
		return "increasing"
	case delta < -0.01:
		return "decreasing"
	}
	return "stable"
}
