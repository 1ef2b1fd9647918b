package insight

import (
	"fmt"
	"sort"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// Package insight turns a list of recommendations into aggregate business
// intelligence shared by both analyzers: location frequency, reactive vs
// proactive ratio, and confidence distribution.

// LocationFrequency counts recommendations per location.
type LocationFrequency struct {
	LocationID string `json:"location_id"`
	Count      int    `json:"count"`
}

// ConfidenceDistribution buckets recommendations by confidence.
type ConfidenceDistribution struct {
	High   int `json:"high"`   // ≥ 0.8
	Medium int `json:"medium"` // ≥ 0.5
	Low    int `json:"low"`
}

// Summary is the aggregate view over a recommendation list.
type Summary struct {
	TotalRecommendations int                     `json:"total_recommendations"`
	TopLocations         []LocationFrequency     `json:"top_locations"` // 3 most frequent
	ReactiveFraction     float64                 `json:"reactive_fraction"`
	Confidence           ConfidenceDistribution  `json:"confidence_distribution"`
	Insights             []string                `json:"insights"`
}

// reactivePatternThreshold: above this alert-triggered fraction, the fleet is
// firefighting instead of scheduling preventively.
const reactivePatternThreshold = 0.6

// Summarize computes the aggregate business intelligence for a
// recommendation list. An empty list yields an empty summary.
func Summarize(recs []models.TaskRecommendation) Summary {
	summary := Summary{TotalRecommendations: len(recs)}
	if len(recs) == 0 {
		return summary
	}

	counts := make(map[string]int)
	reactive := 0
	for _, r := range recs {
		counts[r.LocationID]++
		if r.Source == models.SourceAlertTriggered {
			reactive++
		}
		switch {
		case r.Confidence >= 0.8:
			summary.Confidence.High++
		case r.Confidence >= 0.5:
			summary.Confidence.Medium++
		default:
			summary.Confidence.Low++
		}
	}

	summary.TopLocations = topLocations(counts, 3)
	summary.ReactiveFraction = float64(reactive) / float64(len(recs))

	if summary.ReactiveFraction > reactivePatternThreshold {
		summary.Insights = append(summary.Insights, fmt.Sprintf(
			"reactive pattern: %.0f%% of recommendations are alert-triggered; increase preventive scheduling",
			summary.ReactiveFraction*100))
	}
	return summary
}

// topLocations returns the n most frequent locations, ties broken by id for
// determinism.
func topLocations(counts map[string]int, n int) []LocationFrequency {
	freqs := make([]LocationFrequency, 0, len(counts))
	for id, count := range counts {
		freqs = append(freqs, LocationFrequency{LocationID: id, Count: count})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].LocationID < freqs[j].LocationID
	})
	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}
