package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// PatternResult is the outcome of historical completion-pattern analysis.
// Field names are part of the downstream tier-filter contract.
type PatternResult struct {
	SufficientData       bool           `json:"sufficient_data"`
	RecordCount          int            `json:"record_count"`
	PatternStrength      float64        `json:"pattern_strength"`
	AvgIntervalDays      float64        `json:"avg_completion_interval_days"`
	PredictedNextDate    time.Time      `json:"predicted_next_date"`
	AvgQualityScore      float64        `json:"avg_quality_score"`
	AvgEfficiencyScore   float64        `json:"avg_efficiency_score"`
	MostCommonAssignee   string         `json:"most_common_assignee"`
	AssigneeDistribution map[string]int `json:"assignee_distribution"`
	Confidence           float64        `json:"recommendation_confidence"`
}

// maxPatternConfidence caps pattern confidence regardless of history size.
const maxPatternConfidence = 0.95

// AnalyzePattern mines completed historical records for a location and
// work-order type over the lookback window. Fewer than the minimum number of
// records (3) yields sufficient_data=false with no derived statistics; this
// is a degraded default, not an error.
func (a *Analyzer) AnalyzePattern(ctx context.Context, locationID, workOrderType string) (PatternResult, error) {
	lookback := time.Duration(a.lookbackDays) * 24 * time.Hour
	records, err := a.history.CompletionHistory(ctx, locationID, workOrderType, lookback)
	if err != nil {
		return PatternResult{}, fmt.Errorf("fetching completion history: %w", err)
	}

	result := PatternResult{RecordCount: len(records)}
	if len(records) < a.minHistoryRecords {
		return result, nil
	}
	result.SufficientData = true

	sort.Slice(records, func(i, j int) bool {
		return records[i].ActualEnd.Before(records[j].ActualEnd)
	})

	intervals := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		days := records[i].ActualEnd.Sub(records[i-1].ActualEnd).Hours() / 24
		intervals = append(intervals, days)
	}

	var intervalSum float64
	for _, d := range intervals {
		intervalSum += d
	}
	avgInterval := intervalSum / float64(len(intervals))
	result.AvgIntervalDays = avgInterval

	// Divide-by-zero guard: identical completion timestamps make interval
	// regularity non-comparable; report zero strength instead of failing.
	if avgInterval > 0 {
		var variance float64
		for _, d := range intervals {
			variance += (d - avgInterval) * (d - avgInterval)
		}
		variance /= float64(len(intervals))
		result.PatternStrength = 1 / (1 + variance/avgInterval)
	}

	last := records[len(records)-1].ActualEnd
	result.PredictedNextDate = last.Add(time.Duration(avgInterval * 24 * float64(time.Hour)))

	var qualitySum, efficiencySum float64
	result.AssigneeDistribution = make(map[string]int)
	for _, r := range records {
		qualitySum += r.QualityScore
		efficiencySum += r.EfficiencyScore
		if r.AssigneeID != "" {
			result.AssigneeDistribution[r.AssigneeID]++
		}
	}
	result.AvgQualityScore = qualitySum / float64(len(records))
	result.AvgEfficiencyScore = efficiencySum / float64(len(records))
	result.MostCommonAssignee = mostFrequent(result.AssigneeDistribution)

	result.Confidence = math.Min(maxPatternConfidence,
		result.PatternStrength*0.8+float64(len(records))*0.05)
	return result, nil
}

// mostFrequent returns the key with the highest count, ties broken by key
// order for determinism.
func mostFrequent(counts map[string]int) string {
	best := ""
	bestCount := 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
