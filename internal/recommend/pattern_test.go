package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

func TestAnalyzePatternInsufficientData(t *testing.T) {
	history := &fakeHistory{records: []models.CompletionRecord{
		completion(0, "e-alice"),
		completion(7, "e-alice"),
	}}
	a := testAnalyzer(testSnapshot(nil, nil, nil), history, nil, nil)

	result, err := a.AnalyzePattern(context.Background(), "loc-1", "cleaning")
	if err != nil {
		t.Fatalf("insufficient history is a degraded default, not an error: %v", err)
	}
	if result.SufficientData {
		t.Error("2 records must report sufficient_data=false")
	}
	if result.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", result.RecordCount)
	}
	if result.PatternStrength != 0 || result.Confidence != 0 {
		t.Errorf("no statistics should be derived, got %+v", result)
	}
}

func TestAnalyzePatternWeeklyCadence(t *testing.T) {
	// Four completions exactly 7 days apart: zero interval variance means
	// pattern strength 1.0 and a predicted next date one interval after the
	// last completion.
	history := &fakeHistory{records: []models.CompletionRecord{
		completion(0, "e-alice"),
		completion(7, "e-alice"),
		completion(14, "e-bob"),
		completion(21, "e-alice"),
	}}
	a := testAnalyzer(testSnapshot(nil, nil, nil), history, nil, nil)

	result, err := a.AnalyzePattern(context.Background(), "loc-1", "cleaning")
	if err != nil {
		t.Fatal(err)
	}
	if !result.SufficientData {
		t.Fatal("4 records must be sufficient")
	}
	almostEqual(t, result.AvgIntervalDays, 7, "AvgIntervalDays")
	almostEqual(t, result.PatternStrength, 1.0, "PatternStrength")

	wantNext := testDay.Add(28 * 24 * time.Hour)
	if !result.PredictedNextDate.Equal(wantNext) {
		t.Errorf("PredictedNextDate = %v, want %v", result.PredictedNextDate, wantNext)
	}
	if result.MostCommonAssignee != "e-alice" {
		t.Errorf("MostCommonAssignee = %s, want e-alice", result.MostCommonAssignee)
	}
	almostEqual(t, result.AvgQualityScore, 8, "AvgQualityScore")
	almostEqual(t, result.AvgEfficiencyScore, 7, "AvgEfficiencyScore")
}

func TestAnalyzePatternConfidenceCap(t *testing.T) {
	// Strength 1.0 and 4 records would give 0.8 + 0.2 = 1.0; the cap holds
	// it at 0.95.
	history := &fakeHistory{records: []models.CompletionRecord{
		completion(0, "e-alice"),
		completion(7, "e-alice"),
		completion(14, "e-alice"),
		completion(21, "e-alice"),
	}}
	a := testAnalyzer(testSnapshot(nil, nil, nil), history, nil, nil)

	result, err := a.AnalyzePattern(context.Background(), "loc-1", "cleaning")
	if err != nil {
		t.Fatal(err)
	}
	almostEqual(t, result.Confidence, 0.95, "Confidence")
}

func TestAnalyzePatternZeroIntervalGuard(t *testing.T) {
	// Identical completion timestamps make the average interval zero;
	// strength must degrade to zero instead of dividing by zero.
	history := &fakeHistory{records: []models.CompletionRecord{
		completion(0, "e-alice"),
		completion(0, "e-alice"),
		completion(0, "e-bob"),
	}}
	a := testAnalyzer(testSnapshot(nil, nil, nil), history, nil, nil)

	result, err := a.AnalyzePattern(context.Background(), "loc-1", "cleaning")
	if err != nil {
		t.Fatal(err)
	}
	if !result.SufficientData {
		t.Fatal("3 records must be sufficient")
	}
	if result.PatternStrength != 0 {
		t.Errorf("PatternStrength = %v, want 0 for identical timestamps", result.PatternStrength)
	}
}

func TestAnalyzePatternHistoryError(t *testing.T) {
	history := &fakeHistory{err: errors.New("store offline")}
	a := testAnalyzer(testSnapshot(nil, nil, nil), history, nil, nil)

	if _, err := a.AnalyzePattern(context.Background(), "loc-1", "cleaning"); err == nil {
		t.Error("provider errors must propagate")
	}
}

func TestMostFrequentDeterministicTies(t *testing.T) {
	counts := map[string]int{"e-zed": 2, "e-abe": 2, "e-mid": 1}
	if got := mostFrequent(counts); got != "e-abe" {
		t.Errorf("mostFrequent = %s, want e-abe (lowest key wins ties)", got)
	}
}
