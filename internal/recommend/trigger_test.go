package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

func activeAlert(id string, severity models.Severity, duration time.Duration) models.Alert {
	return models.Alert{
		ID:         id,
		LocationID: "loc-1",
		DataType:   "air_quality",
		Severity:   severity,
		Duration:   duration,
		Timestamp:  testDay,
		Status:     models.AlertActive,
	}
}

func TestAnalyzeTriggerEscalationOnlyReachesThreshold(t *testing.T) {
	// No alerts; the fixture estimator's 0.73 probability alone contributes
	// 0.6, which meets the threshold exactly.
	a := testAnalyzer(testSnapshot(nil, nil, nil), nil, nil, nil)

	result, err := a.AnalyzeTrigger(context.Background(), "loc-1")
	if err != nil {
		t.Fatal(err)
	}
	if !result.ShouldTrigger {
		t.Error("accumulated score 0.6 must trigger at the 0.6 threshold")
	}
	almostEqual(t, result.TriggerScore, 0.6, "TriggerScore")
	almostEqual(t, result.EscalationProbability, 0.73, "EscalationProbability")
	if result.RecommendedPriority != models.PriorityLow {
		t.Errorf("RecommendedPriority = %s, want low with no alerts", result.RecommendedPriority)
	}
}

func TestAnalyzeTriggerBelowThreshold(t *testing.T) {
	// One severe alert contributes nothing (two are needed) and escalation
	// probability 0.5 stays under the 0.7 bound: total 0.
	alerts := []models.Alert{activeAlert("al-1", models.SeveritySevere, time.Hour)}
	a := testAnalyzer(testSnapshot(alerts, nil, nil), nil, nil, lowEscalation())

	result, err := a.AnalyzeTrigger(context.Background(), "loc-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.ShouldTrigger {
		t.Error("score 0 must not trigger")
	}
	almostEqual(t, result.TriggerScore, 0, "TriggerScore")
	if result.RecommendedPriority != models.PriorityMedium {
		t.Errorf("RecommendedPriority = %s, want medium for a single severe alert", result.RecommendedPriority)
	}
}

func TestAnalyzeTriggerFullAccumulation(t *testing.T) {
	// Critical alert (+0.9), two severe (+0.7), escalation 0.73 (+0.6) and a
	// 26-hour alert (+0.5): 2.7 unclamped, clamped to 1.0.
	alerts := []models.Alert{
		activeAlert("al-1", models.SeverityCritical, 26*time.Hour),
		activeAlert("al-2", models.SeveritySevere, time.Hour),
		activeAlert("al-3", models.SeveritySevere, time.Hour),
	}
	a := testAnalyzer(testSnapshot(alerts, nil, nil), nil, nil, nil)

	result, err := a.AnalyzeTrigger(context.Background(), "loc-1")
	if err != nil {
		t.Fatal(err)
	}
	if !result.ShouldTrigger {
		t.Error("full accumulation must trigger")
	}
	almostEqual(t, result.TriggerScore, 1.0, "TriggerScore clamp")
	if result.RecommendedPriority != models.PriorityUrgent {
		t.Errorf("RecommendedPriority = %s, want urgent", result.RecommendedPriority)
	}
	if result.EstimatedResponseTime != "30 minutes" {
		t.Errorf("EstimatedResponseTime = %s, want 30 minutes", result.EstimatedResponseTime)
	}
	if len(result.TriggerReasons) != 4 {
		t.Errorf("expected 4 trigger reasons, got %v", result.TriggerReasons)
	}
}

func TestAnalyzeTriggerIgnoresResolvedAlerts(t *testing.T) {
	resolved := activeAlert("al-1", models.SeverityCritical, time.Hour)
	resolved.Status = models.AlertResolved
	a := testAnalyzer(testSnapshot([]models.Alert{resolved}, nil, nil), nil, nil, lowEscalation())

	result, err := a.AnalyzeTrigger(context.Background(), "loc-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.ActiveAlertsCount != 0 || result.CriticalAlerts != 0 {
		t.Errorf("resolved alerts must not count, got %+v", result)
	}
}

func TestResponseTime(t *testing.T) {
	cases := map[models.Severity]string{
		models.SeverityCritical:   "30 minutes",
		models.SeverityVerySevere: "2 hours",
		models.SeveritySevere:     "4 hours",
		models.SeverityWarning:    "24 hours",
		models.Severity("novel"):  "24 hours",
	}
	for sev, want := range cases {
		if got := ResponseTime(sev); got != want {
			t.Errorf("ResponseTime(%s) = %s, want %s", sev, got, want)
		}
	}
}
