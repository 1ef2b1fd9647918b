package recommend

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/estimator"
	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// fakeHistory serves a canned record list regardless of the query.
type fakeHistory struct {
	records []models.CompletionRecord
	err     error
}

func (f *fakeHistory) CompletionHistory(ctx context.Context, locationID, workOrderType string, lookback time.Duration) ([]models.CompletionRecord, error) {
	return f.records, f.err
}

// fakeBaselines serves a canned baseline map regardless of the query.
type fakeBaselines struct {
	baselines map[string]snapshot.Baseline
	err       error
}

func (f *fakeBaselines) Baselines(ctx context.Context, locationID, workOrderType string) (map[string]snapshot.Baseline, error) {
	return f.baselines, f.err
}

func fixtureEmployees() []models.Employee {
	return []models.Employee{
		{ID: "e-alice", FullName: "Alice Moreno", HourlyRate: 25, EfficiencyRating: 10,
			Skills: []string{"general_cleaning"}, Active: true},
		{ID: "e-bob", FullName: "Bob Tanaka", HourlyRate: 40, EfficiencyRating: 8,
			Skills: []string{"restroom_cleaning", "sanitization"}, Active: true},
	}
}

func fixtureLocations() []models.Location {
	return []models.Location{
		{ID: "loc-1", Name: "Office 101", Zone: models.ZoneOffice, Building: "A", Floor: 1, PriorityScore: 5},
		{ID: "loc-critical", Name: "Lab B2", Zone: models.ZoneLaboratory, Building: "B", Floor: 2, PriorityScore: 9.5},
	}
}

func testSnapshot(alerts []models.Alert, orders []models.WorkOrder, metrics []models.Metric) *snapshot.Snapshot {
	return snapshot.New(fixtureEmployees(), fixtureLocations(), alerts, orders, metrics, nil)
}

func testAnalyzer(snap *snapshot.Snapshot, history snapshot.HistoryProvider, baselines snapshot.BaselineProvider, esc estimator.EscalationEstimator, opts ...Option) *Analyzer {
	if history == nil {
		history = &fakeHistory{}
	}
	if baselines == nil {
		baselines = &fakeBaselines{}
	}
	if esc == nil {
		esc = estimator.NewFixed()
	}
	return NewAnalyzer(snap, history, baselines, esc, opts...)
}

// lowEscalation is an estimator below the 0.7 trigger contribution bound.
func lowEscalation() estimator.EscalationEstimator {
	return &estimator.Fixed{Estimate0: estimator.EscalationEstimate{
		EscalationProbability: 0.5,
		AvgEscalationHours:    18.5,
		PreventionSuccessRate: 0.82,
	}}
}

func completion(endOffsetDays int, assignee string) models.CompletionRecord {
	end := testDay.Add(time.Duration(endOffsetDays) * 24 * time.Hour)
	return models.CompletionRecord{
		WorkOrderID:     "wo-hist",
		LocationID:      "loc-1",
		Type:            "cleaning",
		ActualStart:     end.Add(-time.Hour),
		ActualEnd:       end,
		QualityScore:    8,
		EfficiencyScore: 7,
		AssigneeID:      assignee,
	}
}

func almostEqual(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}
