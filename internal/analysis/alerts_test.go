package analysis

import (
	"context"
	"testing"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

func alert(id, locationID string, severity models.Severity, status models.AlertStatus) models.Alert {
	return models.Alert{
		ID:         id,
		LocationID: locationID,
		DataType:   "air_quality",
		Severity:   severity,
		Timestamp:  testDay,
		Status:     status,
	}
}

func TestAnalyzeAlertImpactHotspots(t *testing.T) {
	alerts := []models.Alert{
		alert("al-1", "loc-restroom", models.SeverityCritical, models.AlertActive),
		alert("al-2", "loc-restroom", models.SeverityVerySevere, models.AlertActive),
		alert("al-3", "loc-office", models.SeverityCritical, models.AlertActive),
		alert("al-4", "loc-office", models.SeverityWarning, models.AlertActive),
	}
	a := NewAnalyzer(fixtureSnapshot(nil, alerts))
	impact := a.AnalyzeAlertImpact(context.Background(), nil)

	if len(impact.Hotspots) != 1 || impact.Hotspots[0].LocationID != "loc-restroom" {
		t.Fatalf("Hotspots = %+v, want only loc-restroom", impact.Hotspots)
	}
	if impact.Hotspots[0].MaxSeverity != models.SeverityCritical {
		t.Errorf("MaxSeverity = %s, want critical", impact.Hotspots[0].MaxSeverity)
	}
}

func TestAnalyzeAlertImpactIgnoresResolved(t *testing.T) {
	alerts := []models.Alert{
		alert("al-1", "loc-restroom", models.SeverityCritical, models.AlertResolved),
	}
	a := NewAnalyzer(fixtureSnapshot(nil, alerts))
	impact := a.AnalyzeAlertImpact(context.Background(), nil)

	if len(impact.ByLocation) != 0 {
		t.Errorf("resolved alerts must not be grouped, got %+v", impact.ByLocation)
	}
}

func TestAnalyzeAlertImpactUnaddressed(t *testing.T) {
	alerts := []models.Alert{
		alert("al-1", "loc-lab", models.SeverityCritical, models.AlertActive),
		alert("al-2", "loc-office", models.SeverityVerySevere, models.AlertActive),
		alert("al-3", "loc-office", models.SeverityWarning, models.AlertActive),
	}
	orders := []models.WorkOrder{
		order("wo-1", "loc-office", []string{"e-alice"}, 9, 10, models.PriorityUrgent),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, alerts))
	impact := a.AnalyzeAlertImpact(context.Background(), orders)

	// Only the lab alert has no addressing work order; the warning never
	// qualifies regardless.
	if len(impact.Unaddressed) != 1 || impact.Unaddressed[0].ID != "al-1" {
		t.Fatalf("Unaddressed = %+v, want only al-1", impact.Unaddressed)
	}
}

func TestAnalyzeAlertImpactPriorityAlignment(t *testing.T) {
	alerts := []models.Alert{
		alert("al-1", "loc-restroom", models.SeverityCritical, models.AlertActive),
	}
	orders := []models.WorkOrder{
		order("wo-under", "loc-restroom", []string{"e-bob"}, 9, 10, models.PriorityLow),
		order("wo-exact", "loc-restroom", []string{"e-bob"}, 10, 11, models.PriorityUrgent),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, alerts))
	impact := a.AnalyzeAlertImpact(context.Background(), orders)

	if len(impact.Alignment) != 2 {
		t.Fatalf("expected 2 alignment entries, got %d", len(impact.Alignment))
	}
	for _, al := range impact.Alignment {
		if al.ExpectedPriority != models.PriorityUrgent {
			t.Errorf("ExpectedPriority = %s, want urgent", al.ExpectedPriority)
		}
		switch al.WorkOrderID {
		case "wo-under":
			if al.Matched {
				t.Error("low priority under a critical alert must not match")
			}
		case "wo-exact":
			if !al.Matched {
				t.Error("urgent priority under a critical alert must match")
			}
		}
	}
}

func TestExpectedPriority(t *testing.T) {
	cases := map[models.Severity]models.Priority{
		models.SeverityCritical:   models.PriorityUrgent,
		models.SeverityVerySevere: models.PriorityUrgent,
		models.SeveritySevere:     models.PriorityHigh,
		models.SeverityWarning:    models.PriorityMedium,
		models.Severity("odd"):    models.PriorityLow,
	}
	for sev, want := range cases {
		if got := ExpectedPriority(sev); got != want {
			t.Errorf("ExpectedPriority(%s) = %s, want %s", sev, got, want)
		}
	}
}
