package analysis

import (
	"context"
	"testing"

	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

func TestDetectTimeConflicts(t *testing.T) {
	orders := []models.WorkOrder{
		order("wo-1", "loc-office", []string{"e-alice"}, 9, 11, models.PriorityMedium),
		order("wo-2", "loc-restroom", []string{"e-alice"}, 10, 12, models.PriorityMedium),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	conflicts := a.DetectTimeConflicts(context.Background(), orders)

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 time conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Type != ConflictTimeAssignee {
		t.Errorf("Type = %s, want %s", c.Type, ConflictTimeAssignee)
	}
	// 60 minutes of overlap at $25/h
	almostEqual(t, c.ImpactUSD, 25, "ImpactUSD")
	if c.Severity != "high" {
		t.Errorf("Severity = %s, want high for a 60-minute overlap", c.Severity)
	}
}

func TestDetectTimeConflictsAdjacentWindows(t *testing.T) {
	orders := []models.WorkOrder{
		order("wo-1", "loc-office", []string{"e-alice"}, 9, 11, models.PriorityMedium),
		order("wo-2", "loc-restroom", []string{"e-alice"}, 11, 13, models.PriorityMedium),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	if got := a.DetectTimeConflicts(context.Background(), orders); len(got) != 0 {
		t.Errorf("back-to-back windows must not conflict, got %d", len(got))
	}
}

func TestDetectLocationConflicts(t *testing.T) {
	orders := []models.WorkOrder{
		order("wo-1", "loc-lab", []string{"e-alice"}, 9, 11, models.PriorityHigh),
		order("wo-2", "loc-lab", []string{"e-bob"}, 10, 12, models.PriorityHigh),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	conflicts := a.DetectLocationConflicts(context.Background(), orders)

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 location conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.LocationID != "loc-lab" || len(c.Parties) != 2 {
		t.Errorf("unexpected conflict: %+v", c)
	}
	if c.Severity != "critical" {
		t.Errorf("Severity = %s, want critical for a priority-9.5 location", c.Severity)
	}
}

func TestDetectLocationConflictsSameCrew(t *testing.T) {
	orders := []models.WorkOrder{
		order("wo-1", "loc-lab", []string{"e-alice"}, 9, 11, models.PriorityHigh),
		order("wo-2", "loc-lab", []string{"e-alice"}, 10, 12, models.PriorityHigh),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	if got := a.DetectLocationConflicts(context.Background(), orders); len(got) != 0 {
		t.Errorf("a single crew at one location is not crowding, got %d conflicts", len(got))
	}
}

func TestDetectWorkloadImbalanceBoundary(t *testing.T) {
	// Two active employees, one with all the work: both deviate exactly 100%
	// from the fleet average. A threshold of exactly 1.0 must not fire
	// (strict inequality); anything below must.
	employees := []models.Employee{
		{ID: "e-alice", FullName: "Alice Moreno", HourlyRate: 25, EfficiencyRating: 10, Active: true},
		{ID: "e-bob", FullName: "Bob Tanaka", HourlyRate: 25, EfficiencyRating: 10, Active: true},
	}
	orders := []models.WorkOrder{
		order("wo-1", "loc-office", []string{"e-alice"}, 9, 11, models.PriorityMedium),
	}
	snap := snapshot.New(employees, fixtureLocations(), nil, orders, nil, nil)

	at := NewAnalyzer(snap, WithImbalanceThreshold(1.0))
	if got := at.DetectWorkloadImbalance(context.Background(), orders); len(got) != 0 {
		t.Errorf("deviation equal to the threshold must not fire, got %d conflicts", len(got))
	}

	below := NewAnalyzer(snap, WithImbalanceThreshold(0.99))
	if got := below.DetectWorkloadImbalance(context.Background(), orders); len(got) != 2 {
		t.Errorf("expected both employees flagged below the threshold, got %d", len(got))
	}
}

func TestDetectSkillMismatches(t *testing.T) {
	// Alice lacks all three restroom requirements (quality_control included,
	// priority 9).
	orders := []models.WorkOrder{
		order("wo-1", "loc-restroom", []string{"e-alice"}, 9, 10, models.PriorityHigh),
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	conflicts := a.DetectSkillMismatches(context.Background(), orders)

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 skill mismatch, got %d", len(conflicts))
	}
	c := conflicts[0]
	almostEqual(t, c.ImpactUSD, 9*3*10, "ImpactUSD")
	if c.Severity != "critical" {
		t.Errorf("Severity = %s, want critical", c.Severity)
	}
}

func TestDetectCostInefficiencies(t *testing.T) {
	orders := []models.WorkOrder{
		order("wo-1", "loc-office", []string{"e-bob"}, 9, 11, models.PriorityLow),
		order("wo-2", "loc-lab", []string{"e-bob"}, 12, 14, models.PriorityLow), // high priority location, fine
	}
	a := NewAnalyzer(fixtureSnapshot(orders, nil))
	conflicts := a.DetectCostInefficiencies(context.Background(), orders)

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 cost inefficiency, got %d", len(conflicts))
	}
	// (35 − 20) × 2h
	almostEqual(t, conflicts[0].ImpactUSD, 30, "ImpactUSD")
	if conflicts[0].WorkOrders[0] != "wo-1" {
		t.Errorf("flagged order = %v, want wo-1", conflicts[0].WorkOrders)
	}
}
