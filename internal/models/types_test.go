package models

import (
	"testing"
	"time"
)

func TestSeverityRank(t *testing.T) {
	ordered := []Severity{SeverityWarning, SeveritySevere, SeverityVerySevere, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}
	if Severity("bogus").Rank() != 0 {
		t.Errorf("unknown severity should rank 0, got %d", Severity("bogus").Rank())
	}
}

func TestPriorityWeight(t *testing.T) {
	cases := map[Priority]float64{
		PriorityLow:      1,
		PriorityMedium:   2,
		PriorityHigh:     3,
		PriorityUrgent:   4,
		Priority("what"): 1,
	}
	for p, want := range cases {
		if got := p.Weight(); got != want {
			t.Errorf("Weight(%s) = %v, want %v", p, got, want)
		}
	}
}

func TestParseSource(t *testing.T) {
	for _, valid := range []string{"pattern", "alert_triggered", "metric_driven", "manual"} {
		if _, err := ParseSource(valid); err != nil {
			t.Errorf("ParseSource(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseSource("oracle"); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestWorkOrderOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mk := func(startOffset, endOffset time.Duration) WorkOrder {
		return WorkOrder{ScheduledStart: base.Add(startOffset), ScheduledEnd: base.Add(endOffset)}
	}

	a := mk(0, 2*time.Hour)
	overlapping := mk(time.Hour, 3*time.Hour)
	adjacent := mk(2*time.Hour, 4*time.Hour)
	disjoint := mk(5*time.Hour, 6*time.Hour)

	if !a.Overlaps(overlapping) || !overlapping.Overlaps(a) {
		t.Error("expected overlapping windows to overlap both ways")
	}
	if a.Overlaps(adjacent) {
		t.Error("half-open windows sharing an endpoint must not overlap")
	}
	if a.Overlaps(disjoint) {
		t.Error("disjoint windows must not overlap")
	}
}

func TestEmployeeHasSkill(t *testing.T) {
	e := Employee{Skills: []string{"sanitization", "floor_care"}}
	if !e.HasSkill("floor_care") {
		t.Error("expected floor_care to be present")
	}
	if e.HasSkill("chemical_handling") {
		t.Error("did not expect chemical_handling")
	}
}
