package snapshot

import (
	"testing"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

func testSnapshot() *Snapshot {
	return New(
		[]models.Employee{
			{ID: "e-1", Active: true},
			{ID: "e-2", Active: false},
		},
		[]models.Location{
			{ID: "loc-1", Name: "Office 101"},
		},
		[]models.Alert{
			{ID: "al-1", LocationID: "loc-1", Status: models.AlertActive},
			{ID: "al-2", LocationID: "loc-1", Status: models.AlertResolved},
		},
		[]models.WorkOrder{
			{ID: "wo-1", LocationID: "loc-1"},
		},
		[]models.Metric{
			{LocationID: "loc-1", DataType: "air_quality", Value: 40, Timestamp: time.Now()},
			{LocationID: "loc-1", DataType: "air_quality", Value: 42, Timestamp: time.Now()},
			{LocationID: "loc-1", DataType: "humidity", Value: 55, Timestamp: time.Now()},
			{LocationID: "loc-2", DataType: "humidity", Value: 60, Timestamp: time.Now()},
		},
		[]models.TaskTemplate{
			{Type: "cleaning", DefaultDuration: time.Hour},
		},
	)
}

func TestSnapshotLookups(t *testing.T) {
	s := testSnapshot()

	if _, ok := s.Employee("e-1"); !ok {
		t.Error("expected e-1")
	}
	if _, ok := s.Employee("e-404"); ok {
		t.Error("did not expect e-404")
	}
	if loc, ok := s.Location("loc-1"); !ok || loc.Name != "Office 101" {
		t.Errorf("Location = (%+v, %v)", loc, ok)
	}
	if tmpl, ok := s.Template("cleaning"); !ok || tmpl.DefaultDuration != time.Hour {
		t.Errorf("Template = (%+v, %v)", tmpl, ok)
	}
}

func TestSnapshotActiveFilters(t *testing.T) {
	s := testSnapshot()

	if got := s.ActiveEmployees(); len(got) != 1 || got[0].ID != "e-1" {
		t.Errorf("ActiveEmployees = %+v", got)
	}
	if got := s.ActiveAlerts(); len(got) != 1 || got[0].ID != "al-1" {
		t.Errorf("ActiveAlerts = %+v", got)
	}
	if got := s.ActiveAlertsForLocation("loc-1"); len(got) != 1 {
		t.Errorf("ActiveAlertsForLocation = %+v", got)
	}
}

func TestSnapshotMetricQueries(t *testing.T) {
	s := testSnapshot()

	if got := s.MetricsForLocation("loc-1", "air_quality"); len(got) != 2 {
		t.Errorf("expected 2 air_quality samples, got %d", len(got))
	}
	types := s.MetricTypesForLocation("loc-1")
	if len(types) != 2 || types[0] != "air_quality" || types[1] != "humidity" {
		t.Errorf("MetricTypesForLocation = %v", types)
	}
	if got := s.MetricTypesForLocation("loc-404"); len(got) != 0 {
		t.Errorf("unknown location should have no metric types, got %v", got)
	}
}

func TestSnapshotOrdersByLocation(t *testing.T) {
	s := testSnapshot()
	if got := s.WorkOrdersForLocation("loc-1"); len(got) != 1 || got[0].ID != "wo-1" {
		t.Errorf("WorkOrdersForLocation = %+v", got)
	}
	if got := s.WorkOrdersForLocation("loc-404"); len(got) != 0 {
		t.Errorf("expected no orders, got %+v", got)
	}
}
