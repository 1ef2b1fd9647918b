package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMigratesIdempotently(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())

	// Reopening must not re-apply migrations.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestLoadSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, models.Employee{
		ID: "e-1", FullName: "Alice Moreno", HourlyRate: 25, EfficiencyRating: 10,
		Skills: []string{"general_cleaning"}, Active: true,
		PreferredZones: []models.ZoneType{models.ZoneOffice},
	}))
	require.NoError(t, s.SaveLocation(ctx, models.Location{
		ID: "loc-1", Name: "Office 101", Zone: models.ZoneOffice,
		Building: "A", Floor: 1, PriorityScore: 5,
	}))
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveWorkOrder(ctx, models.WorkOrder{
		ID: "wo-1", LocationID: "loc-1", Type: "cleaning", Priority: models.PriorityMedium,
		Assignees: []string{"e-1"}, ScheduledStart: start, ScheduledEnd: start.Add(2 * time.Hour),
		Status: models.StatusIdle,
	}))
	require.NoError(t, s.SaveAlert(ctx, models.Alert{
		ID: "al-1", LocationID: "loc-1", DataType: "air_quality",
		Severity: models.SeverityCritical, Value: 180, Threshold: 100,
		Duration: 2 * time.Hour, Timestamp: start, Status: models.AlertActive,
	}))
	require.NoError(t, s.SaveMetric(ctx, models.Metric{
		LocationID: "loc-1", DataType: "air_quality", Value: 42, Timestamp: start,
	}))
	require.NoError(t, s.SaveTemplate(ctx, models.TaskTemplate{
		Type: "cleaning", DefaultDuration: 90 * time.Minute, RequiredSkills: []string{"general_cleaning"},
	}))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)

	emp, ok := snap.Employee("e-1")
	require.True(t, ok)
	assert.Equal(t, []string{"general_cleaning"}, emp.Skills)
	assert.Equal(t, []models.ZoneType{models.ZoneOffice}, emp.PreferredZones)

	orders := snap.WorkOrdersForLocation("loc-1")
	require.Len(t, orders, 1)
	assert.Equal(t, []string{"e-1"}, orders[0].Assignees)
	assert.True(t, orders[0].ScheduledStart.Equal(start))
	assert.True(t, orders[0].ActualStart.IsZero(), "unset actual times round-trip as zero")

	alerts := snap.ActiveAlertsForLocation("loc-1")
	require.Len(t, alerts, 1)
	assert.Equal(t, 2*time.Hour, alerts[0].Duration)

	tmpl, ok := snap.Template("cleaning")
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, tmpl.DefaultDuration)
}

func TestSaveEmployeeUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := models.Employee{ID: "e-1", FullName: "Alice Moreno", HourlyRate: 25, Active: true}
	require.NoError(t, s.SaveEmployee(ctx, e))
	e.HourlyRate = 28
	require.NoError(t, s.SaveEmployee(ctx, e))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Employees(), 1)
	assert.Equal(t, 28.0, snap.Employees()[0].HourlyRate)
}

func TestCompletionHistoryWindowAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, daysAgo := range []int{40, 20, 10, 5} {
		end := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		require.NoError(t, s.SaveCompletionRecord(ctx, models.CompletionRecord{
			WorkOrderID: "wo-hist", LocationID: "loc-1", Type: "cleaning",
			ActualStart: end.Add(-time.Hour), ActualEnd: end,
			QualityScore: 8, EfficiencyScore: 7, AssigneeID: "e-1",
		}))
	}
	// Different type, must not leak into the query.
	require.NoError(t, s.SaveCompletionRecord(ctx, models.CompletionRecord{
		WorkOrderID: "wo-x", LocationID: "loc-1", Type: "inspection",
		ActualStart: now.Add(-time.Hour), ActualEnd: now,
	}))

	records, err := s.CompletionHistory(ctx, "loc-1", "cleaning", 30*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, records, 3, "the 40-day-old record falls outside the window")
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].ActualEnd.After(records[i-1].ActualEnd), "oldest first")
	}
}

func TestBaselinesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveBaseline(ctx, "loc-1", "cleaning", "air_quality",
		snapshot.Baseline{Average: 85.2, StdDev: 3.1}))
	// Upsert overwrites.
	require.NoError(t, s.SaveBaseline(ctx, "loc-1", "cleaning", "air_quality",
		snapshot.Baseline{Average: 90, StdDev: 2}))

	baselines, err := s.Baselines(ctx, "loc-1", "cleaning")
	require.NoError(t, err)
	require.Contains(t, baselines, "air_quality")
	assert.Equal(t, 90.0, baselines["air_quality"].Average)

	empty, err := s.Baselines(ctx, "loc-404", "cleaning")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveRecommendationsIgnoresDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := models.TaskRecommendation{
		ID: "rec-1", LocationID: "loc-1", Type: "cleaning", Priority: models.PriorityHigh,
		SuggestedStart: time.Now().UTC(), SuggestedEnd: time.Now().UTC().Add(time.Hour),
		SuggestedAssignees: []string{"e-1"}, Confidence: 0.9,
		Source: models.SourceAlertTriggered, Reasons: []string{"critical alert active"},
	}
	require.NoError(t, s.SaveRecommendations(ctx, []models.TaskRecommendation{rec}))
	require.NoError(t, s.SaveRecommendations(ctx, []models.TaskRecommendation{rec}))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&count))
	assert.Equal(t, 1, count)
}
