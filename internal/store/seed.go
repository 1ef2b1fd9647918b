package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

// Upsert helpers used by ingestion jobs and test fixtures.

// SaveEmployee inserts or updates an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e models.Employee) error {
	skills, err := json.Marshal(e.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	zones, err := json.Marshal(e.PreferredZones)
	if err != nil {
		return fmt.Errorf("marshal preferred zones: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO employees(id, full_name, hourly_rate, efficiency_rating, skills, active, preferred_zones)
        VALUES(?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            full_name         = excluded.full_name,
            hourly_rate       = excluded.hourly_rate,
            efficiency_rating = excluded.efficiency_rating,
            skills            = excluded.skills,
            active            = excluded.active,
            preferred_zones   = excluded.preferred_zones`,
		e.ID, e.FullName, e.HourlyRate, e.EfficiencyRating, string(skills), e.Active, string(zones))
	if err != nil {
		return fmt.Errorf("upsert employee %s: %w", e.ID, err)
	}
	return nil
}

// SaveLocation inserts or updates a location record.
func (s *Store) SaveLocation(ctx context.Context, l models.Location) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO locations(id, name, zone_type, building, floor, priority_score, latitude, longitude)
        VALUES(?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            name           = excluded.name,
            zone_type      = excluded.zone_type,
            building       = excluded.building,
            floor          = excluded.floor,
            priority_score = excluded.priority_score,
            latitude       = excluded.latitude,
            longitude      = excluded.longitude`,
		l.ID, l.Name, string(l.Zone), l.Building, l.Floor, l.PriorityScore, l.Latitude, l.Longitude)
	if err != nil {
		return fmt.Errorf("upsert location %s: %w", l.ID, err)
	}
	return nil
}

// SaveWorkOrder inserts or updates a work-order record.
func (s *Store) SaveWorkOrder(ctx context.Context, w models.WorkOrder) error {
	assignees, err := json.Marshal(w.Assignees)
	if err != nil {
		return fmt.Errorf("marshal assignees: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO work_orders(id, location_id, type, priority, assignees, scheduled_start, scheduled_end,
            actual_start, actual_end, duration_sec, status)
        VALUES(?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            priority        = excluded.priority,
            assignees       = excluded.assignees,
            scheduled_start = excluded.scheduled_start,
            scheduled_end   = excluded.scheduled_end,
            actual_start    = excluded.actual_start,
            actual_end      = excluded.actual_end,
            duration_sec    = excluded.duration_sec,
            status          = excluded.status`,
		w.ID, w.LocationID, w.Type, string(w.Priority), string(assignees),
		w.ScheduledStart.UTC(), w.ScheduledEnd.UTC(),
		nullableTime(w.ActualStart), nullableTime(w.ActualEnd),
		int64(w.Duration.Seconds()), string(w.Status))
	if err != nil {
		return fmt.Errorf("upsert work order %s: %w", w.ID, err)
	}
	return nil
}

// SaveAlert inserts or updates an alert record.
func (s *Store) SaveAlert(ctx context.Context, a models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO alerts(id, location_id, data_type, severity, value, threshold, duration_sec, timestamp, status)
        VALUES(?,?,?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET
            severity     = excluded.severity,
            value        = excluded.value,
            duration_sec = excluded.duration_sec,
            status       = excluded.status`,
		a.ID, a.LocationID, a.DataType, string(a.Severity), a.Value, a.Threshold,
		int64(a.Duration.Seconds()), a.Timestamp.UTC(), string(a.Status))
	if err != nil {
		return fmt.Errorf("upsert alert %s: %w", a.ID, err)
	}
	return nil
}

// SaveMetric appends a metric observation.
func (s *Store) SaveMetric(ctx context.Context, m models.Metric) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metrics(location_id, data_type, value, timestamp) VALUES(?,?,?,?)`,
		m.LocationID, m.DataType, m.Value, m.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// SaveTemplate inserts or updates a task template.
func (s *Store) SaveTemplate(ctx context.Context, t models.TaskTemplate) error {
	skills, err := json.Marshal(t.RequiredSkills)
	if err != nil {
		return fmt.Errorf("marshal required skills: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO task_templates(type, default_duration_sec, required_skills)
        VALUES(?,?,?)
        ON CONFLICT(type) DO UPDATE SET
            default_duration_sec = excluded.default_duration_sec,
            required_skills      = excluded.required_skills`,
		t.Type, int64(t.DefaultDuration.Seconds()), string(skills))
	if err != nil {
		return fmt.Errorf("upsert template %s: %w", t.Type, err)
	}
	return nil
}

// SaveCompletionRecord appends a historical completion record.
func (s *Store) SaveCompletionRecord(ctx context.Context, r models.CompletionRecord) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO completion_records(work_order_id, location_id, type, actual_start, actual_end,
            quality_score, efficiency_score, assignee_id)
        VALUES(?,?,?,?,?,?,?,?)`,
		r.WorkOrderID, r.LocationID, r.Type, r.ActualStart.UTC(), r.ActualEnd.UTC(),
		r.QualityScore, r.EfficiencyScore, r.AssigneeID)
	if err != nil {
		return fmt.Errorf("insert completion record: %w", err)
	}
	return nil
}

// SaveBaseline inserts or updates a metric baseline.
func (s *Store) SaveBaseline(ctx context.Context, locationID, workOrderType, dataType string, b snapshot.Baseline) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO metric_baselines(location_id, work_order_type, data_type, average, std_dev)
        VALUES(?,?,?,?,?)
        ON CONFLICT(location_id, work_order_type, data_type) DO UPDATE SET
            average = excluded.average,
            std_dev = excluded.std_dev`,
		locationID, workOrderType, dataType, b.Average, b.StdDev)
	if err != nil {
		return fmt.Errorf("upsert baseline: %w", err)
	}
	return nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
