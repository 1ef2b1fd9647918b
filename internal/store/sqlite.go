package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver (no CGO required)

	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/snapshot"
)

// Package store is the SQLite-backed implementation of the snapshot loader,
// history provider and baseline provider contracts, plus persistence of
// emitted recommendations for the orchestrator's audit trail. The analyzers
// never touch it; they receive already-resolved inputs.

// schema migrations, versions tracked in the schema_versions table.
var migrations = []struct {
	version int
	sql     string
}{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_versions (
    version     INTEGER PRIMARY KEY,
    applied_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS employees (
    id                TEXT PRIMARY KEY,
    full_name         TEXT NOT NULL,
    hourly_rate       REAL NOT NULL DEFAULT 0,
    efficiency_rating REAL NOT NULL DEFAULT 0,
    skills            TEXT NOT NULL DEFAULT '[]',
    active            BOOLEAN NOT NULL DEFAULT 1,
    preferred_zones   TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS locations (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    zone_type      TEXT NOT NULL,
    building       TEXT NOT NULL DEFAULT '',
    floor          INTEGER NOT NULL DEFAULT 0,
    priority_score REAL NOT NULL DEFAULT 0,
    latitude       REAL NOT NULL DEFAULT 0,
    longitude      REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS work_orders (
    id              TEXT PRIMARY KEY,
    location_id     TEXT NOT NULL REFERENCES locations(id),
    type            TEXT NOT NULL,
    priority        TEXT NOT NULL DEFAULT 'low',
    assignees       TEXT NOT NULL DEFAULT '[]',
    scheduled_start DATETIME NOT NULL,
    scheduled_end   DATETIME NOT NULL,
    actual_start    DATETIME,
    actual_end      DATETIME,
    duration_sec    INTEGER NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'idle'
);
CREATE INDEX IF NOT EXISTS idx_work_orders_location ON work_orders(location_id);
CREATE INDEX IF NOT EXISTS idx_work_orders_status   ON work_orders(status);

CREATE TABLE IF NOT EXISTS completion_records (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    work_order_id    TEXT NOT NULL,
    location_id      TEXT NOT NULL,
    type             TEXT NOT NULL,
    actual_start     DATETIME NOT NULL,
    actual_end       DATETIME NOT NULL,
    quality_score    REAL NOT NULL DEFAULT 0,
    efficiency_score REAL NOT NULL DEFAULT 0,
    assignee_id      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_completions_loc_type ON completion_records(location_id, type, actual_end DESC);

CREATE TABLE IF NOT EXISTS alerts (
    id           TEXT PRIMARY KEY,
    location_id  TEXT NOT NULL REFERENCES locations(id),
    data_type    TEXT NOT NULL,
    severity     TEXT NOT NULL,
    value        REAL NOT NULL DEFAULT 0,
    threshold    REAL NOT NULL DEFAULT 0,
    duration_sec INTEGER NOT NULL DEFAULT 0,
    timestamp    DATETIME NOT NULL,
    status       TEXT NOT NULL DEFAULT 'active'
);
CREATE INDEX IF NOT EXISTS idx_alerts_location ON alerts(location_id, status);

CREATE TABLE IF NOT EXISTS metrics (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    location_id TEXT NOT NULL,
    data_type   TEXT NOT NULL,
    value       REAL NOT NULL,
    timestamp   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metrics_loc_type ON metrics(location_id, data_type, timestamp DESC);

CREATE TABLE IF NOT EXISTS task_templates (
    type             TEXT PRIMARY KEY,
    default_duration_sec INTEGER NOT NULL DEFAULT 3600,
    required_skills  TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS metric_baselines (
    location_id     TEXT NOT NULL,
    work_order_type TEXT NOT NULL,
    data_type       TEXT NOT NULL,
    average         REAL NOT NULL,
    std_dev         REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (location_id, work_order_type, data_type)
);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS recommendations (
    id                  TEXT PRIMARY KEY,
    location_id         TEXT NOT NULL,
    type                TEXT NOT NULL,
    priority            TEXT NOT NULL,
    suggested_start     DATETIME,
    suggested_end       DATETIME,
    suggested_assignees TEXT NOT NULL DEFAULT '[]',
    confidence          REAL NOT NULL DEFAULT 0,
    source              TEXT NOT NULL,
    reasons             TEXT NOT NULL DEFAULT '[]',
    created_at          DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_created ON recommendations(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_recommendations_location ON recommendations(location_id);
`,
	},
}

// Store is the SQLite-backed data layer.
type Store struct {
	db *sql.DB
}

var (
	_ snapshot.Loader           = (*Store)(nil)
	_ snapshot.HistoryProvider  = (*Store)(nil)
	_ snapshot.BaselineProvider = (*Store)(nil)
)

// Open opens (or creates) a SQLite database at the given path and runs all
// pending schema migrations. Pass ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// WAL for better concurrency.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate applies any unapplied migrations in order.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_versions (
        version    INTEGER PRIMARY KEY,
        applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_versions WHERE version = ?`, m.version).Scan(&count); err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if count > 0 {
			continue // already applied
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := s.db.Exec(`INSERT INTO schema_versions(version) VALUES(?)`, m.version); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// LoadSnapshot reads the full domain state into an immutable snapshot.
func (s *Store) LoadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	employees, err := s.loadEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	locations, err := s.loadLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	alerts, err := s.loadAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}
	orders, err := s.loadWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work orders: %w", err)
	}
	metrics, err := s.loadMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	templates, err := s.loadTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return snapshot.New(employees, locations, alerts, orders, metrics, templates), nil
}

// CompletionHistory returns completed records for a location/type within the
// lookback window, oldest first.
func (s *Store) CompletionHistory(ctx context.Context, locationID, workOrderType string, lookback time.Duration) ([]models.CompletionRecord, error) {
	cutoff := time.Now().Add(-lookback).UTC()
	rows, err := s.db.QueryContext(ctx, `
        SELECT work_order_id, location_id, type, actual_start, actual_end, quality_score, efficiency_score, assignee_id
        FROM completion_records
        WHERE location_id = ? AND type = ? AND actual_end >= ?
        ORDER BY actual_end ASC`,
		locationID, workOrderType, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query completion history: %w", err)
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		if err := rows.Scan(&r.WorkOrderID, &r.LocationID, &r.Type, &r.ActualStart, &r.ActualEnd,
			&r.QualityScore, &r.EfficiencyScore, &r.AssigneeID); err != nil {
			return nil, fmt.Errorf("scan completion record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Baselines returns the per-metric-type baselines for a location/type pair.
func (s *Store) Baselines(ctx context.Context, locationID, workOrderType string) (map[string]snapshot.Baseline, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT data_type, average, std_dev
        FROM metric_baselines
        WHERE location_id = ? AND work_order_type = ?`,
		locationID, workOrderType)
	if err != nil {
		return nil, fmt.Errorf("query baselines: %w", err)
	}
	defer rows.Close()

	baselines := make(map[string]snapshot.Baseline)
	for rows.Next() {
		var dataType string
		var b snapshot.Baseline
		if err := rows.Scan(&dataType, &b.Average, &b.StdDev); err != nil {
			return nil, fmt.Errorf("scan baseline: %w", err)
		}
		baselines[dataType] = b
	}
	return baselines, rows.Err()
}

// SaveRecommendations persists generated recommendations for the audit trail.
func (s *Store) SaveRecommendations(ctx context.Context, recs []models.TaskRecommendation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, r := range recs {
		assignees, err := json.Marshal(r.SuggestedAssignees)
		if err != nil {
			return fmt.Errorf("marshal assignees: %w", err)
		}
		reasons, err := json.Marshal(r.Reasons)
		if err != nil {
			return fmt.Errorf("marshal reasons: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO recommendations(id, location_id, type, priority, suggested_start, suggested_end,
                suggested_assignees, confidence, source, reasons, created_at)
            VALUES(?,?,?,?,?,?,?,?,?,?,?)
            ON CONFLICT(id) DO NOTHING`,
			r.ID, r.LocationID, r.Type, string(r.Priority),
			r.SuggestedStart.UTC(), r.SuggestedEnd.UTC(),
			string(assignees), r.Confidence, string(r.Source), string(reasons), now,
		); err != nil {
			return fmt.Errorf("insert recommendation %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) loadEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, hourly_rate, efficiency_rating, skills, active, preferred_zones FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		var skills, zones string
		if err := rows.Scan(&e.ID, &e.FullName, &e.HourlyRate, &e.EfficiencyRating, &skills, &e.Active, &zones); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(skills), &e.Skills); err != nil {
			return nil, fmt.Errorf("employee %s skills: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(zones), &e.PreferredZones); err != nil {
			return nil, fmt.Errorf("employee %s preferred zones: %w", e.ID, err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) loadLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, zone_type, building, floor, priority_score, latitude, longitude FROM locations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Zone, &l.Building, &l.Floor, &l.PriorityScore, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *Store) loadAlerts(ctx context.Context) ([]models.Alert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location_id, data_type, severity, value, threshold, duration_sec, timestamp, status FROM alerts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var durationSec int64
		if err := rows.Scan(&a.ID, &a.LocationID, &a.DataType, &a.Severity, &a.Value, &a.Threshold, &durationSec, &a.Timestamp, &a.Status); err != nil {
			return nil, err
		}
		a.Duration = time.Duration(durationSec) * time.Second
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *Store) loadWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, location_id, type, priority, assignees, scheduled_start, scheduled_end,
               actual_start, actual_end, duration_sec, status
        FROM work_orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.WorkOrder
	for rows.Next() {
		var w models.WorkOrder
		var assignees string
		var actualStart, actualEnd sql.NullTime
		var durationSec int64
		if err := rows.Scan(&w.ID, &w.LocationID, &w.Type, &w.Priority, &assignees,
			&w.ScheduledStart, &w.ScheduledEnd, &actualStart, &actualEnd, &durationSec, &w.Status); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(assignees), &w.Assignees); err != nil {
			return nil, fmt.Errorf("work order %s assignees: %w", w.ID, err)
		}
		if actualStart.Valid {
			w.ActualStart = actualStart.Time
		}
		if actualEnd.Valid {
			w.ActualEnd = actualEnd.Time
		}
		w.Duration = time.Duration(durationSec) * time.Second
		orders = append(orders, w)
	}
	return orders, rows.Err()
}

func (s *Store) loadMetrics(ctx context.Context) ([]models.Metric, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT location_id, data_type, value, timestamp FROM metrics`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []models.Metric
	for rows.Next() {
		var m models.Metric
		if err := rows.Scan(&m.LocationID, &m.DataType, &m.Value, &m.Timestamp); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (s *Store) loadTemplates(ctx context.Context) ([]models.TaskTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, default_duration_sec, required_skills FROM task_templates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.TaskTemplate
	for rows.Next() {
		var t models.TaskTemplate
		var durationSec int64
		var skills string
		if err := rows.Scan(&t.Type, &durationSec, &skills); err != nil {
			return nil, err
		}
		t.DefaultDuration = time.Duration(durationSec) * time.Second
		if err := json.Unmarshal([]byte(skills), &t.RequiredSkills); err != nil {
			return nil, fmt.Errorf("template %s skills: %w", t.Type, err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
