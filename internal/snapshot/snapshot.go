package snapshot

import (
	"context"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// Package snapshot provides the immutable analysis snapshot and the data
// contracts through which the analyzers receive already-resolved inputs.
//
// A Snapshot is built once per analysis invocation and never mutated while an
// analysis is in flight. Read-only sharing between concurrent analyses is
// safe; the indexes are populated in New and only read afterwards.

// Snapshot is an immutable view of the facility domain at analysis time.
type Snapshot struct {
	employees []models.Employee
	locations []models.Location
	alerts    []models.Alert
	orders    []models.WorkOrder
	metrics   []models.Metric
	templates []models.TaskTemplate

	employeeByID     map[string]models.Employee
	locationByID     map[string]models.Location
	templateByType   map[string]models.TaskTemplate
	alertsByLocation map[string][]models.Alert
	ordersByLocation map[string][]models.WorkOrder
}

// New builds a snapshot with O(1) id-keyed indexes over the supplied records.
func New(
	employees []models.Employee,
	locations []models.Location,
	alerts []models.Alert,
	orders []models.WorkOrder,
	metrics []models.Metric,
	templates []models.TaskTemplate,
) *Snapshot {
	s := &Snapshot{
		employees: employees,
		locations: locations,
		alerts:    alerts,
		orders:    orders,
		metrics:   metrics,
		templates: templates,

		employeeByID:     make(map[string]models.Employee, len(employees)),
		locationByID:     make(map[string]models.Location, len(locations)),
		templateByType:   make(map[string]models.TaskTemplate, len(templates)),
		alertsByLocation: make(map[string][]models.Alert),
		ordersByLocation: make(map[string][]models.WorkOrder),
	}
	for _, e := range employees {
		s.employeeByID[e.ID] = e
	}
	for _, l := range locations {
		s.locationByID[l.ID] = l
	}
	for _, t := range templates {
		s.templateByType[t.Type] = t
	}
	for _, a := range alerts {
		s.alertsByLocation[a.LocationID] = append(s.alertsByLocation[a.LocationID], a)
	}
	for _, w := range orders {
		s.ordersByLocation[w.LocationID] = append(s.ordersByLocation[w.LocationID], w)
	}
	return s
}

// Employee returns the employee with the given id.
func (s *Snapshot) Employee(id string) (models.Employee, bool) {
	e, ok := s.employeeByID[id]
	return e, ok
}

// Location returns the location with the given id.
func (s *Snapshot) Location(id string) (models.Location, bool) {
	l, ok := s.locationByID[id]
	return l, ok
}

// Template returns the task template for a work-order type.
func (s *Snapshot) Template(workOrderType string) (models.TaskTemplate, bool) {
	t, ok := s.templateByType[workOrderType]
	return t, ok
}

// Employees returns all employees in the snapshot.
func (s *Snapshot) Employees() []models.Employee { return s.employees }

// ActiveEmployees returns employees with active employment status.
func (s *Snapshot) ActiveEmployees() []models.Employee {
	active := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.Active {
			active = append(active, e)
		}
	}
	return active
}

// Locations returns all locations in the snapshot.
func (s *Snapshot) Locations() []models.Location { return s.locations }

// WorkOrders returns all work orders in the snapshot.
func (s *Snapshot) WorkOrders() []models.WorkOrder { return s.orders }

// WorkOrdersForLocation returns the work orders referencing a location.
func (s *Snapshot) WorkOrdersForLocation(locationID string) []models.WorkOrder {
	return s.ordersByLocation[locationID]
}

// Alerts returns all alerts in the snapshot.
func (s *Snapshot) Alerts() []models.Alert { return s.alerts }

// ActiveAlerts returns alerts with active status.
func (s *Snapshot) ActiveAlerts() []models.Alert {
	active := make([]models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if a.Status == models.AlertActive {
			active = append(active, a)
		}
	}
	return active
}

// ActiveAlertsForLocation returns active alerts at a location.
func (s *Snapshot) ActiveAlertsForLocation(locationID string) []models.Alert {
	var active []models.Alert
	for _, a := range s.alertsByLocation[locationID] {
		if a.Status == models.AlertActive {
			active = append(active, a)
		}
	}
	return active
}

// Metrics returns all metric observations in the snapshot.
func (s *Snapshot) Metrics() []models.Metric { return s.metrics }

// MetricsForLocation returns metric observations for a location and data type,
// newest first being the caller's concern; order follows the snapshot.
func (s *Snapshot) MetricsForLocation(locationID, dataType string) []models.Metric {
	var out []models.Metric
	for _, m := range s.metrics {
		if m.LocationID == locationID && m.DataType == dataType {
			out = append(out, m)
		}
	}
	return out
}

// MetricTypesForLocation returns the distinct metric data types observed at a location.
func (s *Snapshot) MetricTypesForLocation(locationID string) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, m := range s.metrics {
		if m.LocationID != locationID {
			continue
		}
		if _, ok := seen[m.DataType]; !ok {
			seen[m.DataType] = struct{}{}
			types = append(types, m.DataType)
		}
	}
	return types
}

// Loader supplies a snapshot for an analysis invocation. Any blocking I/O
// belongs here, outside the analyzers.
type Loader interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

// HistoryProvider supplies completed historical records for pattern mining.
type HistoryProvider interface {
	CompletionHistory(ctx context.Context, locationID, workOrderType string, lookback time.Duration) ([]models.CompletionRecord, error)
}

// Baseline holds the historical baseline for one metric type.
type Baseline struct {
	Average float64 `json:"average"`
	StdDev  float64 `json:"std_dev"`
}

// BaselineProvider supplies per-metric-type baselines for a location/type pair.
type BaselineProvider interface {
	Baselines(ctx context.Context, locationID, workOrderType string) (map[string]Baseline, error)
}
