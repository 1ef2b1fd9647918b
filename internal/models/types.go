package models

import (
	"fmt"
	"time"
)

// Package models defines the core domain types used throughout facilityiq-ai.
//
// All entities are read from a snapshot at analysis start and treated as
// immutable for the duration of one analysis call. TaskRecommendation is the
// only output entity: a transient value constructed by the analyzers and
// returned to the caller, never persisted by the core.

// ZoneType categorizes a location and drives required-skill and weighting tables.
type ZoneType string

const (
	ZoneOffice      ZoneType = "office"
	ZoneRestroom    ZoneType = "restroom"
	ZoneLaboratory  ZoneType = "laboratory"
	ZoneKitchen     ZoneType = "kitchen"
	ZoneCirculation ZoneType = "circulation"
	ZoneCafeteria   ZoneType = "cafeteria"
)

// Severity represents alert severity, ordered warning < severe < very_severe < critical.
type Severity string

const (
	SeverityWarning    Severity = "warning"
	SeveritySevere     Severity = "severe"
	SeverityVerySevere Severity = "very_severe"
	SeverityCritical   Severity = "critical"
)

// Rank returns the ordering of a severity for comparisons.
// Unknown severities rank below warning.
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeveritySevere:
		return 2
	case SeverityVerySevere:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// Priority represents a work-order priority tier.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Weight returns the numeric weight of a priority tier used in workload scoring.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 1
}

// WorkOrderStatus represents the lifecycle state of a work order.
type WorkOrderStatus string

const (
	StatusIdle      WorkOrderStatus = "idle"
	StatusOngoing   WorkOrderStatus = "ongoing"
	StatusCompleted WorkOrderStatus = "completed"
	StatusAbandoned WorkOrderStatus = "abandoned"
)

// AlertStatus represents whether an alert is still firing.
type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertResolved AlertStatus = "resolved"
)

// Source identifies the provenance of a task recommendation.
type Source string

const (
	SourcePattern        Source = "pattern"
	SourceAlertTriggered Source = "alert_triggered"
	SourceMetricDriven   Source = "metric_driven"
	SourceManual         Source = "manual"
)

// ParseSource validates a recommendation source token. Unknown sources are rejected.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourcePattern, SourceAlertTriggered, SourceMetricDriven, SourceManual:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown recommendation source %q", s)
}

// Employee represents a workforce member. Only active employees participate in analysis.
type Employee struct {
	ID               string     `json:"id"`
	FullName         string     `json:"full_name"`
	HourlyRate       float64    `json:"hourly_rate"`
	EfficiencyRating float64    `json:"efficiency_rating"` // 0-10
	Skills           []string   `json:"skills"`
	Active           bool       `json:"active"`
	PreferredZones   []ZoneType `json:"preferred_zones"`
}

// HasSkill reports whether the employee's skill set contains the named capability.
func (e Employee) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Location represents a serviced facility location.
type Location struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Zone          ZoneType `json:"zone_type"`
	Building      string   `json:"building"`
	Floor         int      `json:"floor"`
	PriorityScore float64  `json:"priority_score"` // 0-10, drives weighting throughout
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}

// WorkOrder represents a scheduled or executed maintenance task.
// Produced by an external work-order store; read-only to this core.
type WorkOrder struct {
	ID             string          `json:"id"`
	LocationID     string          `json:"location_id"`
	Type           string          `json:"type"`
	Priority       Priority        `json:"priority"`
	Assignees      []string        `json:"assignees"`
	ScheduledStart time.Time       `json:"scheduled_start"`
	ScheduledEnd   time.Time       `json:"scheduled_end"`
	ActualStart    time.Time       `json:"actual_start,omitempty"`
	ActualEnd      time.Time       `json:"actual_end,omitempty"`
	Duration       time.Duration   `json:"duration"`
	Status         WorkOrderStatus `json:"status"`
}

// Overlaps reports whether two work orders have overlapping [start, end) scheduled windows.
func (w WorkOrder) Overlaps(other WorkOrder) bool {
	return w.ScheduledStart.Before(other.ScheduledEnd) && other.ScheduledStart.Before(w.ScheduledEnd)
}

// CompletionRecord is the historical closure of a work order, used only for pattern mining.
type CompletionRecord struct {
	WorkOrderID     string    `json:"work_order_id"`
	LocationID      string    `json:"location_id"`
	Type            string    `json:"type"`
	ActualStart     time.Time `json:"actual_start"`
	ActualEnd       time.Time `json:"actual_end"`
	QualityScore    float64   `json:"quality_score"`
	EfficiencyScore float64   `json:"efficiency_score"`
	AssigneeID      string    `json:"assignee_id"`
}

// Alert is a live sensor alert tied to a location.
type Alert struct {
	ID         string        `json:"id"`
	LocationID string        `json:"location_id"`
	DataType   string        `json:"data_type"` // e.g. air_quality
	Severity   Severity      `json:"severity"`
	Value      float64       `json:"value"`
	Threshold  float64       `json:"threshold"`
	Duration   time.Duration `json:"duration"`
	Timestamp  time.Time     `json:"timestamp"`
	Status     AlertStatus   `json:"status"`
}

// Metric is a single time-series observation for a location.
type Metric struct {
	LocationID string    `json:"location_id"`
	DataType   string    `json:"data_type"`
	Value      float64   `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
}

// TaskTemplate is a canonical task definition.
type TaskTemplate struct {
	Type            string        `json:"type"`
	DefaultDuration time.Duration `json:"default_duration"`
	RequiredSkills  []string      `json:"required_skills"`
}

// TaskRecommendation is the output entity of the recommendation analyzer.
type TaskRecommendation struct {
	ID                 string    `json:"id"`
	LocationID         string    `json:"location_id"`
	Type               string    `json:"type"`
	Priority           Priority  `json:"priority"`
	SuggestedStart     time.Time `json:"suggested_start"`
	SuggestedEnd       time.Time `json:"suggested_end"`
	SuggestedAssignees []string  `json:"suggested_assignees"`
	Confidence         float64   `json:"confidence"` // 0-1
	Source             Source    `json:"source"`
	Reasons            []string  `json:"reasons"`
}
