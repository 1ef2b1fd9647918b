package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// LocationAlertGroup aggregates active alerts at one location.
type LocationAlertGroup struct {
	LocationID        string          `json:"location_id"`
	LocationName      string          `json:"location_name"`
	Alerts            []models.Alert  `json:"alerts"`
	MaxSeverity       models.Severity `json:"max_severity"`
	HighSeverityCount int             `json:"high_severity_count"` // critical + very_severe
}

// PriorityAlignment records whether a work order's declared priority matches
// the maximum alert severity present at its location.
type PriorityAlignment struct {
	WorkOrderID      string          `json:"work_order_id"`
	LocationID       string          `json:"location_id"`
	DeclaredPriority models.Priority `json:"declared_priority"`
	ExpectedPriority models.Priority `json:"expected_priority"`
	MaxSeverity      models.Severity `json:"max_severity"`
	Matched          bool            `json:"matched"`
}

// AlertImpact is the alert-impact analysis vector.
type AlertImpact struct {
	ByLocation  []LocationAlertGroup `json:"by_location"`
	Hotspots    []LocationAlertGroup `json:"hotspots"`
	Unaddressed []models.Alert       `json:"unaddressed"`
	Alignment   []PriorityAlignment  `json:"priority_alignment"`
}

// AnalyzeAlertImpact groups active alerts by location, flags hotspots
// (≥2 alerts at critical or very_severe severity), flags critical/very_severe
// alerts with no addressing work order at their location, and checks
// priority-alert alignment for the supplied work orders.
func (a *Analyzer) AnalyzeAlertImpact(ctx context.Context, orders []models.WorkOrder) AlertImpact {
	groups := make(map[string]*LocationAlertGroup)
	for _, alert := range a.snap.ActiveAlerts() {
		g, ok := groups[alert.LocationID]
		if !ok {
			name := alert.LocationID
			if loc, found := a.snap.Location(alert.LocationID); found {
				name = loc.Name
			}
			g = &LocationAlertGroup{LocationID: alert.LocationID, LocationName: name}
			groups[alert.LocationID] = g
		}
		g.Alerts = append(g.Alerts, alert)
		if alert.Severity.Rank() > g.MaxSeverity.Rank() {
			g.MaxSeverity = alert.Severity
		}
		if alert.Severity == models.SeverityCritical || alert.Severity == models.SeverityVerySevere {
			g.HighSeverityCount++
		}
	}

	ordersAtLocation := make(map[string]bool)
	for _, w := range orders {
		ordersAtLocation[w.LocationID] = true
	}

	impact := AlertImpact{}
	locationIDs := make([]string, 0, len(groups))
	for id := range groups {
		locationIDs = append(locationIDs, id)
	}
	sort.Strings(locationIDs)

	for _, id := range locationIDs {
		g := groups[id]
		impact.ByLocation = append(impact.ByLocation, *g)
		if g.HighSeverityCount >= 2 {
			impact.Hotspots = append(impact.Hotspots, *g)
		}
		for _, alert := range g.Alerts {
			highSeverity := alert.Severity == models.SeverityCritical || alert.Severity == models.SeverityVerySevere
			if highSeverity && !ordersAtLocation[alert.LocationID] {
				impact.Unaddressed = append(impact.Unaddressed, alert)
			}
		}
	}

	for _, w := range orders {
		g, ok := groups[w.LocationID]
		if !ok {
			continue // no active alerts at this location, nothing to align against
		}
		expected := ExpectedPriority(g.MaxSeverity)
		impact.Alignment = append(impact.Alignment, PriorityAlignment{
			WorkOrderID:      w.ID,
			LocationID:       w.LocationID,
			DeclaredPriority: w.Priority,
			ExpectedPriority: expected,
			MaxSeverity:      g.MaxSeverity,
			Matched:          w.Priority.Weight() >= expected.Weight(),
		})
	}
	return impact
}

// ExpectedPriority maps the maximum alert severity at a location onto the
// work-order priority tier consistent with it.
func ExpectedPriority(maxSeverity models.Severity) models.Priority {
	switch maxSeverity {
	case models.SeverityCritical, models.SeverityVerySevere:
		return models.PriorityUrgent
	case models.SeveritySevere:
		return models.PriorityHigh
	case models.SeverityWarning:
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// describeGroup is a convenience used in predictive insight reasons.
func describeGroup(g LocationAlertGroup) string {
	return fmt.Sprintf("%d active alerts at %s (max severity %s)", len(g.Alerts), g.LocationName, g.MaxSeverity)
}
