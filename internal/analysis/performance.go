package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// EmployeeUtilization is the per-employee performance vector.
type EmployeeUtilization struct {
	EmployeeID     string  `json:"employee_id"`
	ScheduledHours float64 `json:"scheduled_hours"`
	UtilizationPct float64 `json:"utilization_pct"` // scheduled_hours / workday × 100
	OvertimeRisk   bool    `json:"overtime_risk"`   // utilization > 100%
}

// LocationRisk flags a high-priority location under alert pressure.
type LocationRisk struct {
	LocationID    string  `json:"location_id"`
	LocationName  string  `json:"location_name"`
	PriorityScore float64 `json:"priority_score"`
	AlertCount    int     `json:"alert_count"`
}

// InvestmentOpportunity flags a recurring task type as an automation candidate.
type InvestmentOpportunity struct {
	TaskType        string  `json:"task_type"`
	WeeklyFrequency float64 `json:"weekly_frequency"`
	WeeklyCost      float64 `json:"weekly_cost"`
	PaybackMonths   float64 `json:"payback_months"`
}

// PredictiveInsight is a heuristic forward-looking signal. These are
// placeholder heuristics, not learned models; confidences are documented
// fixtures pending a real estimator.
type PredictiveInsight struct {
	Kind        string  `json:"kind"` // alert_recurrence, approaching_overtime
	Subject     string  `json:"subject"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// PerformanceReport is the performance/strategic analysis vector.
type PerformanceReport struct {
	Utilization   []EmployeeUtilization   `json:"utilization"`
	AtRisk        []LocationRisk          `json:"at_risk_locations"`
	Opportunities []InvestmentOpportunity `json:"investment_opportunities"`
}

// AnalyzePerformance computes utilization and overtime risk per active
// employee, flags locations with priority ≥ 9 and ≥ 2 associated active
// alerts, and detects task types recurring at least five times per week as
// automation-investment candidates with modeled payback
// (cost×10) / (cost×0.3×52/12).
func (a *Analyzer) AnalyzePerformance(ctx context.Context, orders []models.WorkOrder) PerformanceReport {
	report := PerformanceReport{}

	scheduled := make(map[string]float64)
	for _, w := range orders {
		hours := orderHours(w)
		for _, assignee := range w.Assignees {
			scheduled[assignee] += hours
		}
	}
	for _, emp := range a.snap.ActiveEmployees() {
		hours := scheduled[emp.ID]
		pct := hours / a.workdayHours * 100
		report.Utilization = append(report.Utilization, EmployeeUtilization{
			EmployeeID:     emp.ID,
			ScheduledHours: hours,
			UtilizationPct: pct,
			OvertimeRisk:   pct > 100,
		})
	}

	for _, loc := range a.snap.Locations() {
		if loc.PriorityScore < 9 {
			continue
		}
		alerts := a.snap.ActiveAlertsForLocation(loc.ID)
		if len(alerts) < 2 {
			continue
		}
		report.AtRisk = append(report.AtRisk, LocationRisk{
			LocationID:    loc.ID,
			LocationName:  loc.Name,
			PriorityScore: loc.PriorityScore,
			AlertCount:    len(alerts),
		})
	}

	report.Opportunities = a.detectInvestments(orders)
	return report
}

// detectInvestments finds task types recurring ≥5 times per week across the
// observed scheduling window.
func (a *Analyzer) detectInvestments(orders []models.WorkOrder) []InvestmentOpportunity {
	if len(orders) == 0 {
		return nil
	}

	type typeStats struct {
		count int
		cost  float64
	}
	byType := make(map[string]*typeStats)
	earliest, latest := orders[0].ScheduledStart, orders[0].ScheduledStart
	for _, w := range orders {
		st, ok := byType[w.Type]
		if !ok {
			st = &typeStats{}
			byType[w.Type] = st
		}
		st.count++
		hours := orderHours(w)
		for _, assignee := range w.Assignees {
			if emp, ok := a.snap.Employee(assignee); ok {
				st.cost += hours * emp.HourlyRate
			}
		}
		if w.ScheduledStart.Before(earliest) {
			earliest = w.ScheduledStart
		}
		if w.ScheduledStart.After(latest) {
			latest = w.ScheduledStart
		}
	}

	weeks := latest.Sub(earliest).Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}

	taskTypes := make([]string, 0, len(byType))
	for t := range byType {
		taskTypes = append(taskTypes, t)
	}
	sort.Strings(taskTypes)

	var opportunities []InvestmentOpportunity
	for _, t := range taskTypes {
		st := byType[t]
		freq := float64(st.count) / weeks
		if freq < 5 {
			continue
		}
		weeklyCost := st.cost / weeks
		payback := 0.0
		if weeklyCost > 0 {
			// Automation investment ≈ 10× weekly cost; monthly savings ≈ 30%
			// of the annualized weekly cost.
			payback = (weeklyCost * 10) / (weeklyCost * 0.3 * 52 / 12)
		}
		opportunities = append(opportunities, InvestmentOpportunity{
			TaskType:        t,
			WeeklyFrequency: freq,
			WeeklyCost:      weeklyCost,
			PaybackMonths:   payback,
		})
	}
	return opportunities
}

// Confidence fixtures for the heuristic predictions below. Placeholders for
// a future statistical model injected behind the estimator interface.
const (
	alertRecurrenceConfidence     = 0.75
	approachingOvertimeConfidence = 0.85
	approachingOvertimeHours      = 7.5
)

// PredictInsights emits heuristic forward-looking signals: locations with ≥3
// active alerts predict further alerts; employees above 7.5 scheduled hours
// per day predict approaching overtime.
func (a *Analyzer) PredictInsights(ctx context.Context, orders []models.WorkOrder) []PredictiveInsight {
	var insights []PredictiveInsight

	impact := a.AnalyzeAlertImpact(ctx, orders)
	for _, g := range impact.ByLocation {
		if len(g.Alerts) < 3 {
			continue
		}
		insights = append(insights, PredictiveInsight{
			Kind:        "alert_recurrence",
			Subject:     g.LocationID,
			Confidence:  alertRecurrenceConfidence,
			Description: fmt.Sprintf("further alerts likely: %s", describeGroup(g)),
		})
	}

	scheduled := make(map[string]time.Duration)
	for _, w := range orders {
		d := w.Duration
		if d == 0 {
			d = w.ScheduledEnd.Sub(w.ScheduledStart)
		}
		for _, assignee := range w.Assignees {
			scheduled[assignee] += d
		}
	}
	for _, emp := range a.snap.ActiveEmployees() {
		hours := scheduled[emp.ID].Hours()
		if hours <= approachingOvertimeHours {
			continue
		}
		insights = append(insights, PredictiveInsight{
			Kind:       "approaching_overtime",
			Subject:    emp.ID,
			Confidence: approachingOvertimeConfidence,
			Description: fmt.Sprintf("%s has %.1f scheduled hours today, approaching overtime",
				emp.FullName, hours),
		})
	}
	return insights
}
