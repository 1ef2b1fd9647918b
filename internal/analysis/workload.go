package analysis

import (
	"context"
	"sort"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// EmployeeWorkload aggregates one active employee's assigned load.
type EmployeeWorkload struct {
	EmployeeID        string   `json:"employee_id"`
	FullName          string   `json:"full_name"`
	TaskCount         int      `json:"task_count"`
	TotalHours        float64  `json:"total_hours"`
	AdjustedHours     float64  `json:"adjusted_hours"` // duration / efficiency factor
	PriorityWeightSum float64  `json:"priority_weight_sum"`
	Cost              float64  `json:"cost"` // hours × hourly rate
	WorkloadScore     float64  `json:"workload_score"`
	CostEffectiveness float64  `json:"cost_effectiveness"` // efficiency rating / hourly rate
	Overqualified     []string `json:"overqualified_orders,omitempty"` // work-order ids
}

// WorkloadDistribution is the fleet-wide workload vector.
type WorkloadDistribution struct {
	Employees         []EmployeeWorkload `json:"employees"`
	FleetAverageScore float64            `json:"fleet_average_score"`
	TotalCost         float64            `json:"total_cost"`
}

// AnalyzeWorkload computes per-employee workload aggregates and composite
// scores over the supplied work orders. Only active employees are considered;
// an empty input yields empty aggregates, not an error.
func (a *Analyzer) AnalyzeWorkload(ctx context.Context, orders []models.WorkOrder) WorkloadDistribution {
	byEmployee := make(map[string]*EmployeeWorkload)
	for _, emp := range a.snap.ActiveEmployees() {
		byEmployee[emp.ID] = &EmployeeWorkload{
			EmployeeID: emp.ID,
			FullName:   emp.FullName,
		}
	}

	for _, w := range orders {
		hours := orderHours(w)
		for _, assignee := range w.Assignees {
			wl, ok := byEmployee[assignee]
			if !ok {
				continue // inactive or unknown assignee
			}
			emp, _ := a.snap.Employee(assignee)
			wl.TaskCount++
			wl.TotalHours += hours
			wl.AdjustedHours += hours / efficiencyFactor(emp.EfficiencyRating)
			wl.PriorityWeightSum += w.Priority.Weight()
			wl.Cost += hours * emp.HourlyRate

			if loc, ok := a.snap.Location(w.LocationID); ok {
				if emp.HourlyRate > 30 && loc.PriorityScore < 6 {
					wl.Overqualified = append(wl.Overqualified, w.ID)
				}
			}
		}
	}

	dist := WorkloadDistribution{Employees: make([]EmployeeWorkload, 0, len(byEmployee))}
	var scoreSum float64
	for _, emp := range a.snap.ActiveEmployees() {
		wl := byEmployee[emp.ID]
		wl.WorkloadScore = workloadScore(*wl, emp)
		if emp.HourlyRate > 0 {
			wl.CostEffectiveness = emp.EfficiencyRating / emp.HourlyRate
		}
		scoreSum += wl.WorkloadScore
		dist.TotalCost += wl.Cost
		dist.Employees = append(dist.Employees, *wl)
	}
	if len(dist.Employees) > 0 {
		dist.FleetAverageScore = scoreSum / float64(len(dist.Employees))
	}

	sort.Slice(dist.Employees, func(i, j int) bool {
		return dist.Employees[i].WorkloadScore > dist.Employees[j].WorkloadScore
	})
	return dist
}

// workloadScore computes the composite workload score:
//
//	(task_count*10 + duration_hours + priority_weight_sum) × (10/efficiency) × (rate/25)
//
// A non-positive efficiency rating degrades to neutral (factor 10/10).
func workloadScore(wl EmployeeWorkload, emp models.Employee) float64 {
	base := float64(wl.TaskCount)*10 + wl.TotalHours + wl.PriorityWeightSum
	eff := emp.EfficiencyRating
	if eff <= 0 {
		eff = 10
	}
	return base * (10 / eff) * (emp.HourlyRate / 25)
}
