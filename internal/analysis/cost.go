package analysis

import (
	"context"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// RateTier buckets employees by hourly rate.
type RateTier string

const (
	RateTierBudget   RateTier = "budget"   // < $20/h
	RateTierStandard RateTier = "standard" // $20–30/h
	RateTierPremium  RateTier = "premium"  // > $30/h
)

func rateTier(rate float64) RateTier {
	switch {
	case rate < 20:
		return RateTierBudget
	case rate <= 30:
		return RateTierStandard
	}
	return RateTierPremium
}

// CostBreakdown is the cost-efficiency analysis vector.
type CostBreakdown struct {
	TotalCost  float64                     `json:"total_cost"`
	ByPriority map[models.Priority]float64 `json:"by_priority"`
	ByRateTier map[RateTier]float64        `json:"by_rate_tier"`
	OrderCount int                         `json:"order_count"`
}

// AnalyzeCostEfficiency computes total, per-priority and per-rate-tier cost
// breakdowns over the work-order set.
func (a *Analyzer) AnalyzeCostEfficiency(ctx context.Context, orders []models.WorkOrder) CostBreakdown {
	breakdown := CostBreakdown{
		ByPriority: make(map[models.Priority]float64),
		ByRateTier: make(map[RateTier]float64),
	}
	for _, w := range orders {
		hours := orderHours(w)
		var orderCost float64
		for _, assignee := range w.Assignees {
			emp, ok := a.snap.Employee(assignee)
			if !ok || !emp.Active {
				continue
			}
			cost := hours * emp.HourlyRate
			orderCost += cost
			breakdown.ByRateTier[rateTier(emp.HourlyRate)] += cost
		}
		breakdown.TotalCost += orderCost
		breakdown.ByPriority[w.Priority] += orderCost
		breakdown.OrderCount++
	}
	return breakdown
}

// FindCheaperQualified returns the lowest-rate active employee whose skill set
// is a superset of required and whose rate is below the given ceiling.
// Returns false when no such employee exists.
func (a *Analyzer) FindCheaperQualified(ctx context.Context, required []string, rateCeiling float64) (models.Employee, bool) {
	var best models.Employee
	found := false
	for _, emp := range a.snap.ActiveEmployees() {
		if emp.HourlyRate >= rateCeiling {
			continue
		}
		if !models.HasAllSkills(required, emp.Skills) {
			continue
		}
		if !found || emp.HourlyRate < best.HourlyRate {
			best = emp
			found = true
		}
	}
	return best, found
}
