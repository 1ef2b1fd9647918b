package recommend

import (
	"context"
	"math"
	"time"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// AssignmentScore is the availability and suitability assessment for one
// employee at a recommended time. Field names are part of the downstream
// tier-filter contract.
type AssignmentScore struct {
	EmployeeID          string            `json:"employee_id"`
	ScheduledHours      float64           `json:"scheduled_hours"`
	AvailabilityPct     float64           `json:"availability_percentage"`
	HasConflicts        bool              `json:"has_conflicts"`
	HourlyRate          float64           `json:"hourly_rate"`
	EfficiencyRating    float64           `json:"efficiency_rating"`
	SkillMatchScore     float64           `json:"skill_match_score"`
	PreferredZones      []models.ZoneType `json:"preferred_zones"`
	RecommendationScore float64           `json:"recommendation_score"`
}

// ScoreAssignments computes availability and a composite assignment score for
// the given employees at a recommended time window:
//
//	availability = max(0, (workday − scheduled_hours) / workday × 100)
//	score = (efficiency/10)×0.4 + (availability/100)×0.3 + (1 − min(rate/50, 1))×0.3
//
// Skill match is |required ∩ skills| / |required|, 1.0 when no skills are
// required. When preferredAssignees is empty, all active employees are scored.
func (a *Analyzer) ScoreAssignments(ctx context.Context, start, end time.Time, requiredSkills, preferredAssignees []string) map[string]AssignmentScore {
	candidates := a.snap.ActiveEmployees()
	if len(preferredAssignees) > 0 {
		candidates = candidates[:0:0]
		for _, id := range preferredAssignees {
			if emp, ok := a.snap.Employee(id); ok && emp.Active {
				candidates = append(candidates, emp)
			}
		}
	}

	window := models.WorkOrder{ScheduledStart: start, ScheduledEnd: end}
	scores := make(map[string]AssignmentScore, len(candidates))
	for _, emp := range candidates {
		scheduled := 0.0
		conflicts := false
		for _, w := range a.snap.WorkOrders() {
			if !assignedTo(w, emp.ID) {
				continue
			}
			if sameDay(w.ScheduledStart, start) {
				scheduled += orderHours(w)
			}
			if w.Overlaps(window) {
				conflicts = true
			}
		}

		availability := math.Max(0, (a.workdayHours-scheduled)/a.workdayHours*100)
		score := (emp.EfficiencyRating/10)*0.4 +
			(availability/100)*0.3 +
			(1-math.Min(emp.HourlyRate/50, 1))*0.3

		scores[emp.ID] = AssignmentScore{
			EmployeeID:          emp.ID,
			ScheduledHours:      scheduled,
			AvailabilityPct:     availability,
			HasConflicts:        conflicts,
			HourlyRate:          emp.HourlyRate,
			EfficiencyRating:    emp.EfficiencyRating,
			SkillMatchScore:     models.SkillMatchRatio(requiredSkills, emp.Skills),
			PreferredZones:      emp.PreferredZones,
			RecommendationScore: models.Clamp01(score),
		}
	}
	return scores
}

func assignedTo(w models.WorkOrder, employeeID string) bool {
	for _, id := range w.Assignees {
		if id == employeeID {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func orderHours(w models.WorkOrder) float64 {
	if w.Duration > 0 {
		return w.Duration.Hours()
	}
	return w.ScheduledEnd.Sub(w.ScheduledStart).Hours()
}
