package analysis

import (
	"context"
	"sort"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// requiredByZone is the required-skill table keyed by zone type.
var requiredByZone = map[models.ZoneType][]string{
	models.ZoneOffice:      {"general_cleaning"},
	models.ZoneRestroom:    {"restroom_cleaning", "sanitization"},
	models.ZoneLaboratory:  {"laboratory_cleaning", "chemical_handling", "contamination_control"},
	models.ZoneKitchen:     {"food_safety", "sanitization"},
	models.ZoneCirculation: {"general_cleaning", "floor_care"},
	models.ZoneCafeteria:   {"food_safety", "sanitization"},
}

// RequiredSkills returns the skills required to service a zone type.
// Locations with priority ≥ 9 additionally require quality_control.
func RequiredSkills(zone models.ZoneType, priorityScore float64) []string {
	base := requiredByZone[zone]
	required := make([]string, len(base))
	copy(required, base)
	if priorityScore >= 9 {
		required = append(required, "quality_control")
	}
	return required
}

// SkillAssessment describes how well one assignee covers a work order's
// required skill set.
type SkillAssessment struct {
	WorkOrderID    string   `json:"work_order_id"`
	EmployeeID     string   `json:"employee_id"`
	Required       []string `json:"required_skills"`
	Missing        []string `json:"missing_skills,omitempty"`
	MatchRatio     float64  `json:"match_ratio"`
	FullyQualified bool     `json:"fully_qualified"`
}

// AlternativeCandidate is a ranked substitute employee for a required skill set.
type AlternativeCandidate struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	MatchRatio float64 `json:"match_ratio"`
	HourlyRate float64 `json:"hourly_rate"`
	Score      float64 `json:"score"` // match_ratio*10 + efficiency − rate/10
}

// AnalyzeSkillMatching assesses every assignee of every work order against
// the zone-type requirement table.
func (a *Analyzer) AnalyzeSkillMatching(ctx context.Context, orders []models.WorkOrder) []SkillAssessment {
	var assessments []SkillAssessment
	for _, w := range orders {
		loc, ok := a.snap.Location(w.LocationID)
		if !ok {
			continue
		}
		required := RequiredSkills(loc.Zone, loc.PriorityScore)
		for _, assignee := range w.Assignees {
			emp, ok := a.snap.Employee(assignee)
			if !ok || !emp.Active {
				continue
			}
			missing := models.MissingSkills(required, emp.Skills)
			assessments = append(assessments, SkillAssessment{
				WorkOrderID:    w.ID,
				EmployeeID:     assignee,
				Required:       required,
				Missing:        missing,
				MatchRatio:     models.SkillMatchRatio(required, emp.Skills),
				FullyQualified: len(missing) == 0,
			})
		}
	}
	return assessments
}

// RankAlternatives scores every active employee against a required skill set:
//
//	score = skill_match_ratio*10 + efficiency_rating − hourly_rate/10
//
// ranked descending.
func (a *Analyzer) RankAlternatives(ctx context.Context, required []string) []AlternativeCandidate {
	candidates := make([]AlternativeCandidate, 0)
	for _, emp := range a.snap.ActiveEmployees() {
		ratio := models.SkillMatchRatio(required, emp.Skills)
		candidates = append(candidates, AlternativeCandidate{
			EmployeeID: emp.ID,
			FullName:   emp.FullName,
			MatchRatio: ratio,
			HourlyRate: emp.HourlyRate,
			Score:      ratio*10 + emp.EfficiencyRating - emp.HourlyRate/10,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})
	return candidates
}
