package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// ConflictType identifies one of the conflict families.
type ConflictType string

const (
	ConflictTimeAssignee      ConflictType = "time_assignee"
	ConflictLocationTime      ConflictType = "location_time"
	ConflictWorkloadImbalance ConflictType = "workload_imbalance"
	ConflictSkillMismatch     ConflictType = "skill_mismatch"
	ConflictCostInefficiency  ConflictType = "cost_inefficiency"
)

// Conflict is a detected scheduling, staffing or cost conflict.
type Conflict struct {
	ID          string       `json:"id"`
	Type        ConflictType `json:"type"`
	Parties     []string     `json:"parties"`      // employee ids involved
	WorkOrders  []string     `json:"work_orders"`  // work-order ids involved
	LocationID  string       `json:"location_id,omitempty"`
	ImpactUSD   float64      `json:"impact_usd"` // monetized impact or potential savings
	Severity    string       `json:"severity"`   // critical, high, medium, low
	Description string       `json:"description"`
}

// DetectConflicts runs all five conflict families over the work-order set.
func (a *Analyzer) DetectConflicts(ctx context.Context, orders []models.WorkOrder) []Conflict {
	conflicts := a.DetectTimeConflicts(ctx, orders)
	conflicts = append(conflicts, a.DetectLocationConflicts(ctx, orders)...)
	conflicts = append(conflicts, a.DetectWorkloadImbalance(ctx, orders)...)
	conflicts = append(conflicts, a.DetectSkillMismatches(ctx, orders)...)
	conflicts = append(conflicts, a.DetectCostInefficiencies(ctx, orders)...)
	return conflicts
}

// DetectTimeConflicts finds pairs of work orders sharing an assignee with
// overlapping scheduled windows. Cost impact = overlap_minutes/60 × rate.
func (a *Analyzer) DetectTimeConflicts(ctx context.Context, orders []models.WorkOrder) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(orders); i++ {
		for j := i + 1; j < len(orders); j++ {
			if !orders[i].Overlaps(orders[j]) {
				continue
			}
			for _, shared := range sharedAssignees(orders[i], orders[j]) {
				emp, ok := a.snap.Employee(shared)
				if !ok || !emp.Active {
					continue
				}
				overlap := overlapMinutes(orders[i], orders[j])
				impact := overlap / 60 * emp.HourlyRate
				conflicts = append(conflicts, Conflict{
					ID:         uuid.NewString(),
					Type:       ConflictTimeAssignee,
					Parties:    []string{shared},
					WorkOrders: []string{orders[i].ID, orders[j].ID},
					ImpactUSD:  impact,
					Severity:   overlapSeverity(overlap),
					Description: fmt.Sprintf("%s double-booked for %.0f minutes across orders %s and %s",
						emp.FullName, overlap, orders[i].ID, orders[j].ID),
				})
			}
		}
	}
	return conflicts
}

// DetectLocationConflicts finds locations where multiple assignees are
// scheduled in overlapping windows, weighted by location priority.
func (a *Analyzer) DetectLocationConflicts(ctx context.Context, orders []models.WorkOrder) []Conflict {
	byLocation := make(map[string][]models.WorkOrder)
	for _, w := range orders {
		byLocation[w.LocationID] = append(byLocation[w.LocationID], w)
	}

	locationIDs := make([]string, 0, len(byLocation))
	for id := range byLocation {
		locationIDs = append(locationIDs, id)
	}
	sort.Strings(locationIDs)

	var conflicts []Conflict
	for _, locID := range locationIDs {
		group := byLocation[locID]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !group[i].Overlaps(group[j]) {
					continue
				}
				parties := distinctAssignees(group[i], group[j])
				if len(parties) < 2 {
					continue // same crew, not a crowding conflict
				}
				loc, _ := a.snap.Location(locID)
				weight := loc.PriorityScore / 10
				overlap := overlapMinutes(group[i], group[j])
				conflicts = append(conflicts, Conflict{
					ID:         uuid.NewString(),
					Type:       ConflictLocationTime,
					Parties:    parties,
					WorkOrders: []string{group[i].ID, group[j].ID},
					LocationID: locID,
					ImpactUSD:  overlap / 60 * weight * 10, // priority-weighted crowding cost
					Severity:   prioritySeverity(loc.PriorityScore),
					Description: fmt.Sprintf("%d assignees scheduled at %s in an overlapping %.0f-minute window",
						len(parties), loc.Name, overlap),
				})
			}
		}
	}
	return conflicts
}

// DetectWorkloadImbalance flags employees whose workload score deviates more
// than the configured threshold (default 30%) from the fleet average.
// The deviation comparison is strictly greater-than: a deviation of exactly
// 30% does not fire.
func (a *Analyzer) DetectWorkloadImbalance(ctx context.Context, orders []models.WorkOrder) []Conflict {
	dist := a.AnalyzeWorkload(ctx, orders)
	if dist.FleetAverageScore == 0 {
		return nil
	}

	var conflicts []Conflict
	for _, wl := range dist.Employees {
		deviation := math.Abs(wl.WorkloadScore - dist.FleetAverageScore)
		if deviation <= a.imbalanceThreshold*dist.FleetAverageScore {
			continue
		}
		direction := "overloaded"
		if wl.WorkloadScore < dist.FleetAverageScore {
			direction = "underloaded"
		}
		conflicts = append(conflicts, Conflict{
			ID:        uuid.NewString(),
			Type:      ConflictWorkloadImbalance,
			Parties:   []string{wl.EmployeeID},
			ImpactUSD: deviation / dist.FleetAverageScore * wl.Cost,
			Severity:  "medium",
			Description: fmt.Sprintf("%s is %s: workload score %.1f vs fleet average %.1f (%.0f%% deviation)",
				wl.FullName, direction, wl.WorkloadScore, dist.FleetAverageScore,
				deviation/dist.FleetAverageScore*100),
		})
	}
	return conflicts
}

// DetectSkillMismatches flags assignees lacking the skills required by a work
// order's zone type, risk-ranked by location priority.
func (a *Analyzer) DetectSkillMismatches(ctx context.Context, orders []models.WorkOrder) []Conflict {
	var conflicts []Conflict
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
			if len(missing) == 0 {
				continue
			}
			conflicts = append(conflicts, Conflict{
				ID:         uuid.NewString(),
				Type:       ConflictSkillMismatch,
				Parties:    []string{assignee},
				WorkOrders: []string{w.ID},
				LocationID: w.LocationID,
				ImpactUSD:  loc.PriorityScore * float64(len(missing)) * 10, // risk proxy, priority-ranked
				Severity:   prioritySeverity(loc.PriorityScore),
				Description: fmt.Sprintf("%s lacks required skills %v for %s zone at %s",
					emp.FullName, missing, loc.Zone, loc.Name),
			})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].ImpactUSD > conflicts[j].ImpactUSD })
	return conflicts
}

// DetectCostInefficiencies flags overqualified assignments: hourly rate above
// $30 on a location with priority below 6. Potential savings = (rate − 20) × hours.
func (a *Analyzer) DetectCostInefficiencies(ctx context.Context, orders []models.WorkOrder) []Conflict {
	var conflicts []Conflict
	for _, w := range orders {
		loc, ok := a.snap.Location(w.LocationID)
		if !ok {
			continue
		}
		for _, assignee := range w.Assignees {
			emp, ok := a.snap.Employee(assignee)
			if !ok || !emp.Active {
				continue
			}
			if emp.HourlyRate <= 30 || loc.PriorityScore >= 6 {
				continue
			}
			hours := orderHours(w)
			savings := (emp.HourlyRate - 20) * hours
			conflicts = append(conflicts, Conflict{
				ID:         uuid.NewString(),
				Type:       ConflictCostInefficiency,
				Parties:    []string{assignee},
				WorkOrders: []string{w.ID},
				LocationID: w.LocationID,
				ImpactUSD:  savings,
				Severity:   "low",
				Description: fmt.Sprintf("%s ($%.2f/h) assigned to low-priority %s; potential savings $%.2f",
					emp.FullName, emp.HourlyRate, loc.Name, savings),
			})
		}
	}
	return conflicts
}

func sharedAssignees(a, b models.WorkOrder) []string {
	set := make(map[string]struct{}, len(a.Assignees))
	for _, id := range a.Assignees {
		set[id] = struct{}{}
	}
	var shared []string
	for _, id := range b.Assignees {
		if _, ok := set[id]; ok {
			shared = append(shared, id)
		}
	}
	return shared
}

func distinctAssignees(a, b models.WorkOrder) []string {
	set := make(map[string]struct{})
	var out []string
	for _, id := range append(append([]string{}, a.Assignees...), b.Assignees...) {
		if _, ok := set[id]; !ok {
			set[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func overlapMinutes(a, b models.WorkOrder) float64 {
	start := a.ScheduledStart
	if b.ScheduledStart.After(start) {
		start = b.ScheduledStart
	}
	end := a.ScheduledEnd
	if b.ScheduledEnd.Before(end) {
		end = b.ScheduledEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Minutes()
}

func overlapSeverity(minutes float64) string {
	switch {
	case minutes >= 120:
		return "critical"
	case minutes >= 60:
		return "high"
	case minutes >= 30:
		return "medium"
	}
	return "low"
}

func prioritySeverity(priorityScore float64) string {
	switch {
	case priorityScore >= 9:
		return "critical"
	case priorityScore >= 7:
		return "high"
	case priorityScore >= 5:
		return "medium"
	}
	return "low"
}
