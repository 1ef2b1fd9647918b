package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// TravelLeg is the travel charge between two consecutive same-assignee tasks.
type TravelLeg struct {
	EmployeeID     string  `json:"employee_id"`
	FromLocationID string  `json:"from_location_id"`
	ToLocationID   string  `json:"to_location_id"`
	TravelMinutes  float64 `json:"travel_minutes"`
}

// LocationScore is the per-location efficiency assessment.
type LocationScore struct {
	LocationID      string  `json:"location_id"`
	LocationName    string  `json:"location_name"`
	OrderCount      int     `json:"order_count"`
	AssigneeCount   int     `json:"assignee_count"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

// LocationEfficiency is the location-efficiency analysis vector.
type LocationEfficiency struct {
	Legs               []TravelLeg     `json:"travel_legs"`
	TotalTravelMinutes float64         `json:"total_travel_minutes"`
	Locations          []LocationScore `json:"locations"`
}

// AnalyzeLocationEfficiency charges travel costs between consecutive
// same-assignee tasks ordered by scheduled start (20 minutes per building
// change, 5 minutes per floor change) and scores assignee concentration per
// location: −1.0 from the base when more than two distinct assignees serve
// one location, +0.5 when at most two assignees concentrate multiple orders.
func (a *Analyzer) AnalyzeLocationEfficiency(ctx context.Context, orders []models.WorkOrder) LocationEfficiency {
	result := LocationEfficiency{}

	byAssignee := make(map[string][]models.WorkOrder)
	for _, w := range orders {
		for _, assignee := range w.Assignees {
			byAssignee[assignee] = append(byAssignee[assignee], w)
		}
	}
	assigneeIDs := make([]string, 0, len(byAssignee))
	for id := range byAssignee {
		assigneeIDs = append(assigneeIDs, id)
	}
	sort.Strings(assigneeIDs)

	for _, assignee := range assigneeIDs {
		tasks := byAssignee[assignee]
		sort.Slice(tasks, func(i, j int) bool {
			return tasks[i].ScheduledStart.Before(tasks[j].ScheduledStart)
		})
		for i := 1; i < len(tasks); i++ {
			from, okFrom := a.snap.Location(tasks[i-1].LocationID)
			to, okTo := a.snap.Location(tasks[i].LocationID)
			if !okFrom || !okTo || from.ID == to.ID {
				continue
			}
			var minutes float64
			if from.Building != to.Building {
				minutes = a.buildingTravelMin
			} else {
				minutes = a.floorTravelMin * math.Abs(float64(to.Floor-from.Floor))
			}
			if minutes == 0 {
				continue
			}
			result.Legs = append(result.Legs, TravelLeg{
				EmployeeID:     assignee,
				FromLocationID: from.ID,
				ToLocationID:   to.ID,
				TravelMinutes:  minutes,
			})
			result.TotalTravelMinutes += minutes
		}
	}

	type locationStats struct {
		orders    int
		assignees map[string]struct{}
	}
	stats := make(map[string]*locationStats)
	for _, w := range orders {
		st, ok := stats[w.LocationID]
		if !ok {
			st = &locationStats{assignees: make(map[string]struct{})}
			stats[w.LocationID] = st
		}
		st.orders++
		for _, assignee := range w.Assignees {
			st.assignees[assignee] = struct{}{}
		}
	}

	locationIDs := make([]string, 0, len(stats))
	for id := range stats {
		locationIDs = append(locationIDs, id)
	}
	sort.Strings(locationIDs)

	for _, id := range locationIDs {
		st := stats[id]
		score := a.baseLocationScore
		if len(st.assignees) > 2 {
			score -= 1.0
		} else if st.orders > 1 {
			score += 0.5
		}
		name := id
		if loc, ok := a.snap.Location(id); ok {
			name = loc.Name
		}
		result.Locations = append(result.Locations, LocationScore{
			LocationID:      id,
			LocationName:    name,
			OrderCount:      st.orders,
			AssigneeCount:   len(st.assignees),
			EfficiencyScore: score,
		})
	}
	return result
}
