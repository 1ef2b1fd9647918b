package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// Generate composes pattern, trigger and degradation analysis for one
// location/type pair into zero or more candidate recommendations. Candidates
// for different pairs are independent and may be generated concurrently by
// the caller.
func (a *Analyzer) Generate(ctx context.Context, locationID, workOrderType string) ([]models.TaskRecommendation, error) {
	var recs []models.TaskRecommendation

	pattern, err := a.AnalyzePattern(ctx, locationID, workOrderType)
	if err != nil {
		return nil, err
	}
	if pattern.SufficientData && pattern.PatternStrength > 0 {
		rec := a.newRecommendation(locationID, workOrderType, models.SourcePattern,
			models.PriorityMedium, pattern.PredictedNextDate, pattern.Confidence)
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("completed %d times in the last %d days, every %.1f days on average",
				pattern.RecordCount, a.lookbackDays, pattern.AvgIntervalDays))
		if pattern.MostCommonAssignee != "" {
			rec.SuggestedAssignees = []string{pattern.MostCommonAssignee}
		}
		recs = append(recs, rec)
	}

	trigger, err := a.AnalyzeTrigger(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if trigger.ShouldTrigger {
		rec := a.newRecommendation(locationID, workOrderType, models.SourceAlertTriggered,
			trigger.RecommendedPriority, time.Time{}, trigger.TriggerScore)
		rec.Reasons = append(rec.Reasons, trigger.TriggerReasons...)
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("estimated response time %s", trigger.EstimatedResponseTime))
		recs = append(recs, rec)
	}

	degradation, err := a.AnalyzeDegradation(ctx, locationID, workOrderType)
	if err != nil {
		return nil, err
	}
	if degradation.InterventionNeeded {
		rec := a.newRecommendation(locationID, workOrderType, models.SourceMetricDriven,
			models.PriorityHigh, time.Time{}, degradation.Confidence)
		rec.Reasons = append(rec.Reasons, degradation.Recommendations...)
		recs = append(recs, rec)
	}

	a.suggestAssignees(ctx, recs)
	return recs, nil
}

// newRecommendation builds a recommendation shell with a suggested window
// derived from the task template's default duration.
func (a *Analyzer) newRecommendation(locationID, workOrderType string, source models.Source, priority models.Priority, start time.Time, confidence float64) models.TaskRecommendation {
	duration := time.Hour
	if tmpl, ok := a.snap.Template(workOrderType); ok && tmpl.DefaultDuration > 0 {
		duration = tmpl.DefaultDuration
	}
	return models.TaskRecommendation{
		ID:             uuid.NewString(),
		LocationID:     locationID,
		Type:           workOrderType,
		Priority:       priority,
		SuggestedStart: start,
		SuggestedEnd:   start.Add(duration),
		Source:         source,
		Confidence:     models.Clamp01(confidence),
	}
}

// suggestAssignees fills in the top-scoring available employee for
// recommendations that do not already carry one.
func (a *Analyzer) suggestAssignees(ctx context.Context, recs []models.TaskRecommendation) {
	for i := range recs {
		if len(recs[i].SuggestedAssignees) > 0 {
			continue
		}
		var required []string
		if tmpl, ok := a.snap.Template(recs[i].Type); ok {
			required = tmpl.RequiredSkills
		}
		scores := a.ScoreAssignments(ctx, recs[i].SuggestedStart, recs[i].SuggestedEnd, required, nil)
		if best := topAssignment(scores); best != "" {
			recs[i].SuggestedAssignees = []string{best}
		}
	}
}

// topAssignment picks the conflict-free employee with the highest
// recommendation score, ties broken by id for determinism.
func topAssignment(scores map[string]AssignmentScore) string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestScore := -1.0
	for _, id := range ids {
		s := scores[id]
		if s.HasConflicts {
			continue
		}
		if s.RecommendationScore > bestScore {
			best = id
			bestScore = s.RecommendationScore
		}
	}
	return best
}
