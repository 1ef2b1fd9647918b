package recommend

import (
	"context"
	"fmt"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// TriggerResult is the outcome of alert-trigger analysis for a location.
// Field names are part of the downstream tier-filter contract.
type TriggerResult struct {
	TriggerScore          float64         `json:"trigger_score"`
	ShouldTrigger         bool            `json:"should_trigger"`
	ActiveAlertsCount     int             `json:"active_alerts_count"`
	CriticalAlerts        int             `json:"critical_alerts"` // critical + very_severe
	SevereAlerts          int             `json:"severe_alerts"`
	TriggerReasons        []string        `json:"trigger_reasons"`
	EscalationProbability float64         `json:"escalation_probability"`
	RecommendedPriority   models.Priority `json:"recommended_priority"`
	EstimatedResponseTime string          `json:"estimated_response_time"`
}

// AnalyzeTrigger accumulates an urgency score from a location's active alerts:
// +0.9 for any critical/very_severe alert, +0.7 for ≥2 severe alerts, +0.6
// when escalation probability exceeds 0.7, +0.5 when any alert has been
// active over 24 hours. The score is clamped to [0,1];
// should_trigger holds exactly when the unclamped accumulation reaches the
// trigger threshold (0.6).
func (a *Analyzer) AnalyzeTrigger(ctx context.Context, locationID string) (TriggerResult, error) {
	alerts := a.snap.ActiveAlertsForLocation(locationID)

	result := TriggerResult{ActiveAlertsCount: len(alerts)}
	maxSeverity := models.Severity("")
	longRunning := false
	for _, alert := range alerts {
		switch alert.Severity {
		case models.SeverityCritical, models.SeverityVerySevere:
			result.CriticalAlerts++
		case models.SeveritySevere:
			result.SevereAlerts++
		}
		if alert.Severity.Rank() > maxSeverity.Rank() {
			maxSeverity = alert.Severity
		}
		if alert.Duration.Hours() > 24 {
			longRunning = true
		}
	}

	score := 0.0
	if result.CriticalAlerts > 0 {
		score += 0.9
		result.TriggerReasons = append(result.TriggerReasons,
			fmt.Sprintf("%d critical-severity alerts active", result.CriticalAlerts))
	}
	if result.SevereAlerts >= 2 {
		score += 0.7
		result.TriggerReasons = append(result.TriggerReasons,
			fmt.Sprintf("%d severe alerts active", result.SevereAlerts))
	}

	est, err := a.escalation.Estimate(ctx, locationID)
	if err != nil {
		return TriggerResult{}, fmt.Errorf("estimating escalation: %w", err)
	}
	result.EscalationProbability = est.EscalationProbability
	if est.EscalationProbability > 0.7 {
		score += 0.6
		result.TriggerReasons = append(result.TriggerReasons,
			fmt.Sprintf("escalation probability %.2f exceeds 0.70", est.EscalationProbability))
	}
	if longRunning {
		score += 0.5
		result.TriggerReasons = append(result.TriggerReasons, "alert active for more than 24 hours")
	}

	result.ShouldTrigger = score >= a.triggerThreshold
	result.TriggerScore = models.Clamp01(score)
	result.RecommendedPriority = triggerPriority(result.CriticalAlerts, result.SevereAlerts)
	result.EstimatedResponseTime = ResponseTime(maxSeverity)
	return result, nil
}

// triggerPriority derives a recommended priority from alert counts: any
// critical alert is urgent, two or more severe alerts are high, a single
// severe alert is medium, everything else is low.
func triggerPriority(critical, severe int) models.Priority {
	switch {
	case critical > 0:
		return models.PriorityUrgent
	case severe >= 2:
		return models.PriorityHigh
	case severe == 1:
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// ResponseTime is the response-time estimate for a maximum alert severity.
// Unknown severities fall back to the default 24-hour bucket.
func ResponseTime(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return "30 minutes"
	case models.SeverityVerySevere:
		return "2 hours"
	case models.SeveritySevere:
		return "4 hours"
	case models.SeverityWarning:
		return "24 hours"
	}
	return "24 hours"
}
