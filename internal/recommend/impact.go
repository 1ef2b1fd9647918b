package recommend

import (
	"context"
	"fmt"

	"github.com/facilityiq/facilityiq-ai/internal/models"
)

// BusinessImpact is the projected business impact of a recommendation.
// Field names are part of the downstream tier-filter contract.
type BusinessImpact struct {
	Type                       string  `json:"type"`
	EstimatedSavings           float64 `json:"estimated_savings"`
	RiskReduction              string  `json:"risk_reduction"`       // high, medium, low
	ServiceLevelImpact         string  `json:"service_level_impact"` // critical, significant, moderate
	LocationPriorityMultiplier float64 `json:"location_priority_multiplier"`
	FacilityImportance         string  `json:"facility_importance"` // critical, standard
}

// Fixed impact estimates per recommendation source. Historical averages,
// not per-incident calculations.
const (
	avoidedEmergencyCost = 500 // alert-triggered: avoided emergency callout
	preventiveSavings    = 150 // pattern-based: preventive vs reactive delta
)

// EstimateImpact dispatches on the recommendation's source to project its
// business impact. The degradation score scales metric-driven estimates.
// Unknown sources are rejected.
func (a *Analyzer) EstimateImpact(ctx context.Context, rec models.TaskRecommendation, degradationScore float64) (BusinessImpact, error) {
	loc, ok := a.snap.Location(rec.LocationID)
	if !ok {
		return BusinessImpact{}, fmt.Errorf("unknown location %q", rec.LocationID)
	}

	impact := BusinessImpact{
		LocationPriorityMultiplier: loc.PriorityScore / 5,
		FacilityImportance:         "standard",
	}
	if loc.PriorityScore >= 9.0 {
		impact.FacilityImportance = "critical"
	}

	switch rec.Source {
	case models.SourceAlertTriggered:
		impact.Type = "risk_mitigation"
		impact.EstimatedSavings = avoidedEmergencyCost
		impact.RiskReduction = "high"
		impact.ServiceLevelImpact = "critical"
	case models.SourcePattern:
		impact.Type = "efficiency"
		impact.EstimatedSavings = preventiveSavings
		impact.RiskReduction = "medium"
		impact.ServiceLevelImpact = "moderate"
	case models.SourceMetricDriven:
		impact.Type = "performance_restoration"
		impact.EstimatedSavings = 100 + degradationScore*500
		impact.RiskReduction = riskFromDegradation(degradationScore)
		impact.ServiceLevelImpact = "significant"
	case models.SourceManual:
		impact.Type = "manual"
		impact.RiskReduction = "low"
		impact.ServiceLevelImpact = "moderate"
	default:
		return BusinessImpact{}, fmt.Errorf("unknown recommendation source %q", rec.Source)
	}
	return impact, nil
}

func riskFromDegradation(score float64) string {
	switch {
	case score > 0.6:
		return "high"
	case score > 0.3:
		return "medium"
	}
	return "low"
}
