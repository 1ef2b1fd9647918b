package types

import (
	"github.com/facilityiq/facilityiq-ai/internal/analysis"
	"github.com/facilityiq/facilityiq-ai/internal/insight"
	"github.com/facilityiq/facilityiq-ai/internal/models"
	"github.com/facilityiq/facilityiq-ai/internal/recommend"
)

// AnalysisReport is the merged output of one orchestrated analysis run.
// The analyzers always populate every section; the tier filter projects the
// report down to what a subscription may see.
type AnalysisReport struct {
	Workload        *analysis.WorkloadDistribution      `json:"workload,omitempty"`
	Conflicts       []analysis.Conflict                 `json:"conflicts,omitempty"`
	AlertImpact     *analysis.AlertImpact               `json:"alert_impact,omitempty"`
	Skills          []analysis.SkillAssessment          `json:"skills,omitempty"`
	Cost            *analysis.CostBreakdown             `json:"cost,omitempty"`
	Location        *analysis.LocationEfficiency        `json:"location,omitempty"`
	Performance     *analysis.PerformanceReport         `json:"performance,omitempty"`
	Predictive      []analysis.PredictiveInsight        `json:"predictive,omitempty"`
	Recommendations []models.TaskRecommendation         `json:"recommendations,omitempty"`
	Impacts         map[string]recommend.BusinessImpact `json:"impacts,omitempty"` // keyed by recommendation id
	Summary         *insight.Summary                    `json:"summary,omitempty"`
}
