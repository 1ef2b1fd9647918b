package estimator

import "context"

// Package estimator defines the injectable predictive capabilities consumed
// by the recommendation analyzer. The shipped implementation carries fixed
// historical fixture values; a statistical or learned model can be
// substituted without touching the analyzers.

// EscalationEstimate describes how alert severity has historically progressed
// at a location.
type EscalationEstimate struct {
	EscalationProbability float64 `json:"escalation_probability"`
	AvgEscalationHours    float64 `json:"avg_escalation_time_hours"`
	PreventionSuccessRate float64 `json:"prevention_success_rate"`
}

// EscalationEstimator estimates alert escalation behavior for a location.
type EscalationEstimator interface {
	Estimate(ctx context.Context, locationID string) (EscalationEstimate, error)
}

// Fixed is an EscalationEstimator returning constant fixture values derived
// from historical alert progression. Values are estimates, not guarantees.
type Fixed struct {
	Estimate0 EscalationEstimate
}

// NewFixed returns the default fixture estimator.
func NewFixed() *Fixed {
	return &Fixed{
		Estimate0: EscalationEstimate{
			EscalationProbability: 0.73,
			AvgEscalationHours:    18.5,
			PreventionSuccessRate: 0.82,
		},
	}
}

// Estimate returns the fixture estimate regardless of location.
func (f *Fixed) Estimate(ctx context.Context, locationID string) (EscalationEstimate, error) {
	return f.Estimate0, nil
}
