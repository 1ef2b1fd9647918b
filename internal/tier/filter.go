package tier

import (
	"fmt"

	"github.com/facilityiq/facilityiq-ai/pkg/types"
)

// Package tier implements subscription gating as explicit capability sets.
// The analyzers always compute the full result; this stateless filter
// projects a report down to the fields a tier may see. No tier branching
// exists anywhere else.

// Capability names one exposable section of an analysis report.
type Capability string

const (
	CapWorkload        Capability = "workload"
	CapConflicts       Capability = "conflicts"
	CapAlerts          Capability = "alerts"
	CapSkills          Capability = "skills"
	CapCost            Capability = "cost"
	CapLocation        Capability = "location"
	CapPerformance     Capability = "performance"
	CapPredictive      Capability = "predictive"
	CapRecommendations Capability = "recommendations"
	CapBusinessImpact  Capability = "business_impact"
	CapInsights        Capability = "insights"
)

// Tier is a subscription level.
type Tier string

const (
	TierBasic        Tier = "basic"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// CapabilitySet is the set of report sections a caller may see.
type CapabilitySet map[Capability]struct{}

// Has reports whether the set contains a capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func newSet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

var tierCapabilities = map[Tier]CapabilitySet{
	TierBasic: newSet(CapWorkload, CapAlerts),
	TierProfessional: newSet(CapWorkload, CapAlerts, CapConflicts, CapSkills,
		CapCost, CapLocation, CapRecommendations, CapInsights),
	TierEnterprise: newSet(CapWorkload, CapAlerts, CapConflicts, CapSkills,
		CapCost, CapLocation, CapPerformance, CapPredictive,
		CapRecommendations, CapBusinessImpact, CapInsights),
}

// Capabilities returns the capability set for a tier.
func Capabilities(t Tier) (CapabilitySet, error) {
	caps, ok := tierCapabilities[t]
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", t)
	}
	return caps, nil
}

// Project returns a copy of the report containing only the sections the
// capability set allows. The input report is never mutated.
func Project(report types.AnalysisReport, caps CapabilitySet) types.AnalysisReport {
	out := types.AnalysisReport{}
	if caps.Has(CapWorkload) {
		out.Workload = report.Workload
	}
	if caps.Has(CapConflicts) {
		out.Conflicts = report.Conflicts
	}
	if caps.Has(CapAlerts) {
		out.AlertImpact = report.AlertImpact
	}
	if caps.Has(CapSkills) {
		out.Skills = report.Skills
	}
	if caps.Has(CapCost) {
		out.Cost = report.Cost
	}
	if caps.Has(CapLocation) {
		out.Location = report.Location
	}
	if caps.Has(CapPerformance) {
		out.Performance = report.Performance
	}
	if caps.Has(CapPredictive) {
		out.Predictive = report.Predictive
	}
	if caps.Has(CapRecommendations) {
		out.Recommendations = report.Recommendations
	}
	if caps.Has(CapBusinessImpact) {
		out.Impacts = report.Impacts
	}
	if caps.Has(CapInsights) {
		out.Summary = report.Summary
	}
	return out
}
