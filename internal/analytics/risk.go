package analytics

import (
	"math"

	"healthforce/internal/dataset"
)

// RiskFactor is one scored risk in a projection assessment.
type RiskFactor struct {
	Factor   string  `json:"factor"`
	Severity string  `json:"severity"`
	Impact   string  `json:"impact"`
	Score    float64 `json:"score"`
}

// ProbabilityScenario is a coarse outcome band with its likelihood.
type ProbabilityScenario struct {
	Probability float64 `json:"probability"`
	Description string  `json:"description"`
}

// RiskAssessment is the overall risk view for one region and category.
type RiskAssessment struct {
	OverallRiskScore     float64                        `json:"overall_risk_score"`
	RiskFactors          []RiskFactor                   `json:"risk_factors"`
	MitigationStrategies []string                       `json:"mitigation_strategies"`
	ProbabilityScenarios map[string]ProbabilityScenario `json:"probability_scenarios"`
}

// automationExposed lists categories whose workload is most susceptible to
// automation.
var automationExposed = map[string]bool{"MTC": true, "PHA": true}

// AssessRisks scores the structural risks around a projection: demographic
// pressure from the snapshot, economic volatility, automation exposure of
// the category, and training capacity limits. The overall score is the mean
// of the present factors on a 0-10 scale.
func AssessRisks(snapshot *dataset.PopulationSnapshot, category *dataset.WorkerCategory) RiskAssessment {
	var factors []RiskFactor

	if snapshot != nil {
		if share := snapshot.ElderlyShare(); share > 0.15 {
			severity, score := "medium", 5.0
			if share > 0.20 {
				severity, score = "high", 7.5
			}
			factors = append(factors, RiskFactor{
				Factor:   "Aging Population",
				Severity: severity,
				Impact:   "Increased healthcare demand",
				Score:    score,
			})
		}
	}

	factors = append(factors, RiskFactor{
		Factor:   "Economic Volatility",
		Severity: "medium",
		Impact:   "Budget constraints affecting recruitment",
		Score:    4.0,
	})

	if category != nil && automationExposed[category.Code] {
		factors = append(factors, RiskFactor{
			Factor:   "Technology Disruption",
			Severity: "medium",
			Impact:   "Automation may reduce workforce needs",
			Score:    5.5,
		})
	}

	factors = append(factors, RiskFactor{
		Factor:   "Training Capacity Limitations",
		Severity: "medium",
		Impact:   "Limited ability to scale workforce quickly",
		Score:    4.5,
	})

	total := 0.0
	for _, f := range factors {
		total += f.Score
	}
	overall := math.Min(total/float64(len(factors)), 10.0)

	return RiskAssessment{
		OverallRiskScore: round2(overall),
		RiskFactors:      factors,
		MitigationStrategies: []string{
			"Diversify recruitment sources including international partnerships",
			"Invest in technology training and reskilling programs",
			"Develop flexible workforce deployment strategies",
			"Strengthen public-private partnerships in healthcare delivery",
			"Implement predictive analytics for early warning systems",
		},
		ProbabilityScenarios: map[string]ProbabilityScenario{
			"best_case":   {Probability: 0.25, Description: "All risk factors mitigated successfully"},
			"most_likely": {Probability: 0.50, Description: "Some challenges but manageable impact"},
			"worst_case":  {Probability: 0.25, Description: "Multiple risk factors materialize simultaneously"},
		},
	}
}
