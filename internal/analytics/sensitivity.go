package analytics

import (
	"fmt"
	"math"
)

// sensitivityVariations are the tested perturbations of each parameter.
var sensitivityVariations = []float64{-0.2, -0.1, 0.1, 0.2}

// DefaultSensitivityParameters are analyzed when the caller names none.
var DefaultSensitivityParameters = []string{
	"graduation_rate",
	"attrition_rate",
	"population_growth",
	"technology_adoption",
}

// Variation is the outcome of perturbing one parameter by one step.
type Variation struct {
	ModifiedValue    float64 `json:"modified_value"`
	ImpactPercentage float64 `json:"impact_percentage"`
	Elasticity       float64 `json:"elasticity"`
}

// SensitivityResult holds per-parameter variation grids keyed by the
// perturbation label ("-20%" .. "+20%").
type SensitivityResult struct {
	BaseValue              float64                         `json:"base_value"`
	Parameters             map[string]map[string]Variation `json:"sensitivity_analysis"`
	MostSensitiveParameter string                          `json:"most_sensitive_parameter"`
	Methodology            string                          `json:"analysis_methodology"`
}

// parameterLeverage maps a perturbation of the named parameter onto the
// final supply value. Attrition and technology work against supply, so
// their leverage is negative.
func parameterLeverage(param string) float64 {
	switch param {
	case "graduation_rate":
		return 0.3
	case "attrition_rate":
		return -0.4
	case "population_growth":
		return 0.2
	case "technology_adoption":
		return -0.15
	default:
		return 0.1
	}
}

// Sensitivity perturbs each named parameter around the base final supply
// value and reports impact and elasticity per step.
func Sensitivity(baseValue float64, parameters []string) SensitivityResult {
	if len(parameters) == 0 {
		parameters = DefaultSensitivityParameters
	}

	result := SensitivityResult{
		BaseValue:   baseValue,
		Parameters:  make(map[string]map[string]Variation, len(parameters)),
		Methodology: "Elasticity-based sensitivity analysis with ±20% parameter variations",
	}

	bestElasticity := -1.0
	for _, param := range parameters {
		leverage := parameterLeverage(param)
		grid := make(map[string]Variation, len(sensitivityVariations))

		maxAbsElasticity := 0.0
		for _, v := range sensitivityVariations {
			modified := baseValue * (1 + v*leverage)

			impact := 0.0
			if baseValue > 0 {
				impact = (modified - baseValue) / baseValue * 100
			}
			elasticity := round3(impact / (v * 100))

			grid[fmt.Sprintf("%+.0f%%", v*100)] = Variation{
				ModifiedValue:    math.Round(modified),
				ImpactPercentage: round2(impact),
				Elasticity:       elasticity,
			}
			if a := math.Abs(elasticity); a > maxAbsElasticity {
				maxAbsElasticity = a
			}
		}

		result.Parameters[param] = grid
		if maxAbsElasticity > bestElasticity {
			bestElasticity = maxAbsElasticity
			result.MostSensitiveParameter = param
		}
	}

	return result
}
