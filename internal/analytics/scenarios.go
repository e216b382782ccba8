package analytics

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"healthforce/internal/gap"
)

// Scenario reshapes a baseline gap series. SupplyFactor and DemandFactor
// are the effective multipliers; Parameters carries the narrative levers
// behind them for display.
type Scenario struct {
	Key          string             `json:"key" yaml:"key"`
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description" yaml:"description"`
	Probability  float64            `json:"probability" yaml:"probability"`
	SupplyFactor float64            `json:"supply_factor" yaml:"supply_factor"`
	DemandFactor float64            `json:"demand_factor" yaml:"demand_factor"`
	Parameters   map[string]float64 `json:"parameters" yaml:"parameters"`
}

// DefaultScenarios returns the built-in scenario set. Factors condense the
// parameter maps: optimistic compounds a 30% graduation lift with half of a
// 25% attrition cut, pessimistic mirrors it downward, the technology and
// demographic scenarios act on the demand side.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			Key:          "baseline",
			Name:         "Current Trajectory",
			Description:  "Continuation of current trends and policies",
			Probability:  0.35,
			SupplyFactor: 1.0,
			DemandFactor: 1.0,
			Parameters:   map[string]float64{},
		},
		{
			Key:          "optimistic",
			Name:         "Accelerated Growth",
			Description:  "Enhanced training programs, improved retention, increased recruitment",
			Probability:  0.20,
			SupplyFactor: 1.30 * 1.125,
			DemandFactor: 1.0,
			Parameters: map[string]float64{
				"graduation_increase":  0.30,
				"attrition_decrease":   0.25,
				"recruitment_increase": 0.20,
				"technology_boost":     0.15,
			},
		},
		{
			Key:          "pessimistic",
			Name:         "Constrained Resources",
			Description:  "Budget constraints, increased emigration, training limitations",
			Probability:  0.20,
			SupplyFactor: 0.80 * 0.85,
			DemandFactor: 1.0,
			Parameters: map[string]float64{
				"graduation_decrease":  0.20,
				"attrition_increase":   0.30,
				"recruitment_decrease": 0.25,
				"budget_constraint":    0.15,
			},
		},
		{
			Key:          "technology_driven",
			Name:         "Digital Transformation",
			Description:  "AI and automation significantly impact workforce requirements",
			Probability:  0.15,
			SupplyFactor: 1.0,
			DemandFactor: 0.75,
			Parameters: map[string]float64{
				"productivity_increase": 0.40,
				"automation_impact":     0.25,
				"skill_shift":           0.35,
				"efficiency_gain":       0.20,
			},
		},
		{
			Key:          "demographic_shift",
			Name:         "Accelerated Aging",
			Description:  "Elderly share and chronic disease burden grow faster than projected",
			Probability:  0.10,
			SupplyFactor: 1.0,
			DemandFactor: 1.25,
			Parameters: map[string]float64{
				"elderly_growth":           0.30,
				"chronic_disease_increase": 0.20,
			},
		},
	}
}

// LoadScenarios reads a scenario set from a YAML file. Zero factors are
// normalized to 1 so a file can omit the side a scenario leaves untouched.
func LoadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}

	var doc struct {
		Scenarios []Scenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse scenarios file %s: %w", path, err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenarios file %s defines no scenarios", path)
	}

	for i := range doc.Scenarios {
		sc := &doc.Scenarios[i]
		if sc.Key == "" {
			return nil, fmt.Errorf("scenarios file %s: scenario %d has no key", path, i)
		}
		if sc.SupplyFactor == 0 {
			sc.SupplyFactor = 1
		}
		if sc.DemandFactor == 0 {
			sc.DemandFactor = 1
		}
		if sc.Parameters == nil {
			sc.Parameters = map[string]float64{}
		}
	}
	return doc.Scenarios, nil
}

// ScenarioYear is one adjusted projection year under a scenario.
type ScenarioYear struct {
	Year          int          `json:"year"`
	Supply        float64      `json:"supply"`
	Demand        float64      `json:"demand"`
	Gap           float64      `json:"gap"`
	GapPercentage float64      `json:"gap_percentage"`
	Severity      gap.Severity `json:"severity"`
}

// ScenarioSummary condenses a scenario run.
type ScenarioSummary struct {
	FinalGap   float64 `json:"final_gap"`
	WorstYear  int     `json:"worst_year"`
	AverageGap float64 `json:"average_gap"`
}

// ScenarioOutcome is one scenario applied to a baseline gap series.
type ScenarioOutcome struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Probability float64            `json:"probability"`
	Parameters  map[string]float64 `json:"parameters"`
	Results     []ScenarioYear     `json:"results"`
	Summary     ScenarioSummary    `json:"summary"`
}

// RunScenario rescales the baseline series by the scenario factors and
// re-derives severity from the adjusted gap percentage.
func RunScenario(sc Scenario, baseline []gap.Result) ScenarioOutcome {
	outcome := ScenarioOutcome{
		Name:        sc.Name,
		Description: sc.Description,
		Probability: sc.Probability,
		Parameters:  sc.Parameters,
		Results:     make([]ScenarioYear, 0, len(baseline)),
	}

	gapSum := 0.0
	worstAbs := -1.0
	for _, base := range baseline {
		supply := base.Supply * sc.SupplyFactor
		demand := base.Demand * sc.DemandFactor
		g := supply - demand

		pct := 0.0
		if demand > 0 {
			pct = math.Round(g/demand*100*100) / 100
		}

		outcome.Results = append(outcome.Results, ScenarioYear{
			Year:          base.Year,
			Supply:        supply,
			Demand:        demand,
			Gap:           g,
			GapPercentage: pct,
			Severity:      gap.SimpleSeverity(pct),
		})

		gapSum += g
		if a := math.Abs(g); a > worstAbs {
			worstAbs = a
			outcome.Summary.WorstYear = base.Year
		}
	}

	if n := len(outcome.Results); n > 0 {
		outcome.Summary.FinalGap = outcome.Results[n-1].Gap
		outcome.Summary.AverageGap = gapSum / float64(n)
	}
	return outcome
}

// Comparative ranks scenario outcomes against each other.
type Comparative struct {
	BestCaseScenario   string  `json:"best_case_scenario"`
	WorstCaseScenario  string  `json:"worst_case_scenario"`
	MostLikelyScenario string  `json:"most_likely_scenario"`
	GapSpread          float64 `json:"gap_spread"`
}

// Compare picks the best case (largest final gap, the least shortage), the
// worst case (smallest final gap) and the highest-probability scenario.
// Keys are visited in sorted order so ties resolve deterministically.
func Compare(outcomes map[string]ScenarioOutcome) Comparative {
	var c Comparative
	if len(outcomes) == 0 {
		return c
	}

	bestGap := math.Inf(-1)
	worstGap := math.Inf(1)
	bestProb := -1.0

	for _, key := range sortedKeys(outcomes) {
		out := outcomes[key]
		final := out.Summary.FinalGap
		if final > bestGap {
			bestGap = final
			c.BestCaseScenario = key
		}
		if final < worstGap {
			worstGap = final
			c.WorstCaseScenario = key
		}
		if out.Probability > bestProb {
			bestProb = out.Probability
			c.MostLikelyScenario = key
		}
	}

	c.GapSpread = bestGap - worstGap
	return c
}

// ScenarioRiskFactor is a cross-scenario structural risk.
type ScenarioRiskFactor struct {
	Factor      string  `json:"factor"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
}

// ScenarioRisk aggregates risk across a scenario set.
type ScenarioRisk struct {
	OverallRiskLevel     string               `json:"overall_risk_level"`
	CriticalScenarios    []string             `json:"critical_scenarios"`
	RiskFactors          []ScenarioRiskFactor `json:"risk_factors"`
	MitigationStrategies []string             `json:"mitigation_strategies"`
}

// criticalFinalGap marks a scenario as critical when its final-year gap
// falls below this shortage.
const criticalFinalGap = -1000.0

// AssessScenarioRisks flags scenarios ending in deep shortage and derives
// the overall level from how many there are.
func AssessScenarioRisks(outcomes map[string]ScenarioOutcome) ScenarioRisk {
	risk := ScenarioRisk{
		CriticalScenarios: []string{},
		RiskFactors: []ScenarioRiskFactor{
			{Factor: "Demographic Transition", Probability: 0.8, Impact: "high"},
			{Factor: "Economic Volatility", Probability: 0.6, Impact: "medium"},
			{Factor: "Technology Disruption", Probability: 0.7, Impact: "medium"},
			{Factor: "Policy Changes", Probability: 0.4, Impact: "high"},
		},
		MitigationStrategies: []string{
			"Diversify recruitment sources",
			"Invest in technology training",
			"Strengthen retention programs",
			"Develop contingency plans",
		},
	}

	for _, key := range sortedKeys(outcomes) {
		if outcomes[key].Summary.FinalGap < criticalFinalGap {
			risk.CriticalScenarios = append(risk.CriticalScenarios, key)
		}
	}

	switch {
	case len(risk.CriticalScenarios) > 1:
		risk.OverallRiskLevel = "high"
	case len(risk.CriticalScenarios) == 1:
		risk.OverallRiskLevel = "medium"
	default:
		risk.OverallRiskLevel = "low"
	}
	return risk
}

// ScenarioRecommendations derives cross-scenario advice, front-loading
// urgent items when any scenario ends in significant shortage.
func ScenarioRecommendations(outcomes map[string]ScenarioOutcome) []string {
	var recs []string

	anyCritical := false
	for _, key := range sortedKeys(outcomes) {
		if outcomes[key].Summary.FinalGap < -500 {
			anyCritical = true
			break
		}
	}

	if anyCritical {
		recs = append(recs,
			"Prepare contingency plans for workforce shortages",
			"Accelerate training program capacity expansion",
			"Develop international recruitment partnerships",
			"Secure budget allocation for emergency staffing",
		)
	}
	recs = append(recs,
		"Monitor key indicators quarterly for early warning",
		"Implement flexible workforce deployment strategies",
		"Focus on retention improvement programs",
		"Invest in productivity enhancement technologies",
	)

	if len(recs) > 6 {
		recs = recs[:6]
	}
	return recs
}

func sortedKeys(outcomes map[string]ScenarioOutcome) []string {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
