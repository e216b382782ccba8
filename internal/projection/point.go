// Package projection advances workforce supply and demand year by year from
// estimated rates and demographic snapshots. All functions are pure; state
// carries forward only inside a single call.
package projection

// Point is one projected year of a supply or demand series. Confidence
// bounds are zero until a Monte Carlo engine fills them in.
type Point struct {
	Year            int                `json:"year"`
	Value           float64            `json:"value"`
	ConfidenceLower float64            `json:"confidence_lower"`
	ConfidenceUpper float64            `json:"confidence_upper"`
	Supply          *SupplyAssumptions `json:"supply_assumptions,omitempty"`
	Demand          *DemandAssumptions `json:"demand_assumptions,omitempty"`
}

// SupplyAssumptions records the factors behind one supply point.
type SupplyAssumptions struct {
	BaseAttrition    float64 `json:"base_attrition_rate"`
	DynamicAttrition float64 `json:"dynamic_attrition_rate"`
	GraduationRate   float64 `json:"graduation_rate"`
	RecruitmentRate  float64 `json:"recruitment_rate"`
	VisionFactor     float64 `json:"vision_2030_factor"`
	TechnologyFactor float64 `json:"technology_adjustment"`
	BaseStock        float64 `json:"base_stock"`
	EnteringStock    float64 `json:"entering_stock"`
	AnnualGrowthRate float64 `json:"annual_growth_rate"`
	DataQuality      float64 `json:"data_quality_score,omitempty"`
}

// DemandAssumptions records the factors behind one demand point.
type DemandAssumptions struct {
	ProjectedPopulation float64 `json:"projected_population"`
	HealthDemandFactor  float64 `json:"health_demand_factor"`
	ServiceEvolution    float64 `json:"service_evolution_factor"`
	UtilizationFactor   float64 `json:"utilization_factor"`
	PolicyImpact        float64 `json:"policy_impact"`
	ServiceVolume       float64 `json:"service_requirements"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
