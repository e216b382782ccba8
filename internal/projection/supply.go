package projection

import "healthforce/internal/rates"

// SupplyInputs parameterizes one supply projection run.
type SupplyInputs struct {
	InitialStock float64
	Rates        rates.Set
	BaseYear     int
	Horizon      int
	DataQuality  float64
}

// ProjectSupply advances the workforce stock year by year. Each year removes
// attrition, adds graduate, recruitment and internal-growth inflows, then
// applies the technology and policy multipliers. Stock never goes negative.
func ProjectSupply(in SupplyInputs) []Point {
	points := make([]Point, 0, in.Horizon)
	stock := in.InitialStock

	for t := 1; t <= in.Horizon; t++ {
		dynamic := rates.DynamicAttrition(in.Rates.Attrition, t)
		vision := rates.VisionFactor(t)
		tech := rates.TechnologyImpact(in.Rates.TechnologyDelta, t)

		afterAttrition := stock * (1 - dynamic)
		graduates := rates.Graduates(in.Rates.Graduation, t)
		recruits := rates.Recruits(in.Rates.Recruitment, t)
		internal := rates.InternalGrowth(stock, t)

		next := (afterAttrition + graduates + recruits + internal) * tech * vision
		if next < 0 {
			next = 0
		}

		growth := 0.0
		if stock > 0 {
			growth = next/stock - 1
		}

		points = append(points, Point{
			Year:  in.BaseYear + t,
			Value: next,
			Supply: &SupplyAssumptions{
				BaseAttrition:    in.Rates.Attrition,
				DynamicAttrition: dynamic,
				GraduationRate:   in.Rates.Graduation,
				RecruitmentRate:  in.Rates.Recruitment,
				VisionFactor:     vision,
				TechnologyFactor: tech,
				BaseStock:        in.InitialStock,
				EnteringStock:    stock,
				AnnualGrowthRate: growth,
				DataQuality:      in.DataQuality,
			},
		})
		stock = next
	}
	return points
}
