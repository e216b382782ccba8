package rates

// DynamicAttrition drifts the base attrition upward by 1% of itself per
// projected year and re-clamps the result.
func DynamicAttrition(base float64, year int) float64 {
	return clamp(base*(1+0.01*float64(year)), AttritionFloor, AttritionCeiling)
}

// Graduates converts the annual graduation rate into the expected inflow for
// one projection year. Output grows 3% per year for the first five years;
// capacity expansion is capped at 30% cumulative and quality pressure
// discounts at most 10%.
func Graduates(rate float64, year int) float64 {
	t := float64(year)
	growth := t
	if growth > 5 {
		growth = 5
	}
	capacity := 1 + 0.05*t
	if capacity > 1.3 {
		capacity = 1.3
	}
	quality := 1 - 0.01*t
	if quality < 0.9 {
		quality = 0.9
	}
	return rate * (1 + 0.03*growth) * capacity * quality
}

// Recruits converts the annual recruitment rate into the expected inflow for
// one projection year. Localization policy never removes more than half the
// base volume; global competition and improving economics pull in opposite
// directions.
func Recruits(rate float64, year int) float64 {
	t := float64(year)
	policy := 1 - 0.03*t
	if policy < 0.5 {
		policy = 0.5
	}
	return rate * policy * (1 - 0.02*t) * (1 + 0.01*t)
}

// InternalGrowth is the inflow from career progression inside the existing
// stock, about 2% per year with slowly improving pathways.
func InternalGrowth(stock float64, year int) float64 {
	return stock * 0.02 * (1 + 0.01*float64(year))
}

// TechnologyImpact accumulates the annual technology delta linearly over the
// projection years, bounded to [0.7, 1.3].
func TechnologyImpact(delta float64, year int) float64 {
	return clamp(1+delta*float64(year), technologyFloor, technologyCeiling)
}

// VisionFactor returns the policy uplift for a projection year: 2% annual
// improvement through year six, 1% per year after, capped at 1.5.
func VisionFactor(year int) float64 {
	t := float64(year)
	f := 1 + 0.02*t
	if year > 6 {
		f = 1 + 0.02*6 + 0.01*(t-6)
	}
	if f > visionCeiling {
		f = visionCeiling
	}
	return f
}
