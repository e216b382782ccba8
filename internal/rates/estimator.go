// Package rates derives the annual flow parameters behind workforce
// projections: attrition, graduation output, international recruitment and
// the time-varying policy and technology factors that modulate them.
//
// Estimators are pure functions of region and category attributes. Missing
// records degrade to documented defaults reported as assumption notes, so a
// batch run keeps moving when the dataset has holes.
package rates

import "healthforce/internal/dataset"

// Bounds applied to every estimated, drifted or sampled attrition rate.
const (
	AttritionFloor   = 0.01
	AttritionCeiling = 0.40
)

const (
	defaultBaseAttrition = 0.08
	lowSalaryThreshold   = 100_000

	technologyFloor   = 0.7
	technologyCeiling = 1.3

	visionCeiling = 1.5
)

// Set carries the point estimates for one region and category pair. Every
// projection, simulation and sensitivity run derives from a Set.
type Set struct {
	Attrition       float64 `json:"attrition_rate"`
	Graduation      float64 `json:"graduation_rate"`
	Recruitment     float64 `json:"recruitment_rate"`
	Saudization     float64 `json:"saudization_factor"`
	TechnologyDelta float64 `json:"technology_delta"`
}

// Estimate derives the flow parameters for a region and category pair.
// Either record may be nil when the source data is unavailable; the
// estimator then substitutes documented defaults and reports each
// substitution as an assumption note instead of failing.
func Estimate(region *dataset.Region, category *dataset.WorkerCategory) (Set, []dataset.AssumptionNote) {
	set := Set{
		Attrition:   Attrition(region, category),
		Saudization: 0.9,
	}

	if category == nil {
		set.Graduation = missingCategoryGraduates
		set.Recruitment = missingCategoryRecruits
		return set, []dataset.AssumptionNote{
			dataset.Note(dataset.NoteRateDefault, "graduation_rate",
				"category record unavailable, flat pipeline defaults applied (%.0f graduates, %.0f recruits)",
				missingCategoryGraduates, missingCategoryRecruits),
		}
	}

	var notes []dataset.AssumptionNote

	grad, ok := graduationBase[category.Code]
	if !ok {
		grad = unmappedGraduates
		notes = append(notes, dataset.Note(dataset.NoteRateDefault, "graduation_rate",
			"category %s has no graduation table entry, base %.0f applied", category.Code, unmappedGraduates))
	}
	if region != nil {
		// Larger regions host more training institutions, up to twice the
		// baseline output.
		factor := region.PopulationTotal / 1_000_000
		if factor > 2 {
			factor = 2
		}
		grad *= factor
	}
	// 85% capacity utilization, 92% completion.
	set.Graduation = grad * 0.85 * 0.92

	rec, ok := recruitmentBase[category.Code]
	if !ok {
		rec = unmappedRecruits
		notes = append(notes, dataset.Note(dataset.NoteRateDefault, "recruitment_rate",
			"category %s has no recruitment table entry, base %.0f applied", category.Code, unmappedRecruits))
	}
	set.Saudization = saudization(category.Code)
	economic := 1.0
	if region != nil && region.GDPPerCapita > 70_000 {
		economic = 1.2
	}
	set.Recruitment = rec * set.Saudization * economic

	delta, ok := technologyDelta[category.Code]
	if !ok {
		notes = append(notes, dataset.Note(dataset.NoteRateDefault, "technology_delta",
			"category %s has no technology table entry, neutral delta applied", category.Code))
	}
	set.TechnologyDelta = delta

	return set, notes
}

// Attrition estimates the annual attrition fraction. The category baseline
// (8% when unset) is pushed up by regional urbanization, by the
// critical-shortage flag and by below-median salary, then clamped.
func Attrition(region *dataset.Region, category *dataset.WorkerCategory) float64 {
	rate := defaultBaseAttrition
	if category != nil && category.BaseAttritionRate > 0 {
		rate = category.BaseAttritionRate
	}
	if region != nil {
		// Urban labour markets offer more competing employers.
		rate += region.UrbanFraction() * 0.02
	}
	if category != nil {
		if category.CriticalShortage {
			rate += 0.03
		}
		if category.AvgSalary > 0 && category.AvgSalary < lowSalaryThreshold {
			rate += 0.02
		}
	}
	return clamp(rate, AttritionFloor, AttritionCeiling)
}

// Localization policy holds international hiring of physicians and nurses to
// 70% of the base volume, 90% for everyone else.
func saudization(code string) float64 {
	if code == "PHY" || code == "NUR" {
		return 0.7
	}
	return 0.9
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
