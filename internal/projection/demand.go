package projection

import (
	"math"

	"healthforce/internal/dataset"
)

// Annual service encounters per 1000 population by category code, standing
// in for external service standards.
var utilizationPer1000 = map[string]float64{
	"PHY": 5500,
	"NUR": 8000,
	"PHA": 3000,
	"MTC": 2500,
	"DEN": 800,
	"MHS": 400,
	"EMP": 600,
	"PHT": 500,
}

const defaultUtilizationPer1000 = 1000.0

// Annual drift of the care-delivery model per category code. Positive values
// mean the category absorbs more of the service mix over time, negative
// values mean automation absorbs it.
var evolutionDelta = map[string]float64{
	"PHY": 0.010,
	"NUR": 0.015,
	"PHA": -0.005,
	"MTC": -0.010,
	"DEN": 0.005,
	"MHS": 0.020,
	"EMP": 0.005,
	"PHT": 0.010,
}

const defaultEvolutionDelta = 0.005

const (
	workingDaysPerYear    = 250.0
	defaultAnnualCapacity = 3000.0
)

// DemandInputs parameterizes one demand projection run. Region, category and
// snapshot may be nil when the source records are unavailable; the
// projection then degrades toward a zero or neutral-factor series.
type DemandInputs struct {
	Region   *dataset.Region
	Category *dataset.WorkerCategory
	Snapshot *dataset.PopulationSnapshot
	BaseYear int
	Horizon  int
}

// ProjectDemand derives the FTE workforce requirement per projected year
// from cohort population growth, service utilization ratios and the health,
// evolution, utilization and policy multipliers.
func ProjectDemand(in DemandInputs) ([]Point, []dataset.AssumptionNote) {
	var notes []dataset.AssumptionNote

	var snap dataset.PopulationSnapshot
	growth := 0.0
	if in.Snapshot != nil {
		snap = *in.Snapshot
		var growthNotes []dataset.AssumptionNote
		growth, growthNotes = GrowthRate(snap)
		notes = append(notes, growthNotes...)
		if snap.Bands.Total() <= 0 {
			notes = append(notes, dataset.Note(dataset.NotePopulationDefault, "age_bands",
				"age bands unavailable for %s, flat growth applied", snap.RegionCode))
		}
	}

	code := ""
	capacity := defaultAnnualCapacity
	if in.Category != nil {
		code = in.Category.Code
		if in.Category.PatientsPerDayCapacity > 0 {
			capacity = in.Category.PatientsPerDayCapacity * workingDaysPerYear
		}
		if _, ok := utilizationPer1000[code]; !ok {
			notes = append(notes, dataset.Note(dataset.NoteRateDefault, "utilization_per_1000",
				"category %s has no utilization table entry, base %.0f applied", code, defaultUtilizationPer1000))
		}
	}
	ratio, ok := utilizationPer1000[code]
	if !ok {
		ratio = defaultUtilizationPer1000
	}

	points := make([]Point, 0, in.Horizon)
	for t := 1; t <= in.Horizon; t++ {
		population := ProjectPopulation(snap, growth, t)
		health := HealthDemandFactor(snap, t)
		evolution := evolutionFactor(code, t)
		utilization := utilizationFactor(in.Region, t)
		policy := policyImpact(in.Category, t)

		volume := population / 1000 * ratio
		fte := volume / capacity * health * evolution * utilization * policy
		if fte < 0 {
			fte = 0
		}

		points = append(points, Point{
			Year:  in.BaseYear + t,
			Value: fte,
			Demand: &DemandAssumptions{
				ProjectedPopulation: population,
				HealthDemandFactor:  health,
				ServiceEvolution:    evolution,
				UtilizationFactor:   utilization,
				PolicyImpact:        policy,
				ServiceVolume:       volume,
			},
		})
	}
	return points, notes
}

// HealthDemandFactor combines the elderly share and the chronic-disease
// burden into a demand multiplier that drifts up 1% per projected year,
// bounded to [0.5, 3.0].
func HealthDemandFactor(snap dataset.PopulationSnapshot, year int) float64 {
	f := 1 + 2.0*snap.ElderlyShare() + 0.5*snap.ChronicBurden() + 0.01*float64(year)
	return clamp(f, 0.5, 3.0)
}

// evolutionFactor tracks how the care-delivery model shifts service volume
// toward or away from a category, bounded to [0.8, 1.4].
func evolutionFactor(code string, year int) float64 {
	delta, ok := evolutionDelta[code]
	if !ok {
		delta = defaultEvolutionDelta
	}
	return clamp(1+delta*float64(year), 0.8, 1.4)
}

// utilizationFactor reflects access-driven uptake: urban populations consume
// more services and coverage expands over the first decade.
func utilizationFactor(region *dataset.Region, year int) float64 {
	urban := 0.5
	if region != nil {
		urban = region.UrbanFraction()
	}
	t := math.Min(float64(year), 10)
	return clamp(0.9+0.2*urban+0.01*t, 0.8, 1.3)
}

// policyImpact models coverage expansion, stronger for critical-shortage
// categories, saturating after a decade.
func policyImpact(category *dataset.WorkerCategory, year int) float64 {
	rate := 0.005
	if category != nil && category.CriticalShortage {
		rate = 0.008
	}
	return 1 + rate*math.Min(float64(year), 10)
}
