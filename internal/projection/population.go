package projection

import (
	"math"

	"healthforce/internal/dataset"
)

// National fallback vital rates per 1000 inhabitants.
const (
	defaultBirthRate = 20.0
	defaultDeathRate = 4.0
)

// Age-cohort projection factors. Older bands grow faster as the demographic
// transition progresses; every factor drifts up 1% per projected year.
const (
	factorYoung      = 0.95
	factorYoungAdult = 1.00
	factorAdult      = 1.05
	factorMiddle     = 1.10
	factorElderly    = 1.30
)

// GrowthRate derives the annual population growth fraction from vital rates
// and net migration. Unset vital rates fall back to national defaults, each
// reported as an assumption note.
func GrowthRate(snap dataset.PopulationSnapshot) (float64, []dataset.AssumptionNote) {
	var notes []dataset.AssumptionNote

	birth := snap.BirthRatePer1000
	if birth == 0 {
		birth = defaultBirthRate
		notes = append(notes, dataset.Note(dataset.NotePopulationDefault, "birth_rate_per_1000",
			"birth rate unavailable for %s, national default %.0f applied", snap.RegionCode, defaultBirthRate))
	}
	death := snap.DeathRatePer1000
	if death == 0 {
		death = defaultDeathRate
		notes = append(notes, dataset.Note(dataset.NotePopulationDefault, "death_rate_per_1000",
			"death rate unavailable for %s, national default %.0f applied", snap.RegionCode, defaultDeathRate))
	}

	growth := (birth - death) / 1000
	if snap.TotalPopulation > 0 {
		growth += snap.NetMigration / snap.TotalPopulation
	}
	return growth, notes
}

// ProjectPopulation projects the snapshot population to a future year using
// compound growth weighted by age-cohort factors. The result never drops
// below 80% of the base population.
func ProjectPopulation(snap dataset.PopulationSnapshot, growth float64, year int) float64 {
	total := snap.TotalPopulation * math.Pow(1+growth, float64(year))
	floor := snap.TotalPopulation * 0.8

	bandsTotal := snap.Bands.Total()
	if bandsTotal <= 0 {
		return math.Max(total, floor)
	}

	t := float64(year)
	cohorts := []struct {
		count  float64
		factor float64
	}{
		{snap.Bands.Young, factorYoung},
		{snap.Bands.YoungAdult, factorYoungAdult},
		{snap.Bands.Adult, factorAdult},
		{snap.Bands.Middle, factorMiddle},
		{snap.Bands.Elderly, factorElderly},
	}

	weighted := 0.0
	for _, c := range cohorts {
		weighted += (c.count / bandsTotal) * total * (c.factor + 0.01*t)
	}
	return math.Max(weighted, floor)
}
