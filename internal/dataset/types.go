package dataset

import (
	"fmt"
	"math"
)

// Region is a read-only administrative region snapshot.
type Region struct {
	Code               string  `json:"code"`
	NameEN             string  `json:"name_en"`
	NameAR             string  `json:"name_ar,omitempty"`
	PopulationTotal    float64 `json:"population_total"`
	PopulationUrban    float64 `json:"population_urban"`
	PopulationRural    float64 `json:"population_rural"`
	PopulationSaudi    float64 `json:"population_saudi,omitempty"`
	PopulationNonSaudi float64 `json:"population_non_saudi,omitempty"`
	AreaKM2            float64 `json:"area_km2"`
	GDPPerCapita       float64 `json:"gdp_per_capita"`
	HospitalsCount     int     `json:"hospitals_count,omitempty"`
}

// Density returns inhabitants per square kilometre, 0 for a zero area.
func (r Region) Density() float64 {
	if r.AreaKM2 <= 0 {
		return 0
	}
	return r.PopulationTotal / r.AreaKM2
}

// UrbanFraction returns the urban share of the total population.
func (r Region) UrbanFraction() float64 {
	if r.PopulationTotal <= 0 {
		return 0
	}
	return r.PopulationUrban / r.PopulationTotal
}

// Validate checks the population bookkeeping invariants.
func (r Region) Validate() error {
	if r.Code == "" {
		return fmt.Errorf("region without code")
	}
	if r.PopulationTotal < 0 || r.PopulationUrban < 0 || r.PopulationRural < 0 {
		return fmt.Errorf("region %s: negative population count", r.Code)
	}
	if r.PopulationTotal > 0 {
		split := r.PopulationUrban + r.PopulationRural
		if math.Abs(split-r.PopulationTotal) > r.PopulationTotal*0.01 {
			return fmt.Errorf("region %s: urban+rural %.0f deviates from total %.0f by more than 1%%", r.Code, split, r.PopulationTotal)
		}
	}
	return nil
}

// WorkerCategory describes one healthcare workforce category.
type WorkerCategory struct {
	Code                   string  `json:"code"`
	NameEN                 string  `json:"name_en"`
	NameAR                 string  `json:"name_ar,omitempty"`
	BaseAttritionRate      float64 `json:"base_attrition_rate,omitempty"`
	AvgSalary              float64 `json:"avg_salary"`
	CriticalShortage       bool    `json:"critical_shortage"`
	PatientsPerDayCapacity float64 `json:"patients_per_day_capacity,omitempty"`
}

// WorkforceStock is the recorded headcount for a (region, category, year) triple.
type WorkforceStock struct {
	RegionCode          string  `json:"region_code"`
	CategoryCode        string  `json:"category_code"`
	DataYear            int     `json:"data_year"`
	CurrentCount        float64 `json:"current_count"`
	FilledPositions     float64 `json:"filled_positions,omitempty"`
	AuthorizedPositions float64 `json:"authorized_positions,omitempty"`
	DataQualityScore    float64 `json:"data_quality_score,omitempty"`
}

// Validate checks the stock bookkeeping invariants.
func (s WorkforceStock) Validate() error {
	if s.CurrentCount < 0 {
		return fmt.Errorf("stock %s/%s %d: negative current count", s.RegionCode, s.CategoryCode, s.DataYear)
	}
	if s.AuthorizedPositions > 0 && s.FilledPositions > s.AuthorizedPositions {
		return fmt.Errorf("stock %s/%s %d: filled %.0f exceeds authorized %.0f", s.RegionCode, s.CategoryCode, s.DataYear, s.FilledPositions, s.AuthorizedPositions)
	}
	return nil
}

// AgeBands holds population counts per aggregated age group.
type AgeBands struct {
	Young      float64 `json:"age_0_14"`
	YoungAdult float64 `json:"age_15_29"`
	Adult      float64 `json:"age_30_44"`
	Middle     float64 `json:"age_45_59"`
	Elderly    float64 `json:"age_60_plus"`
}

// Total returns the sum of all bands.
func (b AgeBands) Total() float64 {
	return b.Young + b.YoungAdult + b.Adult + b.Middle + b.Elderly
}

// PopulationSnapshot is a demographic snapshot for a (region, year) pair.
type PopulationSnapshot struct {
	RegionCode       string   `json:"region_code"`
	Year             int      `json:"year"`
	TotalPopulation  float64  `json:"total_population"`
	Bands            AgeBands `json:"age_bands"`
	BirthRatePer1000 float64  `json:"birth_rate_per_1000,omitempty"`
	DeathRatePer1000 float64  `json:"death_rate_per_1000,omitempty"`
	NetMigration     float64  `json:"net_migration,omitempty"`
	DiabetesRate     float64  `json:"diabetes_prevalence,omitempty"`
	HypertensionRate float64  `json:"hypertension_prevalence,omitempty"`
	ObesityRate      float64  `json:"obesity_prevalence,omitempty"`
}

// ElderlyShare returns the 60+ fraction of the snapshot population.
func (p PopulationSnapshot) ElderlyShare() float64 {
	if p.TotalPopulation <= 0 {
		return 0
	}
	return p.Bands.Elderly / p.TotalPopulation
}

// ChronicBurden sums the chronic-condition prevalence rates.
func (p PopulationSnapshot) ChronicBurden() float64 {
	return p.DiabetesRate + p.HypertensionRate + p.ObesityRate
}

// Validate checks that the age bands account for the total population.
func (p PopulationSnapshot) Validate() error {
	if p.TotalPopulation < 0 {
		return fmt.Errorf("population %s %d: negative total", p.RegionCode, p.Year)
	}
	if p.TotalPopulation > 0 && p.Bands.Total() > 0 {
		if math.Abs(p.Bands.Total()-p.TotalPopulation) > p.TotalPopulation*0.01 {
			return fmt.Errorf("population %s %d: age bands sum %.0f deviates from total %.0f by more than 1%%", p.RegionCode, p.Year, p.Bands.Total(), p.TotalPopulation)
		}
	}
	return nil
}

// AssumptionNote records a substitution applied when input data was missing
// or a numeric guard fired. Notes travel with results so callers can audit
// how much of a projection rests on defaults.
type AssumptionNote struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Assumption codes surfaced to callers.
const (
	NoteRegionDefault     = "region_default"
	NoteCategoryDefault   = "category_default"
	NoteStockDefault      = "stock_default"
	NotePopulationDefault = "population_default"
	NoteRateDefault       = "rate_default"
	NoteZeroDivisor       = "zero_divisor"
	NoteSyntheticHistory  = "synthetic_history"
)

// Note builds an AssumptionNote.
func Note(code, field, format string, args ...any) AssumptionNote {
	return AssumptionNote{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
