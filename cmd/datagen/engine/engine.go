// Package engine generates synthetic but demographically plausible datasets
// for demos and load testing. All randomness flows from the configured seed
// so generated files are reproducible.
package engine

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"healthforce/internal/dataset"
)

type GeneratorConfig struct {
	Regions  int
	Scenario string // "balanced", "shortage" or "surplus"
	Seed     int64
	BaseYear int
}

// historyYears is how many stock years each (region, category) pair gets.
const historyYears = 3

// regionProfile seeds one Saudi administrative region.
type regionProfile struct {
	code       string
	nameEN     string
	nameAR     string
	population float64
	areaKM2    float64
	urbanShare float64
	gdp        float64
}

var regionProfiles = []regionProfile{
	{"ASR", "Asir", "عسير", 2_300_000, 76_693, 0.72, 48_000},
	{"BAH", "Al Bahah", "الباحة", 480_000, 9_921, 0.65, 42_000},
	{"EAS", "Eastern Province", "المنطقة الشرقية", 5_100_000, 672_522, 0.88, 110_000},
	{"HAL", "Hail", "حائل", 700_000, 103_887, 0.70, 45_000},
	{"JOF", "Al Jouf", "الجوف", 520_000, 100_212, 0.68, 44_000},
	{"JZN", "Jazan", "جازان", 1_600_000, 11_671, 0.60, 38_000},
	{"MDN", "Madinah", "المدينة المنورة", 2_200_000, 151_990, 0.80, 52_000},
	{"MKK", "Makkah", "مكة المكرمة", 8_800_000, 153_128, 0.85, 62_000},
	{"NBR", "Northern Borders", "الحدود الشمالية", 380_000, 111_797, 0.75, 46_000},
	{"NJR", "Najran", "نجران", 600_000, 149_511, 0.66, 40_000},
	{"QSM", "Qassim", "القصيم", 1_450_000, 58_046, 0.74, 50_000},
	{"RYD", "Riyadh", "الرياض", 8_000_000, 404_240, 0.90, 85_000},
	{"TBK", "Tabuk", "تبوك", 950_000, 146_072, 0.78, 47_000},
}

// categoryProfile seeds one workforce category with its national staffing
// rate per 1,000 inhabitants.
type categoryProfile struct {
	category dataset.WorkerCategory
	per1000  float64
}

var categoryProfiles = []categoryProfile{
	{dataset.WorkerCategory{Code: "DEN", NameEN: "Dentists", NameAR: "أطباء الأسنان", BaseAttritionRate: 0.06, AvgSalary: 150_000, PatientsPerDayCapacity: 14}, 0.5},
	{dataset.WorkerCategory{Code: "EMP", NameEN: "Emergency Medical Personnel", NameAR: "مسعفون", BaseAttritionRate: 0.11, AvgSalary: 90_000, CriticalShortage: true, PatientsPerDayCapacity: 15}, 0.6},
	{dataset.WorkerCategory{Code: "MHS", NameEN: "Mental Health Specialists", NameAR: "أخصائيو الصحة النفسية", BaseAttritionRate: 0.10, AvgSalary: 110_000, CriticalShortage: true, PatientsPerDayCapacity: 8}, 0.2},
	{dataset.WorkerCategory{Code: "MTC", NameEN: "Medical Technicians", NameAR: "فنيون طبيون", BaseAttritionRate: 0.08, AvgSalary: 85_000, PatientsPerDayCapacity: 20}, 1.6},
	{dataset.WorkerCategory{Code: "NUR", NameEN: "Nurses", NameAR: "الممرضون", BaseAttritionRate: 0.12, AvgSalary: 95_000, CriticalShortage: true, PatientsPerDayCapacity: 12}, 5.0},
	{dataset.WorkerCategory{Code: "PHA", NameEN: "Pharmacists", NameAR: "الصيادلة", BaseAttritionRate: 0.07, AvgSalary: 120_000, PatientsPerDayCapacity: 25}, 0.8},
	{dataset.WorkerCategory{Code: "PHT", NameEN: "Physiotherapists", NameAR: "أخصائيو العلاج الطبيعي", BaseAttritionRate: 0.07, AvgSalary: 95_000, PatientsPerDayCapacity: 10}, 0.3},
	{dataset.WorkerCategory{Code: "PHY", NameEN: "Physicians", NameAR: "الأطباء", BaseAttritionRate: 0.09, AvgSalary: 180_000, CriticalShortage: true, PatientsPerDayCapacity: 16}, 2.4},
}

// scenarioStockFactor scales staffing levels against the national rates.
func scenarioStockFactor(scenario string) (float64, error) {
	switch scenario {
	case "balanced":
		return 1.0, nil
	case "shortage":
		return 0.6, nil
	case "surplus":
		return 1.4, nil
	default:
		return 0, fmt.Errorf("unknown scenario %q", scenario)
	}
}

// Generate builds a dataset document for the configured scenario.
func Generate(cfg GeneratorConfig) (dataset.File, error) {
	factor, err := scenarioStockFactor(cfg.Scenario)
	if err != nil {
		return dataset.File{}, err
	}
	if cfg.Regions <= 0 || cfg.Regions > len(regionProfiles) {
		return dataset.File{}, fmt.Errorf("regions must be between 1 and %d, got %d", len(regionProfiles), cfg.Regions)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	file := dataset.File{
		GeneratedBy: fmt.Sprintf("datagen scenario=%s seed=%d", cfg.Scenario, cfg.Seed),
	}

	// An aging population pairs naturally with staffing shortages.
	elderlyShare := 0.08
	if cfg.Scenario == "shortage" {
		elderlyShare = 0.13
	}

	for _, rp := range regionProfiles[:cfg.Regions] {
		urban := math.Round(rp.population * rp.urbanShare)
		file.Regions = append(file.Regions, dataset.Region{
			Code:            rp.code,
			NameEN:          rp.nameEN,
			NameAR:          rp.nameAR,
			PopulationTotal: rp.population,
			PopulationUrban: urban,
			PopulationRural: rp.population - urban,
			AreaKM2:         rp.areaKM2,
			GDPPerCapita:    rp.gdp,
		})

		file.Populations = append(file.Populations, snapshot(rng, rp, cfg.BaseYear, elderlyShare))

		for _, cp := range categoryProfiles {
			base := rp.population / 1000 * cp.per1000 * factor
			// Stocks walk backwards from the base year at roughly 3% annual growth.
			for i := historyYears - 1; i >= 0; i-- {
				year := cfg.BaseYear - i
				drift := math.Pow(1.03, float64(-i))
				noise := 1 + (rng.Float64()-0.5)*0.1
				count := math.Round(base * drift * noise)
				file.Stocks = append(file.Stocks, dataset.WorkforceStock{
					RegionCode:       rp.code,
					CategoryCode:     cp.category.Code,
					DataYear:         year,
					CurrentCount:     count,
					FilledPositions:  count,
					DataQualityScore: round2(0.75 + rng.Float64()*0.2),
				})
			}
		}
	}

	for _, cp := range categoryProfiles {
		file.Categories = append(file.Categories, cp.category)
	}

	return file, nil
}

func snapshot(rng *rand.Rand, rp regionProfile, year int, elderlyShare float64) dataset.PopulationSnapshot {
	total := rp.population

	jitter := func(base, spread float64) float64 {
		return base + (rng.Float64()-0.5)*spread
	}

	young := math.Round(total * jitter(0.30, 0.02))
	youngAdult := math.Round(total * jitter(0.25, 0.02))
	adult := math.Round(total * jitter(0.22, 0.02))
	elderly := math.Round(total * jitter(elderlyShare, 0.01))
	// The middle band absorbs the rounding so the bands sum exactly.
	middle := total - young - youngAdult - adult - elderly

	return dataset.PopulationSnapshot{
		RegionCode:      rp.code,
		Year:            year,
		TotalPopulation: total,
		Bands: dataset.AgeBands{
			Young:      young,
			YoungAdult: youngAdult,
			Adult:      adult,
			Middle:     middle,
			Elderly:    elderly,
		},
		BirthRatePer1000: round2(jitter(21, 4)),
		DeathRatePer1000: round2(jitter(5, 1.5)),
		NetMigration:     math.Round(total * jitter(0.004, 0.006)),
		DiabetesRate:     round2(jitter(0.15, 0.04)),
		HypertensionRate: round2(jitter(0.24, 0.05)),
		ObesityRate:      round2(jitter(0.21, 0.04)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Save writes the generated document as dataset.json under outDir.
func Save(outDir string, file dataset.File) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	return dataset.WriteFile(filepath.Join(outDir, "dataset.json"), file)
}
