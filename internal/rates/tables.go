package rates

// Baseline annual graduate output per category code across national training
// programmes.
var graduationBase = map[string]float64{
	"PHY": 200,
	"NUR": 400,
	"PHA": 100,
	"MTC": 250,
	"DEN": 80,
	"MHS": 60,
	"EMP": 40,
	"PHT": 120,
}

// Baseline annual international recruitment volume per category code.
var recruitmentBase = map[string]float64{
	"PHY": 120,
	"NUR": 180,
	"PHA": 60,
	"MTC": 100,
	"DEN": 40,
	"MHS": 80,
	"EMP": 50,
	"PHT": 70,
}

// Annual technology delta per category code. Positive values raise effective
// capacity through assistive tooling, negative values displace work through
// automation.
var technologyDelta = map[string]float64{
	"PHY": 0.005,
	"NUR": 0.002,
	"PHA": -0.010,
	"MTC": -0.015,
	"DEN": 0.003,
	"MHS": 0.001,
	"EMP": 0.008,
	"PHT": 0.002,
}

// Fallback pipeline volumes. A category record that exists but carries an
// unknown code still gets regional and policy factors applied; a missing
// record short-circuits to flat conservative volumes.
const (
	unmappedGraduates = 75.0
	unmappedRecruits  = 50.0

	missingCategoryGraduates = 50.0
	missingCategoryRecruits  = 25.0
)
