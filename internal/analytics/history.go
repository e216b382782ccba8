package analytics

import "math/rand"

const (
	historyBaseValue   = 1000.0
	historyAnnualTrend = 0.03
	historyNoiseFactor = 0.1

	// DefaultHistoryYears is the synthetic series length used when no
	// recorded history exists.
	DefaultHistoryYears = 5
)

// SyntheticHistory fabricates a workforce history with a 3% annual trend
// and proportional gaussian noise. Callers flag the substitution with an
// assumption note; the series itself is plain data.
func SyntheticHistory(rng *rand.Rand, years int) []float64 {
	if years <= 0 {
		years = DefaultHistoryYears
	}

	series := make([]float64, 0, years)
	value := historyBaseValue
	for i := 0; i < years; i++ {
		noise := rng.NormFloat64() * value * historyNoiseFactor
		point := value + noise
		if point < 0 {
			point = 0
		}
		series = append(series, point)
		value *= 1 + historyAnnualTrend
	}
	return series
}
