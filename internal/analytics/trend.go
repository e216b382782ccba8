// Package analytics covers the diagnostic layer around the core
// projections: historical trend fitting, projection stability, parameter
// sensitivity, risk assessment and named-scenario comparison.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TrendInsufficient marks a series too short to fit.
const TrendInsufficient = "insufficient_data"

// TrendResult describes the fitted direction of a historical series.
type TrendResult struct {
	Direction        string             `json:"trend_direction"`
	AnnualGrowthRate float64            `json:"annual_growth_rate"`
	RSquared         float64            `json:"r_squared"`
	ConfidenceLevel  float64            `json:"confidence_level"`
	SeasonalPatterns map[string]float64 `json:"seasonal_patterns"`
	Anomalies        []Anomaly          `json:"anomalies_detected"`
}

// Anomaly is a point deviating more than two sigma from the series mean.
type Anomaly struct {
	Year      int     `json:"year"`
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"`
	Type      string  `json:"type"`
}

// AnalyzeTrend fits an OLS line through a historical series and classifies
// its direction. The last point is assumed to fall on baseYear-1, so a
// five-point series spans [baseYear-5, baseYear-1]. Direction thresholds
// scale with the series mean: a slope within 2% of the mean per year counts
// as stable.
func AnalyzeTrend(values []float64, baseYear int) TrendResult {
	if len(values) < 3 {
		return TrendResult{Direction: TrendInsufficient}
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	mean := stat.Mean(values, nil)
	sigma := stat.PopStdDev(values, nil)
	if sigma == 0 {
		// Perfectly flat series: nothing to fit.
		return TrendResult{
			Direction:        "stable",
			ConfidenceLevel:  85.0,
			SeasonalPatterns: map[string]float64{"quarterly_variation": 0.05},
		}
	}

	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	r2 := stat.RSquared(xs, values, nil, alpha, beta)

	threshold := 0.02 * math.Abs(mean)
	direction := "stable"
	switch {
	case beta > threshold:
		direction = "increasing"
	case beta < -threshold:
		direction = "decreasing"
	}

	growth := 0.0
	if mean > 0 {
		growth = round2(beta / mean * 100)
	}

	var anomalies []Anomaly
	for i, v := range values {
		if math.Abs(v-mean) > 2*sigma {
			anomalies = append(anomalies, Anomaly{
				Year:      baseYear - len(values) + i,
				Value:     v,
				Deviation: math.Abs(v - mean),
				Type:      "outlier",
			})
		}
	}

	return TrendResult{
		Direction:        direction,
		AnnualGrowthRate: growth,
		RSquared:         round3(r2),
		ConfidenceLevel:  85.0,
		SeasonalPatterns: map[string]float64{"quarterly_variation": 0.05},
		Anomalies:        anomalies,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
