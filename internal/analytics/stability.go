package analytics

import "math"

// StabilityResult is a Process Behavior Chart view of a projection series.
// A projected series that trips signals is driven by its modifiers rather
// than by steady flows, which is worth surfacing next to the trend fit.
type StabilityResult struct {
	Average     float64  `json:"average"`
	AmR         float64  `json:"average_moving_range"`
	UNPL        float64  `json:"upper_natural_process_limit"`
	LNPL        float64  `json:"lower_natural_process_limit"`
	Signals     []Signal `json:"signals"`
	Status      string   `json:"status"`
	SignalCount int      `json:"signal_count"`
}

// Signal is a detected special cause variation in the series.
type Signal struct {
	Index       int    `json:"index"`
	Year        int    `json:"year"`
	Type        string `json:"type"` // "outlier", "shift"
	Description string `json:"description"`
}

// AssessStability runs an Individuals and Moving Range analysis over a
// projection series. Years are bound to signals so callers can report
// which projected year broke the limits.
func AssessStability(values []float64, firstYear int) StabilityResult {
	if len(values) == 0 {
		return StabilityResult{Status: "stable"}
	}

	result := StabilityResult{Status: "stable"}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	result.Average = sum / float64(len(values))

	if len(values) > 1 {
		mrSum := 0.0
		for i := 0; i < len(values)-1; i++ {
			mrSum += math.Abs(values[i+1] - values[i])
		}
		result.AmR = mrSum / float64(len(values)-1)
	}

	// Wheeler's scaling constant for Individuals charts is 2.66.
	result.UNPL = result.Average + 2.66*result.AmR
	result.LNPL = math.Max(0, result.Average-2.66*result.AmR)

	result.Signals = detectSignals(values, result.Average, result.UNPL, result.LNPL, firstYear)
	result.SignalCount = len(result.Signals)

	shifts, outliers := 0, 0
	for _, s := range result.Signals {
		switch s.Type {
		case "shift":
			shifts++
		case "outlier":
			outliers++
		}
	}
	if shifts > 0 {
		result.Status = "migrating"
	} else if outliers > 0 {
		result.Status = "volatile"
	}

	return result
}

func detectSignals(values []float64, avg, unpl, lnpl float64, firstYear int) []Signal {
	var signals []Signal

	for i, v := range values {
		if v > unpl {
			signals = append(signals, Signal{
				Index:       i,
				Year:        firstYear + i,
				Type:        "outlier",
				Description: "Point above Upper Natural Process Limit (UNPL)",
			})
		} else if v < lnpl {
			signals = append(signals, Signal{
				Index:       i,
				Year:        firstYear + i,
				Type:        "outlier",
				Description: "Point below Lower Natural Process Limit (LNPL)",
			})
		}
	}

	// 8 consecutive points on one side of the average signal a shift.
	if len(values) >= 8 {
		side := 0
		count := 0
		for i, v := range values {
			currentSide := 0
			if v > avg {
				currentSide = 1
			} else if v < avg {
				currentSide = -1
			}

			if currentSide == side && currentSide != 0 {
				count++
			} else {
				side = currentSide
				count = 1
			}

			if count == 8 {
				signals = append(signals, Signal{
					Index:       i,
					Year:        firstYear + i,
					Type:        "shift",
					Description: "8 consecutive points on one side of the average (process shift)",
				})
			}
		}
	}

	return signals
}
