package gap

// Summary condenses a multi-year gap series for response envelopes.
type Summary struct {
	FinalYearGap          float64 `json:"final_year_gap"`
	AverageAnnualShortage float64 `json:"average_annual_shortage"`
	CriticalYears         []int   `json:"critical_years"`
	InterventionNeeded    bool    `json:"intervention_needed"`
}

// Summarize reduces a year-by-year series. The average annual shortage
// divides the summed shortfalls by the full horizon, so surplus years
// dilute it toward zero.
func Summarize(results []Result) Summary {
	var s Summary
	if len(results) == 0 {
		s.CriticalYears = []int{}
		return s
	}

	s.FinalYearGap = results[len(results)-1].Gap
	s.CriticalYears = make([]int, 0, len(results))

	shortfall := 0.0
	for _, r := range results {
		if r.Gap < 0 {
			shortfall += r.Gap
		}
		if r.Severity == CriticalShortage {
			s.CriticalYears = append(s.CriticalYears, r.Year)
		}
		if r.ActionRequired {
			s.InterventionNeeded = true
		}
	}
	s.AverageAnnualShortage = shortfall / float64(len(results))
	return s
}
