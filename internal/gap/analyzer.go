// Package gap classifies projected supply against projected demand and
// derives severity-ranked staffing recommendations per projected year.
package gap

import (
	"math"

	"healthforce/internal/dataset"
	"healthforce/internal/projection"
)

// Severity is the terminal classification of one projected year.
type Severity string

const (
	Surplus          Severity = "surplus"
	Balanced         Severity = "balanced"
	Shortage         Severity = "shortage"
	CriticalShortage Severity = "critical_shortage"
)

var severityRank = map[Severity]int{
	Surplus:          0,
	Balanced:         1,
	Shortage:         2,
	CriticalShortage: 3,
}

// Rank orders severities from surplus (0) to critical_shortage (3).
func (s Severity) Rank() int { return severityRank[s] }

// Urgency maps a severity to the triage level reported to callers.
func (s Severity) Urgency() string {
	switch s {
	case CriticalShortage:
		return "high"
	case Shortage:
		return "medium"
	default:
		return "low"
	}
}

// Result is one year of gap assessment.
type Result struct {
	Year            int      `json:"year"`
	Supply          float64  `json:"supply"`
	Demand          float64  `json:"demand"`
	Gap             float64  `json:"gap"`
	GapPercentage   float64  `json:"gap_percentage"`
	Severity        Severity `json:"severity"`
	SeverityScore   int      `json:"severity_score"`
	PriorityScore   float64  `json:"priority_score"`
	ActionRequired  bool     `json:"action_required"`
	UrgencyLevel    string   `json:"urgency_level"`
	Recommendations []string `json:"recommendations"`
}

// Context carries the region and category attributes that modulate severity
// scoring and recommendation wording.
type Context struct {
	Region   *dataset.Region
	Category *dataset.WorkerCategory
	BaseYear int
}

// Analyze pairs supply and demand points year by year. Years with zero
// demand keep a gap percentage of 0 and are reported once as a guarded
// substitution.
func Analyze(supply, demand []projection.Point, ctx Context) ([]Result, []dataset.AssumptionNote) {
	n := len(supply)
	if len(demand) < n {
		n = len(demand)
	}

	var notes []dataset.AssumptionNote
	zeroDemandYears := 0

	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		s, d := supply[i], demand[i]

		gap := s.Value - d.Value
		pct := 0.0
		if d.Value > 0 {
			pct = math.Round(gap/d.Value*100*100) / 100
		} else {
			zeroDemandYears++
		}

		score := severityScore(pct, s.Year, ctx)
		sev := severityFor(score)

		results = append(results, Result{
			Year:            s.Year,
			Supply:          s.Value,
			Demand:          d.Value,
			Gap:             gap,
			GapPercentage:   pct,
			Severity:        sev,
			SeverityScore:   score,
			PriorityScore:   priorityScore(sev, pct),
			ActionRequired:  sev == Shortage || sev == CriticalShortage,
			UrgencyLevel:    sev.Urgency(),
			Recommendations: recommendations(sev, pct, s.Year, ctx),
		})
	}

	if zeroDemandYears > 0 {
		notes = append(notes, dataset.Note(dataset.NoteZeroDivisor, "gap_percentage",
			"gap percentage fixed at 0 for %d year(s) with zero demand", zeroDemandYears))
	}
	return results, notes
}

// severityScore builds the additive score behind the classification: a
// tiered base from the gap percentage plus situational modifiers.
func severityScore(gapPct float64, year int, ctx Context) int {
	score := 0
	switch {
	case gapPct < -25:
		score += 5
	case gapPct < -15:
		score += 4
	case gapPct < -5:
		score += 3
	case gapPct < 5:
		score += 2
	default:
		score++
	}

	if ctx.Category != nil && ctx.Category.CriticalShortage {
		score++
	}
	if ctx.Region != nil {
		// Sparse regions carry a remote-access burden; a zero area means
		// density is unknown, not remote.
		if ctx.Region.AreaKM2 > 0 && ctx.Region.Density() < 10 {
			score++
		}
		if ctx.Region.PopulationTotal > 5_000_000 {
			score++
		}
	}
	if year > ctx.BaseYear+5 {
		score++
	}
	return score
}

func severityFor(score int) Severity {
	switch {
	case score >= 7:
		return CriticalShortage
	case score >= 5:
		return Shortage
	case score >= 3:
		return Balanced
	default:
		return Surplus
	}
}

// SimpleSeverity classifies on the gap percentage alone, used by scenario
// comparisons where the situational context is held constant.
func SimpleSeverity(gapPct float64) Severity {
	switch {
	case gapPct < -25:
		return CriticalShortage
	case gapPct < -10:
		return Shortage
	case gapPct < 10:
		return Balanced
	default:
		return Surplus
	}
}

var severityPriority = map[Severity]float64{
	Surplus:          1,
	Balanced:         2,
	Shortage:         4,
	CriticalShortage: 5,
}

// priorityScore blends the severity base with the gap magnitude on a 0-10
// scale.
func priorityScore(sev Severity, gapPct float64) float64 {
	p := severityPriority[sev] + math.Abs(gapPct)/10
	if p > 10 {
		p = 10
	}
	return p
}
