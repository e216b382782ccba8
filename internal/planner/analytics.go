package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"healthforce/internal/analytics"
	"healthforce/internal/dataset"
	"healthforce/internal/projection"
	"healthforce/internal/rates"
)

// TrendReport is the historical trend view for one region and category.
type TrendReport struct {
	Metadata  Metadata                  `json:"metadata"`
	Series    []float64                 `json:"historical_series"`
	Trend     analytics.TrendResult     `json:"trend"`
	Stability analytics.StabilityResult `json:"stability"`
	Notes     []dataset.AssumptionNote  `json:"assumption_notes,omitempty"`
}

// AnalyzeHistoricalTrends fits the recorded workforce history for a region
// and category. With fewer than three recorded years a synthetic series
// substitutes, reported as an assumption note.
func (s *Service) AnalyzeHistoricalTrends(ctx context.Context, regionCode, categoryCode string) (*TrendReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ec := s.resolveEntities(regionCode, categoryCode)
	var notes []dataset.AssumptionNote

	var series []float64
	for _, rec := range s.store.StockSeries(regionCode, categoryCode) {
		if rec.DataYear <= s.baseYear {
			series = append(series, rec.CurrentCount)
		}
	}

	if len(series) < 3 {
		s.histMu.Lock()
		series = analytics.SyntheticHistory(s.histRNG, analytics.DefaultHistoryYears)
		s.histMu.Unlock()

		log.Warn().
			Str("region", regionCode).
			Str("category", categoryCode).
			Msg("Insufficient recorded history, using synthetic series")
		notes = append(notes, dataset.Note(dataset.NoteSyntheticHistory, "historical_series",
			"fewer than 3 recorded years for %s/%s, synthetic %d-year series used",
			regionCode, categoryCode, analytics.DefaultHistoryYears))
	}

	s.metrics.CountNotes(len(notes))

	return &TrendReport{
		Metadata:  s.metadata(ec, regionCode, categoryCode, 0),
		Series:    series,
		Trend:     analytics.AnalyzeTrend(series, s.baseYear),
		Stability: analytics.AssessStability(series, s.baseYear-len(series)),
		Notes:     notes,
	}, nil
}

// RiskReport wraps the risk assessment with run identification.
type RiskReport struct {
	Metadata   Metadata                 `json:"metadata"`
	Assessment analytics.RiskAssessment `json:"risk_assessment"`
	Notes      []dataset.AssumptionNote `json:"assumption_notes,omitempty"`
}

// AssessProjectionRisks scores the structural risks around a projection.
func (s *Service) AssessProjectionRisks(ctx context.Context, regionCode, categoryCode string, years int) (*RiskReport, error) {
	if err := validateHorizon(years); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ec := s.resolveEntities(regionCode, categoryCode)
	var notes []dataset.AssumptionNote
	snapshot := s.resolveSnapshot(regionCode, &notes)

	s.metrics.CountNotes(len(notes))

	return &RiskReport{
		Metadata:   s.metadata(ec, regionCode, categoryCode, years),
		Assessment: analytics.AssessRisks(snapshot, ec.category),
		Notes:      notes,
	}, nil
}

// sensitivityHorizon is the fixed supply horizon sensitivity runs perturb.
const sensitivityHorizon = 5

// SensitivityReport wraps the sensitivity grid with run identification.
type SensitivityReport struct {
	Metadata Metadata                    `json:"metadata"`
	Result   analytics.SensitivityResult `json:"sensitivity"`
	Notes    []dataset.AssumptionNote    `json:"assumption_notes,omitempty"`
}

// SensitivityAnalysis perturbs the named parameters around a five-year
// supply projection's final value. The base projection runs without Monte
// Carlo bounds; only the point estimate matters here.
func (s *Service) SensitivityAnalysis(ctx context.Context, regionCode, categoryCode string, parameters []string) (*SensitivityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ec := s.resolveEntities(regionCode, categoryCode)
	set, rateNotes := rates.Estimate(ec.region, ec.category)
	notes := append(append([]dataset.AssumptionNote{}, ec.notes...), rateNotes...)

	initial, quality, stockNote := s.resolveStock(regionCode, categoryCode)
	if stockNote != nil {
		notes = append(notes, *stockNote)
	}

	points := projection.ProjectSupply(projection.SupplyInputs{
		InitialStock: initial,
		Rates:        set,
		BaseYear:     s.baseYear,
		Horizon:      sensitivityHorizon,
		DataQuality:  quality,
	})

	base := 0.0
	if len(points) > 0 {
		base = points[len(points)-1].Value
	}

	s.metrics.CountNotes(len(notes))

	return &SensitivityReport{
		Metadata: s.metadata(ec, regionCode, categoryCode, sensitivityHorizon),
		Result:   analytics.Sensitivity(base, parameters),
		Notes:    notes,
	}, nil
}

// ScenarioReport compares the configured scenarios over one baseline gap
// analysis.
type ScenarioReport struct {
	Metadata        Metadata                             `json:"metadata"`
	Scenarios       map[string]analytics.ScenarioOutcome `json:"scenarios"`
	Comparative     analytics.Comparative                `json:"comparative_analysis"`
	Risk            analytics.ScenarioRisk               `json:"risk_assessment"`
	Recommendations []string                             `json:"recommendations"`
	Notes           []dataset.AssumptionNote             `json:"assumption_notes,omitempty"`
}

// AnalyzeScenarios runs the baseline gap analysis once and replays it under
// each configured scenario. Empty keys means all configured scenarios; an
// unknown key is an error so callers learn about typos.
func (s *Service) AnalyzeScenarios(ctx context.Context, regionCode, categoryCode string, years int, keys []string) (*ScenarioReport, error) {
	selected, err := s.selectScenarios(keys)
	if err != nil {
		return nil, err
	}

	baseline, err := s.GenerateGapAnalysis(ctx, regionCode, categoryCode, years)
	if err != nil {
		return nil, err
	}

	outcomes := make(map[string]analytics.ScenarioOutcome, len(selected))
	for _, sc := range selected {
		outcomes[sc.Key] = analytics.RunScenario(sc, baseline.Gaps)
	}

	return &ScenarioReport{
		Metadata:        baseline.Metadata,
		Scenarios:       outcomes,
		Comparative:     analytics.Compare(outcomes),
		Risk:            analytics.AssessScenarioRisks(outcomes),
		Recommendations: analytics.ScenarioRecommendations(outcomes),
		Notes:           baseline.Notes,
	}, nil
}

func (s *Service) selectScenarios(keys []string) ([]analytics.Scenario, error) {
	if len(keys) == 0 {
		return s.scenarios, nil
	}

	byKey := make(map[string]analytics.Scenario, len(s.scenarios))
	for _, sc := range s.scenarios {
		byKey[sc.Key] = sc
	}

	selected := make([]analytics.Scenario, 0, len(keys))
	for _, key := range keys {
		sc, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, key)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}
