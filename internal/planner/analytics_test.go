package planner

import (
	"context"
	"errors"
	"testing"

	"healthforce/internal/dataset"
)

func TestAnalyzeHistoricalTrendsRecordedSeries(t *testing.T) {
	store := dataset.NewStore()
	store.PutRegion(dataset.Region{Code: "RYD", NameEN: "Riyadh", PopulationTotal: 8_000_000})
	store.PutCategory(dataset.WorkerCategory{Code: "PHY", NameEN: "Physicians"})
	for i, count := range []float64{8_000, 8_400, 8_800, 9_200, 9_600} {
		store.PutStock(dataset.WorkforceStock{
			RegionCode:   "RYD",
			CategoryCode: "PHY",
			DataYear:     2019 + i,
			CurrentCount: count,
		})
	}
	// Future-dated records stay out of the fitted history.
	store.PutStock(dataset.WorkforceStock{
		RegionCode:   "RYD",
		CategoryCode: "PHY",
		DataYear:     2026,
		CurrentCount: 99_999,
	})
	s := testService(store)

	report, err := s.AnalyzeHistoricalTrends(context.Background(), "RYD", "PHY")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Series) != 5 {
		t.Fatalf("Expected 5 recorded values, got %d: %v", len(report.Series), report.Series)
	}
	if report.Series[0] != 8_000 || report.Series[4] != 9_600 {
		t.Errorf("Series out of order: %v", report.Series)
	}
	if len(report.Notes) != 0 {
		t.Errorf("Expected no notes for a recorded series, got %v", report.Notes)
	}
	if report.Trend.Direction != "increasing" {
		t.Errorf("Expected increasing trend, got %s", report.Trend.Direction)
	}
	if report.Trend.RSquared != 1.0 {
		t.Errorf("Expected r-squared 1 for a perfect line, got %v", report.Trend.RSquared)
	}
	if report.Stability.Status != "stable" {
		t.Errorf("Expected stable status, got %s", report.Stability.Status)
	}
}

func TestAnalyzeHistoricalTrendsSyntheticFallback(t *testing.T) {
	// The fixture records a single year, below the three-point minimum.
	s := testService(fixtureStore())

	report, err := s.AnalyzeHistoricalTrends(context.Background(), "RYD", "PHY")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Series) != 5 {
		t.Fatalf("Expected a 5-year synthetic series, got %d", len(report.Series))
	}
	for i, v := range report.Series {
		if v < 0 {
			t.Errorf("Synthetic value %d is negative: %v", i, v)
		}
	}

	found := false
	for _, n := range report.Notes {
		if n.Code == dataset.NoteSyntheticHistory {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected synthetic history note, got %v", report.Notes)
	}

	// Identical seeds synthesize identical histories.
	other, err := testService(fixtureStore()).AnalyzeHistoricalTrends(context.Background(), "RYD", "PHY")
	if err != nil {
		t.Fatal(err)
	}
	for i := range report.Series {
		if report.Series[i] != other.Series[i] {
			t.Errorf("Synthetic series diverged at %d: %v vs %v", i, report.Series[i], other.Series[i])
		}
	}
}

func TestAssessProjectionRisksAgingRegion(t *testing.T) {
	store := fixtureStore()
	store.PutPopulationSnapshot(dataset.PopulationSnapshot{
		RegionCode:      "RYD",
		Year:            2023,
		TotalPopulation: 8_000_000,
		Bands: dataset.AgeBands{
			Young:      2_000_000,
			YoungAdult: 1_500_000,
			Adult:      1_500_000,
			Middle:     1_000_000,
			Elderly:    2_000_000,
		},
	})
	s := testService(store)

	report, err := s.AssessProjectionRisks(context.Background(), "RYD", "PHY", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Assessment.RiskFactors) != 3 {
		t.Fatalf("Expected 3 risk factors, got %+v", report.Assessment.RiskFactors)
	}
	aging := report.Assessment.RiskFactors[0]
	if aging.Factor != "Aging Population" || aging.Severity != "high" {
		t.Errorf("Expected high aging risk first, got %+v", aging)
	}
	if report.Assessment.OverallRiskScore != 5.33 {
		t.Errorf("Expected overall score 5.33, got %v", report.Assessment.OverallRiskScore)
	}
}

func TestAssessProjectionRisksWithoutSnapshot(t *testing.T) {
	store := dataset.NewStore()
	store.PutRegion(dataset.Region{Code: "JZN", NameEN: "Jazan", PopulationTotal: 1_600_000})
	store.PutCategory(dataset.WorkerCategory{Code: "PHY", NameEN: "Physicians"})
	s := testService(store)

	report, err := s.AssessProjectionRisks(context.Background(), "JZN", "PHY", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Assessment.RiskFactors) != 2 {
		t.Errorf("Expected baseline factors only, got %+v", report.Assessment.RiskFactors)
	}
	found := false
	for _, n := range report.Notes {
		if n.Code == dataset.NotePopulationDefault {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected population default note, got %v", report.Notes)
	}

	if _, err := s.AssessProjectionRisks(context.Background(), "JZN", "PHY", 0); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("Expected ErrInvalidHorizon for 0 years, got %v", err)
	}
}

func TestSensitivityAnalysisDefaults(t *testing.T) {
	s := testService(fixtureStore())

	report, err := s.SensitivityAnalysis(context.Background(), "RYD", "PHY", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Result.BaseValue <= 0 {
		t.Errorf("Expected positive base value, got %v", report.Result.BaseValue)
	}
	if len(report.Result.Parameters) != 4 {
		t.Errorf("Expected 4 default parameters, got %d", len(report.Result.Parameters))
	}
	if report.Result.MostSensitiveParameter != "attrition_rate" {
		t.Errorf("Expected attrition_rate as most sensitive, got %s", report.Result.MostSensitiveParameter)
	}
	if report.Metadata.Years != sensitivityHorizon {
		t.Errorf("Expected horizon %d in metadata, got %d", sensitivityHorizon, report.Metadata.Years)
	}
}

func TestSensitivityAnalysisCustomParameter(t *testing.T) {
	s := testService(fixtureStore())

	report, err := s.SensitivityAnalysis(context.Background(), "RYD", "PHY", []string{"graduation_rate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Result.Parameters) != 1 {
		t.Fatalf("Expected 1 parameter, got %d", len(report.Result.Parameters))
	}
	if _, ok := report.Result.Parameters["graduation_rate"]; !ok {
		t.Errorf("Expected graduation_rate grid, got %v", report.Result.Parameters)
	}
	if report.Result.MostSensitiveParameter != "graduation_rate" {
		t.Errorf("Expected graduation_rate as most sensitive, got %s", report.Result.MostSensitiveParameter)
	}
}

func TestAnalyzeScenariosAllConfigured(t *testing.T) {
	s := testService(fixtureStore())

	report, err := s.AnalyzeScenarios(context.Background(), "RYD", "PHY", 5, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(report.Scenarios) != 5 {
		t.Fatalf("Expected 5 scenario outcomes, got %d", len(report.Scenarios))
	}
	for _, key := range []string{"baseline", "optimistic", "pessimistic", "technology_driven", "demographic_shift"} {
		outcome, ok := report.Scenarios[key]
		if !ok {
			t.Errorf("Missing scenario %s", key)
			continue
		}
		if len(outcome.Results) != 5 {
			t.Errorf("Scenario %s: expected 5 yearly rows, got %d", key, len(outcome.Results))
		}
	}

	if report.Comparative.BestCaseScenario == "" || report.Comparative.WorstCaseScenario == "" {
		t.Errorf("Expected named best/worst cases, got %+v", report.Comparative)
	}
	if report.Comparative.MostLikelyScenario != "baseline" {
		t.Errorf("Expected baseline as most likely, got %s", report.Comparative.MostLikelyScenario)
	}
	if len(report.Recommendations) == 0 {
		t.Error("Expected scenario recommendations")
	}
}

func TestAnalyzeScenariosSubsetAndUnknown(t *testing.T) {
	s := testService(fixtureStore())

	report, err := s.AnalyzeScenarios(context.Background(), "RYD", "PHY", 5, []string{"baseline", "optimistic"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(report.Scenarios) != 2 {
		t.Errorf("Expected 2 selected scenarios, got %d", len(report.Scenarios))
	}

	if _, err := s.AnalyzeScenarios(context.Background(), "RYD", "PHY", 5, []string{"martian"}); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Expected ErrUnknownScenario, got %v", err)
	}
}
