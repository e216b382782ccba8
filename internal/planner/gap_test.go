package planner

import (
	"context"
	"testing"

	"healthforce/internal/dataset"
	"healthforce/internal/gap"
)

func TestGenerateGapAnalysisShortage(t *testing.T) {
	s := testService(fixtureStore())

	result, err := s.GenerateGapAnalysis(context.Background(), "RYD", "PHY", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Gaps) != 10 {
		t.Fatalf("Expected 10 gap rows, got %d", len(result.Gaps))
	}
	if len(result.Supply) != 10 || len(result.Demand) != 10 {
		t.Fatalf("Expected both projections in the report, got %d/%d", len(result.Supply), len(result.Demand))
	}

	for _, g := range result.Gaps {
		if g.Gap != g.Supply-g.Demand {
			t.Errorf("Year %d: gap %v does not equal supply-demand %v", g.Year, g.Gap, g.Supply-g.Demand)
		}
		if g.Demand > 0 && (g.Gap < 0) != (g.GapPercentage < 0) && g.GapPercentage != 0 {
			t.Errorf("Year %d: gap %v and percentage %v disagree in sign", g.Year, g.Gap, g.GapPercentage)
		}
		if len(g.Recommendations) == 0 {
			t.Errorf("Year %d: expected recommendations", g.Year)
		}
	}

	// 8.5k physicians against an 8M population is a deep structural shortage.
	final := result.Gaps[len(result.Gaps)-1]
	if final.Severity != gap.Shortage && final.Severity != gap.CriticalShortage {
		t.Errorf("Expected a shortage in the final year, got %s", final.Severity)
	}
	if !final.ActionRequired {
		t.Error("Expected action required for the final year")
	}
	if !result.Summary.InterventionNeeded {
		t.Error("Expected intervention needed in the summary")
	}
	if result.Summary.FinalYearGap != final.Gap {
		t.Errorf("Summary final gap %v does not match final row %v", result.Summary.FinalYearGap, final.Gap)
	}
}

func TestBatchGapAnalysisCoversAllPairs(t *testing.T) {
	store := fixtureStore()
	store.PutRegion(dataset.Region{
		Code:            "MKK",
		NameEN:          "Makkah",
		PopulationTotal: 9_000_000,
		PopulationUrban: 8_000_000,
		PopulationRural: 1_000_000,
		AreaKM2:         153_128,
	})
	store.PutCategory(dataset.WorkerCategory{
		Code:              "NUR",
		NameEN:            "Nurses",
		BaseAttritionRate: 0.12,
		CriticalShortage:  true,
	})
	s := testService(store)

	batch, err := s.BatchGapAnalysis(context.Background(), 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(batch.Analyses) != 4 {
		t.Fatalf("Expected 2x2=4 analyses, got %d", len(batch.Analyses))
	}
	if batch.RunID == "" {
		t.Error("Expected a batch run id")
	}
	if batch.Years != 5 {
		t.Errorf("Expected years 5, got %d", batch.Years)
	}

	// Region-major order, both codes ascending.
	wantOrder := [][2]string{
		{"MKK", "NUR"}, {"MKK", "PHY"},
		{"RYD", "NUR"}, {"RYD", "PHY"},
	}
	for i, a := range batch.Analyses {
		if a.Metadata.RegionCode != wantOrder[i][0] || a.Metadata.CategoryCode != wantOrder[i][1] {
			t.Errorf("Analysis %d: expected %v, got %s/%s",
				i, wantOrder[i], a.Metadata.RegionCode, a.Metadata.CategoryCode)
		}
		if len(a.Gaps) != 5 {
			t.Errorf("Analysis %d: expected 5 gap rows, got %d", i, len(a.Gaps))
		}
	}
}

func TestBatchGapAnalysisEmptyStore(t *testing.T) {
	s := testService(dataset.NewStore())

	if _, err := s.BatchGapAnalysis(context.Background(), 5); err == nil {
		t.Error("Expected an error for an empty dataset")
	}
}

func TestBatchGapAnalysisCancelled(t *testing.T) {
	s := testService(fixtureStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.BatchGapAnalysis(ctx, 5); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
