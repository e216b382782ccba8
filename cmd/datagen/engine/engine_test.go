package engine

import (
	"testing"

	"healthforce/internal/dataset"
)

func TestGenerateBalancedCounts(t *testing.T) {
	file, err := Generate(GeneratorConfig{Regions: 13, Scenario: "balanced", Seed: 1, BaseYear: 2024})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(file.Regions) != 13 {
		t.Errorf("Expected 13 regions, got %d", len(file.Regions))
	}
	if len(file.Categories) != 8 {
		t.Errorf("Expected 8 categories, got %d", len(file.Categories))
	}
	if want := 13 * 8 * historyYears; len(file.Stocks) != want {
		t.Errorf("Expected %d stock records, got %d", want, len(file.Stocks))
	}
	if len(file.Populations) != 13 {
		t.Errorf("Expected 13 population snapshots, got %d", len(file.Populations))
	}

	for _, r := range file.Regions {
		if err := r.Validate(); err != nil {
			t.Errorf("Invalid region: %v", err)
		}
	}
	for _, s := range file.Stocks {
		if err := s.Validate(); err != nil {
			t.Errorf("Invalid stock: %v", err)
		}
	}
	for _, p := range file.Populations {
		if err := p.Validate(); err != nil {
			t.Errorf("Invalid population snapshot: %v", err)
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	cfg := GeneratorConfig{Regions: 5, Scenario: "balanced", Seed: 99, BaseYear: 2024}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Stocks) != len(b.Stocks) {
		t.Fatalf("Stock counts differ: %d vs %d", len(a.Stocks), len(b.Stocks))
	}
	for i := range a.Stocks {
		if a.Stocks[i] != b.Stocks[i] {
			t.Fatalf("Stock %d differs between identically seeded runs: %+v vs %+v",
				i, a.Stocks[i], b.Stocks[i])
		}
	}
	for i := range a.Populations {
		if a.Populations[i] != b.Populations[i] {
			t.Fatalf("Snapshot %d differs between identically seeded runs", i)
		}
	}
}

func TestGenerateScenarioOrdering(t *testing.T) {
	totals := map[string]float64{}
	for _, scenario := range []string{"shortage", "balanced", "surplus"} {
		file, err := Generate(GeneratorConfig{Regions: 13, Scenario: scenario, Seed: 7, BaseYear: 2024})
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range file.Stocks {
			totals[scenario] += s.CurrentCount
		}
	}

	if !(totals["shortage"] < totals["balanced"] && totals["balanced"] < totals["surplus"]) {
		t.Errorf("Expected shortage < balanced < surplus staffing, got %v", totals)
	}
}

func TestGenerateUnknownScenario(t *testing.T) {
	if _, err := Generate(GeneratorConfig{Regions: 3, Scenario: "apocalypse", Seed: 1, BaseYear: 2024}); err == nil {
		t.Error("Expected an error for an unknown scenario")
	}
}

func TestGenerateRegionBounds(t *testing.T) {
	if _, err := Generate(GeneratorConfig{Regions: 0, Scenario: "balanced", Seed: 1, BaseYear: 2024}); err == nil {
		t.Error("Expected an error for zero regions")
	}
	if _, err := Generate(GeneratorConfig{Regions: 99, Scenario: "balanced", Seed: 1, BaseYear: 2024}); err == nil {
		t.Error("Expected an error for more regions than profiles")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	file, err := Generate(GeneratorConfig{Regions: 4, Scenario: "balanced", Seed: 3, BaseYear: 2024})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := Save(dir, file); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store := dataset.NewStore()
	if err := store.Load(dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	regions, categories, stocks, populations := store.Counts()
	if regions != 4 || categories != 8 || populations != 4 {
		t.Errorf("Unexpected counts after round trip: %d/%d/%d", regions, categories, populations)
	}
	if want := 4 * 8 * historyYears; stocks != want {
		t.Errorf("Expected %d stocks, got %d", want, stocks)
	}
}
