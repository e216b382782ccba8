package projection

import (
	"math"
	"testing"

	"healthforce/internal/dataset"
	"healthforce/internal/rates"
)

func TestProjectSupplyFirstYear(t *testing.T) {
	points := ProjectSupply(SupplyInputs{
		InitialStock: 1000,
		Rates: rates.Set{
			Attrition:       0.10,
			Graduation:      100,
			Recruitment:     50,
			TechnologyDelta: 0.005,
		},
		BaseYear: 2025,
		Horizon:  3,
	})

	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	if points[0].Year != 2026 {
		t.Errorf("Expected first projected year 2026, got %d", points[0].Year)
	}

	// 1000*(1-0.101) + 107.0685 graduates + 48.0053 recruits + 20.2 internal,
	// then *1.005 technology *1.02 vision.
	expected := 1101.23807238
	if math.Abs(points[0].Value-expected) > 0.001 {
		t.Errorf("Expected year-1 value %v, got %v", expected, points[0].Value)
	}

	a := points[0].Supply
	if a == nil {
		t.Fatal("Expected supply assumptions on every point")
	}
	if math.Abs(a.DynamicAttrition-0.101) > 0.0001 {
		t.Errorf("Expected dynamic attrition 0.101, got %v", a.DynamicAttrition)
	}
	if math.Abs(a.AnnualGrowthRate-0.10124) > 0.001 {
		t.Errorf("Expected growth rate ~0.10124, got %v", a.AnnualGrowthRate)
	}

	// The chain hands each year's value to the next as entering stock.
	if points[1].Supply.EnteringStock != points[0].Value {
		t.Errorf("Expected entering stock %v, got %v", points[0].Value, points[1].Supply.EnteringStock)
	}
}

func TestProjectSupplyZeroStockStillGrows(t *testing.T) {
	points := ProjectSupply(SupplyInputs{
		InitialStock: 0,
		Rates:        rates.Set{Attrition: 0.08, Graduation: 10, Recruitment: 5},
		BaseYear:     2025,
		Horizon:      10,
	})

	// (0 + 10.70685 + 4.80053 + 0) * 1.0 * 1.02.
	expected := 15.8175276
	if math.Abs(points[0].Value-expected) > 0.001 {
		t.Errorf("Expected year-1 value %v, got %v", expected, points[0].Value)
	}
	for _, p := range points {
		if p.Value < 0 {
			t.Fatalf("Negative projected stock %v in year %d", p.Value, p.Year)
		}
	}
}

func TestProjectSupplyNonNegativeUnderPressure(t *testing.T) {
	points := ProjectSupply(SupplyInputs{
		InitialStock: 50,
		Rates: rates.Set{
			Attrition:       0.40,
			TechnologyDelta: -0.015,
		},
		BaseYear: 2025,
		Horizon:  15,
	})
	for _, p := range points {
		if p.Value < 0 {
			t.Fatalf("Negative projected stock %v in year %d", p.Value, p.Year)
		}
	}
}

func TestProjectSupplyPhysicianScenario(t *testing.T) {
	// 8,500 physicians in a 10M region with a 9% attrition baseline. The
	// first projected year must stay within ±15% of the initial stock.
	region := &dataset.Region{
		Code:            "RYD",
		PopulationTotal: 10_000_000,
		PopulationUrban: 8_000_000,
		PopulationRural: 2_000_000,
		GDPPerCapita:    60_000,
	}
	category := &dataset.WorkerCategory{
		Code:              "PHY",
		BaseAttritionRate: 0.09,
		AvgSalary:         150_000,
	}

	set, notes := rates.Estimate(region, category)
	if len(notes) != 0 {
		t.Fatalf("Expected no assumption notes, got %v", notes)
	}

	points := ProjectSupply(SupplyInputs{
		InitialStock: 8500,
		Rates:        set,
		BaseYear:     2025,
		Horizon:      10,
	})

	firstChange := math.Abs(points[0].Value-8500) / 8500
	if firstChange > 0.15 {
		t.Errorf("First-year change %.1f%% exceeds 15%% sanity bound (value %v)", firstChange*100, points[0].Value)
	}
	for _, p := range points {
		if p.Value <= 0 {
			t.Fatalf("Implausible stock %v in year %d", p.Value, p.Year)
		}
	}
}
