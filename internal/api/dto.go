package api

import (
	"healthforce/internal/analytics"
	"healthforce/internal/dataset"
	"healthforce/internal/gap"
	"healthforce/internal/planner"
	"healthforce/internal/projection"
)

// supplyRow flattens one supply point for the projections envelope.
type supplyRow struct {
	Year            int                           `json:"year"`
	ProjectedSupply float64                       `json:"projected_supply"`
	ConfidenceLower float64                       `json:"confidence_lower"`
	ConfidenceUpper float64                       `json:"confidence_upper"`
	GrowthRate      float64                       `json:"growth_rate"`
	Assumptions     *projection.SupplyAssumptions `json:"assumptions,omitempty"`
}

// demandRow flattens one demand point for the projections envelope.
type demandRow struct {
	Year            int                           `json:"year"`
	ProjectedDemand float64                       `json:"projected_demand"`
	ConfidenceLower float64                       `json:"confidence_lower"`
	ConfidenceUpper float64                       `json:"confidence_upper"`
	Assumptions     *projection.DemandAssumptions `json:"assumptions,omitempty"`
}

func supplyRows(points []projection.Point) []supplyRow {
	rows := make([]supplyRow, 0, len(points))
	for _, p := range points {
		row := supplyRow{
			Year:            p.Year,
			ProjectedSupply: p.Value,
			ConfidenceLower: p.ConfidenceLower,
			ConfidenceUpper: p.ConfidenceUpper,
			Assumptions:     p.Supply,
		}
		if p.Supply != nil {
			row.GrowthRate = p.Supply.AnnualGrowthRate
		}
		rows = append(rows, row)
	}
	return rows
}

func demandRows(points []projection.Point) []demandRow {
	rows := make([]demandRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, demandRow{
			Year:            p.Year,
			ProjectedDemand: p.Value,
			ConfidenceLower: p.ConfidenceLower,
			ConfidenceUpper: p.ConfidenceUpper,
			Assumptions:     p.Demand,
		})
	}
	return rows
}

// trendBlock is the trend slice of the projections envelope, without the
// run metadata the envelope already carries.
type trendBlock struct {
	Series    []float64                 `json:"historical_series"`
	Trend     analytics.TrendResult     `json:"trend"`
	Stability analytics.StabilityResult `json:"stability"`
}

// projectionsResponse mirrors the combined projection report: supply,
// demand, gaps and the advanced analytics in one payload.
type projectionsResponse struct {
	Metadata planner.Metadata         `json:"metadata"`
	Supply   []supplyRow              `json:"supply_projections"`
	Demand   []demandRow              `json:"demand_projections"`
	Gaps     []gap.Result             `json:"gap_analysis"`
	Summary  gap.Summary              `json:"summary"`
	Trends   trendBlock               `json:"trend_analysis"`
	Risks    analytics.RiskAssessment `json:"risk_assessment"`
	Notes    []dataset.AssumptionNote `json:"assumption_notes,omitempty"`
}

// regionsResponse lists the dataset regions.
type regionsResponse struct {
	Regions []dataset.Region `json:"regions"`
	Count   int              `json:"count"`
}

// categoriesResponse lists the workforce categories.
type categoriesResponse struct {
	Categories []dataset.WorkerCategory `json:"categories"`
	Count      int                      `json:"count"`
}

// populationYear is one projected population value.
type populationYear struct {
	Year       int     `json:"year"`
	Population float64 `json:"projected_population"`
}

// populationResponse is the demographic profile for one region.
type populationResponse struct {
	Region        dataset.Region              `json:"region"`
	Density       float64                     `json:"density"`
	UrbanFraction float64                     `json:"urban_fraction"`
	Snapshot      *dataset.PopulationSnapshot `json:"snapshot"`
	ElderlyShare  float64                     `json:"elderly_share"`
	ChronicBurden float64                     `json:"chronic_disease_burden"`
	GrowthRate    float64                     `json:"annual_growth_rate"`
	Projections   []populationYear            `json:"population_projections"`
	Notes         []dataset.AssumptionNote    `json:"assumption_notes,omitempty"`
}

// sensitivityRequest is the POST body for sensitivity runs. An empty
// parameter list runs the default grid.
type sensitivityRequest struct {
	Parameters []string `json:"parameters"`
}

// scenarioRequest is the POST body for scenario analysis.
type scenarioRequest struct {
	Region    string   `json:"region"`
	Category  string   `json:"category"`
	Years     int      `json:"years"`
	Scenarios []string `json:"scenarios"`
}
