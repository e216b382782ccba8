package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"healthforce/internal/dataset"
	"healthforce/internal/projection"
	"healthforce/internal/rates"
	"healthforce/internal/simulation"
)

// SupplyProjection is the result of one supply run.
type SupplyProjection struct {
	Metadata Metadata                 `json:"metadata"`
	Points   []projection.Point       `json:"points"`
	Notes    []dataset.AssumptionNote `json:"assumption_notes,omitempty"`
}

// CalculateSupplyProjection projects the workforce stock for a region and
// category over the horizon, with Monte Carlo confidence bounds per year.
func (s *Service) CalculateSupplyProjection(ctx context.Context, regionCode, categoryCode string, years int) (*SupplyProjection, error) {
	if err := validateHorizon(years); err != nil {
		return nil, err
	}
	start := time.Now()

	ec := s.resolveEntities(regionCode, categoryCode)
	points, notes, err := s.supplySeries(ctx, ec, regionCode, categoryCode, years)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveProjection("supply", time.Since(start))
	s.metrics.CountNotes(len(notes))

	return &SupplyProjection{
		Metadata: s.metadata(ec, regionCode, categoryCode, years),
		Points:   points,
		Notes:    notes,
	}, nil
}

// supplySeries runs the deterministic supply model and bounds every year
// with the simulation engine. The engine receives each year's entering
// stock and that year's drifted rates, mirroring how the deterministic
// model advances.
func (s *Service) supplySeries(ctx context.Context, ec entities, regionCode, categoryCode string, years int) ([]projection.Point, []dataset.AssumptionNote, error) {
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
		Horizon:      years,
		DataQuality:  quality,
	})

	for i := range points {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		pt := &points[i]
		interval, err := s.engine.SupplyInterval(simulation.SupplyParams{
			EnteringStock:   pt.Supply.EnteringStock,
			Attrition:       pt.Supply.DynamicAttrition,
			Graduation:      pt.Supply.GraduationRate,
			Recruitment:     pt.Supply.RecruitmentRate,
			VisionFactor:    pt.Supply.VisionFactor,
			TechnologyDelta: set.TechnologyDelta,
			Years:           pt.Year - s.baseYear,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("supply simulation for %d: %w", pt.Year, err)
		}
		applyInterval(pt, interval)
	}

	return points, notes, nil
}

// resolveStock fetches the newest stock record at or before the base year.
// A missing record projects from zero rather than failing, reported via the
// returned note.
func (s *Service) resolveStock(regionCode, categoryCode string) (initial, quality float64, note *dataset.AssumptionNote) {
	if stock, ok := s.store.Stock(regionCode, categoryCode, s.baseYear); ok {
		quality = defaultDataQuality
		if stock.DataQualityScore > 0 {
			quality = stock.DataQualityScore
		}
		return stock.CurrentCount, quality, nil
	}

	log.Warn().
		Str("region", regionCode).
		Str("category", categoryCode).
		Msg("No stock record, projecting from zero")
	n := dataset.Note(dataset.NoteStockDefault, "initial_stock",
		"no stock record for %s/%s, projecting from zero", regionCode, categoryCode)
	return 0, defaultDataQuality, &n
}
