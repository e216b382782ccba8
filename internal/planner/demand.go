package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"healthforce/internal/dataset"
	"healthforce/internal/projection"
	"healthforce/internal/simulation"
)

// DemandProjection is the result of one demand run.
type DemandProjection struct {
	Metadata Metadata                 `json:"metadata"`
	Points   []projection.Point       `json:"points"`
	Notes    []dataset.AssumptionNote `json:"assumption_notes,omitempty"`
}

// CalculateDemandProjection projects the FTE requirement for a region and
// category over the horizon, with Monte Carlo confidence bounds per year.
func (s *Service) CalculateDemandProjection(ctx context.Context, regionCode, categoryCode string, years int) (*DemandProjection, error) {
	if err := validateHorizon(years); err != nil {
		return nil, err
	}
	start := time.Now()

	ec := s.resolveEntities(regionCode, categoryCode)
	points, notes, err := s.demandSeries(ctx, ec, regionCode, years)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveProjection("demand", time.Since(start))
	s.metrics.CountNotes(len(notes))

	return &DemandProjection{
		Metadata: s.metadata(ec, regionCode, categoryCode, years),
		Points:   points,
		Notes:    notes,
	}, nil
}

// demandSeries runs the deterministic demand model and bounds every year
// with the simulation engine.
func (s *Service) demandSeries(ctx context.Context, ec entities, regionCode string, years int) ([]projection.Point, []dataset.AssumptionNote, error) {
	notes := append([]dataset.AssumptionNote{}, ec.notes...)

	snapshot := s.resolveSnapshot(regionCode, &notes)

	points, demandNotes := projection.ProjectDemand(projection.DemandInputs{
		Region:   ec.region,
		Category: ec.category,
		Snapshot: snapshot,
		BaseYear: s.baseYear,
		Horizon:  years,
	})
	notes = append(notes, demandNotes...)

	for i := range points {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		pt := &points[i]
		if pt.Demand == nil {
			continue
		}
		interval, err := s.engine.DemandInterval(simulation.DemandParams{
			Population:    pt.Demand.ProjectedPopulation,
			DemandFactor:  pt.Demand.HealthDemandFactor,
			ServiceVolume: pt.Demand.ServiceVolume,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("demand simulation for %d: %w", pt.Year, err)
		}
		applyInterval(pt, interval)
	}

	return points, notes, nil
}

// resolveSnapshot fetches the region's population snapshot at or before the
// base year. A missing snapshot yields a zero demand series; the note marks
// why.
func (s *Service) resolveSnapshot(regionCode string, notes *[]dataset.AssumptionNote) *dataset.PopulationSnapshot {
	if snap, ok := s.store.PopulationSnapshot(regionCode, s.baseYear); ok {
		return &snap
	}

	log.Warn().Str("region", regionCode).Msg("No population snapshot, demand series will be zero")
	*notes = append(*notes, dataset.Note(dataset.NotePopulationDefault, "population_snapshot",
		"no population snapshot for %s, demand projected as zero", regionCode))
	return nil
}
