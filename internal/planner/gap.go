package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"healthforce/internal/dataset"
	"healthforce/internal/gap"
	"healthforce/internal/projection"
)

// GapAnalysis pairs the two projections with the year-by-year gap
// assessment.
type GapAnalysis struct {
	Metadata Metadata                 `json:"metadata"`
	Supply   []projection.Point       `json:"supply_projections"`
	Demand   []projection.Point       `json:"demand_projections"`
	Gaps     []gap.Result             `json:"gap_analysis"`
	Summary  gap.Summary              `json:"summary"`
	Notes    []dataset.AssumptionNote `json:"assumption_notes,omitempty"`
}

// GenerateGapAnalysis runs supply and demand for a region and category and
// classifies the gap per projected year.
func (s *Service) GenerateGapAnalysis(ctx context.Context, regionCode, categoryCode string, years int) (*GapAnalysis, error) {
	if err := validateHorizon(years); err != nil {
		return nil, err
	}
	start := time.Now()

	ec := s.resolveEntities(regionCode, categoryCode)

	supply, supplyNotes, err := s.supplySeries(ctx, ec, regionCode, categoryCode, years)
	if err != nil {
		return nil, err
	}
	demand, demandNotes, err := s.demandSeries(ctx, ec, regionCode, years)
	if err != nil {
		return nil, err
	}

	results, gapNotes := gap.Analyze(supply, demand, gap.Context{
		Region:   ec.region,
		Category: ec.category,
		BaseYear: s.baseYear,
	})

	notes := append(append(supplyNotes, demandNotes...), gapNotes...)

	for _, r := range results {
		s.metrics.CountSeverity(string(r.Severity))
	}
	s.metrics.ObserveAnalysis(time.Since(start))
	s.metrics.CountNotes(len(gapNotes))

	return &GapAnalysis{
		Metadata: s.metadata(ec, regionCode, categoryCode, years),
		Supply:   supply,
		Demand:   demand,
		Gaps:     results,
		Summary:  gap.Summarize(results),
		Notes:    notes,
	}, nil
}

// BatchResult is a full-dataset gap sweep.
type BatchResult struct {
	RunID       string         `json:"run_id"`
	Years       int            `json:"projection_years"`
	GeneratedAt time.Time      `json:"generated_at"`
	Analyses    []*GapAnalysis `json:"analyses"`
}

// BatchGapAnalysis runs a gap analysis for every region and category pair
// in the dataset, bounded-parallel. Combinations with missing records
// degrade to defaults like single runs do, so one bad record cannot sink
// the sweep.
func (s *Service) BatchGapAnalysis(ctx context.Context, years int) (*BatchResult, error) {
	if err := validateHorizon(years); err != nil {
		return nil, err
	}

	regions := s.store.Regions()
	categories := s.store.Categories()
	if len(regions) == 0 || len(categories) == 0 {
		return nil, fmt.Errorf("dataset has no regions or categories to analyze")
	}

	analyses := make([]*GapAnalysis, len(regions)*len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i, region := range regions {
		for j, category := range categories {
			idx := i*len(categories) + j
			regionCode, categoryCode := region.Code, category.Code
			g.Go(func() error {
				analysis, err := s.GenerateGapAnalysis(gctx, regionCode, categoryCode, years)
				if err != nil {
					return fmt.Errorf("%s/%s: %w", regionCode, categoryCode, err)
				}
				analyses[idx] = analysis
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Regions() and Categories() come back sorted, so the index layout
	// already orders analyses by region then category.
	return &BatchResult{
		RunID:       uuid.NewString(),
		Years:       years,
		GeneratedAt: time.Now().UTC(),
		Analyses:    analyses,
	}, nil
}
