// Package planner orchestrates the projection pipeline: it resolves dataset
// records, runs the deterministic supply and demand models, bounds each
// projected year with the Monte Carlo engine and layers gap, trend, risk and
// scenario analytics on top.
//
// Missing dataset records never abort an analysis. Each lookup degrades to
// documented defaults, the substitution is logged and reported as an
// assumption note, and the pipeline keeps going. Only nonsensical requests
// (a horizon outside 1-50 years, an unknown scenario key) are errors.
package planner

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"healthforce/internal/analytics"
	"healthforce/internal/dataset"
	"healthforce/internal/metrics"
	"healthforce/internal/projection"
	"healthforce/internal/simulation"
)

// MaxProjectionYears bounds any requested horizon.
const MaxProjectionYears = 50

// defaultDataQuality substitutes for stock records without a recorded score.
const defaultDataQuality = 0.8

var (
	// ErrInvalidHorizon rejects horizons outside [1, MaxProjectionYears].
	ErrInvalidHorizon = errors.New("projection horizon must be between 1 and 50 years")

	// ErrUnknownScenario rejects scenario keys not in the configured set.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Options configure a Service. Zero values fall back to defaults.
type Options struct {
	// BaseYear anchors projections; year 1 projects BaseYear+1. Defaults
	// to the current calendar year.
	BaseYear int

	// Iterations and Confidence configure the Monte Carlo engine.
	Iterations int
	Confidence float64

	// MaxParallel bounds concurrent combinations in batch analysis.
	MaxParallel int

	// Seed fixes all randomness for reproducible runs; 0 seeds from the
	// clock.
	Seed int64

	// Scenarios overrides the built-in scenario set.
	Scenarios []analytics.Scenario

	Metrics *metrics.Metrics
}

// Service is the projection and analysis engine over one dataset.
type Service struct {
	store       dataset.Reader
	engine      *simulation.Engine
	baseYear    int
	iterations  int
	confidence  float64
	maxParallel int
	scenarios   []analytics.Scenario
	metrics     *metrics.Metrics

	histMu  sync.Mutex
	histRNG *rand.Rand
}

// New builds a Service over the given dataset reader.
func New(store dataset.Reader, opts Options) *Service {
	if opts.BaseYear == 0 {
		opts.BaseYear = time.Now().Year()
	}
	if opts.Iterations <= 0 {
		opts.Iterations = simulation.DefaultIterations
	}
	if opts.Confidence <= 0 || opts.Confidence >= 100 {
		opts.Confidence = simulation.DefaultConfidence
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = runtime.NumCPU()
	}
	if len(opts.Scenarios) == 0 {
		opts.Scenarios = analytics.DefaultScenarios()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Service{
		store:       store,
		engine:      simulation.NewEngine(rng, opts.Iterations, opts.Confidence),
		baseYear:    opts.BaseYear,
		iterations:  opts.Iterations,
		confidence:  opts.Confidence,
		maxParallel: opts.MaxParallel,
		scenarios:   opts.Scenarios,
		metrics:     opts.Metrics,
		histRNG:     rand.New(rand.NewSource(seed ^ 0x5DEECE66D)),
	}
}

// BaseYear returns the year projections are anchored to.
func (s *Service) BaseYear() int { return s.baseYear }

// Confidence returns the configured Monte Carlo confidence level.
func (s *Service) Confidence() float64 { return s.confidence }

// Scenarios returns the configured scenario set.
func (s *Service) Scenarios() []analytics.Scenario { return s.scenarios }

func validateHorizon(years int) error {
	if years <= 0 || years > MaxProjectionYears {
		return fmt.Errorf("%w: got %d", ErrInvalidHorizon, years)
	}
	return nil
}

// Metadata identifies one analysis run.
type Metadata struct {
	RunID        string    `json:"run_id"`
	RegionCode   string    `json:"region_code"`
	RegionName   string    `json:"region_name"`
	CategoryCode string    `json:"category_code"`
	CategoryName string    `json:"category_name"`
	BaseYear     int       `json:"base_year"`
	Years        int       `json:"projection_years"`
	Iterations   int       `json:"monte_carlo_iterations"`
	Confidence   float64   `json:"confidence_level"`
	Methodology  string    `json:"methodology"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// entities carries the resolved region and category for one run, with the
// notes produced by failed lookups.
type entities struct {
	region   *dataset.Region
	category *dataset.WorkerCategory
	notes    []dataset.AssumptionNote
}

func (e entities) regionName() string {
	if e.region != nil && e.region.NameEN != "" {
		return e.region.NameEN
	}
	return "Unknown"
}

func (e entities) categoryName() string {
	if e.category != nil && e.category.NameEN != "" {
		return e.category.NameEN
	}
	return "Unknown"
}

func (s *Service) resolveEntities(regionCode, categoryCode string) entities {
	var ec entities
	if r, ok := s.store.Region(regionCode); ok {
		ec.region = &r
	} else {
		log.Warn().Str("region", regionCode).Msg("Region not found, continuing with defaults")
		ec.notes = append(ec.notes, dataset.Note(dataset.NoteRegionDefault, "region",
			"region %s not found, neutral regional factors applied", regionCode))
	}
	if c, ok := s.store.Category(categoryCode); ok {
		ec.category = &c
	} else {
		log.Warn().Str("category", categoryCode).Msg("Category not found, continuing with defaults")
		ec.notes = append(ec.notes, dataset.Note(dataset.NoteCategoryDefault, "category",
			"category %s not found, flat pipeline defaults applied", categoryCode))
	}
	return ec
}

func (s *Service) metadata(ec entities, regionCode, categoryCode string, years int) Metadata {
	return Metadata{
		RunID:        uuid.NewString(),
		RegionCode:   regionCode,
		RegionName:   ec.regionName(),
		CategoryCode: categoryCode,
		CategoryName: ec.categoryName(),
		BaseYear:     s.baseYear,
		Years:        years,
		Iterations:   s.iterations,
		Confidence:   s.confidence,
		Methodology:  "Monte Carlo simulation with Saudi Vision 2030 factors",
		GeneratedAt:  time.Now().UTC(),
	}
}

// applyInterval widens the simulated bounds until they contain the point
// value, then rounds value and bounds to whole headcounts. Widening keeps
// the Monte Carlo spread honest instead of clamping the point into it.
func applyInterval(pt *projection.Point, iv simulation.Interval) {
	lower, upper := iv.Lower, iv.Upper
	if pt.Value < lower {
		lower = pt.Value
	}
	if pt.Value > upper {
		upper = pt.Value
	}
	pt.Value = math.Round(pt.Value)
	pt.ConfidenceLower = math.Round(lower)
	pt.ConfidenceUpper = math.Round(upper)
}
