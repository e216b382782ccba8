// Package simulation puts Monte Carlo confidence bounds around workforce
// projections. Each trial samples the rate parameters around their point
// estimates, re-runs a simplified projection and records the final value;
// the interval is cut from the sorted outcomes at the configured
// percentiles.
package simulation

import (
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"healthforce/internal/rates"
)

const (
	DefaultIterations = 1000
	DefaultConfidence = 95.0
)

// Relative standard deviations for sampled supply parameters.
const (
	sigmaAttrition   = 0.25
	sigmaGraduation  = 0.35
	sigmaRecruitment = 0.45
	sigmaVision      = 0.10
)

// Engine runs Monte Carlo trials across a worker pool. Trial seeds derive
// deterministically from the injected source, so a fixed seed reproduces
// identical bounds at any worker count.
type Engine struct {
	iterations int
	confidence float64
	workers    int
	baseSeed   int64
}

// Interval is a two-sided confidence bound.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// NewEngine builds an engine drawing its base seed from rng. Iterations and
// confidence fall back to the defaults when out of range.
func NewEngine(rng *rand.Rand, iterations int, confidence float64) *Engine {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if confidence <= 0 || confidence >= 100 {
		confidence = DefaultConfidence
	}
	return &Engine{
		iterations: iterations,
		confidence: confidence,
		workers:    runtime.NumCPU(),
		baseSeed:   rng.Int63(),
	}
}

// SupplyParams seed one supply-bound simulation: the stock entering the
// projected year and the point-estimate rates that apply to it.
type SupplyParams struct {
	EnteringStock   float64
	Attrition       float64
	Graduation      float64
	Recruitment     float64
	VisionFactor    float64
	TechnologyDelta float64
	Years           int
}

// SupplyInterval estimates the confidence bound for a projected supply year.
func (e *Engine) SupplyInterval(p SupplyParams) (Interval, error) {
	outcomes, err := e.collect(func(rng *rand.Rand) float64 {
		return supplyTrial(rng, p)
	})
	if err != nil {
		return Interval{}, err
	}
	return e.bounds(outcomes), nil
}

// DemandParams seed one demand-bound simulation for a single projected year.
type DemandParams struct {
	Population    float64
	DemandFactor  float64
	ServiceVolume float64
}

// DemandInterval estimates the confidence bound for a projected demand year.
func (e *Engine) DemandInterval(p DemandParams) (Interval, error) {
	outcomes, err := e.collect(func(rng *rand.Rand) float64 {
		return demandTrial(rng, p)
	})
	if err != nil {
		return Interval{}, err
	}
	return e.bounds(outcomes), nil
}

// collect fans the trials out over the worker pool. Every trial owns a
// generator seeded from the engine seed and its trial index, which keeps the
// outcome vector independent of how trials land on workers.
func (e *Engine) collect(trial func(*rand.Rand) float64) ([]float64, error) {
	outcomes := make([]float64, e.iterations)

	chunk := (e.iterations + e.workers - 1) / e.workers
	var g errgroup.Group
	for start := 0; start < e.iterations; start += chunk {
		end := start + chunk
		if end > e.iterations {
			end = e.iterations
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				rng := rand.New(rand.NewSource(int64(uint64(e.baseSeed) ^ uint64(int64(i)+1)*0x9E3779B97F4A7C15)))
				outcomes[i] = trial(rng)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Float64s(outcomes)
	return outcomes, nil
}

func (e *Engine) bounds(sorted []float64) Interval {
	tail := (100 - e.confidence) / 2
	return Interval{
		Lower: percentile(sorted, tail),
		Upper: percentile(sorted, 100-tail),
	}
}

func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * pct / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// supplyTrial samples the rates, applies the realism bounds and advances a
// simplified stock recurrence with linear inflow scaling.
func supplyTrial(rng *rand.Rand, p SupplyParams) float64 {
	attrition := rng.NormFloat64()*p.Attrition*sigmaAttrition + p.Attrition
	graduation := rng.NormFloat64()*p.Graduation*sigmaGraduation + p.Graduation
	recruitment := rng.NormFloat64()*p.Recruitment*sigmaRecruitment + p.Recruitment
	vision := rng.NormFloat64()*p.VisionFactor*sigmaVision + p.VisionFactor

	economicShock := rng.NormFloat64()*0.05 + 1
	policyFactor := 0.9 + rng.Float64()*0.2

	attrition = clamp(attrition, rates.AttritionFloor, rates.AttritionCeiling)
	graduation = math.Max(0, graduation*economicShock)
	recruitment = math.Max(0, recruitment*policyFactor)
	vision = clamp(vision, 0.8, 1.5)

	stock := p.EnteringStock
	for year := 1; year <= p.Years; year++ {
		tech := rates.TechnologyImpact(p.TechnologyDelta, year)
		stock = (stock*(1-attrition) + graduation*float64(year) + recruitment*float64(year)) * tech * vision
	}
	return stock
}

// demandTrial samples the demand drivers around their point estimates and
// folds them through the baseline capacity divisor.
func demandTrial(rng *rand.Rand, p DemandParams) float64 {
	population := rng.NormFloat64()*p.Population*0.05 + p.Population
	demandFactor := rng.NormFloat64()*p.DemandFactor*0.12 + p.DemandFactor
	services := rng.NormFloat64()*p.ServiceVolume*0.15 + p.ServiceVolume

	healthTrend := rng.NormFloat64()*0.08 + 1
	servicePolicy := 0.9 + rng.Float64()*0.25
	techEfficiency := rng.NormFloat64()*0.06 + 1

	population = math.Max(p.Population*0.8, population)
	demandFactor = clamp(demandFactor, 0.5, 3.0)
	services = math.Max(0, services*healthTrend*servicePolicy)
	if p.Population > 0 {
		services *= population / p.Population
	}

	return services * demandFactor / (3000 * techEfficiency)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
