package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthforce/internal/dataset"
	"healthforce/internal/planner"
	"healthforce/internal/projection"
)

const defaultProjectionYears = 10

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Healthcare Workforce Planning API",
		"version":     s.version,
		"description": "Supply and demand projections for the Saudi healthcare workforce",
		"endpoints": map[string]string{
			"regions":      "/api/v1/regions",
			"categories":   "/api/v1/categories",
			"population":   "/api/v1/regions/{code}/population",
			"projections":  "/api/v1/workforce/projections/{region}/{category}",
			"gap_analysis": "/api/v1/workforce/gap-analysis/{region}/{category}",
			"sensitivity":  "/api/v1/workforce/sensitivity/{region}/{category}",
			"scenarios":    "/api/v1/scenarios/analysis",
		},
		"base_year": s.service.BaseYear(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	regions, categories, stocks, populations := s.counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"regions":     regions,
		"categories":  categories,
		"stocks":      stocks,
		"populations": populations,
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	regions := s.store.Regions()
	writeJSON(w, http.StatusOK, regionsResponse{Regions: regions, Count: len(regions)})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.Categories()
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories, Count: len(categories)})
}

func (s *Server) handlePopulation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	region, ok := s.store.Region(code)
	if !ok {
		writeError(w, notFound(fmt.Sprintf("region %s not found", code)))
		return
	}

	years, err := queryInt(r, "years", defaultProjectionYears)
	if err != nil {
		writeError(w, err)
		return
	}
	if years <= 0 || years > planner.MaxProjectionYears {
		writeError(w, planner.ErrInvalidHorizon)
		return
	}

	resp := populationResponse{
		Region:        region,
		Density:       region.Density(),
		UrbanFraction: region.UrbanFraction(),
		Projections:   []populationYear{},
	}

	snap, ok := s.store.PopulationSnapshot(code, s.service.BaseYear())
	if !ok {
		resp.Notes = append(resp.Notes, dataset.Note(dataset.NotePopulationDefault, "population",
			"no demographic snapshot recorded for %s", code))
		writeJSON(w, http.StatusOK, resp)
		return
	}

	growth, notes := projection.GrowthRate(snap)
	resp.Snapshot = &snap
	resp.ElderlyShare = snap.ElderlyShare()
	resp.ChronicBurden = snap.ChronicBurden()
	resp.GrowthRate = growth
	resp.Notes = notes
	for y := 1; y <= years; y++ {
		resp.Projections = append(resp.Projections, populationYear{
			Year:       s.service.BaseYear() + y,
			Population: projection.ProjectPopulation(snap, growth, y),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjections(w http.ResponseWriter, r *http.Request) {
	region, category, ok := s.routeEntities(w, r)
	if !ok {
		return
	}
	years, err := s.queryHorizon(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkConfidence(r); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	analysis, err := s.service.GenerateGapAnalysis(ctx, region, category, years)
	if err != nil {
		writeError(w, err)
		return
	}
	trends, err := s.service.AnalyzeHistoricalTrends(ctx, region, category)
	if err != nil {
		writeError(w, err)
		return
	}
	risks, err := s.service.AssessProjectionRisks(ctx, region, category, years)
	if err != nil {
		writeError(w, err)
		return
	}

	notes := append(append([]dataset.AssumptionNote{}, analysis.Notes...), trends.Notes...)

	writeJSON(w, http.StatusOK, projectionsResponse{
		Metadata: analysis.Metadata,
		Supply:   supplyRows(analysis.Supply),
		Demand:   demandRows(analysis.Demand),
		Gaps:     analysis.Gaps,
		Summary:  analysis.Summary,
		Trends: trendBlock{
			Series:    trends.Series,
			Trend:     trends.Trend,
			Stability: trends.Stability,
		},
		Risks: risks.Assessment,
		Notes: notes,
	})
}

func (s *Server) handleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	region, category, ok := s.routeEntities(w, r)
	if !ok {
		return
	}
	years, err := s.queryHorizon(r)
	if err != nil {
		writeError(w, err)
		return
	}

	analysis, err := s.service.GenerateGapAnalysis(r.Context(), region, category, years)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	region, category, ok := s.routeEntities(w, r)
	if !ok {
		return
	}

	var req sensitivityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := s.service.SensitivityAnalysis(r.Context(), region, category, req.Parameters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Region == "" || req.Category == "" {
		writeError(w, badRequest("region and category are required"))
		return
	}
	if _, ok := s.store.Region(req.Region); !ok {
		writeError(w, notFound(fmt.Sprintf("region %s not found", req.Region)))
		return
	}
	if _, ok := s.store.Category(req.Category); !ok {
		writeError(w, notFound(fmt.Sprintf("category %s not found", req.Category)))
		return
	}
	years := req.Years
	if years == 0 {
		years = defaultProjectionYears
	}

	report, err := s.service.AnalyzeScenarios(r.Context(), req.Region, req.Category, years, req.Scenarios)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// routeEntities resolves the region and category path keys, answering 404
// when either is unknown. Degradation to defaults is for dataset gaps, not
// for mistyped URLs.
func (s *Server) routeEntities(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	region := chi.URLParam(r, "region")
	category := chi.URLParam(r, "category")

	if _, ok := s.store.Region(region); !ok {
		writeError(w, notFound(fmt.Sprintf("region %s not found", region)))
		return "", "", false
	}
	if _, ok := s.store.Category(category); !ok {
		writeError(w, notFound(fmt.Sprintf("category %s not found", category)))
		return "", "", false
	}
	return region, category, true
}

func (s *Server) queryHorizon(r *http.Request) (int, error) {
	return queryInt(r, "years", defaultProjectionYears)
}

// checkConfidence rejects confidence levels the engine was not built for
// instead of silently answering with different bounds than requested.
func (s *Server) checkConfidence(r *http.Request) error {
	configured := s.service.Confidence()
	requested, err := queryFloat(r, "confidence", configured)
	if err != nil {
		return err
	}
	if requested != configured {
		return badRequest(fmt.Sprintf("confidence level %g is not configured, server computes %g%% intervals",
			requested, configured))
	}
	return nil
}

// decodeBody parses an optional JSON request body. An empty body leaves the
// destination at its zero value.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return badRequest("invalid JSON body: " + err.Error())
}

func (s *Server) counts() (regions, categories, stocks, populations int) {
	if c, ok := s.store.(interface {
		Counts() (int, int, int, int)
	}); ok {
		return c.Counts()
	}
	regions = len(s.store.Regions())
	categories = len(s.store.Categories())
	return regions, categories, 0, 0
}
