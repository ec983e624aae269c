package engine

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nadirahdurr/route-planner/candidates"
	"github.com/nadirahdurr/route-planner/export"
	"github.com/nadirahdurr/route-planner/loader"
	"github.com/nadirahdurr/route-planner/pace"
	"github.com/nadirahdurr/route-planner/risk"
	"github.com/nadirahdurr/route-planner/selector"
	"github.com/nadirahdurr/route-planner/terrain"
)

// Engine holds one loaded terrain bundle and the route state produced
// across a sequence of Generate/EvaluateRisk/EstimatePace/Select/Export
// calls.
type Engine struct {
	Bundle         *loader.Bundle
	State          *terrain.EngineState
	Logger         *slog.Logger
	ProfileWeights map[string]map[string]float64
	validate       *validator.Validate
}

// New wraps a loaded bundle in a fresh, empty engine state. A nil logger
// falls back to slog.Default().
func New(bundle *loader.Bundle, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Bundle:   bundle,
		State:    terrain.NewEngineState(),
		Logger:   logger,
		validate: validator.New(),
	}
}

// Generate produces up to req.MaxCandidates (default 3) route
// candidates between req.Start and req.End, replacing any previously
// generated routes, risks, paces, and selection.
func (e *Engine) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "engine: invalid generate request")
	}

	maxCandidates := req.MaxCandidates
	if maxCandidates == 0 {
		maxCandidates = 3
	}
	start := terrain.Coordinate{Lat: req.Start.Lat, Lon: req.Start.Lon}
	goal := terrain.Coordinate{Lat: req.End.Lat, Lon: req.End.Lon}

	routes, err := candidates.Generate(ctx, start, goal, e.Bundle, maxCandidates, e.State.NextRouteID, e.ProfileWeights)
	if err != nil {
		e.Logger.Warn("generate failed", "error", err)
		return nil, errors.Wrap(err, "engine: generating candidates")
	}
	if len(routes) == 0 {
		e.Logger.Warn("generate produced no viable route")
		return nil, ErrNoViableRoute
	}
	e.Logger.Info("routes generated", "count", len(routes))

	requestID := uuid.NewString()
	e.State.Reset()
	for _, route := range routes {
		if route.Provenance == nil {
			route.Provenance = map[string]any{}
		}
		route.Provenance["sequence_id"] = route.ID
		e.State.AddRoute(route)
	}

	provenance := e.provenance()
	provenance["request_id"] = requestID

	return &GenerateResult{
		RequestID:  requestID,
		Handling:   Handling,
		Schema:     Schema,
		CRS:        CRS,
		Routes:     routes,
		Provenance: provenance,
	}, nil
}

func (e *Engine) provenance() map[string]any {
	now := time.Now().UTC()
	datasets := []struct {
		name string
		meta terrain.GridMetadata
	}{
		{"dem", e.Bundle.DEM.Metadata},
		{"landcover", e.Bundle.Landcover.Metadata},
	}
	ttlStatus := make([]map[string]any, 0, len(datasets))
	for _, d := range datasets {
		ttlStatus = append(ttlStatus, map[string]any{
			"dataset":    d.name,
			"expired":    d.meta.IsExpired(now),
			"expires_at": d.meta.ExpiresAt().Format(time.RFC3339),
		})
	}
	return map[string]any{
		"dem_last_updated":       e.Bundle.DEM.Metadata.LastUpdated.Format(time.RFC3339),
		"landcover_last_updated": e.Bundle.Landcover.Metadata.LastUpdated.Format(time.RFC3339),
		"ttl_status":             ttlStatus,
	}
}

// EvaluateRisk scores every requested route (or every known route, if
// req.RouteIDs is empty) for slope, exposure, and hydrology risk, and
// updates each route's Composite score in place.
func (e *Engine) EvaluateRisk(req RiskRequest) (*RiskResult, error) {
	routes, err := e.resolveRoutes(req.RouteIDs)
	if err != nil {
		return nil, err
	}

	risks := risk.Evaluate(routes)
	ordered := make([]*terrain.RouteRisk, 0, len(routes))
	for _, route := range routes {
		routeRisk := risks[route.ID]
		e.State.Risks[route.ID] = routeRisk
		composite := roundScore(route.EstimatedCost * (1 + routeRisk.Aggregate()))
		route.Composite = &composite
		ordered = append(ordered, routeRisk)
	}
	e.Logger.Info("risk evaluated", "count", len(ordered))

	weights := map[string]float64{}
	if len(ordered) > 0 {
		weights = ordered[0].Weights
	}

	return &RiskResult{Handling: Handling, Schema: Schema, Weights: weights, Risks: ordered}, nil
}

// EstimatePace computes Naismith-derived travel time for every
// requested route (or every known route, if req.RouteIDs is empty).
func (e *Engine) EstimatePace(req PaceRequest) (*PaceResult, error) {
	mode := req.Mode
	if mode == "" {
		mode = "foot"
	}
	loadKg := req.LoadKg
	if loadKg == 0 {
		loadKg = 25.0
	}
	if err := e.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "engine: invalid pace request")
	}

	routes, err := e.resolveRoutes(req.RouteIDs)
	if err != nil {
		return nil, err
	}

	estimates := make([]*terrain.PaceEstimate, 0, len(routes))
	for _, route := range routes {
		estimate := pace.EstimateTravelTime(route, mode, loadKg)
		e.State.Paces[route.ID] = estimate
		estimates = append(estimates, estimate)
	}

	return &PaceResult{Handling: Handling, Schema: Schema, PaceEstimates: estimates}, nil
}

// Select filters and scores every requested route (or every known
// route, if req.RouteIDs is empty) against req's constraints, picking a
// single winner. Every requested route must already have a risk
// evaluation and pace estimate on record.
func (e *Engine) Select(req SelectRequest) (*SelectResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, "engine: invalid select request")
	}

	routes, err := e.resolveRoutes(req.RouteIDs)
	if err != nil {
		return nil, err
	}

	risks := make(map[string]*terrain.RouteRisk, len(routes))
	paces := make(map[string]*terrain.PaceEstimate, len(routes))
	for _, route := range routes {
		routeRisk, ok := e.State.Risks[route.ID]
		if !ok {
			return nil, errors.Wrapf(ErrMissingRiskEvaluation, "route %s", route.ID)
		}
		routePace, ok := e.State.Paces[route.ID]
		if !ok {
			return nil, errors.Wrapf(ErrMissingPaceEstimate, "route %s", route.ID)
		}
		risks[route.ID] = routeRisk
		paces[route.ID] = routePace
	}

	constraints := terrain.SelectionConstraints{
		MustArriveBefore:  req.MustArriveBefore,
		AvoidSlopeDegrees: req.AvoidSlopeDegrees,
		MaxDistanceM:      req.MaxDistanceM,
		PreferLowRisk:     req.PreferLowRisk,
	}

	result, err := selector.Select(routes, risks, paces, constraints, time.Now())
	if err != nil {
		e.Logger.Warn("select rejected every candidate", "error", err)
		return nil, err
	}
	e.State.Selection = result
	e.Logger.Info("route selected", "route_id", result.SelectedRoute.ID, "rejected", len(result.Alternates))

	return &SelectResult{Handling: Handling, Schema: Schema, Selection: result}, nil
}

// Export writes the current selection's GeoJSON, GPX, and Markdown
// brief under exportRoot.
func (e *Engine) Export(req ExportRequest, exportRoot string) (*ExportResult, error) {
	if e.State.Selection == nil {
		return nil, ErrNoSelection
	}
	manifest, err := export.ExportAll(e.State.Selection, exportRoot, req.Basename, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "engine: exporting selection")
	}
	return &ExportResult{Handling: Handling, Schema: Schema, Manifest: manifest}, nil
}

func (e *Engine) resolveRoutes(routeIDs []string) ([]*terrain.RouteCandidate, error) {
	ids := e.State.RouteIDsOrDefault(routeIDs)
	routes := make([]*terrain.RouteCandidate, 0, len(ids))
	for _, id := range ids {
		route, ok := e.State.Routes[id]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownRouteID, "%s", id)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}
