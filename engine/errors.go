package engine

import "errors"

var (
	// ErrNoViableRoute indicates the pathfinder produced zero candidates
	// between the requested start and goal.
	ErrNoViableRoute = errors.New("engine: no viable route found between the provided coordinates")
	// ErrUnknownRouteID indicates a caller referenced a route id this
	// engine's state has never generated.
	ErrUnknownRouteID = errors.New("engine: unknown route id")
	// ErrMissingRiskEvaluation indicates Select was called for a route
	// that hasn't been through EvaluateRisk yet.
	ErrMissingRiskEvaluation = errors.New("engine: missing risk evaluation for route")
	// ErrMissingPaceEstimate indicates Select was called for a route
	// that hasn't been through EstimatePace yet.
	ErrMissingPaceEstimate = errors.New("engine: missing pace estimate for route")
	// ErrNoSelection indicates Export was called before Select.
	ErrNoSelection = errors.New("engine: no route has been selected; run Select first")
)
