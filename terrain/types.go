// Package terrain holds the in-memory data model for a loaded terrain
// bundle: elevation grid, landcover grid, obstacles, and road network,
// plus the metadata and TTL bookkeeping that governs dataset freshness.
package terrain

import (
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Coordinate is an ordered (lat, lon) pair in decimal degrees. The engine
// assumes this ordering everywhere except at the road-network ingest
// boundary, where imported geometry arrives as (lon, lat) and must be
// swapped once, in the loader.
type Coordinate struct {
	Lat float64
	Lon float64
}

// GridMetadata describes the georeferencing and freshness of a grid: the
// coordinate of cell (0,0), the cell size in meters, and a TTL used to
// derive expiry from LastUpdated.
type GridMetadata struct {
	Origin      Coordinate
	CellSizeM   float64
	TTLHours    int
	LastUpdated time.Time
}

// ExpiresAt returns LastUpdated shifted forward by TTLHours.
func (m GridMetadata) ExpiresAt() time.Time {
	return m.LastUpdated.Add(time.Duration(m.TTLHours) * time.Hour)
}

// IsExpired reports whether now is past ExpiresAt.
func (m GridMetadata) IsExpired(now time.Time) bool {
	return now.After(m.ExpiresAt())
}

// DEMData is a dense row-major grid of elevations in meters. Every row
// must have the same width; NewDEMData enforces this invariant.
type DEMData struct {
	Grid     [][]float64
	Metadata GridMetadata
}

// Height returns the number of rows.
func (d *DEMData) Height() int { return len(d.Grid) }

// Width returns the number of columns, or 0 for an empty grid.
func (d *DEMData) Width() int {
	if len(d.Grid) == 0 {
		return 0
	}
	return len(d.Grid[0])
}

// LandcoverClass carries the cost, exposure, and speed attributes a
// landcover label maps to.
type LandcoverClass struct {
	Name          string
	CostFactor    float64
	Exposure      float64
	SpeedModifier float64
}

// LandcoverData is a dense row-major grid of class labels plus the class
// table those labels index into. Every grid cell label must be a key of
// Classes; NewLandcoverData enforces this invariant.
type LandcoverData struct {
	Grid     [][]string
	Classes  map[string]LandcoverClass
	Metadata GridMetadata
}

// Height returns the number of rows.
func (l *LandcoverData) Height() int { return len(l.Grid) }

// Width returns the number of columns, or 0 for an empty grid.
func (l *LandcoverData) Width() int {
	if len(l.Grid) == 0 {
		return 0
	}
	return len(l.Grid[0])
}

// Obstacle is a closed polygon, stored as orb points in (lon, lat)
// order, with a type tag and an optional buffer in meters, expanded once
// at load time.
type Obstacle struct {
	Polygon orb.Ring
	Type    string
	BufferM float64
}

// RoadNetwork maps a road id to its ordered sequence of coordinates, in
// (lat, lon) order (already swapped from the (lon, lat) source format by
// the loader).
type RoadNetwork map[string][]Coordinate

// StepKind enumerates the role a RouteStep plays in a candidate's step
// sequence.
type StepKind string

const (
	StepSegment    StepKind = "segment"
	StepCheckpoint StepKind = "checkpoint"
	StepWaypoint   StepKind = "waypoint"
)

// RouteStep is one point along a candidate route.
type RouteStep struct {
	SegmentID  int
	Coordinate Coordinate
	Slope      float64
	Terrain    string
	Cost       float64
	Exposure   float64
	Elevation  float64
	Kind       StepKind
	KMMarker   float64
	Label      string // empty means no label
}

// HydrologyCheck summarizes water/wetland crossings along a route.
type HydrologyCheck struct {
	Crossings     int
	NearestWaterM *float64 // nil when the route never nears water
}

// Mobility summarizes terrain mix and slope extremes for a candidate.
type Mobility struct {
	SurfaceMixPct map[string]float64
	AvgSlopeDeg   float64
	MaxSlopeDeg   *float64 // nil for road-network candidates, which have no slope signal
}

// RouteCandidate is one proposed route between start and end, produced by
// either pathfinder and enriched by risk evaluation.
type RouteCandidate struct {
	ID                 string
	Steps              []RouteStep
	DistanceM          float64
	AscentM            float64
	DescentM           float64
	EstimatedCost      float64
	Composite          *float64 // set only after risk evaluation
	ConstraintsUsed    map[string]any
	ScoreBreakdown     map[string]float64
	Uncertainty        map[string]any
	Coverage           map[string]float64 // per-class distance, km
	CoverageUnits      string
	EstimatedCostNotes string
	HydrologyCheck     HydrologyCheck
	Mobility           Mobility
	Provenance         map[string]any
}

// SegmentSteps returns the subset of Steps with Kind == StepSegment.
func (c *RouteCandidate) SegmentSteps() []RouteStep {
	out := make([]RouteStep, 0, len(c.Steps))
	for _, s := range c.Steps {
		if s.Kind == StepSegment {
			out = append(out, s)
		}
	}
	return out
}

// RiskWeights are the fixed weights used to aggregate risk components.
var RiskWeights = map[string]float64{"slope": 0.45, "exposure": 0.35, "hydrology": 0.20}

// RiskFormula documents the aggregation formula for RouteRisk.Aggregate.
const RiskFormula = "sum(w[i] * component[i])"

// RouteRisk is the per-route risk assessment produced by the risk scorer.
type RouteRisk struct {
	RouteID        string
	SlopeRisk      float64
	ExposureRisk   float64
	HydrologyRisk  float64
	Weights        map[string]float64
	Formula        string
	Components     map[string]float64
	HydrologyCheck HydrologyCheck
}

// Aggregate computes the weighted sum of the three risk components.
func (r RouteRisk) Aggregate() float64 {
	return r.Weights["slope"]*r.SlopeRisk + r.Weights["exposure"]*r.ExposureRisk + r.Weights["hydrology"]*r.HydrologyRisk
}

// PaceEstimate is the Naismith-derived travel-time estimate for a route.
type PaceEstimate struct {
	RouteID           string
	TravelTimeMinutes float64
	Mode              string
	LoadKg            float64
	BaseSpeedKmh      float64
	Assumptions       []string
}

// SelectionConstraints narrows candidate routes down to one winner.
type SelectionConstraints struct {
	MustArriveBefore  *time.Time
	AvoidSlopeDegrees *float64
	PreferLowRisk     bool
	MaxDistanceM      *float64
}

// AlternateRoute is one non-selected candidate, annotated with why it
// lost to the selection.
type AlternateRoute struct {
	RouteID     string
	Score       float64
	Rationale   string
	ReasonCodes []string
}

// SelectionResult is the outcome of running the selector.
type SelectionResult struct {
	SelectedRoute   *RouteCandidate
	Risk            RouteRisk
	Pace            PaceEstimate
	Rationale       string
	Constraints     map[string]any
	Alternates      []AlternateRoute
	ScoreDefinition string
	TieBreaker      string
	Policy          map[string]any
}

// EngineState is the engine's mutable, request-scoped bookkeeping: every
// route generated so far, its risk and pace once evaluated, and the
// current selection. Every key in Risks and Paces must be a key in
// Routes; the engine enforces this by construction.
type EngineState struct {
	Routes    map[string]*RouteCandidate
	Order     []string // route ids in generation order; map iteration order is not
	Risks     map[string]*RouteRisk
	Paces     map[string]*PaceEstimate
	Selection *SelectionResult

	counter int // monotonic, never reset while the engine lives
}

// NewEngineState returns an empty, ready-to-use state.
func NewEngineState() *EngineState {
	return &EngineState{
		Routes: make(map[string]*RouteCandidate),
		Risks:  make(map[string]*RouteRisk),
		Paces:  make(map[string]*PaceEstimate),
	}
}

// AddRoute records a newly generated route and appends it to Order.
func (s *EngineState) AddRoute(route *RouteCandidate) {
	s.Routes[route.ID] = route
	s.Order = append(s.Order, route.ID)
}

// RouteIDsOrDefault returns ids verbatim if non-empty, else every route
// id currently known, in generation order.
func (s *EngineState) RouteIDsOrDefault(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return append([]string(nil), s.Order...)
}

// NextRouteID increments the state's monotonic counter and returns the
// next "route-N" id. This is the single authority for route ids: per
// spec, profile loops never assign ids themselves.
func (s *EngineState) NextRouteID() string {
	s.counter++
	return "route-" + strconv.Itoa(s.counter)
}

// Reset clears routes, risks, paces, and the selection ahead of a new
// generate call, without resetting the monotonic counter.
func (s *EngineState) Reset() {
	s.Routes = make(map[string]*RouteCandidate)
	s.Order = nil
	s.Risks = make(map[string]*RouteRisk)
	s.Paces = make(map[string]*PaceEstimate)
	s.Selection = nil
}
