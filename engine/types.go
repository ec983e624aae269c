package engine

import (
	"time"

	"github.com/nadirahdurr/route-planner/export"
	"github.com/nadirahdurr/route-planner/terrain"
)

// Handling and Schema are stamped, unchanging, onto every operation's
// response; CRS is stamped onto Generate's response.
var (
	Handling = map[string]any{"sensitivity": "UNCLASSIFIED", "ttl_hours": 720}
	Schema   = map[string]any{
		"version": "1.2.0",
		"hash":    "sha256:5a0d8a2f96f6c0b8f271f98f6b3a9a8bf5a6a338d250b1d7f4c684a8739d4d5a",
	}
	CRS = map[string]any{"name": "EPSG:4326", "order": "lat,lon"}
)

// CoordinateInput is a validated (lat, lon) pair as it arrives from a
// caller, before conversion to terrain.Coordinate.
type CoordinateInput struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// GenerateRequest is the input to Generate.
type GenerateRequest struct {
	Start         CoordinateInput
	End           CoordinateInput
	MaxCandidates int `validate:"omitempty,min=1,max=3"`
}

// GenerateResult is the output of Generate.
type GenerateResult struct {
	RequestID  string
	Handling   map[string]any
	Schema     map[string]any
	CRS        map[string]any
	Routes     []*terrain.RouteCandidate
	Provenance map[string]any
}

// RiskRequest is the input to EvaluateRisk. An empty RouteIDs evaluates
// every route currently known to the engine.
type RiskRequest struct {
	RouteIDs []string
}

// RiskResult is the output of EvaluateRisk.
type RiskResult struct {
	Handling map[string]any
	Schema   map[string]any
	Weights  map[string]float64
	Risks    []*terrain.RouteRisk
}

// PaceRequest is the input to EstimatePace.
type PaceRequest struct {
	Mode     string `validate:"omitempty,oneof=foot wheeled"`
	LoadKg   float64 `validate:"gte=0"`
	RouteIDs []string
}

// PaceResult is the output of EstimatePace.
type PaceResult struct {
	Handling      map[string]any
	Schema        map[string]any
	PaceEstimates []*terrain.PaceEstimate
}

// SelectRequest is the input to Select.
type SelectRequest struct {
	RouteIDs          []string
	MustArriveBefore  *time.Time
	AvoidSlopeDegrees *float64 `validate:"omitempty,gte=0"`
	MaxDistanceM      *float64 `validate:"omitempty,gt=0"`
	PreferLowRisk     bool
}

// SelectResult is the output of Select.
type SelectResult struct {
	Handling  map[string]any
	Schema    map[string]any
	Selection *terrain.SelectionResult
}

// ExportRequest is the input to Export.
type ExportRequest struct {
	Basename string
}

// ExportResult is the output of Export.
type ExportResult struct {
	Handling map[string]any
	Schema   map[string]any
	Manifest *export.Manifest
}
