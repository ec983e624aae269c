package roadpath

import (
	"context"
	"math"
	"time"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

// GenerateCandidates runs FindPath once and turns the result into one
// real road candidate plus up to two cost-scaled variants of the same
// path — a stand-in for the k-shortest-paths algorithm a road network
// without terrain data would otherwise need. nextID supplies every
// candidate's route id.
func GenerateCandidates(ctx context.Context, start, goal terrain.Coordinate, roads terrain.RoadNetwork, maxCandidates int, nextID func() string) ([]*terrain.RouteCandidate, error) {
	path, err := FindPath(ctx, start, goal, roads)
	if err != nil {
		return nil, err
	}

	steps, totalDistance := assembleRoadSteps(path)
	estimatedCost := round3(totalDistance / 1000.0)
	coverageKM := round3(totalDistance / 1000.0)

	base := &terrain.RouteCandidate{
		ID:            nextID(),
		Steps:         steps,
		DistanceM:     round1(totalDistance),
		EstimatedCost: estimatedCost,
		ConstraintsUsed: map[string]any{
			"mode":   "road",
			"source": "osm",
		},
		ScoreBreakdown:     map[string]float64{"distance": coverageKM},
		Uncertainty:        map[string]any{"note": "OSM roads only, no terrain data"},
		Coverage:           map[string]float64{"road": coverageKM},
		CoverageUnits:      "km",
		EstimatedCostNotes: "Distance-based cost (km) - no terrain factors available",
		HydrologyCheck:     terrain.HydrologyCheck{Crossings: 0},
		Mobility: terrain.Mobility{
			SurfaceMixPct: map[string]float64{"road_pct": 100.0},
			AvgSlopeDeg:   0.0,
		},
		Provenance: map[string]any{
			"algorithm":    "road_network_dijkstra",
			"osm_roads":    len(roads),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	}

	candidates := []*terrain.RouteCandidate{base}

	limit := maxCandidates + 1
	if limit > 4 {
		limit = 4
	}
	for i := 2; i < limit; i++ {
		variant := *base
		variant.ID = nextID()
		variant.EstimatedCost = round3(base.EstimatedCost * (0.95 + float64(i)*0.05))
		variant.ConstraintsUsed = map[string]any{
			"mode":    "road",
			"source":  "osm",
			"variant": i,
		}
		candidates = append(candidates, &variant)
	}

	return candidates, nil
}

func assembleRoadSteps(path []terrain.Coordinate) ([]terrain.RouteStep, float64) {
	steps := make([]terrain.RouteStep, 0, len(path))
	cumulativeM := 0.0
	for i, coord := range path {
		if i > 0 {
			cumulativeM += geometry.PlanarDistanceM(path[i-1], coord)
		}
		kind := terrain.StepSegment
		if i == 0 || i == len(path)-1 {
			kind = terrain.StepWaypoint
		}
		steps = append(steps, terrain.RouteStep{
			SegmentID:  i,
			Coordinate: coord,
			Elevation:  100.0,
			Terrain:    "road",
			Cost:       1.0,
			Slope:      0.0,
			Exposure:   0.3,
			Kind:       kind,
			KMMarker:   round3(cumulativeM / 1000.0),
		})
	}
	return steps, cumulativeM
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
