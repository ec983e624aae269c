// Package candidates dispatches route generation to the grid-based or
// road-based pathfinder depending on what the loaded bundle actually
// contains.
package candidates

import (
	"context"

	"github.com/nadirahdurr/route-planner/gridpath"
	"github.com/nadirahdurr/route-planner/loader"
	"github.com/nadirahdurr/route-planner/roadpath"
	"github.com/nadirahdurr/route-planner/terrain"
)

const placeholderGridDimension = 10

// isPlaceholderTerrain reports whether a bundle's DEM is the 10x10
// synthetic grid LoadRoadOnly produces in place of real terrain data.
func isPlaceholderTerrain(dem *terrain.DEMData) bool {
	return dem.Height() <= placeholderGridDimension && dem.Width() <= placeholderGridDimension
}

// Generate produces up to maxCandidates route candidates for start→goal.
// When the bundle carries only a placeholder terrain grid alongside a
// non-empty road network, generation is delegated to the road-graph
// Dijkstra search; otherwise it runs the three grid A* cost profiles,
// with profileWeightOverrides (keyed by profile id, may be nil) applied
// on top of gridpath's defaults. nextID assigns every candidate's route id.
func Generate(ctx context.Context, start, goal terrain.Coordinate, bundle *loader.Bundle, maxCandidates int, nextID func() string, profileWeightOverrides map[string]map[string]float64) ([]*terrain.RouteCandidate, error) {
	if isPlaceholderTerrain(bundle.DEM) && len(bundle.Roads) > 0 {
		return roadpath.GenerateCandidates(ctx, start, goal, bundle.Roads, maxCandidates, nextID)
	}
	var profiles []gridpath.Profile
	if len(profileWeightOverrides) > 0 {
		profiles = gridpath.ApplyWeightOverrides(profileWeightOverrides)
	}
	return gridpath.GenerateCandidates(ctx, start, goal, bundle.DEM, bundle.Landcover, bundle.Obstacles, bundle.Roads, maxCandidates, nextID, profiles), nil
}
