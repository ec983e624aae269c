package gridpath

import (
	"context"
	"math"
	"strings"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

var hydrologyTerms = []string{"wetland", "water"}

func isHydrology(terrainName string) bool {
	lower := strings.ToLower(terrainName)
	for _, term := range hydrologyTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// GenerateCandidates runs the A* search under each of the first
// maxCandidates profiles and turns each surviving path into a scored
// RouteCandidate. A profile that finds no path, or whose path yields no
// segment steps, is silently skipped — callers see only the candidates
// that succeeded. nextID supplies each candidate's route id; the engine
// is the sole source of ids so that this loop's index never leaks into
// one (see DESIGN.md on the idx-shadowing fix). profiles overrides the
// package-level Profiles when non-nil, letting callers apply
// configuration-driven cost-weight overrides (see ApplyWeightOverrides).
func GenerateCandidates(
	ctx context.Context,
	start, goal terrain.Coordinate,
	dem *terrain.DEMData,
	landcover *terrain.LandcoverData,
	obstacles []terrain.Obstacle,
	roads terrain.RoadNetwork,
	maxCandidates int,
	nextID func() string,
	profiles []Profile,
) []*terrain.RouteCandidate {
	if profiles == nil {
		profiles = Profiles
	}
	limit := len(profiles)
	if maxCandidates > 0 && maxCandidates < limit {
		limit = maxCandidates
	}

	candidates := make([]*terrain.RouteCandidate, 0, limit)
	for _, profile := range profiles[:limit] {
		path, err := FindPath(ctx, start, goal, dem, landcover, obstacles, roads, profile)
		if err != nil {
			continue
		}
		candidate := buildCandidate(path, dem, landcover, profile, nextID())
		if candidate != nil {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

func buildCandidate(path []geometry.GridCell, dem *terrain.DEMData, landcover *terrain.LandcoverData, profile Profile, id string) *terrain.RouteCandidate {
	steps := AssembleSteps(path, dem, landcover)
	segmentSteps := make([]terrain.RouteStep, 0, len(steps))
	for _, s := range steps {
		if s.Kind == terrain.StepSegment {
			segmentSteps = append(segmentSteps, s)
		}
	}
	if len(segmentSteps) == 0 {
		return nil
	}

	distance, ascent, descent := DistanceAndElevation(path, dem)

	avgSlope, avgExposure, avgTerrain := 0.0, 0.0, 0.0
	maxSlope := 0.0
	for i, s := range segmentSteps {
		avgSlope += s.Slope
		avgExposure += s.Exposure
		mult := 1.0
		if m, ok := profile.TerrainMultipliers[s.Terrain]; ok {
			mult = m
		}
		avgTerrain += s.Cost * mult
		if i == 0 || s.Slope > maxSlope {
			maxSlope = s.Slope
		}
	}
	n := float64(len(segmentSteps))
	avgSlope, avgExposure, avgTerrain = avgSlope/n, avgExposure/n, avgTerrain/n

	weights := profile.CostWeights
	scoreBreakdown := map[string]float64{
		"slope":    round3(avgSlope),
		"terrain":  round3(avgTerrain),
		"exposure": round3(avgExposure),
	}
	estimatedCost := round3(
		weights["slope"]*scoreBreakdown["slope"] +
			weights["terrain"]*scoreBreakdown["terrain"] +
			weights["exposure"]*scoreBreakdown["exposure"],
	)

	cellSize := dem.Metadata.CellSizeM
	terrainDistance := map[string]float64{}
	hydrologyCrossings := 0
	var nearestHydroM *float64
	prevIsHydro := false
	for i := 1; i < len(path); i++ {
		r1, c1 := path[i-1].Row, path[i-1].Col
		r2, c2 := path[i].Row, path[i].Col
		terrainName := landcover.Grid[r2][c2]
		segDist := cellSize * math.Hypot(float64(r2-r1), float64(c2-c1))
		terrainDistance[terrainName] += segDist

		isHydro := isHydrology(terrainName)
		if isHydro && !prevIsHydro {
			hydrologyCrossings++
		}
		if isHydro && i < len(segmentSteps) {
			distanceM := segmentSteps[i].KMMarker * 1000.0
			if nearestHydroM == nil || distanceM < *nearestHydroM {
				d := distanceM
				nearestHydroM = &d
			}
		}
		prevIsHydro = isHydro
	}

	coverageKM := map[string]float64{}
	totalKM := 0.0
	for name, d := range terrainDistance {
		km := round3(d / 1000.0)
		coverageKM[name] = km
		totalKM += km
	}
	if totalKM == 0 {
		totalKM = 1.0
	}
	surfaceMix := map[string]float64{}
	for name, km := range coverageKM {
		surfaceMix[name+"_pct"] = roundTo(km/totalKM*100, 1)
	}

	var nearestHydroRounded *float64
	if nearestHydroM != nil {
		d := roundTo(*nearestHydroM, 1)
		nearestHydroRounded = &d
	}

	return &terrain.RouteCandidate{
		ID:            id,
		Steps:         steps,
		DistanceM:     roundTo(distance, 1),
		AscentM:       roundTo(ascent, 1),
		DescentM:      roundTo(descent, 1),
		EstimatedCost: estimatedCost,
		ConstraintsUsed: map[string]any{
			"avoid":  profile.Constraints["avoid"],
			"prefer": profile.Constraints["prefer"],
			"mode":   profile.Constraints["mode"],
		},
		ScoreBreakdown: scoreBreakdown,
		Uncertainty: map[string]any{
			"dem_res_m":            dem.Metadata.CellSizeM,
			"est_slope_error_deg":  0.5,
			"landcover_update_ts":  landcover.Metadata.LastUpdated,
		},
		Coverage:           coverageKM,
		CoverageUnits:       "km",
		EstimatedCostNotes:  "dimensionless composite: weighted sum of average slope, terrain cost, exposure",
		HydrologyCheck: terrain.HydrologyCheck{
			Crossings:     hydrologyCrossings,
			NearestWaterM: nearestHydroRounded,
		},
		Mobility: terrain.Mobility{
			SurfaceMixPct: surfaceMix,
			AvgSlopeDeg:   roundTo(avgSlope, 2),
			MaxSlopeDeg:   floatPtr(roundTo(maxSlope, 2)),
		},
		Provenance: map[string]any{
			"profile":              profile.ID,
			"profile_label":        profile.Label,
			"cost_weights":         profile.CostWeights,
			"slope_weight":         profile.SlopeWeight,
			"terrain_multipliers":  profile.TerrainMultipliers,
			"exposure_penalty":     profile.ExposurePenalty,
			"road_bias":            profile.RoadBias,
			"dem_last_updated":     dem.Metadata.LastUpdated,
			"landcover_last_updated": landcover.Metadata.LastUpdated,
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return math.Round(v*scale) / scale
}
