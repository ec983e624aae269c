package gridpath

import (
	"fmt"
	"math"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

const checkpointIntervalM = 250.0

// AssembleSteps expands a grid path into RouteSteps, inserting a
// checkpoint whenever the landcover class changes or the cumulative
// distance since the last checkpoint reaches checkpointIntervalM.
func AssembleSteps(path []geometry.GridCell, dem *terrain.DEMData, landcover *terrain.LandcoverData) []terrain.RouteStep {
	if len(path) == 0 {
		return nil
	}

	steps := make([]terrain.RouteStep, 0, len(path))
	cell := dem.Metadata.CellSizeM
	cumulativeM := 0.0
	lastCheckpointM := 0.0
	lastTerrain := landcover.Grid[path[0].Row][path[0].Col]
	checkpointCounter := 0

	for i, cur := range path {
		segmentID := i + 1
		if segmentID > 1 {
			prev := path[i-1]
			cumulativeM += cell * math.Hypot(float64(cur.Row-prev.Row), float64(cur.Col-prev.Col))
		}

		coord := geometry.GridToCoordinate(cur.Row, cur.Col, dem)
		slope := round2(geometry.LocalSlope(dem, cur.Row, cur.Col))
		terrainName := landcover.Grid[cur.Row][cur.Col]
		class := landcover.Classes[terrainName]
		kmMarker := round3(cumulativeM / 1000.0)

		steps = append(steps, terrain.RouteStep{
			SegmentID:  segmentID,
			Coordinate: coord,
			Slope:      slope,
			Terrain:    terrainName,
			Cost:       class.CostFactor,
			Exposure:   class.Exposure,
			Elevation:  dem.Grid[cur.Row][cur.Col],
			Kind:       terrain.StepSegment,
			KMMarker:   kmMarker,
		})

		shouldCheckpoint := false
		if segmentID > 1 {
			if terrainName != lastTerrain {
				shouldCheckpoint = true
			} else if cumulativeM-lastCheckpointM >= checkpointIntervalM {
				shouldCheckpoint = true
			}
		}

		if shouldCheckpoint {
			checkpointCounter++
			var reason string
			if terrainName != lastTerrain {
				reason = fmt.Sprintf("Terrain %s→%s", lastTerrain, terrainName)
			} else {
				reason = fmt.Sprintf("Distance %d m", int(cumulativeM))
			}
			steps = append(steps, terrain.RouteStep{
				SegmentID:  segmentID,
				Coordinate: coord,
				Slope:      slope,
				Terrain:    terrainName,
				Cost:       class.CostFactor,
				Exposure:   class.Exposure,
				Elevation:  dem.Grid[cur.Row][cur.Col],
				Kind:       terrain.StepCheckpoint,
				KMMarker:   kmMarker,
				Label:      fmt.Sprintf("CP%d: %s", checkpointCounter, reason),
			})
			lastCheckpointM = cumulativeM
		}
		lastTerrain = terrainName
	}

	return steps
}

// DistanceAndElevation sums planar distance and separates elevation
// change into ascent and descent across the path.
func DistanceAndElevation(path []geometry.GridCell, dem *terrain.DEMData) (distanceM, ascentM, descentM float64) {
	if len(path) < 2 {
		return 0, 0, 0
	}
	cell := dem.Metadata.CellSizeM
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		elev1 := dem.Grid[prev.Row][prev.Col]
		elev2 := dem.Grid[cur.Row][cur.Col]
		distanceM += cell * math.Hypot(float64(cur.Row-prev.Row), float64(cur.Col-prev.Col))
		if elev2 > elev1 {
			ascentM += elev2 - elev1
		} else {
			descentM += elev1 - elev2
		}
	}
	return distanceM, ascentM, descentM
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
