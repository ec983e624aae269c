package gridpath_test

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/gridpath"
	"github.com/nadirahdurr/route-planner/terrain"
)

func wallObstacle(t *testing.T, dem *terrain.DEMData, row int) terrain.Obstacle {
	t.Helper()
	center := geometry.CellCentroid(row, 0, dem.Metadata.Origin, dem.Metadata.CellSizeM)
	halfLat := (dem.Metadata.CellSizeM * 0.6) / gridpathMetersPerDegreeLat()
	halfLon := (dem.Metadata.CellSizeM * 0.6) / gridpathMetersPerDegreeLon()
	ring := orb.Ring{
		{center[0] - halfLon, center[1] - halfLat},
		{center[0] - halfLon, center[1] + halfLat},
		{center[0] + halfLon, center[1] + halfLat},
		{center[0] + halfLon, center[1] - halfLat},
		{center[0] - halfLon, center[1] - halfLat},
	}
	return terrain.Obstacle{Polygon: ring, Type: "wall"}
}

func flatTerrain(t *testing.T, size int, cellSize float64, class string) (*terrain.DEMData, *terrain.LandcoverData) {
	t.Helper()
	demGrid := make([][]float64, size)
	lcGrid := make([][]string, size)
	for r := 0; r < size; r++ {
		demGrid[r] = make([]float64, size)
		lcGrid[r] = make([]string, size)
		for c := 0; c < size; c++ {
			lcGrid[r][c] = class
		}
	}
	meta := terrain.GridMetadata{
		Origin:      terrain.Coordinate{Lat: 34.0, Lon: -117.0},
		CellSizeM:   cellSize,
		TTLHours:    24,
		LastUpdated: time.Now(),
	}
	dem, err := terrain.NewDEMData(demGrid, meta)
	require.NoError(t, err)
	classes := map[string]terrain.LandcoverClass{
		class: {Name: class, CostFactor: 1.0, Exposure: 0.2, SpeedModifier: 1.0},
	}
	lc, err := terrain.NewLandcoverData(lcGrid, classes, meta)
	require.NoError(t, err)
	return dem, lc
}

func TestFindPathFlatGridBalancedProfile(t *testing.T) {
	dem, lc := flatTerrain(t, 10, 50, "open")
	start := terrain.Coordinate{Lat: 34.0, Lon: -117.0}
	goal := terrain.Coordinate{Lat: 34.0 + 9*50/gridpathMetersPerDegreeLat(), Lon: -117.0 + 9*50/gridpathMetersPerDegreeLon()}

	path, err := gridpath.FindPath(context.Background(), start, goal, dem, lc, nil, nil, gridpath.Profiles[0])
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, 0, path[0].Row)
	assert.Equal(t, 0, path[0].Col)
	assert.Equal(t, 9, path[len(path)-1].Row)
	assert.Equal(t, 9, path[len(path)-1].Col)
}

func TestFindPathDeflectsAroundObstacle(t *testing.T) {
	dem, lc := flatTerrain(t, 5, 50, "open")
	start := terrain.Coordinate{Lat: 34.0, Lon: -117.0}
	goal := terrain.Coordinate{Lat: 34.0 + 4*50/gridpathMetersPerDegreeLat(), Lon: -117.0}

	obstacles := []terrain.Obstacle{wallObstacle(t, dem, 2)}

	path, err := gridpath.FindPath(context.Background(), start, goal, dem, lc, obstacles, nil, gridpath.Profiles[0])
	require.NoError(t, err)
	for _, cell := range path {
		if cell.Row == 2 {
			assert.NotEqual(t, 0, cell.Col, "path should deflect around the blocked column")
		}
	}
}

func TestFindPathOutOfBounds(t *testing.T) {
	dem, lc := flatTerrain(t, 3, 50, "open")
	start := terrain.Coordinate{Lat: 34.0, Lon: -117.0}
	goal := terrain.Coordinate{Lat: 50.0, Lon: -100.0}

	_, err := gridpath.FindPath(context.Background(), start, goal, dem, lc, nil, nil, gridpath.Profiles[0])
	require.ErrorIs(t, err, gridpath.ErrOutOfBounds)
}

func TestGenerateCandidatesAssignsSequentialIDs(t *testing.T) {
	dem, lc := flatTerrain(t, 6, 50, "open")
	start := terrain.Coordinate{Lat: 34.0, Lon: -117.0}
	goal := terrain.Coordinate{Lat: 34.0 + 5*50/gridpathMetersPerDegreeLat(), Lon: -117.0 + 5*50/gridpathMetersPerDegreeLon()}

	counter := 0
	nextID := func() string {
		counter++
		return "route-" + string(rune('0'+counter))
	}

	candidates := gridpath.GenerateCandidates(context.Background(), start, goal, dem, lc, nil, nil, 3, nextID, nil)
	require.Len(t, candidates, 3)
	assert.Equal(t, "route-1", candidates[0].ID)
	assert.Equal(t, "route-2", candidates[1].ID)
	assert.Equal(t, "route-3", candidates[2].ID)
}

func TestApplyWeightOverridesMergesOnlyNamedProfile(t *testing.T) {
	overrides := map[string]map[string]float64{
		"trail_pref": {"slope": 0.1},
	}
	profiles := gridpath.ApplyWeightOverrides(overrides)
	require.Len(t, profiles, len(gridpath.Profiles))

	for i, p := range profiles {
		if p.ID == "trail_pref" {
			assert.Equal(t, 0.1, p.CostWeights["slope"])
			assert.Equal(t, gridpath.Profiles[i].CostWeights["terrain"], p.CostWeights["terrain"])
			continue
		}
		assert.Equal(t, gridpath.Profiles[i].CostWeights, p.CostWeights)
	}
}

func TestApplyWeightOverridesEmptyReturnsDefaults(t *testing.T) {
	profiles := gridpath.ApplyWeightOverrides(nil)
	assert.Equal(t, gridpath.Profiles, profiles)
}

func gridpathMetersPerDegreeLat() float64 { return 111_320.0 }
func gridpathMetersPerDegreeLon() float64 { return 85_000.0 }
