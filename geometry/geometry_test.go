package geometry_test

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

func flatDEM(t *testing.T, h, w int, elev float64, cellSize float64) *terrain.DEMData {
	t.Helper()
	grid := make([][]float64, h)
	for r := range grid {
		row := make([]float64, w)
		for c := range row {
			row[c] = elev
		}
		grid[r] = row
	}
	meta := terrain.GridMetadata{
		Origin:      terrain.Coordinate{Lat: 34.0, Lon: -117.0},
		CellSizeM:   cellSize,
		TTLHours:    24,
		LastUpdated: time.Now(),
	}
	dem, err := terrain.NewDEMData(grid, meta)
	require.NoError(t, err)
	return dem
}

func TestCoordinateGridRoundTrip(t *testing.T) {
	dem := flatDEM(t, 5, 5, 100, 100)
	cell := geometry.CoordinateToGrid(terrain.Coordinate{Lat: 34.0, Lon: -117.0}, dem)
	require.Equal(t, geometry.GridCell{Row: 0, Col: 0}, cell)

	coord := geometry.GridToCoordinate(2, 3, dem)
	back := geometry.CoordinateToGrid(coord, dem)
	require.Equal(t, geometry.GridCell{Row: 2, Col: 3}, back)
}

func TestInBounds(t *testing.T) {
	dem := flatDEM(t, 3, 4, 0, 100)
	require.True(t, geometry.InBounds(0, 0, dem))
	require.True(t, geometry.InBounds(2, 3, dem))
	require.False(t, geometry.InBounds(3, 0, dem))
	require.False(t, geometry.InBounds(0, -1, dem))
}

func TestSlopeBetweenFlatIsZero(t *testing.T) {
	dem := flatDEM(t, 3, 3, 100, 100)
	require.Equal(t, 0.0, geometry.SlopeBetween(dem, 0, 0, 1, 1))
	require.Equal(t, 0.0, geometry.SlopeBetween(dem, 1, 1, 1, 1))
}

func TestSlopeBetweenRisesWithElevation(t *testing.T) {
	dem := flatDEM(t, 2, 2, 0, 100)
	dem.Grid[1][1] = 100
	slope := geometry.SlopeBetween(dem, 0, 0, 1, 1)
	require.Greater(t, slope, 0.0)
	require.Less(t, slope, 90.0)
}

func TestLocalSlopeIsMaxOfNeighbors(t *testing.T) {
	dem := flatDEM(t, 3, 3, 0, 100)
	dem.Grid[0][1] = 10 // small rise
	dem.Grid[2][2] = 50 // big rise
	got := geometry.LocalSlope(dem, 1, 1)
	want := geometry.SlopeBetween(dem, 1, 1, 2, 2)
	require.InDelta(t, want, got, 1e-9)
}

func TestRingContains(t *testing.T) {
	square := orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	require.True(t, geometry.RingContains(square, orb.Point{5, 5}))
	require.False(t, geometry.RingContains(square, orb.Point{15, 5}))
}

func TestBufferRingMetersExpandsOutward(t *testing.T) {
	square := orb.Ring{{-117.001, 34.001}, {-117.001, 34.002}, {-117.000, 34.002}, {-117.000, 34.001}}
	buffered := geometry.BufferRingMeters(square, 100)

	var cx, cy float64
	for _, p := range square {
		cx += p[0]
		cy += p[1]
	}
	cx /= float64(len(square))
	cy /= float64(len(square))

	for i := range square {
		distOrig := (square[i][0]-cx)*(square[i][0]-cx) + (square[i][1]-cy)*(square[i][1]-cy)
		distBuf := (buffered[i][0]-cx)*(buffered[i][0]-cx) + (buffered[i][1]-cy)*(buffered[i][1]-cy)
		require.Greater(t, distBuf, distOrig)
	}

	require.Equal(t, square, geometry.BufferRingMeters(square, 0))
}
