package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/loader"
)

const demJSON = `{
  "metadata": {"origin": {"lat": 34.0, "lon": -117.0}, "cell_size_m": 30, "ttl_hours": 24, "last_updated": "2026-01-01T00:00:00Z"},
  "grid": [[100, 110], [105, 115]]
}`

const landcoverJSON = `{
  "metadata": {"origin": {"lat": 34.0, "lon": -117.0}, "cell_size_m": 30, "ttl_hours": 24, "last_updated": "2026-01-01T00:00:00Z"},
  "classes": {"open": {"cost_factor": 1.0, "exposure": 0.3, "speed_modifier": 1.0}, "forest": {"cost_factor": 1.2, "exposure": 0.1, "speed_modifier": 0.9}},
  "grid": [["open", "forest"], ["forest", "open"]]
}`

const roadsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id": "r1"}, "geometry": {"type": "LineString", "coordinates": [[-117.0, 34.0], [-117.001, 34.001]]}}
  ]
}`

const obstaclesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"type": "water", "buffer_m": 20}, "geometry": {"type": "Polygon", "coordinates": [[[-117.0, 34.0], [-117.0, 34.001], [-116.999, 34.001], [-116.999, 34.0], [-117.0, 34.0]]]}}
  ]
}`

func writeBundle(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestLoadBundleSuccess(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, map[string]string{
		"dem.json":          demJSON,
		"landcover.json":    landcoverJSON,
		"roads.geojson":     roadsGeoJSON,
		"obstacles.geojson": obstaclesGeoJSON,
	})

	bundle, err := loader.LoadBundle(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, bundle.DEM.Height())
	assert.Equal(t, 2, bundle.DEM.Width())
	assert.Len(t, bundle.Roads, 1)
	assert.Len(t, bundle.Obstacles, 1)
	assert.Equal(t, "water", bundle.Obstacles[0].Type)

	road, ok := bundle.Roads["r1"]
	require.True(t, ok)
	// (lon, lat) source swapped to (lat, lon).
	assert.Equal(t, 34.0, road[0].Lat)
	assert.Equal(t, -117.0, road[0].Lon)
}

func TestLoadBundleExpandsObstacleBuffer(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, map[string]string{
		"dem.json":          demJSON,
		"landcover.json":    landcoverJSON,
		"roads.geojson":     roadsGeoJSON,
		"obstacles.geojson": obstaclesGeoJSON,
	})

	bundle, err := loader.LoadBundle(dir)
	require.NoError(t, err)
	require.Len(t, bundle.Obstacles, 1)

	raw := orb.Ring{
		{-117.0, 34.0},
		{-117.0, 34.001},
		{-116.999, 34.001},
		{-116.999, 34.0},
		{-117.0, 34.0},
	}
	want := geometry.BufferRingMeters(raw, 20)
	assert.Equal(t, want, bundle.Obstacles[0].Polygon)
	assert.NotEqual(t, raw, bundle.Obstacles[0].Polygon, "buffer_m > 0 should expand the stored polygon")
}

func TestLoadBundleMissingMemberCleansUpDirectory(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, map[string]string{
		"dem.json":       demJSON,
		"landcover.json": landcoverJSON,
		// roads.geojson and obstacles.geojson intentionally absent.
	})

	_, err := loader.LoadBundle(dir)
	require.ErrorIs(t, err, loader.ErrMissingBundleMember)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadBundleNotFound(t *testing.T) {
	_, err := loader.LoadBundle(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, loader.ErrBundleNotFound)
}

func TestParseTimestampAcceptsTrailingZ(t *testing.T) {
	ts, err := loader.ParseTimestamp("2026-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, "UTC", ts.Location().String())
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := loader.ParseTimestamp("not-a-timestamp")
	require.ErrorIs(t, err, loader.ErrInvalidTimestamp)
}
