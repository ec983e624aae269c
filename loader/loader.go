// Package loader reads a terrain bundle directory into the terrain data
// model, or synthesizes a placeholder bundle around a road-only source.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/nadirahdurr/route-planner/geometry"
	"github.com/nadirahdurr/route-planner/terrain"
)

// Bundle is a fully loaded terrain bundle, ready for the candidate
// generator.
type Bundle struct {
	DEM       *terrain.DEMData
	Landcover *terrain.LandcoverData
	Obstacles []terrain.Obstacle
	Roads     terrain.RoadNetwork
}

const (
	demFile       = "dem.json"
	landcoverFile = "landcover.json"
	roadsFile     = "roads.geojson"
	obstaclesFile = "obstacles.geojson"
)

// LoadBundle reads a directory containing dem.json, landcover.json,
// roads.geojson, and obstacles.geojson. If any member is missing, the
// directory is removed (it is assumed to be a partially written upload)
// and ErrMissingBundleMember is returned.
func LoadBundle(dir string) (*Bundle, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrBundleNotFound, "%s", dir)
	}

	members := []string{demFile, landcoverFile, roadsFile, obstaclesFile}
	for _, name := range members {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			_ = os.RemoveAll(dir)
			return nil, errors.Wrapf(ErrMissingBundleMember, "%s", name)
		}
	}

	dem, err := loadDEM(filepath.Join(dir, demFile))
	if err != nil {
		return nil, err
	}
	landcover, err := loadLandcover(filepath.Join(dir, landcoverFile))
	if err != nil {
		return nil, err
	}
	if err := terrain.CheckAligned(dem, landcover); err != nil {
		return nil, err
	}
	roads, err := loadRoads(filepath.Join(dir, roadsFile))
	if err != nil {
		return nil, err
	}
	obstacles, err := loadObstacles(filepath.Join(dir, obstaclesFile))
	if err != nil {
		return nil, err
	}

	return &Bundle{DEM: dem, Landcover: landcover, Obstacles: obstacles, Roads: roads}, nil
}

type demMetadataFile struct {
	Origin struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"origin"`
	CellSizeM   float64 `json:"cell_size_m"`
	TTLHours    int     `json:"ttl_hours"`
	LastUpdated string  `json:"last_updated"`
}

func (m demMetadataFile) toGridMetadata() (terrain.GridMetadata, error) {
	ts, err := ParseTimestamp(m.LastUpdated)
	if err != nil {
		return terrain.GridMetadata{}, err
	}
	return terrain.GridMetadata{
		Origin:      terrain.Coordinate{Lat: m.Origin.Lat, Lon: m.Origin.Lon},
		CellSizeM:   m.CellSizeM,
		TTLHours:    m.TTLHours,
		LastUpdated: ts,
	}, nil
}

type demFileShape struct {
	Metadata demMetadataFile `json:"metadata"`
	Grid     [][]float64     `json:"grid"`
}

func loadDEM(path string) (*terrain.DEMData, error) {
	var raw demFileShape
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	meta, err := raw.Metadata.toGridMetadata()
	if err != nil {
		return nil, err
	}
	return terrain.NewDEMData(raw.Grid, meta)
}

type landcoverClassFile struct {
	CostFactor    float64 `json:"cost_factor"`
	Exposure      float64 `json:"exposure"`
	SpeedModifier float64 `json:"speed_modifier"`
}

type landcoverFileShape struct {
	Metadata demMetadataFile               `json:"metadata"`
	Classes  map[string]landcoverClassFile `json:"classes"`
	Grid     [][]string                    `json:"grid"`
}

func loadLandcover(path string) (*terrain.LandcoverData, error) {
	var raw landcoverFileShape
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	meta, err := raw.Metadata.toGridMetadata()
	if err != nil {
		return nil, err
	}
	classes := make(map[string]terrain.LandcoverClass, len(raw.Classes))
	for name, c := range raw.Classes {
		classes[name] = terrain.LandcoverClass{
			Name:          name,
			CostFactor:    c.CostFactor,
			Exposure:      c.Exposure,
			SpeedModifier: c.SpeedModifier,
		}
	}
	return terrain.NewLandcoverData(raw.Grid, classes, meta)
}

func loadRoads(path string) (terrain.RoadNetwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	roads := make(terrain.RoadNetwork, len(fc.Features))
	for i, feature := range fc.Features {
		if feature.Geometry == nil || !feature.Geometry.IsLineString() {
			continue
		}
		id := fmt.Sprintf("%v", feature.Properties["id"])
		if id == "" || id == "<nil>" {
			id = fmt.Sprintf("road-%d", i)
		}
		coords := make([]terrain.Coordinate, len(feature.Geometry.LineString))
		for j, pt := range feature.Geometry.LineString {
			// Source is (lon, lat); swap to the engine's (lat, lon) order, once, here.
			coords[j] = terrain.Coordinate{Lat: pt[1], Lon: pt[0]}
		}
		roads[id] = coords
	}
	return roads, nil
}

func loadObstacles(path string) ([]terrain.Obstacle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	obstacles := make([]terrain.Obstacle, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature.Geometry == nil || !feature.Geometry.IsPolygon() || len(feature.Geometry.Polygon) == 0 {
			continue
		}
		ring := make(orb.Ring, len(feature.Geometry.Polygon[0]))
		for i, pt := range feature.Geometry.Polygon[0] {
			ring[i] = orb.Point{pt[0], pt[1]} // (lon, lat), matching orb's GeoJSON convention
		}
		obstacleType := "obstacle"
		if t, ok := feature.Properties["type"].(string); ok && t != "" {
			obstacleType = t
		}
		bufferM := 0.0
		if b, ok := feature.Properties["buffer_m"].(float64); ok {
			bufferM = b
		}
		if bufferM > 0 {
			ring = geometry.BufferRingMeters(ring, bufferM)
		}
		obstacles = append(obstacles, terrain.Obstacle{
			Polygon: ring,
			Type:    obstacleType,
			BufferM: bufferM,
		})
	}
	return obstacles, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(ErrMalformedBundle, "%s: %v", path, err)
	}
	return nil
}

// ParseTimestamp parses an ISO8601 timestamp, accepting a trailing "Z",
// and normalizes the result to UTC.
func ParseTimestamp(value string) (time.Time, error) {
	candidate := value
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999-07:00", "2006-01-02T15:04:05-07:00"} {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidTimestamp, "%q", value)
}
