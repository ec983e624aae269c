package loader

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"github.com/nadirahdurr/route-planner/terrain"
)

// Way is a single OSM-style way: an ordered polyline tagged with a
// highway class, in (lon, lat) order.
type Way struct {
	ID          string
	Highway     string
	Name        string
	Coordinates []terrain.Coordinate
}

// AreaFeature is an OSM-style area (building, water body, or military
// landuse) that contributes an obstacle polygon, in (lon, lat) order.
type AreaFeature struct {
	Tag     string
	Value   string
	Polygon []terrain.Coordinate
}

// RoadOnlySource is the minimal OSM-derived input accepted when no
// terrain bundle is available: a set of ways and, optionally, areas to
// derive obstacles from.
type RoadOnlySource struct {
	Ways  []Way
	Areas []AreaFeature
}

const (
	placeholderGridSize = 10
	placeholderCellSize = 100.0
	placeholderClass    = "open"
)

// LoadRoadOnly builds a Bundle around an OSM-derived road network, with
// a placeholder DEM and landcover grid standing in for terrain data that
// was never ingested. The candidate generator recognizes this shape (a
// grid no larger than 10x10) and, when the road network is non-empty,
// routes requests to the road-graph pathfinder.
func LoadRoadOnly(src RoadOnlySource) (*Bundle, error) {
	roads := make(terrain.RoadNetwork, len(src.Ways))
	for i, way := range src.Ways {
		id := way.ID
		if id == "" {
			id = fmt.Sprintf("way-%d", i)
		}
		coords := make([]terrain.Coordinate, len(way.Coordinates))
		for j, c := range way.Coordinates {
			// Source is (lon, lat); swap to the engine's (lat, lon) order, once, here.
			coords[j] = terrain.Coordinate{Lat: c.Lon, Lon: c.Lat}
		}
		roads[id] = coords
	}

	dem, landcover := placeholderGrids()

	return &Bundle{
		DEM:       dem,
		Landcover: landcover,
		Obstacles: obstaclesFromAreas(src.Areas),
		Roads:     roads,
	}, nil
}

func placeholderGrids() (*terrain.DEMData, *terrain.LandcoverData) {
	meta := terrain.GridMetadata{
		Origin:      terrain.Coordinate{Lat: 0, Lon: 0},
		CellSizeM:   placeholderCellSize,
		TTLHours:    24,
		LastUpdated: time.Now().UTC(),
	}

	demGrid := make([][]float64, placeholderGridSize)
	lcGrid := make([][]string, placeholderGridSize)
	for r := 0; r < placeholderGridSize; r++ {
		demRow := make([]float64, placeholderGridSize)
		lcRow := make([]string, placeholderGridSize)
		for c := 0; c < placeholderGridSize; c++ {
			lcRow[c] = placeholderClass
		}
		demGrid[r] = demRow
		lcGrid[r] = lcRow
	}

	// Errors are impossible here: the shapes above are constructed to be
	// valid by this function, not decoded from untrusted input.
	dem, _ := terrain.NewDEMData(demGrid, meta)
	landcover, _ := terrain.NewLandcoverData(lcGrid, map[string]terrain.LandcoverClass{
		placeholderClass: {Name: placeholderClass, CostFactor: 1.0, Exposure: 0.3, SpeedModifier: 1.0},
	}, meta)
	return dem, landcover
}

// obstaclesFromAreas derives obstacle polygons from OSM-style areas.
// Extraction is best-effort: any area whose polygon collapses to fewer
// than three points is silently skipped rather than failing the whole
// load, since road-only ingestion treats terrain-adjacent detail as
// supplementary, not authoritative.
func obstaclesFromAreas(areas []AreaFeature) []terrain.Obstacle {
	obstacles := make([]terrain.Obstacle, 0, len(areas))
	for _, area := range areas {
		if len(area.Polygon) < 3 {
			continue
		}
		ring := make(orb.Ring, len(area.Polygon))
		for i, c := range area.Polygon {
			// Source is (lon, lat), which is already orb's point order.
			ring[i] = orb.Point{c.Lat, c.Lon}
		}
		obstacles = append(obstacles, terrain.Obstacle{
			Polygon: ring,
			Type:    areaObstacleType(area),
		})
	}
	return obstacles
}

func areaObstacleType(area AreaFeature) string {
	switch area.Tag {
	case "natural", "water":
		return "water"
	case "landuse":
		if area.Value == "military" {
			return "restricted"
		}
		return "landuse"
	case "building":
		return "building"
	default:
		return area.Tag
	}
}
