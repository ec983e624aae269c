package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/paulmach/go.geojson"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/nadirahdurr/route-planner/terrain"
)

var basenamePattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeBasename strips candidate down to [A-Za-z0-9_-]+, collapsing
// everything else to a single hyphen and trimming leading/trailing
// hyphens and underscores. An empty result falls back to fallback.
func SanitizeBasename(candidate, fallback string) string {
	cleaned := basenamePattern.ReplaceAllString(strings.TrimSpace(candidate), "-")
	cleaned = strings.Trim(cleaned, "-_")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// Manifest is the result of ExportAll: where the three files landed and
// their checksums.
type Manifest struct {
	ExportRoot     string
	Basename       string
	WaypointsInGPX bool
	Files          map[string]FileManifest
}

// FileManifest is one exported file's path (relative to the export
// root's parent where possible) and its SHA-256 checksum.
type FileManifest struct {
	Path           string
	ChecksumSHA256 string
}

// ExportAll writes the GeoJSON, GPX, and Markdown brief for
// result.SelectedRoute under exportRoot, naming them from a sanitized
// basename (result.SelectedRoute.ID when basename is empty).
func ExportAll(result *terrain.SelectionResult, exportRoot, basename string, now time.Time) (*Manifest, error) {
	if err := os.MkdirAll(exportRoot, 0o755); err != nil {
		return nil, fmt.Errorf("export: creating export root: %w", err)
	}

	route := result.SelectedRoute
	base := SanitizeBasename(basename, route.ID)
	if basename == "" {
		base = SanitizeBasename(route.ID, route.ID)
	}

	geojsonPath := filepath.Join(exportRoot, base+".geojson")
	if err := writeGeoJSON(route, geojsonPath); err != nil {
		return nil, err
	}
	gpxPath := filepath.Join(exportRoot, base+".gpx")
	if err := writeGPX(route, gpxPath); err != nil {
		return nil, err
	}
	briefPath := filepath.Join(exportRoot, base+"_brief.md")
	if err := writeBrief(result, briefPath, now); err != nil {
		return nil, err
	}

	files := map[string]FileManifest{}
	for key, path := range map[string]string{"geojson": geojsonPath, "gpx": gpxPath, "brief": briefPath} {
		sum, err := ChecksumSHA256(path)
		if err != nil {
			return nil, err
		}
		files[key] = FileManifest{Path: relativeExportPath(path, exportRoot), ChecksumSHA256: sum}
	}

	return &Manifest{
		ExportRoot:     relativeExportPath(exportRoot, exportRoot),
		Basename:       base,
		WaypointsInGPX: true,
		Files:          files,
	}, nil
}

func writeGeoJSON(route *terrain.RouteCandidate, path string) error {
	coordinates := make([][]float64, len(route.Steps))
	for i, step := range route.Steps {
		// Preserved verbatim from the upstream implementation: the
		// internal (lat, lon) pair is emitted as-is, not reordered to
		// GeoJSON's (lon, lat) convention.
		coordinates[i] = []float64{step.Coordinate.Lat, step.Coordinate.Lon}
	}
	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coordinates))
	feature.Properties = map[string]interface{}{
		"id":         route.ID,
		"distance_m": route.DistanceM,
		"ascent_m":   route.AscentM,
		"descent_m":  route.DescentM,
		"cost":       route.EstimatedCost,
	}
	collection := geojson.NewFeatureCollection()
	collection.AddFeature(feature)

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encoding geojson: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeGPX(route *terrain.RouteCandidate, path string) error {
	g := &gpx.GPX{
		Version: "1.1",
		Creator: "Route Planner",
	}

	track := gpx.GPXTrack{Name: route.ID}
	segment := gpx.GPXTrackSegment{}
	for _, step := range route.Steps {
		point := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  step.Coordinate.Lat,
				Longitude: step.Coordinate.Lon,
				Elevation: *gpx.NewNullableFloat64(step.Elevation),
			},
		}
		segment.Points = append(segment.Points, point)

		if step.Kind == terrain.StepCheckpoint && step.Label != "" {
			g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
				Point: gpx.Point{
					Latitude:  step.Coordinate.Lat,
					Longitude: step.Coordinate.Lon,
				},
				Name:        step.Label,
				Description: fmt.Sprintf("%s %.3f km", step.Terrain, step.KMMarker),
			})
		}
	}
	track.Segments = []gpx.GPXTrackSegment{segment}
	g.Tracks = []gpx.GPXTrack{track}

	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("export: encoding gpx: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeBrief(result *terrain.SelectionResult, path string, now time.Time) error {
	route := result.SelectedRoute
	risk := result.Risk
	pace := result.Pace

	segmentSteps := route.SegmentSteps()
	var checkpointLines []string
	if len(segmentSteps) > 0 {
		stride := len(segmentSteps) / 6
		if stride < 1 {
			stride = 1
		}
		idx := 0
		for i := 0; i < len(segmentSteps); i += stride {
			step := segmentSteps[i]
			label := step.Label
			if label == "" {
				label = fmt.Sprintf("CP%d", idx+1)
			}
			checkpointLines = append(checkpointLines, fmt.Sprintf(
				"- %s: %.5f, %.5f via %s", label, step.Coordinate.Lat, step.Coordinate.Lon, step.Terrain,
			))
			idx++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Mission Brief: %s\n\n", route.ID)
	fmt.Fprintf(&b, "_Generated %s_\n\n", now.UTC().Format("2006-01-02 15:04Z"))
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Total distance: %.2f km\n", route.DistanceM/1000)
	fmt.Fprintf(&b, "- Elevation gain: %.1f m\n", route.AscentM)
	fmt.Fprintf(&b, "- Elevation loss: %.1f m\n", route.DescentM)
	fmt.Fprintf(&b, "- ETA: %.1f min (%s, load %g kg)\n\n", pace.TravelTimeMinutes, pace.Mode, pace.LoadKg)
	b.WriteString("## Risk Assessment\n")
	fmt.Fprintf(&b, "- Aggregate risk: %.2f\n", risk.Aggregate())
	fmt.Fprintf(&b, "- Slope risk: %.2f\n", risk.SlopeRisk)
	fmt.Fprintf(&b, "- Exposure risk: %.2f\n", risk.ExposureRisk)
	fmt.Fprintf(&b, "- Hydrology risk: %.2f\n", risk.HydrologyRisk)
	fmt.Fprintf(&b, "- Weights: %v\n", risk.Weights)
	fmt.Fprintf(&b, "- Hydrology check: %+v\n\n", risk.HydrologyCheck)
	b.WriteString("## Key Checkpoints\n")
	for _, line := range checkpointLines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n## Caveats\n")
	fmt.Fprintf(&b, "- %s\n", result.Rationale)

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ChecksumSHA256 returns the hex-encoded SHA-256 digest of the file at path.
func ChecksumSHA256(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("export: checksumming %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func relativeExportPath(path, exportRoot string) string {
	rel, err := filepath.Rel(filepath.Dir(exportRoot), path)
	if err != nil {
		return path
	}
	return rel
}
