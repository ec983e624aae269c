// Package risk scores a route candidate's slope, exposure, and
// hydrology hazard as normalized components, then aggregates them under
// a fixed weighting.
package risk

import (
	"math"
	"strings"

	"github.com/nadirahdurr/route-planner/terrain"
)

const (
	slopeAvgUpperDeg   = 15.0
	slopeWorstUpperDeg = 25.0
	exposureUpper      = 1.0
)

func normalized(value, upper float64) float64 {
	if upper == 0 {
		return 0.0
	}
	return clamp(value/upper, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SlopeRisk blends the average and worst segment slope into a single
// 0-1 score, weighted 60/40 toward the average.
func SlopeRisk(route *terrain.RouteCandidate) float64 {
	segments := route.SegmentSteps()
	if len(segments) == 0 {
		return 0.0
	}
	var sum, worst float64
	for i, s := range segments {
		sum += s.Slope
		if i == 0 || s.Slope > worst {
			worst = s.Slope
		}
	}
	avg := sum / float64(len(segments))
	score := 0.6*normalized(avg, slopeAvgUpperDeg) + 0.4*normalized(worst, slopeWorstUpperDeg)
	return round3(clamp(score, 0, 1))
}

// ExposureRisk is the average segment exposure, normalized against a
// ceiling of 1.0.
func ExposureRisk(route *terrain.RouteCandidate) float64 {
	segments := route.SegmentSteps()
	if len(segments) == 0 {
		return 0.0
	}
	var sum float64
	for _, s := range segments {
		sum += s.Exposure
	}
	avg := sum / float64(len(segments))
	return round3(normalized(avg, exposureUpper))
}

// HydrologyRisk counts water and wetland segment crossings, weighting
// water twice as heavily as wetland, normalized by segment count.
func HydrologyRisk(route *terrain.RouteCandidate) float64 {
	segments := route.SegmentSteps()
	if len(segments) == 0 {
		return 0.0
	}
	var waterCount, bogCount int
	for _, s := range segments {
		lower := strings.ToLower(s.Terrain)
		if strings.Contains(lower, "water") {
			waterCount++
		}
		if strings.Contains(lower, "wetland") {
			bogCount++
		}
	}
	total := len(segments)
	if total < 1 {
		total = 1
	}
	score := normalized(float64(waterCount*2+bogCount), float64(total))
	return round3(score)
}

// Evaluate scores every route in routes and returns a map keyed by
// route id.
func Evaluate(routes []*terrain.RouteCandidate) map[string]*terrain.RouteRisk {
	out := make(map[string]*terrain.RouteRisk, len(routes))
	for _, route := range routes {
		out[route.ID] = EvaluateOne(route)
	}
	return out
}

// EvaluateOne scores a single route.
func EvaluateOne(route *terrain.RouteCandidate) *terrain.RouteRisk {
	slope := SlopeRisk(route)
	exposure := ExposureRisk(route)
	hydrology := HydrologyRisk(route)
	weights := map[string]float64{
		"slope":     terrain.RiskWeights["slope"],
		"exposure":  terrain.RiskWeights["exposure"],
		"hydrology": terrain.RiskWeights["hydrology"],
	}
	return &terrain.RouteRisk{
		RouteID:        route.ID,
		SlopeRisk:      slope,
		ExposureRisk:   exposure,
		HydrologyRisk:  hydrology,
		Weights:        weights,
		Formula:        terrain.RiskFormula,
		Components:     map[string]float64{"slope": slope, "exposure": exposure, "hydrology": hydrology},
		HydrologyCheck: route.HydrologyCheck,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
