// Package pace estimates travel time with a Naismith-derived speed
// model, adjusted for ascent, descent, carried load, and steepest
// segment slope.
package pace

import (
	"fmt"
	"math"

	"github.com/nadirahdurr/route-planner/terrain"
)

// NaismithBaseSpeedKmh is the unloaded, flat-ground speed for each
// travel mode. Modes outside this table fall back to the foot speed.
var NaismithBaseSpeedKmh = map[string]float64{
	"foot":    5.0,
	"wheeled": 8.0,
}

const minSpeedKmh = 1.5

// AdjustedSpeed returns route's travel speed in km/h under mode and
// loadKg, after the ascent, descent, load, and slope penalties.
func AdjustedSpeed(route *terrain.RouteCandidate, mode string, loadKg float64) float64 {
	base, ok := NaismithBaseSpeedKmh[mode]
	if !ok {
		base = NaismithBaseSpeedKmh["foot"]
	}
	ascentPenalty := route.AscentM / 600.0
	descentPenalty := math.Max(0.0, (route.DescentM-300)/800.0)
	loadPenalty := loadKg / 20.0 * 0.5

	maxSlope := 0.0
	for i, s := range route.Steps {
		if i == 0 || s.Slope > maxSlope {
			maxSlope = s.Slope
		}
	}
	slopePenalty := maxSlope / 40.0

	speed := base - ascentPenalty - descentPenalty - loadPenalty - slopePenalty
	return math.Max(speed, minSpeedKmh)
}

// EstimateTravelTime converts route's distance at the adjusted speed
// into a PaceEstimate with a fixed, human-readable assumptions list.
func EstimateTravelTime(route *terrain.RouteCandidate, mode string, loadKg float64) *terrain.PaceEstimate {
	speed := AdjustedSpeed(route, mode, loadKg)
	travelTimeHours := (route.DistanceM / 1000.0) / speed
	travelTimeMinutes := travelTimeHours * 60.0

	base, ok := NaismithBaseSpeedKmh[mode]
	if !ok {
		base = NaismithBaseSpeedKmh["foot"]
	}

	return &terrain.PaceEstimate{
		RouteID:           route.ID,
		TravelTimeMinutes: round1(travelTimeMinutes),
		Mode:              mode,
		LoadKg:            loadKg,
		BaseSpeedKmh:      round2(speed),
		Assumptions: []string{
			fmt.Sprintf("Naismith base %.1f km/h", base),
			"+30% time per deg >10° equivalent",
			fmt.Sprintf("+10%% time per 10 kg load (applied to %g kg)", loadKg),
			"Rest ratio 10 min per 60 min travel",
		},
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
