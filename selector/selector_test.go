package selector_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/selector"
	"github.com/nadirahdurr/route-planner/terrain"
)

func mkRoute(id string, cost float64, steps ...terrain.RouteStep) *terrain.RouteCandidate {
	return &terrain.RouteCandidate{ID: id, EstimatedCost: cost, Steps: steps, DistanceM: 1000}
}

func mkRisk(id string, aggregate float64) *terrain.RouteRisk {
	return &terrain.RouteRisk{
		RouteID:   id,
		Weights:   map[string]float64{"slope": 1, "exposure": 0, "hydrology": 0},
		SlopeRisk: aggregate,
	}
}

func mkPace(id string, minutes float64) *terrain.PaceEstimate {
	return &terrain.PaceEstimate{RouteID: id, TravelTimeMinutes: minutes}
}

func TestSelectPicksLowestCost(t *testing.T) {
	routes := []*terrain.RouteCandidate{mkRoute("a", 2.0), mkRoute("b", 1.0)}
	risks := map[string]*terrain.RouteRisk{"a": mkRisk("a", 0.1), "b": mkRisk("b", 0.1)}
	paces := map[string]*terrain.PaceEstimate{"a": mkPace("a", 10), "b": mkPace("b", 10)}

	result, err := selector.Select(routes, risks, paces, terrain.SelectionConstraints{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "b", result.SelectedRoute.ID)
	assert.Len(t, result.Alternates, 1)
	assert.Equal(t, "a", result.Alternates[0].RouteID)
}

func TestSelectRejectsRouteAboveSlopeThreshold(t *testing.T) {
	steep := mkRoute("steep", 1.0, terrain.RouteStep{Kind: terrain.StepSegment, Slope: 40})
	gentle := mkRoute("gentle", 2.0, terrain.RouteStep{Kind: terrain.StepSegment, Slope: 5})
	risks := map[string]*terrain.RouteRisk{"steep": mkRisk("steep", 0.1), "gentle": mkRisk("gentle", 0.1)}
	paces := map[string]*terrain.PaceEstimate{"steep": mkPace("steep", 10), "gentle": mkPace("gentle", 10)}

	limit := 20.0
	result, err := selector.Select(
		[]*terrain.RouteCandidate{steep, gentle}, risks, paces,
		terrain.SelectionConstraints{AvoidSlopeDegrees: &limit}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, "gentle", result.SelectedRoute.ID)
	assert.Contains(t, result.Rationale, "steep rejected: slope above threshold")
}

func TestSelectUnsatisfiableWhenAllRejected(t *testing.T) {
	steep := mkRoute("steep", 1.0, terrain.RouteStep{Kind: terrain.StepSegment, Slope: 40})
	risks := map[string]*terrain.RouteRisk{"steep": mkRisk("steep", 0.1)}
	paces := map[string]*terrain.PaceEstimate{"steep": mkPace("steep", 10)}

	limit := 10.0
	_, err := selector.Select(
		[]*terrain.RouteCandidate{steep}, risks, paces,
		terrain.SelectionConstraints{AvoidSlopeDegrees: &limit}, time.Now(),
	)
	require.ErrorIs(t, err, selector.ErrUnsatisfiable)
}

func TestSelectPreferLowRiskScalesByAggregateRisk(t *testing.T) {
	cheapButRisky := mkRoute("risky", 1.0, terrain.RouteStep{Kind: terrain.StepSegment})
	pricierButSafe := mkRoute("safe", 1.05, terrain.RouteStep{Kind: terrain.StepSegment})
	risks := map[string]*terrain.RouteRisk{
		"risky": mkRisk("risky", 1.0),
		"safe":  mkRisk("safe", 0.0),
	}
	paces := map[string]*terrain.PaceEstimate{"risky": mkPace("risky", 10), "safe": mkPace("safe", 10)}

	result, err := selector.Select(
		[]*terrain.RouteCandidate{cheapButRisky, pricierButSafe}, risks, paces,
		terrain.SelectionConstraints{PreferLowRisk: true}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, "safe", result.SelectedRoute.ID)
}
