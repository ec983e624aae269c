// Package selector applies constraint filters and a risk-aware scoring
// rule to a set of scored route candidates, choosing one winner and
// explaining every runner-up's rejection in terms of a fixed reason-code
// vocabulary.
package selector

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nadirahdurr/route-planner/terrain"
)

const scoreDefinition = "composite score = estimated_cost × (1 + aggregate_risk) when prefer_low_risk else estimated_cost"

type evaluation struct {
	route *terrain.RouteCandidate
	score float64
	risk  *terrain.RouteRisk
	pace  *terrain.PaceEstimate
}

// Select filters routes by constraints (slope ceiling, distance ceiling,
// arrival deadline, in that order) and picks the lowest-scoring
// survivor, breaking score ties by lower estimated cost and then by more
// trail coverage. now anchors the must-arrive-before deadline check.
func Select(
	routes []*terrain.RouteCandidate,
	risks map[string]*terrain.RouteRisk,
	paces map[string]*terrain.PaceEstimate,
	constraints terrain.SelectionConstraints,
	now time.Time,
) (*terrain.SelectionResult, error) {
	var rationaleParts []string
	var evaluations []evaluation
	var best *evaluation

	for _, route := range routes {
		routeRisk := risks[route.ID]
		routePace := paces[route.ID]

		if constraints.AvoidSlopeDegrees != nil {
			maxSlope := 0.0
			for i, s := range route.Steps {
				if i == 0 || s.Slope > maxSlope {
					maxSlope = s.Slope
				}
			}
			if maxSlope > *constraints.AvoidSlopeDegrees {
				rationaleParts = append(rationaleParts, fmt.Sprintf("%s rejected: slope above threshold", route.ID))
				continue
			}
		}

		if constraints.MaxDistanceM != nil && route.DistanceM > *constraints.MaxDistanceM {
			rationaleParts = append(rationaleParts, fmt.Sprintf("%s rejected: distance exceeds limit", route.ID))
			continue
		}

		if constraints.MustArriveBefore != nil {
			arrival := now.Add(time.Duration(routePace.TravelTimeMinutes * float64(time.Minute)))
			if arrival.After(*constraints.MustArriveBefore) {
				rationaleParts = append(rationaleParts, fmt.Sprintf("%s rejected: ETA past deadline", route.ID))
				continue
			}
		}

		score := route.EstimatedCost
		if constraints.PreferLowRisk {
			score *= 1 + routeRisk.Aggregate()
		}

		ev := evaluation{route: route, score: score, risk: routeRisk, pace: routePace}
		evaluations = append(evaluations, ev)
		better := best == nil || score < best.score
		if best != nil && score == best.score {
			if route.EstimatedCost != best.route.EstimatedCost {
				better = route.EstimatedCost < best.route.EstimatedCost
			} else {
				better = route.Coverage["trail"] > best.route.Coverage["trail"]
			}
		}
		if better {
			last := ev
			best = &last
		}
	}

	if best == nil {
		return nil, ErrUnsatisfiable
	}

	rationaleParts = append(rationaleParts, fmt.Sprintf("%s selected with aggregate risk %.2f", best.route.ID, best.risk.Aggregate()))
	rationale := strings.Join(rationaleParts, "; ")

	constraintsSummary := map[string]any{}
	if constraints.MustArriveBefore != nil {
		constraintsSummary["nlt"] = constraints.MustArriveBefore.Format(time.RFC3339)
	}
	if constraints.AvoidSlopeDegrees != nil {
		constraintsSummary["max_slope_deg"] = *constraints.AvoidSlopeDegrees
	}
	if constraints.MaxDistanceM != nil {
		constraintsSummary["max_distance_m"] = *constraints.MaxDistanceM
	}
	if constraints.PreferLowRisk {
		constraintsSummary["preferred"] = "lowest_risk"
	} else {
		constraintsSummary["preferred"] = "balanced"
	}

	alternates := buildAlternates(*best, evaluations)

	sortedEvals := append([]evaluation(nil), evaluations...)
	sort.SliceStable(sortedEvals, func(i, j int) bool { return sortedEvals[i].score < sortedEvals[j].score })

	bestComposite := best.route.Composite
	composite := roundScore(best.score)
	if bestComposite == nil {
		bestComposite = &composite
	}

	tieBreaker := "lowest composite score"
	if len(sortedEvals) > 1 {
		runner := sortedEvals[1]
		if runner.route.ID == best.route.ID {
			runner = sortedEvals[0]
		}
		tieBreaker = fmt.Sprintf(
			"lowest composite score (%.3f vs %.3f) and lower estimated_cost (%.3f vs %.3f)",
			*bestComposite, runner.score, best.route.EstimatedCost, runner.route.EstimatedCost,
		)
		if dominant, ok := dominantTerrain(best.route.Coverage); ok {
			tieBreaker += fmt.Sprintf("; selected profile emphasizes %s", dominant)
		}
	}

	policyID := "balanced_v1.1"
	compositeFormula := "estimated_cost"
	if constraints.PreferLowRisk {
		policyID = "prefer_low_risk_v1.1"
		compositeFormula = "estimated_cost * (1 + aggregate_risk)"
	}
	policy := map[string]any{
		"id":        policyID,
		"composite": compositeFormula,
		"tiebreakers": []string{
			"lowest composite",
			"lowest estimated_cost",
			"greater trail_km",
		},
	}

	return &terrain.SelectionResult{
		SelectedRoute:   best.route,
		Risk:            *best.risk,
		Pace:            *best.pace,
		Rationale:       rationale,
		Constraints:     constraintsSummary,
		Alternates:      alternates,
		ScoreDefinition: scoreDefinition,
		TieBreaker:      tieBreaker,
		Policy:          policy,
	}, nil
}

func buildAlternates(best evaluation, evaluations []evaluation) []terrain.AlternateRoute {
	alternates := make([]terrain.AlternateRoute, 0, len(evaluations))
	for _, ev := range evaluations {
		if ev.route.ID == best.route.ID {
			continue
		}
		var parts []string
		var codes []string

		riskDiff := ev.risk.Aggregate() - best.risk.Aggregate()
		switch {
		case math.Abs(riskDiff) < 0.01:
			parts = append(parts, "similar aggregate risk")
			codes = append(codes, "tie_risk")
		case riskDiff > 0:
			parts = append(parts, fmt.Sprintf("higher aggregate risk (+%.2f)", riskDiff))
			codes = append(codes, "higher_risk")
		default:
			parts = append(parts, fmt.Sprintf("lower aggregate risk (%.2f vs %.2f)", ev.risk.Aggregate(), best.risk.Aggregate()))
			codes = append(codes, "lower_risk")
		}

		etaDiff := ev.pace.TravelTimeMinutes - best.pace.TravelTimeMinutes
		switch {
		case etaDiff > 0:
			parts = append(parts, fmt.Sprintf("slower ETA (+%.1f min)", etaDiff))
			codes = append(codes, "slower_eta")
		case etaDiff < 0:
			parts = append(parts, fmt.Sprintf("faster ETA (-%.1f min)", -etaDiff))
			codes = append(codes, "faster_eta")
		}

		switch {
		case ev.route.DistanceM > best.route.DistanceM:
			parts = append(parts, "longer distance")
			codes = append(codes, "longer_distance")
		case ev.route.DistanceM < best.route.DistanceM:
			parts = append(parts, "shorter distance")
			codes = append(codes, "shorter_distance")
		}

		if prefer, ok := ev.route.ConstraintsUsed["prefer"].([]string); ok && len(prefer) > 0 {
			parts = append(parts, fmt.Sprintf("prefers %s", strings.Join(prefer, ", ")))
			for _, p := range prefer {
				switch p {
				case "trail":
					codes = append(codes, "trail_pref")
				case "mixed":
					codes = append(codes, "mixed_profile")
				case "cover":
					codes = append(codes, "cover_pref")
				}
			}
		}

		if dominant, ok := dominantTerrain(ev.route.Coverage); ok {
			parts = append(parts, fmt.Sprintf("dominant terrain %s", dominant))
			codes = append(codes, "dominant_"+dominant)
		}

		if avoid, ok := ev.route.ConstraintsUsed["avoid"].([]string); ok && len(ev.route.Coverage) > 0 {
			for _, a := range avoid {
				if a == "open" && ev.route.Coverage["open"] > 0 {
					codes = append(codes, "requires_open_crossing")
				}
			}
		}

		switch {
		case ev.route.EstimatedCost > best.route.EstimatedCost:
			codes = append(codes, "higher_cost")
		case ev.route.EstimatedCost < best.route.EstimatedCost:
			codes = append(codes, "lower_cost")
		}

		sort.Strings(codes)
		codes = dedupe(codes)

		alternates = append(alternates, terrain.AlternateRoute{
			RouteID:     ev.route.ID,
			Score:       roundScore(ev.score),
			Rationale:   strings.Join(parts, ", "),
			ReasonCodes: codes,
		})
	}

	sort.SliceStable(alternates, func(i, j int) bool { return alternates[i].Score < alternates[j].Score })
	return alternates
}

func dominantTerrain(coverage map[string]float64) (string, bool) {
	if len(coverage) == 0 {
		return "", false
	}
	names := make([]string, 0, len(coverage))
	for name := range coverage {
		names = append(names, name)
	}
	sort.Strings(names)
	best := names[0]
	for _, name := range names[1:] {
		if coverage[name] > coverage[best] {
			best = name
		}
	}
	return best, true
}

func dedupe(items []string) []string {
	out := items[:0]
	var last string
	for i, item := range items {
		if i > 0 && item == last {
			continue
		}
		out = append(out, item)
		last = item
	}
	return out
}

func roundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}
