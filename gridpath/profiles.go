package gridpath

// Profile is a named cost configuration applied to an A* search to bias
// it toward a particular kind of terrain.
type Profile struct {
	ID                 string
	Label              string
	SlopeWeight        float64
	TerrainMultipliers map[string]float64
	ExposurePenalty    float64
	RoadBias           float64
	Constraints        map[string]any
	CostWeights        map[string]float64
}

// Profiles lists the three fixed cost profiles, in the order candidates
// are generated. A StrictAdmissible variant (see Profile.StrictAdmissible)
// is not one of these three and is never selected by GenerateCandidates on its own.
var Profiles = []Profile{
	{
		ID:                 "balanced",
		Label:              "Balanced surfaces",
		SlopeWeight:        1.0,
		TerrainMultipliers: map[string]float64{"trail": 0.75, "road": 0.8},
		ExposurePenalty:    0.05,
		RoadBias:           1.0,
		Constraints:        map[string]any{"avoid": []string{}, "prefer": []string{"mixed"}, "mode": "foot"},
		CostWeights:        map[string]float64{"slope": 0.4, "terrain": 0.35, "exposure": 0.25},
	},
	{
		ID:                 "trail_pref",
		Label:              "Prefer trails",
		SlopeWeight:        0.9,
		TerrainMultipliers: map[string]float64{"trail": 0.6, "road": 0.85, "forest": 1.1, "open": 1.2},
		ExposurePenalty:    0.03,
		RoadBias:           0.8,
		Constraints:        map[string]any{"avoid": []string{}, "prefer": []string{"trail"}, "mode": "foot"},
		CostWeights:        map[string]float64{"slope": 0.35, "terrain": 0.45, "exposure": 0.2},
	},
	{
		ID:                 "low_exposure",
		Label:              "Limit exposure",
		SlopeWeight:        1.2,
		TerrainMultipliers: map[string]float64{"open": 1.4, "trail": 0.85, "road": 0.8},
		ExposurePenalty:    0.12,
		RoadBias:           1.1,
		Constraints:        map[string]any{"avoid": []string{"open"}, "prefer": []string{"cover"}, "mode": "foot"},
		CostWeights:        map[string]float64{"slope": 0.45, "terrain": 0.25, "exposure": 0.3},
	},
}

// ApplyWeightOverrides returns a copy of Profiles with each profile's
// CostWeights merged against overrides[profile.ID] (override keys take
// precedence; a profile absent from overrides is returned unchanged).
func ApplyWeightOverrides(overrides map[string]map[string]float64) []Profile {
	out := make([]Profile, len(Profiles))
	copy(out, Profiles)
	if len(overrides) == 0 {
		return out
	}
	for i, p := range out {
		replacement, ok := overrides[p.ID]
		if !ok {
			continue
		}
		merged := make(map[string]float64, len(p.CostWeights))
		for k, v := range p.CostWeights {
			merged[k] = v
		}
		for k, v := range replacement {
			merged[k] = v
		}
		out[i].CostWeights = merged
	}
	return out
}

// StrictAdmissible returns a profile identical to p but with every
// multiplier that could make the A* heuristic inadmissible removed: no
// terrain discount below 1.0, no road preference, no exposure penalty.
// None of the three named profiles use this; it exists as an escape
// hatch for callers that need a heuristic guaranteed not to overestimate
// true cost (see DESIGN.md open question on heuristic admissibility).
func (p Profile) StrictAdmissible() Profile {
	out := p
	out.TerrainMultipliers = make(map[string]float64, len(p.TerrainMultipliers))
	for k, v := range p.TerrainMultipliers {
		if v < 1.0 {
			v = 1.0
		}
		out.TerrainMultipliers[k] = v
	}
	// A zero bias raises every road factor to the power 0, i.e. 1.0.
	out.RoadBias = 0
	out.ExposurePenalty = 0
	return out
}
