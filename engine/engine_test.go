package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nadirahdurr/route-planner/engine"
	"github.com/nadirahdurr/route-planner/loader"
	"github.com/nadirahdurr/route-planner/terrain"
)

func testBundle(t *testing.T) *loader.Bundle {
	t.Helper()
	source := loader.RoadOnlySource{
		Ways: []loader.Way{
			{
				ID:      "way-1",
				Highway: "unclassified",
				Coordinates: []terrain.Coordinate{
					{Lat: -110.0, Lon: 45.0},
					{Lat: -110.01, Lon: 45.0},
					{Lat: -110.02, Lon: 45.0},
				},
			},
		},
	}
	bundle, err := loader.LoadRoadOnly(source)
	require.NoError(t, err)
	return bundle
}

// EngineSuite exercises the engine façade across the full
// generate→risk→pace→select→export lifecycle, each test starting from a
// freshly loaded bundle and a clean engine state.
type EngineSuite struct {
	suite.Suite
	eng *engine.Engine
}

func (s *EngineSuite) SetupTest() {
	s.eng = engine.New(testBundle(s.T()), nil)
}

func (s *EngineSuite) generate(maxCandidates int) *engine.GenerateResult {
	result, err := s.eng.Generate(context.Background(), engine.GenerateRequest{
		Start:         engine.CoordinateInput{Lat: 45.0, Lon: -110.0},
		End:           engine.CoordinateInput{Lat: 45.0, Lon: -110.02},
		MaxCandidates: maxCandidates,
	})
	require.NoError(s.T(), err)
	return result
}

func routeIDs(result *engine.GenerateResult) []string {
	ids := make([]string, len(result.Routes))
	for i, route := range result.Routes {
		ids[i] = route.ID
	}
	return ids
}

func (s *EngineSuite) TestFullPipelineProducesAnExport() {
	genResult := s.generate(0)
	require.NotEmpty(s.T(), genResult.Routes)
	s.Equal("route-1", genResult.Routes[0].ID)
	s.NotEmpty(genResult.RequestID)

	ids := routeIDs(genResult)

	riskResult, err := s.eng.EvaluateRisk(engine.RiskRequest{RouteIDs: ids})
	require.NoError(s.T(), err)
	s.Len(riskResult.Risks, len(ids))

	paceResult, err := s.eng.EstimatePace(engine.PaceRequest{Mode: "foot", LoadKg: 10, RouteIDs: ids})
	require.NoError(s.T(), err)
	s.Len(paceResult.PaceEstimates, len(ids))

	selectResult, err := s.eng.Select(engine.SelectRequest{RouteIDs: ids, PreferLowRisk: true})
	require.NoError(s.T(), err)
	s.NotNil(selectResult.Selection.SelectedRoute)

	exportResult, err := s.eng.Export(engine.ExportRequest{}, s.T().TempDir())
	require.NoError(s.T(), err)
	s.Len(exportResult.Manifest.Files, 3)
}

func (s *EngineSuite) TestSelectFailsWithoutRiskEvaluation() {
	s.generate(0)

	_, err := s.eng.Select(engine.SelectRequest{})
	s.ErrorIs(err, engine.ErrMissingRiskEvaluation)
}

func (s *EngineSuite) TestExportFailsWithoutSelection() {
	_, err := s.eng.Export(engine.ExportRequest{}, s.T().TempDir())
	s.ErrorIs(err, engine.ErrNoSelection)
}

func (s *EngineSuite) TestGenerateRejectsOutOfRangeCoordinates() {
	_, err := s.eng.Generate(context.Background(), engine.GenerateRequest{
		Start: engine.CoordinateInput{Lat: 999, Lon: -110.0},
		End:   engine.CoordinateInput{Lat: 45.0, Lon: -110.02},
	})
	s.Error(err)
}

func (s *EngineSuite) TestUnknownRouteIDIsRejected() {
	s.generate(0)

	_, err := s.eng.EvaluateRisk(engine.RiskRequest{RouteIDs: []string{"route-does-not-exist"}})
	s.ErrorIs(err, engine.ErrUnknownRouteID)
}

func (s *EngineSuite) TestSelectHonorsMustArriveBeforeDeadline() {
	genResult := s.generate(0)
	ids := routeIDs(genResult)

	_, err := s.eng.EvaluateRisk(engine.RiskRequest{RouteIDs: ids})
	require.NoError(s.T(), err)
	_, err = s.eng.EstimatePace(engine.PaceRequest{RouteIDs: ids})
	require.NoError(s.T(), err)

	past := time.Now().Add(-time.Hour)
	_, err = s.eng.Select(engine.SelectRequest{RouteIDs: ids, MustArriveBefore: &past})
	s.Error(err)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}
