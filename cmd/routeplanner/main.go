// Command routeplanner runs the mission route-planning pipeline
// end-to-end from the command line: generate candidates, evaluate
// risk, estimate pace, select a winner, and export it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nadirahdurr/route-planner/engine"
	"github.com/nadirahdurr/route-planner/internal/config"
	"github.com/nadirahdurr/route-planner/internal/obslog"
	"github.com/nadirahdurr/route-planner/loader"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr *os.File) error {
	flags := pflag.NewFlagSet("routeplanner", pflag.ContinueOnError)

	var start, end coordinateFlag
	flags.Var(&start, "start", "start coordinate as lat,lon (required)")
	flags.Var(&end, "end", "end coordinate as lat,lon (required)")
	mode := flags.String("mode", "foot", "travel mode: foot or wheeled")
	loadKg := flags.Float64("load-kg", 25.0, "carried load in kilograms")
	maxCandidates := flags.Int("max-candidates", 3, "maximum number of route candidates to generate (1-3)")
	mustArriveBefore := flags.String("must-arrive-before", "", "RFC3339 deadline the selected route's ETA must beat")
	avoidSlope := flags.Float64("avoid-slope", 0, "reject routes whose steepest segment exceeds this slope in degrees (0 disables)")
	maxDistance := flags.Float64("max-distance", 0, "reject routes longer than this many meters (0 disables)")
	exportName := flags.String("export-name", "", "basename for exported files (defaults to the selected route id)")
	preferLowRisk := flags.Bool("prefer-low-risk", true, "weight candidate scoring by aggregate risk")
	flags.Bool("no-prefer-low-risk", false, "disable --prefer-low-risk")
	dataDir := flags.String("data-dir", "data", "directory containing dem.json, landcover.json, roads.geojson, obstacles.geojson")
	exportRoot := flags.String("export-root", "", "directory to write exports under (overrides config)")
	configPath := flags.String("config", "", "optional YAML configuration file")
	logPretty := flags.Bool("log-pretty", false, "emit text logs instead of JSON")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error (defaults to the config file's level, else info)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if !start.set || !end.set {
		return fmt.Errorf("routeplanner: --start and --end are required")
	}
	if changed := flags.Changed("no-prefer-low-risk"); changed {
		noPrefer, _ := flags.GetBool("no-prefer-low-risk")
		if noPrefer {
			*preferLowRisk = false
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	root := cfg.ExportRoot
	if *exportRoot != "" {
		root = *exportRoot
	}

	logger, err := obslog.New(stderr, pick(*logLevel, cfg.Log.Level), *logPretty || cfg.Log.Pretty)
	if err != nil {
		return err
	}

	bundle, err := loader.LoadBundle(*dataDir)
	if err != nil {
		return fmt.Errorf("routeplanner: loading bundle: %w", err)
	}
	logger.Info("bundle loaded", "data_dir", *dataDir)

	eng := engine.New(bundle, logger)
	eng.ProfileWeights = cfg.ProfileWeights
	ctx := context.Background()

	wantCandidates := *maxCandidates
	if !flags.Changed("max-candidates") && cfg.MaxCandidates > 0 {
		wantCandidates = cfg.MaxCandidates
	}
	genResult, err := eng.Generate(ctx, engine.GenerateRequest{
		Start:         engine.CoordinateInput{Lat: start.lat, Lon: start.lon},
		End:           engine.CoordinateInput{Lat: end.lat, Lon: end.lon},
		MaxCandidates: wantCandidates,
	})
	if err != nil {
		return fmt.Errorf("routeplanner: generate: %w", err)
	}

	routeIDs := make([]string, len(genResult.Routes))
	for i, route := range genResult.Routes {
		routeIDs[i] = route.ID
	}

	riskResult, err := eng.EvaluateRisk(engine.RiskRequest{RouteIDs: routeIDs})
	if err != nil {
		return fmt.Errorf("routeplanner: risk evaluation: %w", err)
	}

	paceResult, err := eng.EstimatePace(engine.PaceRequest{Mode: *mode, LoadKg: *loadKg, RouteIDs: routeIDs})
	if err != nil {
		return fmt.Errorf("routeplanner: pace estimation: %w", err)
	}

	selectReq := engine.SelectRequest{
		RouteIDs:      routeIDs,
		PreferLowRisk: *preferLowRisk,
	}
	if *mustArriveBefore != "" {
		deadline, err := loader.ParseTimestamp(*mustArriveBefore)
		if err != nil {
			return fmt.Errorf("routeplanner: parsing --must-arrive-before: %w", err)
		}
		selectReq.MustArriveBefore = &deadline
	}
	if *avoidSlope > 0 {
		selectReq.AvoidSlopeDegrees = avoidSlope
	}
	if *maxDistance > 0 {
		selectReq.MaxDistanceM = maxDistance
	}

	selectResult, err := eng.Select(selectReq)
	if err != nil {
		return fmt.Errorf("routeplanner: select: %w", err)
	}

	exportResult, err := eng.Export(engine.ExportRequest{Basename: *exportName}, root)
	if err != nil {
		return fmt.Errorf("routeplanner: export: %w", err)
	}

	report := map[string]any{
		"routes":    genResult,
		"risks":     riskResult,
		"pace":      paceResult,
		"selection": selectResult,
		"exports":   exportResult,
	}
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func pick(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return "info"
}
