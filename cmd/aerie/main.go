// cmd/aerie/main.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aerie-sh/aerie/aeerr"
	"github.com/aerie-sh/aerie/aelog"
	"github.com/aerie-sh/aerie/config"
	"github.com/aerie-sh/aerie/export"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/optimize"
	"github.com/aerie-sh/aerie/orchestrator"
	"github.com/aerie-sh/aerie/wx"
)

// Exit codes, per spec.md §6: 0 valid routes for every aircraft, 1 one or
// more aircraft with no route, 2 aborted by the no-fly-zone pre-check, 3
// invalid input (bad flags, unreadable/malformed mission file).
const (
	exitOK            = 0
	exitPartialRoutes = 1
	exitPreCheck      = 2
	exitInvalidInput  = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("aerie", flag.ContinueOnError)
	missionPath := fs.String("mission", "", "path to a mission JSON file (required)")
	configPath := fs.String("config", "", "path to a MissionPlannerConfig JSON file (optional)")
	outDir := fs.String("out", ".", "directory to write per-aircraft route JSON and QGC files into")
	algorithm := fs.String("algorithm", "", "planner override: astar, thetastar, or dstar")
	optAlgorithm := fs.String("optimize", "", "metaheuristic override: none, genetic, aco, or pso")
	optMetric := fs.String("metric", "", "order-optimizer metric override: distance, energy, or time")
	seed := fs.Uint64("seed", 0, "PRNG seed for the metaheuristic stage")
	qgc := fs.Bool("qgc", false, "also write a QGC waypoint text file per aircraft")
	logDir := fs.String("log-dir", "", "directory for the rotating aerie.log (overrides config)")
	cachePath := fs.String("cache", "", "path to a binary route snapshot; reused if it matches this mission, refreshed otherwise")

	if err := fs.Parse(args); err != nil {
		return exitInvalidInput
	}
	if *missionPath == "" {
		fmt.Fprintln(os.Stderr, "aerie: -mission is required")
		fs.PrintDefaults()
		return exitInvalidInput
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aerie: loading config: %v\n", err)
		return exitInvalidInput
	}
	cfg.SetDefaults()
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	logger := aelog.New(cfg.LogLevel, cfg.LogDir)
	logger.Info("loading mission", "path", *missionPath)

	m, err := mission.LoadMissionFile(*missionPath)
	if err != nil {
		logger.Error("loading mission", "error", err)
		fmt.Fprintf(os.Stderr, "aerie: loading mission: %v\n", err)
		return exitInvalidInput
	}

	opts := orchestrator.Options{
		Algorithm:             orchestrator.Algorithm(firstNonEmpty(*algorithm, cfg.Algorithm)),
		OptimizationAlgorithm: orchestrator.OptimizationAlgorithm(firstNonEmpty(*optAlgorithm, cfg.OptimizationAlgorithm)),
		OptimizationMetric:    optimize.Metric(firstNonEmpty(*optMetric, cfg.OptimizationMetric)),
		RandomSeed:            firstNonZeroSeed(*seed, cfg.RandomSeed),
		VRPSearchBudget:       cfg.VRPSearchBudget(),
	}

	var routes map[string]*mission.Route
	var planErr error
	cacheHit := false
	if *cachePath != "" {
		if cached, ok, err := mission.LoadRouteSnapshot(*cachePath, m.Name); err == nil && ok {
			routes, cacheHit = cached, true
			logger.Info("serving routes from cache", "path", *cachePath)
		}
	}

	if !cacheHit {
		o := orchestrator.New(wx.NewManager(nil, cfg.WeatherCacheTTL()))
		o.Log = logger
		routes, planErr = o.PlanMission(m, opts)

		if *cachePath != "" && planErr == nil {
			if err := mission.SaveRouteSnapshot(*cachePath, m.Name, routes); err != nil {
				logger.Warn("writing route snapshot", "error", err)
			}
		}
	}

	if errors.Is(planErr, aeerr.ErrNoFlyZonePreCheck) {
		logger.Warn("no-fly-zone pre-check aborted planning", "error", planErr)
		fmt.Fprintf(os.Stderr, "aerie: %v\n", planErr)
		return exitPreCheck
	}

	if err := writeRoutes(*outDir, routes, m, *qgc); err != nil {
		logger.Error("writing output", "error", err)
		fmt.Fprintf(os.Stderr, "aerie: writing output: %v\n", err)
		return exitInvalidInput
	}

	if planErr != nil {
		logger.Warn("one or more aircraft failed to plan", "error", planErr)
		fmt.Fprintf(os.Stderr, "aerie: %v\n", planErr)
	}
	logger.Info("planning complete", "aircraft_planned", len(routes), "fleet_size", len(m.Fleet))
	if len(routes) < len(m.Fleet) {
		return exitPartialRoutes
	}
	return exitOK
}

// writeRoutes writes one <aircraft>.json (and, if qgc is set, one
// <aircraft>.waypoints) per successfully planned route into dir.
func writeRoutes(dir string, routes map[string]*mission.Route, m *mission.Mission, qgc bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, route := range routes {
		data, err := export.RouteJSON(route)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if !qgc {
			continue
		}
		aircraft, ok := m.AircraftByName(name)
		if !ok {
			continue
		}
		text := export.QGCWaypoints(route, aircraft)
		if err := os.WriteFile(filepath.Join(dir, name+".waypoints"), []byte(text), 0o644); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroSeed(vals ...uint64) uint64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
