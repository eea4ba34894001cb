// orchestrator/orchestrator.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package orchestrator is C13: the end-to-end plan_mission pipeline.
// It owns the mission and a weather manager; everything else (graph,
// cost model, planner, optimizer, validators) is borrowed per aircraft
// per invocation, matching spec.md §3's ownership model.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/aerie-sh/aerie/aeerr"
	"github.com/aerie-sh/aerie/aelog"
	"github.com/aerie-sh/aerie/aerand"
	"github.com/aerie-sh/aerie/mission"
	"github.com/aerie-sh/aerie/optimize"
	"github.com/aerie-sh/aerie/wx"
)

// Algorithm selects the path planner, per spec.md §4.12.
type Algorithm string

const (
	AlgorithmAStar     Algorithm = "astar"
	AlgorithmThetaStar Algorithm = "thetastar"
	AlgorithmDStar     Algorithm = "dstar"
)

// OptimizationAlgorithm selects the metaheuristic refinement stage, per
// spec.md §4.12.
type OptimizationAlgorithm string

const (
	OptimizationNone    OptimizationAlgorithm = "none"
	OptimizationGenetic OptimizationAlgorithm = "genetic"
	OptimizationACO     OptimizationAlgorithm = "aco"
	OptimizationPSO     OptimizationAlgorithm = "pso"
)

// Options is plan_mission's options bundle, per spec.md §4.12.
type Options struct {
	Algorithm             Algorithm
	OptimizationAlgorithm OptimizationAlgorithm
	OptimizationMetric    optimize.Metric

	LandingModeOverride     *mission.LandingMode
	FinishPointTypeOverride *mission.FinishPointType
	FinishPointOverride     *mission.Waypoint

	// RandomSeed parameterizes the metaheuristics' PRNG, per spec.md §5's
	// determinism requirement ("the seed is an implementation choice but
	// must be parameterisable for tests").
	RandomSeed uint64

	// VRPSearchBudget bounds vrp.Assign's constructive search for
	// multi-aircraft missions (e.g.
	// config.MissionPlannerConfig.VRPSearchBudget()). Zero falls back to
	// vrp's own 30-second default.
	VRPSearchBudget time.Duration

	At *time.Time
}

// Orchestrator owns the mission-spanning weather cache across planning
// invocations.
type Orchestrator struct {
	Weather *wx.Manager
	Log     *aelog.Logger
}

// New constructs an orchestrator around a weather manager; pass nil for
// missions that run with no weather awareness. Logging defaults to a
// no-op sink; callers that want the metaheuristic convergence stats
// should set Log directly (e.g. orc := New(weather); orc.Log = logger).
func New(weather *wx.Manager) *Orchestrator {
	return &Orchestrator{Weather: weather, Log: aelog.Nop()}
}

// effectiveFinish resolves the finish policy after applying any of the
// per-call overrides.
func effectiveFinish(m *mission.Mission, opts Options) (mission.FinishPointType, *mission.Waypoint, mission.LandingMode) {
	finishType := m.FinishType
	if opts.FinishPointTypeOverride != nil {
		finishType = *opts.FinishPointTypeOverride
	}
	finishPoint := m.FinishPoint
	if opts.FinishPointOverride != nil {
		finishPoint = opts.FinishPointOverride
	}
	landingMode := m.LandingMode
	if opts.LandingModeOverride != nil {
		landingMode = *opts.LandingModeOverride
	}
	return finishType, finishPoint, landingMode
}

// PlanMission is the public operation of spec.md §4.12: pre-check, then
// single- or multi-aircraft planning, then optional metaheuristic
// refinement, then validation. Returns the per-aircraft routes and an
// aggregated error (never a panic/throw, per spec.md §7's propagation
// policy); a route missing from the map means that aircraft failed to
// find a route, and its failure reason is part of the aggregated error.
func (o *Orchestrator) PlanMission(m *mission.Mission, opts Options) (map[string]*mission.Route, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmAStar
	}
	if opts.OptimizationMetric == "" {
		opts.OptimizationMetric = optimize.MetricDistance
	}

	if msg := o.precheck(m); msg != "" {
		return map[string]*mission.Route{}, fmt.Errorf("%w: %s", aeerr.ErrNoFlyZonePreCheck, msg)
	}

	rng := aerand.NewSeeded(opts.RandomSeed)

	var routes map[string]*mission.Route
	var planErr *aeerr.PlanningError

	if len(m.Fleet) == 1 {
		routes, planErr = o.planSingleFleet(m, opts, rng)
	} else {
		routes, planErr = o.planMultiFleet(m, opts, rng)
	}

	if opts.OptimizationAlgorithm != OptimizationNone {
		o.refineRoutes(m, routes, opts, rng)
	}

	o.attachVerdicts(m, routes)

	return routes, planErr.AsError()
}
